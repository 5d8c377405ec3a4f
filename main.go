/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package main

import (
	"charsetcore/cmd"
)

func main() {
	cmd.Execute()
}

// go build -ldflags="-s -w -X 'charsetcore/internal/version.Version=v1.0.0' -X 'charsetcore/internal/version.Commit=$(git rev-parse HEAD)' -X 'charsetcore/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)'" -o release/charsetctl
// upx --best --compress-resources=0 charsetctl

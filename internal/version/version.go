/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package version

import "fmt"

// 以下三个变量由构建时的 -ldflags 注入（见 main.go 末尾的构建命令注释），
// 未注入时保留开发态默认值。
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout 返回供 `charsetctl about` 命令打印的单行版本描述。
func GetAbout() string {
	return fmt.Sprintf("charsetctl %s (commit %s, built %s)", Version, Commit, BuildDate)
}

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"
	"os"

	"charsetcore/internal/version"
	"charsetcore/pkg/charset"
	"charsetcore/pkg/logger"
	"charsetcore/pkg/pathx"

	"github.com/spf13/cobra"
)

var logLevel string

// rootCmd 是默认命令：对给定路径中的每个文件运行 Detect 并打印一张
// 结果表，不做任何写出操作（写出由 decode 子命令负责）。
var rootCmd = &cobra.Command{
	Use:     "charsetctl [input-paths...]",
	Short:   "字符编码探测与解码工具",
	Long:    "charsetctl 对文本文件进行字符编码探测，并能将其严格解码为 UTF-8。支持 BOM 嗅探、CJK/波兰语多编码候选仲裁与严格/替换两种解码模式。",
	Args:    cobra.MinimumNArgs(1),
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := pathx.CollectFiles(args, 0, nil, true)
		if err != nil {
			return fmt.Errorf("收集文件失败: %w", err)
		}
		if len(files) == 0 {
			logger.Log().Warn("[警告] 未找到任何文件")
			return nil
		}

		logger.Log().Info("[扫描] 探测编码", "总计", len(files))
		for i, file := range files {
			content, hash, err := pathx.ReadFile(file)
			if err != nil {
				logger.Log().Error("[失败] 读取文件失败", "文件", file, "原因", err)
				continue
			}
			result := charset.Detect(content, logger.Log())
			fmt.Printf("%3d. %-40s  %-14s  confidence=%.2f  bom=%v  fallback=%v  sha256=%s\n",
				i+1, file, result.Encoding, result.Confidence, result.DetectedByBOM, result.UsedFallback, hash[:12])
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
}

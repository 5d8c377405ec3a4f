/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"charsetcore/internal/batch"
	"charsetcore/pkg/logger"

	"github.com/spf13/cobra"
)

// 命令行参数变量
var (
	decodeInputPaths    []string
	decodeDepth         int
	decodeOutputDir     string
	decodeNameTemplate  string
	decodeDryRun        bool
	decodeOverwrite     bool
	decodeForceRefresh  bool
	decodeReplaceErrors bool
)

// decodeCmd 对输入文件批量探测编码并严格解码为 UTF-8 文本文件。
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Detect and decode text files to UTF-8",
	Long: `根据输入文件/目录，批量探测字符编码并将其严格解码为 UTF-8 文本，支持名称模板与跳过重复处理。

名称模板占位符:
  * {name}: 基础名称（源文件名）。
  * {index[:width]}: 当前处理文件的序号，支持用 :width 指定补零宽度 (如 {index:03})。
  * {count}: 本次任务处理的总文件数。
  * {date[:layout]}: 当前日期，支持用 :layout 指定 Go 时间格式 (默认 20060102)。
  * {uuid}: 一个随机的 UUID v4 字符串。
  * {rand[:len]}: 一个随机的字母数字字符串，支持用 :len 指定长度 (默认 8 位)。

所有占位符都支持大小写修饰符，例如 {name:upper} 会将名称转换为大写。

示例:
  # 探测并解码 data 目录下的文件，输出名如 "file1_001.txt"
  charsetctl decode -i data -o out --name "{name:lower}_{index:03}" --dry-run

  # 对解码仍失败的文件退化为 UTF-8 替换解码而不是跳过
  charsetctl decode -i data -o out --replace-errors
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := batch.NewRunner(batch.Config{
			InputPaths:    decodeInputPaths,
			Depth:         decodeDepth,
			OutputDir:     decodeOutputDir,
			NameTemplate:  decodeNameTemplate,
			DryRun:        decodeDryRun,
			Overwrite:     decodeOverwrite,
			ForceRefresh:  decodeForceRefresh,
			ReplaceErrors: decodeReplaceErrors,
		})
		if err != nil {
			logger.Log().Error("创建批处理器失败", "error", err)
			return fmt.Errorf("创建批处理器失败: %w", err)
		}
		logger.Log().Debug("开始执行批处理器")
		return runner.Execute()
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringArrayVarP(&decodeInputPaths, "input", "i", nil, "输入文件或目录，可重复指定")
	decodeCmd.Flags().IntVar(&decodeDepth, "depth", -1, "递归深度：0=仅当前目录，正数=最大层级，-1=无限")
	decodeCmd.Flags().StringVarP(&decodeOutputDir, "output", "o", "", "输出目录")
	decodeCmd.Flags().StringVar(&decodeNameTemplate, "name", "", "文件名模板，支持占位符 {name}{index}{date}{uuid}{rand}{count}")
	decodeCmd.Flags().BoolVar(&decodeDryRun, "dry-run", false, "仅预览批处理计划，不执行写入")
	decodeCmd.Flags().BoolVar(&decodeOverwrite, "overwrite", false, "允许覆盖已存在的目标文件")
	decodeCmd.Flags().BoolVar(&decodeForceRefresh, "force-refresh", false, "强制重新处理，忽视 processed 已存在的条目")
	decodeCmd.Flags().BoolVar(&decodeReplaceErrors, "replace-errors", false, "严格解码全部失败时退化为 UTF-8 替换解码，而不是跳过该文件")

	_ = decodeCmd.MarkFlagRequired("input")
	_ = decodeCmd.MarkFlagRequired("output")
}

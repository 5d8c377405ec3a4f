/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

// Package batch 实现批量编码探测/解码的调度器：收集输入路径下的文件、
// 按内容哈希去重、对每个文件跑 charset 包的 Detect+Decode、生成输出计划
// 并预览或落盘。整体编排沿用旧有导出器的
// Exporter -> ProcessHistory 去重 -> 逐文件处理 -> 生成计划 -> 预览/执行
// 这一套形状，只是把"解析坐标、构建几何、调用 QGIS 导出"换成了
// "探测编码、严格解码、写出 UTF-8 文本"。
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charsetcore/pkg/logger"
	"charsetcore/pkg/pathx"
)

const ProcessedFileName = ".processed"

// Config 汇集了从命令行接收到的所有批处理参数。
type Config struct {
	InputPaths    []string
	Depth         int
	OutputDir     string
	NameTemplate  string
	DryRun        bool
	Overwrite     bool
	ForceRefresh  bool
	ReplaceErrors bool // 对应 Decode 的 replaceErrors：严格解码全部失败时是否退化为 utf-8-replace
}

// Verify 校验并规范化配置。
func (c *Config) Verify() error {
	if len(c.InputPaths) == 0 {
		return errors.New("至少提供一个 --input / -i")
	}
	for i, input := range c.InputPaths {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return fmt.Errorf("第 %d 个输入为空", i+1)
		}
		c.InputPaths[i] = trimmed
	}
	if c.Depth < -1 {
		return errors.New("depth 不能小于 -1")
	}

	outputDir := strings.TrimSpace(c.OutputDir)
	var err error
	if outputDir == "" {
		outputDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("无法获取当前工作目录: %w", err)
		}
		logger.Log().Debug("未指定输出目录，使用当前目录", "dir", outputDir)
	} else {
		outputDir, err = pathx.Resolve(outputDir)
		if err != nil {
			return fmt.Errorf("无法解析输出目录 '%s': %w", outputDir, err)
		}
	}
	c.OutputDir = outputDir

	nameTemplate := strings.TrimSpace(c.NameTemplate)
	if nameTemplate == "" {
		nameTemplate = "{name}"
	} else if stem, serr := pathx.Stem(nameTemplate); serr == nil {
		nameTemplate = stem
	}
	c.NameTemplate = nameTemplate
	return nil
}

// Prepare 创建处理历史记录所在的目录（DryRun 模式下跳过）。
func (c *Config) Prepare() error {
	if c.DryRun {
		logger.Log().Debug("已启用 --dry-run 模式, 将不会写入文件")
		return nil
	}
	logger.Log().Debug("创建输出目录与处理历史目录", "dir", c.OutputDir)
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	return nil
}

// ProcessFilePath 返回处理历史记录文件的完整路径。
func (c *Config) ProcessFilePath() string {
	return filepath.Join(c.OutputDir, ProcessedFileName)
}

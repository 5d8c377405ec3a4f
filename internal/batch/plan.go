/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"charsetcore/internal/util"
	"charsetcore/pkg/logger"
	"charsetcore/pkg/namex"
	"charsetcore/pkg/pathx"
)

// Plan 定义了单个文件的解码输出计划。
type Plan struct {
	SourceHash  string
	OutputPath  string
	Detection   string // 探测到的编码标签，用于日志展示
	UsedReplace bool
}

// generatePlans 为 DetectedData 中的每个文件生成一个输出计划：输出路径
// 由 NameTemplate 渲染、namex.Sanitize 去重，再拼上固定的 .txt 扩展名。
func (r *Runner) generatePlans() ([]Plan, error) {
	tmpl := strings.TrimSpace(r.Config.NameTemplate)
	if r.UsedNames == nil {
		r.UsedNames = make(map[string]struct{})
	}

	type item struct {
		hash     string
		baseName string
		index    int
	}
	items := make([]item, 0, len(r.DetectedData))
	i := 0
	for hash, data := range r.DetectedData {
		stem, serr := pathx.Stem(data.FileCache.Path)
		if serr != nil || strings.TrimSpace(stem) == "" {
			stem = fmt.Sprintf("file_%d", i+1)
		}
		items = append(items, item{hash: hash, baseName: stem, index: i + 1})
		i++
	}
	total := len(items)
	plans := make([]Plan, 0, total)

	for _, it := range items {
		outputName := renderNameTemplate(tmpl, it.baseName, it.index, total)
		outputName = namex.Sanitize(outputName, r.UsedNames)
		outputName += ".txt"

		data := r.DetectedData[it.hash]
		plans = append(plans, Plan{
			SourceHash:  it.hash,
			OutputPath:  filepath.Join(r.Config.OutputDir, outputName),
			Detection:   data.Detection.Encoding,
			UsedReplace: data.Decoded.UsedFallback,
		})
	}
	return plans, nil
}

// previewPlans 打印批处理计划的预览信息，不做任何写出操作。
func (r *Runner) previewPlans(plans []Plan) {
	total := len(plans)
	logger.Log().Info("预览批处理计划", "totalPlans", total)
	width := util.IntDigits(total)
	for i, plan := range plans {
		data := r.DetectedData[plan.SourceHash]
		progress := fmt.Sprintf("[%0*d/%d]", width, i+1, total)
		message := fmt.Sprintf("%12s", progress)
		logger.Log().Info(message,
			slog.String("source", data.FileCache.Path),
			slog.String("encoding", plan.Detection),
			slog.Bool("usedFallback", plan.UsedReplace),
			slog.String("target", plan.OutputPath))
	}
}

// executePlans 把每个计划对应的解码文本写到磁盘，返回成功写出的文件数。
func (r *Runner) executePlans(plans []Plan) (int, error) {
	total := len(plans)
	logger.Log().Info("执行批处理计划", "totalPlans", total)
	width := util.IntDigits(total)

	written := 0
	for i, plan := range plans {
		data := r.DetectedData[plan.SourceHash]

		if !r.Config.Overwrite {
			if exists, err := pathx.Exists(plan.OutputPath); err != nil {
				return written, fmt.Errorf("检查输出文件 %s 失败: %w", plan.OutputPath, err)
			} else if exists {
				logger.Log().Warn("[跳过] 输出文件已存在（未启用 --overwrite）", "目标", plan.OutputPath)
				continue
			}
		}

		if err := os.WriteFile(plan.OutputPath, []byte(data.Decoded.Text), 0o644); err != nil {
			return written, fmt.Errorf("写出文件 %s 失败: %w", plan.OutputPath, err)
		}
		written++

		progress := fmt.Sprintf("[%0*d/%d]", width, i+1, total)
		message := fmt.Sprintf("%12s", progress)
		logger.Log().Info(message,
			slog.String("source", data.FileCache.Path),
			slog.String("encoding", plan.Detection),
			slog.Bool("usedFallback", plan.UsedReplace),
			slog.String("target", plan.OutputPath))
	}
	return written, nil
}

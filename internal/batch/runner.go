/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package batch

import (
	"errors"
	"fmt"

	"charsetcore/internal/extcodec"
	"charsetcore/internal/process"
	"charsetcore/pkg/charset"
	"charsetcore/pkg/logger"
	"charsetcore/pkg/pathx"
)

var filterExtensions = []string{".txt", ".csv", ".log", ".md"}

// ErrNoInputFiles 表示未找到任何可供处理的输入文件。
var ErrNoInputFiles = errors.New("未找到可处理的输入文件")

// FileCache 保存从磁盘读取的单个源文件的原始内容与哈希。
type FileCache struct {
	Path    string
	Content []byte
	Hash    string
}

// DetectedFile 保存探测/解码阶段对单个文件的完整产出。
type DetectedFile struct {
	FileCache FileCache
	Detection charset.DetectionResult
	Decoded   charset.DecodeResult
}

// Runner 是负责执行整个批处理流程的协调器。
type Runner struct {
	Config       Config
	History      *process.ProcessHistory
	FileCache    map[string]FileCache
	DetectedData map[string]*DetectedFile
	UsedNames    map[string]struct{}
	ExtRegistry  extcodec.Registry
}

// NewRunner 创建一个新的 Runner 实例。
func NewRunner(config Config) (*Runner, error) {
	if err := config.Verify(); err != nil {
		return nil, fmt.Errorf("参数验证失败: %w", err)
	}
	if err := config.Prepare(); err != nil {
		return nil, fmt.Errorf("环境配置失败: %w", err)
	}

	history, err := process.NewProcessHistory(config.ProcessFilePath())
	if err != nil {
		return nil, fmt.Errorf("无法初始化处理历史: %w", err)
	}
	return &Runner{
		Config:       config,
		History:      history,
		FileCache:    make(map[string]FileCache),
		DetectedData: make(map[string]*DetectedFile),
		UsedNames:    make(map[string]struct{}),
		ExtRegistry:  extcodec.Default(),
	}, nil
}

// detectAndDecode 对单个文件运行 Detect，再按探测结果构造尝试顺序跑
// Decode；如果所有严格解码器都无法处理探测到的标签（例如探测结果是
// 某种 CJK/波兰语单字节编码，而这些标签不在 charset.Decode 的严格
// 支持范围内），退化为查询 internal/extcodec 的扩展解码器注册表。
func (r *Runner) detectAndDecode(fileData FileCache) (*DetectedFile, error) {
	logger.Log().Debug("[处理] 探测并解码文件", "路径", fileData.Path, "大小", fmt.Sprintf("%d bytes", len(fileData.Content)))

	detection := charset.Detect(fileData.Content, logger.Log())
	attemptOrder := charset.BuildAttemptOrder(detection.Encoding)
	decoded := charset.Decode(fileData.Content, attemptOrder, false, logger.Log())

	if !decoded.OK && r.ExtRegistry.Supports(detection.Encoding) {
		text, err := r.ExtRegistry.Decode(fileData.Content, detection.Encoding)
		if err == nil {
			decoded = charset.DecodeResult{
				OK:           true,
				Text:         text,
				Encoding:     detection.Encoding,
				UsedFallback: false,
				Attempts:     append(decoded.Attempts, detection.Encoding),
			}
		}
	}

	if !decoded.OK && r.Config.ReplaceErrors {
		decoded = charset.Decode(fileData.Content, attemptOrder, true, logger.Log())
	}

	if !decoded.OK && !decoded.UsedFallback {
		return nil, fmt.Errorf("所有解码尝试均失败 (探测结果 %s, 尝试 %v)", detection.Encoding, decoded.Attempts)
	}

	return &DetectedFile{FileCache: fileData, Detection: detection, Decoded: decoded}, nil
}

// Execute 跑完整的收集 -> 去重 -> 探测解码 -> 生成计划 -> 预览/执行 流程。
func (r *Runner) Execute() error {
	logger.Log().Info("[开始] 批量编码探测任务", "预览模式", r.Config.DryRun, "强制刷新", r.Config.ForceRefresh)

	sourceFiles, err := pathx.CollectFiles(r.Config.InputPaths, r.Config.Depth, filterExtensions, true)
	if err != nil {
		return fmt.Errorf("收集文件失败: %w", err)
	}
	if len(sourceFiles) == 0 {
		return ErrNoInputFiles
	}

	var skipped, processed int
	force := r.Config.ForceRefresh

	for _, file := range sourceFiles {
		content, hash, err := pathx.ReadFile(file)
		if err != nil {
			return fmt.Errorf("读取文件 %s 失败: %w", file, err)
		}
		if !r.Config.DryRun {
			if !force {
				if isNew, herr := r.History.CheckAndRecord(hash); herr != nil {
					return fmt.Errorf("检查文件 %s 的历史记录失败: %w", file, herr)
				} else if !isNew {
					logger.Log().Debug("[跳过] 已处理文件", "文件", file)
					skipped++
					continue
				}
			} else if _, herr := r.History.CheckAndRecord(hash); herr != nil {
				return fmt.Errorf("强制记录文件 %s 失败: %w", file, herr)
			}
		}
		if _, exists := r.FileCache[hash]; exists {
			logger.Log().Debug("[跳过] 内容相同文件", "文件", file)
			skipped++
			continue
		}
		r.FileCache[hash] = FileCache{Path: file, Content: content, Hash: hash}
		processed++
	}

	if processed == 0 {
		logger.Log().Warn("[警告] 没有需要处理的文件", "发现", len(sourceFiles), "跳过", skipped)
		return ErrNoInputFiles
	}
	logger.Log().Info("[扫描] 文件扫描完成", "待处理", processed, "跳过", skipped, "总计", len(sourceFiles))

	logger.Log().Info("[处理] 开始探测与解码...")
	var failed int
	for hash, fileData := range r.FileCache {
		result, err := r.detectAndDecode(fileData)
		if err != nil {
			logger.Log().Error("[失败] 探测/解码失败", "文件", fileData.Path, "原因", err)
			failed++
			delete(r.FileCache, hash)
			continue
		}
		r.DetectedData[hash] = result
	}

	successCount := len(r.DetectedData)
	if successCount == 0 {
		logger.Log().Error("[失败] 所有文件均未能解码", "处理总数", successCount+failed)
		return ErrNoInputFiles
	}
	logger.Log().Info("[完成] 探测解码完成", "成功", successCount, "失败", failed, "总计", successCount+failed)

	plans, err := r.generatePlans()
	if err != nil {
		return fmt.Errorf("生成计划失败: %w", err)
	}

	if r.Config.DryRun {
		r.previewPlans(plans)
		logger.Log().Info("[预览] 预览模式，未执行实际写出操作")
		return nil
	}

	written, err := r.executePlans(plans)
	if err != nil {
		return fmt.Errorf("执行计划失败: %w", err)
	}
	logger.Log().Info("[完成] 批处理任务全部完成", "写出文件数", written)
	return nil
}

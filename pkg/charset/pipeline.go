/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// DetectionResult 是 Detect 的返回值（§3）。Encoding 始终是一个规范标签；
// UsedFallback 为 true 表示未能从数据本身得出确定的判断，Encoding/
// Confidence 只是兜底值；DetectedByBOM 为 true 表示结果来自 BOM 嗅探
// （UTF-32 与 UTF-8 BOM 的 Confidence 为 1.0；UTF-16 BOM 且载荷通过代理对
// 校验时为 max(0.9, 平滑置信度)，低于 1.0；载荷未通过校验时至多 0.49，
// 且 UsedFallback 为 true）。
type DetectionResult struct {
	Encoding      string
	Confidence    float64
	UsedFallback  bool
	DetectedByBOM bool
}

func hasPrefix(buf []byte, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}

// detectCore 是 detect_encoding_core 的直接移植：依次尝试 4/4/3/2/2 字节
// BOM 签名（优先级见本函数内顺序——UTF-32-LE 必须先于 UTF-16-LE 测试，
// 因为 0xFF 0xFE 0x00 0x00 以 0xFF 0xFE 开头，否则会被误判为 UTF-16-LE），
// 再退到转义序列探针、
// UTF-8 DFA、以及"存在高位字节"时的多字节/单字节双探针仲裁，最终退到
// 固定的 {utf-8, 0.0, used_fallback=true} 占位值（C10）。
func detectCore(buf []byte, log Logger) DetectionResult {
	if hasPrefix(buf, []byte{0x00, 0x00, 0xFE, 0xFF}) {
		log.Debug("detect: bom matched", "encoding", UTF32BE)
		return DetectionResult{UTF32BE, 1.0, false, true}
	}
	if hasPrefix(buf, []byte{0xFF, 0xFE, 0x00, 0x00}) {
		log.Debug("detect: bom matched", "encoding", UTF32LE)
		return DetectionResult{UTF32LE, 1.0, false, true}
	}
	if hasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}) {
		log.Debug("detect: bom matched", "encoding", UTF8Sig)
		return DetectionResult{UTF8Sig, 1.0, false, true}
	}
	if hasPrefix(buf, []byte{0xFE, 0xFF}) {
		payload := buf[2:]
		ok, counters := validateUTF16SurrogatePairs(payload, false)
		if ok {
			conf := maxFloat(0.9, transitionConfidence(counters.valid, counters.invalid))
			log.Debug("detect: bom matched", "encoding", UTF16BE, "confidence", conf)
			return DetectionResult{UTF16BE, conf, false, true}
		}
		conf := minFloat(0.49, transitionConfidence(counters.valid, counters.invalid))
		log.Debug("detect: bom matched but surrogate validation failed", "encoding", UTF16BE, "confidence", conf)
		return DetectionResult{UTF16BE, conf, true, true}
	}
	if hasPrefix(buf, []byte{0xFF, 0xFE}) {
		payload := buf[2:]
		ok, counters := validateUTF16SurrogatePairs(payload, true)
		if ok {
			conf := maxFloat(0.9, transitionConfidence(counters.valid, counters.invalid))
			log.Debug("detect: bom matched", "encoding", UTF16LE, "confidence", conf)
			return DetectionResult{UTF16LE, conf, false, true}
		}
		conf := minFloat(0.49, transitionConfidence(counters.valid, counters.invalid))
		log.Debug("detect: bom matched but surrogate validation failed", "encoding", UTF16LE, "confidence", conf)
		return DetectionResult{UTF16LE, conf, true, true}
	}

	if len(buf) == 0 {
		log.Debug("detect: empty buffer, defaulting to utf-8")
		return DetectionResult{UTF8, 1.0, false, false}
	}

	if label, conf := probeEscapeSequence(buf); label != "" {
		log.Debug("detect: escape sequence matched", "encoding", label, "confidence", conf)
		return DetectionResult{label, conf, false, false}
	}

	if ok, counters := validateUTF8DFA(buf); ok {
		conf := maxFloat(0.7, minFloat(0.97, transitionConfidence(counters.valid, counters.invalid)))
		log.Debug("detect: utf-8 dfa accepted", "confidence", conf)
		return DetectionResult{UTF8, conf, false, false}
	}

	hasHighBytes := false
	for _, b := range buf {
		if b >= 0x80 {
			hasHighBytes = true
			break
		}
	}
	if hasHighBytes {
		multiLabel, multiConf := probeMultiByteEncoding(buf)
		singleLabel, singleConf := probeSingleByteEncoding(buf)

		var candidates []proposal
		if multiLabel != "" {
			candidates = append(candidates, proposal{multiLabel, multiConf})
		}
		if singleLabel != "" {
			candidates = append(candidates, proposal{singleLabel, singleConf})
		}

		selectedLabel, selectedConf := chooseByFallbackOrder(candidates...)
		if selectedLabel != "" {
			log.Debug("detect: arbiter selected candidate", "encoding", selectedLabel, "confidence", selectedConf,
				"multibyte", multiLabel, "singlebyte", singleLabel)
			return DetectionResult{selectedLabel, selectedConf, false, false}
		}
		log.Debug("detect: no candidate survived arbitration, defaulting to utf-8")
		return DetectionResult{UTF8, 0.0, true, false}
	}

	log.Debug("detect: no high bytes and no dfa match, defaulting to utf-8")
	return DetectionResult{UTF8, 0.0, true, false}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Detect 对 buf 运行编码探测流水线，并应用早退优化：当数据量超过
// earlyExitBytes 时，先只在前 earlyExitBytes 字节上跑一遍 detectCore；
// 若得到的置信度高于 earlyExitConfidence，直接返回该结果（它已经足够
//确定，不值得为了剩余数据再扫一遍）；否则回退到在完整缓冲区上重跑
// 一次（C10 顶层入口）。
//
// log 是可选的协作者（§6.6）：传入 nil 或不传时等价于一个无操作实现，
// 传入非 nil 值时会在每个判定阶段产出 Debug 级别的追踪信息，对应参考
// 实现里 set_logger/log_to_py 挂在引擎各阶段上的钩子。
func Detect(buf []byte, log ...Logger) DetectionResult {
	l := resolveLogger(log)
	if len(buf) > earlyExitBytes {
		prefix := buf[:earlyExitBytes]
		prefixResult := detectCore(prefix, l)
		if prefixResult.Confidence > earlyExitConfidence {
			l.Debug("detect: early exit on prefix", "bytes", earlyExitBytes, "confidence", prefixResult.Confidence)
			return prefixResult
		}
		l.Debug("detect: prefix inconclusive, rescanning full buffer", "bytes", len(buf))
	}
	return detectCore(buf, l)
}

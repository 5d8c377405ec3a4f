/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// probeMultiByteEncoding 对 {shift_jis, euc_jp, big5} 依次运行 C5 结构
// 校验器，在校验通过且 signal>0 的候选中按字典序键
// (signal, big5_low_trails, signal_ratio) 挑选最佳者（C7）。
//
// big5_low_trails 只对 Big5 候选有意义，其余两者在比较中恒为 0；
// signal_ratio = signal / max(1, len(buf))。没有任何校验器通过，或最佳
// signal <= 0，都返回空提议。
func probeMultiByteEncoding(buf []byte) (label string, confidence float64) {
	type candidate struct {
		label     string
		validator func([]byte) (bool, int)
	}
	candidates := []candidate{
		{ShiftJIS, validateShiftJIS},
		{EUCJP, validateEUCJP},
		{Big5, validateBig5},
	}

	bestLabel := ""
	bestSignal := -1
	bestLowTrails := -1
	bestRatio := 0.0

	for _, c := range candidates {
		ok, signal := c.validator(buf)
		if !ok {
			continue
		}
		lowTrails := 0
		if c.label == Big5 {
			lowTrails = big5LowTrails(buf)
		}
		denom := len(buf)
		if denom < 1 {
			denom = 1
		}
		ratio := float64(signal) / float64(denom)

		better := signal > bestSignal ||
			(signal == bestSignal && lowTrails > bestLowTrails) ||
			(signal == bestSignal && lowTrails == bestLowTrails && ratio > bestRatio)
		if better {
			bestLabel, bestSignal, bestLowTrails, bestRatio = c.label, signal, lowTrails, ratio
		}
	}

	if bestLabel == "" || bestSignal <= 0 {
		return "", 0.0
	}
	return bestLabel, clamp(transitionConfidence(bestSignal, 0), 0.55, 0.95)
}

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// proposal 是探针产生的一个候选结果：标签为空表示"本探针未命中"。
type proposal struct {
	label      string
	confidence float64
}

// chooseByFallbackOrder 在多个候选提议中仲裁出最终结果（C9）。
//
// 算法：
//  1. 过滤掉 label 为空的提议（未命中的探针）；若全部为空，返回 ("", 0)。
//  2. 求 best_conf = 候选中的最大置信度。
//  3. eligible = 置信度 >= best_conf - AMBIGUITY_DELTA 的候选集合——这是
//     "模糊窗口"：不只挑单一最高分者，而是把足够接近最高分的候选都纳入
//     仲裁范围，避免浮点噪声/打分公式的细微差异错误地否决一个同样合理
//     的候选。
//  4. 在 eligible 中按 fallbackRank 最小者获胜；fallbackRank 相同则按
//     置信度更高者获胜。
func chooseByFallbackOrder(proposals ...proposal) (label string, confidence float64) {
	nonEmpty := make([]proposal, 0, len(proposals))
	for _, p := range proposals {
		if p.label == "" {
			continue
		}
		nonEmpty = append(nonEmpty, p)
	}
	if len(nonEmpty) == 0 {
		return "", 0.0
	}

	bestConf := nonEmpty[0].confidence
	for _, p := range nonEmpty[1:] {
		if p.confidence > bestConf {
			bestConf = p.confidence
		}
	}

	threshold := bestConf - ambiguityDelta
	var winner proposal
	haveWinner := false

	for _, p := range nonEmpty {
		if p.confidence < threshold {
			continue
		}
		if !haveWinner {
			winner = p
			haveWinner = true
			continue
		}
		rankP := fallbackRank(p.label)
		rankW := fallbackRank(winner.label)
		if rankP < rankW || (rankP == rankW && p.confidence > winner.confidence) {
			winner = p
		}
	}
	return winner.label, winner.confidence
}

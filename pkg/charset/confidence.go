/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// transitionConfidence 对 (valid, invalid) 计数做 Laplace 平滑，得到一个
// [0,1] 区间的置信度：零样本时恰好为 0.5，随着干净样本增多趋近于 1（C2）。
func transitionConfidence(valid, invalid int) float64 {
	v := valid
	if v < 0 {
		v = 0
	}
	i := invalid
	if i < 0 {
		i = 0
	}
	return float64(v+1) / float64(v+i+2)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

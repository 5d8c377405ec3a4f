/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// 单字节探针（C8）。对 windows-1250 与 iso-8859-2 两个假设分别打分，
// 返回得分更高者；平局时 windows-1250 获胜（对波兰语文本更稳定）。

// distPoint 是加权分布匹配用的一个目标字节：期望出现比例与权重。
type distPoint struct {
	b        byte
	expected float64
	weight   float64
}

var cp1250Pattern = [14]distPoint{
	{0xA5, 0.0030, 1.2}, {0xB9, 0.0032, 1.2}, {0x8C, 0.0012, 1.0}, {0x9C, 0.0015, 1.0},
	{0x8F, 0.0010, 1.0}, {0x9F, 0.0012, 1.0}, {0xC6, 0.0025, 0.8}, {0xE6, 0.0028, 0.8},
	{0xCA, 0.0020, 0.8}, {0xEA, 0.0021, 0.8}, {0xD1, 0.0018, 0.7}, {0xF1, 0.0020, 0.7},
	{0xD3, 0.0040, 0.7}, {0xF3, 0.0042, 0.7},
}

var iso88592Pattern = [14]distPoint{
	{0xA1, 0.0030, 1.2}, {0xB1, 0.0032, 1.2}, {0xA6, 0.0012, 1.0}, {0xB6, 0.0015, 1.0},
	{0xAC, 0.0010, 1.0}, {0xBC, 0.0012, 1.0}, {0xC6, 0.0025, 0.8}, {0xE6, 0.0028, 0.8},
	{0xCA, 0.0020, 0.8}, {0xEA, 0.0021, 0.8}, {0xD1, 0.0018, 0.7}, {0xF1, 0.0020, 0.7},
	{0xD3, 0.0040, 0.7}, {0xF3, 0.0042, 0.7},
}

// weightPoint 是判别式加权和用的一个字节/权重对。
type weightPoint struct {
	b byte
	w float64
}

var cp1250Weights = [16]weightPoint{
	{0xA5, 2.00}, {0xB9, 2.00}, {0x8C, 1.70}, {0x9C, 1.70},
	{0x8F, 1.70}, {0x9F, 1.70}, {0xC6, 0.80}, {0xE6, 0.80},
	{0xCA, 0.80}, {0xEA, 0.80}, {0xA3, 0.70}, {0xB3, 0.70},
	{0xD1, 0.70}, {0xF1, 0.70}, {0xD3, 0.70}, {0xF3, 0.70},
}

var iso88592Weights = [16]weightPoint{
	{0xA1, 2.00}, {0xB1, 2.00}, {0xA6, 1.70}, {0xB6, 1.70},
	{0xAC, 1.70}, {0xBC, 1.70}, {0xC6, 0.80}, {0xE6, 0.80},
	{0xCA, 0.80}, {0xEA, 0.80}, {0xA3, 0.70}, {0xB3, 0.70},
	{0xD1, 0.70}, {0xF1, 0.70}, {0xD3, 0.70}, {0xF3, 0.70},
}

// plCP1250 与 plISO88592 是 §6.5 给出的 18 字节"波兰语命中集"。
var plCP1250 = [18]byte{
	0xA5, 0xB9, 0xC6, 0xE6, 0xCA, 0xEA, 0xA3, 0xB3, 0xD1,
	0xF1, 0xD3, 0xF3, 0x8C, 0x9C, 0x8F, 0x9F, 0xAF, 0xBF,
}

var plISO88592 = [18]byte{
	0xA1, 0xB1, 0xC6, 0xE6, 0xCA, 0xEA, 0xA3, 0xB3, 0xD1,
	0xF1, 0xD3, 0xF3, 0xA6, 0xB6, 0xAC, 0xBC, 0xAF, 0xBF,
}

func containsByte(set []byte, value byte) bool {
	for _, b := range set {
		if b == value {
			return true
		}
	}
	return false
}

// distributionMatchScore 计算 14 个目标字节的加权分布匹配度：
// 1 - 20 * Σ|actual_ratio - expected|·w / Σw，clamp 到 [0,1]。
func distributionMatchScore(buf []byte, cp1250 bool) float64 {
	if len(buf) == 0 {
		return 0.0
	}
	pattern := iso88592Pattern[:]
	if cp1250 {
		pattern = cp1250Pattern[:]
	}
	t := histogram(buf)
	total := float64(len(buf))

	weightedDistance := 0.0
	weightSum := 0.0
	for _, p := range pattern {
		actual := float64(t[p.b]) / total
		d := actual - p.expected
		if d < 0 {
			d = -d
		}
		weightedDistance += d * p.weight
		weightSum += p.weight
	}
	if weightSum <= 0 {
		return 0.0
	}
	return clamp(1.0-(weightedDistance/weightSum)*20.0, 0.0, 1.0)
}

// polishWeight 计算判别式加权和：own_score - 0.75*opposite_score，
// 其中两者都是 16 个加权点上 (count[b]/len) * weight 的总和。
func polishWeight(t FrequencyTable, length float64, cp1250 bool) float64 {
	own, opp := iso88592Weights[:], cp1250Weights[:]
	if cp1250 {
		own, opp = cp1250Weights[:], iso88592Weights[:]
	}
	ownScore, oppScore := 0.0, 0.0
	for _, w := range own {
		ownScore += (float64(t[w.b]) / length) * w.w
	}
	for _, w := range opp {
		oppScore += (float64(t[w.b]) / length) * w.w
	}
	return ownScore - oppScore*0.75
}

// singleByteScore 计算单个假设（cp1250 或 iso-8859-2）的综合得分
// （§4.8 步骤 1-5 的组合公式）。
func singleByteScore(buf []byte, t FrequencyTable, length float64, cp1250 bool) float64 {
	printable, c1Controls, polishHits, suspicious := 0, 0, 0, 0
	plSet := plISO88592[:]
	if cp1250 {
		plSet = plCP1250[:]
	}

	for _, b := range buf {
		if (b >= 0x20 && b != 0x7F) || b == '\n' || b == '\r' || b == '\t' {
			printable++
		}
		if b >= 0x80 && b <= 0x9F {
			if cp1250 {
				if b != 0x8C && b != 0x8F && b != 0x9C && b != 0x9F {
					suspicious++
				}
			} else {
				c1Controls++
			}
		}
		if containsByte(plSet, b) {
			polishHits++
		}
	}

	printableRatio := float64(printable) / length
	c1Ratio := float64(c1Controls) / length
	polishRatio := float64(polishHits) / length
	suspiciousRatio := float64(suspicious) / length

	score := printableRatio
	score += minFloat(0.35, polishRatio*4.0)
	score += clamp(polishWeight(t, length, cp1250), -0.9, 0.9)
	score += (distributionMatchScore(buf, cp1250) - 0.5) * 1.1
	score -= c1Ratio * 2.5
	score -= suspiciousRatio * 0.8
	return score
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// probeSingleByteEncoding 对 windows-1250 与 iso-8859-2 两个假设打分，
// 返回得分更高者；平局时 windows-1250 获胜（C8）。
func probeSingleByteEncoding(buf []byte) (label string, confidence float64) {
	t := histogram(buf)
	length := float64(len(buf))
	if length == 0 {
		length = 1
	}

	scoreCP1250 := singleByteScore(buf, t, length, true)
	scoreISO88592 := singleByteScore(buf, t, length, false)

	if scoreCP1250 >= scoreISO88592 {
		return Windows1250, clamp(0.45+scoreCP1250*0.32, 0.0, 0.93)
	}
	return ISO88592, clamp(0.45+scoreISO88592*0.32, 0.0, 0.93)
}

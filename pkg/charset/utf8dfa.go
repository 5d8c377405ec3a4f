/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// validationCounters 是 C3/C4 两个结构性校验器产生、C2 消费的一对计数
// (valid_transitions, invalid_transitions)，两者皆为非负整数（§3）。
type validationCounters struct {
	valid   int
	invalid int
}

// validateUTF8DFA 是一个逐字节状态机：维护"剩余续字节数"计数器与一个
// "下一字节是否为当前前导字节的第一个续字节"标志（该标志约束续字节的
// 合法取值范围，用于拒绝过长编码、UTF-16 代理对与超出 U+10FFFF 的码点）。
//
// 每识别一个合法字节计一次 valid；遇到前导/续字节违规计一次 invalid 并
// 立即返回 false。缓冲区结束时若仍有未消费的续字节需求，计一次 invalid。
// 返回值为 true 当且仅当扫描全程无违规且缓冲区在完整字符边界上结束（C3）。
func validateUTF8DFA(buf []byte) (ok bool, counters validationCounters) {
	remaining := 0
	firstContinuation := false
	var firstMin, firstMax byte = 0x80, 0xBF
	valid, invalid := 0, 0

	for _, b := range buf {
		if remaining == 0 {
			switch {
			case b <= 0x7F:
				valid++
				continue
			case b >= 0xC2 && b <= 0xDF:
				remaining, firstContinuation, firstMin, firstMax = 1, true, 0x80, 0xBF
				valid++
				continue
			case b == 0xE0:
				remaining, firstContinuation, firstMin, firstMax = 2, true, 0xA0, 0xBF
				valid++
				continue
			case (b >= 0xE1 && b <= 0xEC) || (b >= 0xEE && b <= 0xEF):
				remaining, firstContinuation, firstMin, firstMax = 2, true, 0x80, 0xBF
				valid++
				continue
			case b == 0xED:
				remaining, firstContinuation, firstMin, firstMax = 2, true, 0x80, 0x9F
				valid++
				continue
			case b == 0xF0:
				remaining, firstContinuation, firstMin, firstMax = 3, true, 0x90, 0xBF
				valid++
				continue
			case b >= 0xF1 && b <= 0xF3:
				remaining, firstContinuation, firstMin, firstMax = 3, true, 0x80, 0xBF
				valid++
				continue
			case b == 0xF4:
				remaining, firstContinuation, firstMin, firstMax = 3, true, 0x80, 0x8F
				valid++
				continue
			default:
				invalid++
				return false, validationCounters{valid, invalid}
			}
		}

		if firstContinuation {
			if b < firstMin || b > firstMax {
				invalid++
				return false, validationCounters{valid, invalid}
			}
			firstContinuation = false
			remaining--
			valid++
			continue
		}

		if b < 0x80 || b > 0xBF {
			invalid++
			return false, validationCounters{valid, invalid}
		}
		remaining--
		valid++
	}

	if remaining != 0 {
		invalid++
	}
	return remaining == 0, validationCounters{valid, invalid}
}

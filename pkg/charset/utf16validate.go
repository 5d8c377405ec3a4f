/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

// validateUTF16SurrogatePairs 校验 buf 作为指定端序的 UTF-16 码元序列是否
// 满足代理对结构：高代理 (0xD800-0xDBFF) 后必须紧跟低代理
// (0xDC00-0xDFFF)，反之亦然；其余码元按 BMP 标量处理（C4）。
//
// 长度为奇数直接判定失败，计 1 次 invalid。序列结束时若仍处于"等待低
// 代理"状态，计 1 次 invalid。
func validateUTF16SurrogatePairs(buf []byte, littleEndian bool) (ok bool, counters validationCounters) {
	if len(buf)%2 != 0 {
		return false, validationCounters{0, 1}
	}

	expectLow := false
	valid, invalid := 0, 0

	for i := 0; i < len(buf); i += 2 {
		unit := readUnit16(buf, i, littleEndian)

		switch {
		case unit >= 0xD800 && unit <= 0xDBFF:
			if expectLow {
				invalid++
				return false, validationCounters{valid, invalid}
			}
			expectLow = true
			valid++
		case unit >= 0xDC00 && unit <= 0xDFFF:
			if !expectLow {
				invalid++
				return false, validationCounters{valid, invalid}
			}
			expectLow = false
			valid++
		default:
			if expectLow {
				invalid++
				return false, validationCounters{valid, invalid}
			}
			valid++
		}
	}

	if expectLow {
		invalid++
	}
	return !expectLow, validationCounters{valid, invalid}
}

// readUnit16 以给定端序读取 buf[i:i+2] 作为一个 16 位码元。调用方必须
// 保证 i+1 在界内。
func readUnit16(buf []byte, i int, littleEndian bool) uint16 {
	if littleEndian {
		return uint16(buf[i]) | uint16(buf[i+1])<<8
	}
	return uint16(buf[i])<<8 | uint16(buf[i+1])
}

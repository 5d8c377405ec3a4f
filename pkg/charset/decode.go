/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import "strings"

// DecodeResult 是 Decode 的返回值（§3）。OK 为 true 表示 Attempts 中某个
// 编码严格解码成功，Encoding/Text 即为该次尝试的产物；OK 为 false 且
// Encoding 等于 UTF8Replace 表示所有候选编码都未能严格解码，最终退化为
// 对原始字节做 UTF-8 替换解码（U+FFFD 填充非法序列），Text 仍然可用但
// 不代表原始字节的真实语义；UsedFallback 标记后一种情形。
type DecodeResult struct {
	OK           bool
	Text         string
	Encoding     string
	UsedFallback bool
	Attempts     []string
}

// appendRune 把一个标量值按 UTF-8 规则编码并追加到 out（C11 公用子程序）。
func appendRune(out *strings.Builder, cp uint32) {
	switch {
	case cp <= 0x7F:
		out.WriteByte(byte(cp))
	case cp <= 0x7FF:
		out.WriteByte(0xC0 | byte(cp>>6&0x1F))
		out.WriteByte(0x80 | byte(cp&0x3F))
	case cp <= 0xFFFF:
		out.WriteByte(0xE0 | byte(cp>>12&0x0F))
		out.WriteByte(0x80 | byte(cp>>6&0x3F))
		out.WriteByte(0x80 | byte(cp&0x3F))
	default:
		out.WriteByte(0xF0 | byte(cp>>18&0x07))
		out.WriteByte(0x80 | byte(cp>>12&0x3F))
		out.WriteByte(0x80 | byte(cp>>6&0x3F))
		out.WriteByte(0x80 | byte(cp&0x3F))
	}
}

const replacementChar = 0xFFFD

// decodeUTF8Strict 严格（或替换模式）解码 raw 作为 UTF-8。非替换模式下，
// 首个非法序列（溢出编码、截断序列、非法延续字节、超出 0x10FFFF 或落入
// 代理区间）会使整个调用失败；替换模式下每个非法序列原地替换为一个
// U+FFFD 并继续扫描。
func decodeUTF8Strict(raw []byte, replaceErrors bool) (ok bool, text string) {
	var out strings.Builder
	out.Grow(len(raw))

	i := 0
	for i < len(raw) {
		c := raw[i]
		if c <= 0x7F {
			out.WriteByte(c)
			i++
			continue
		}

		var trailing int
		var cp uint32
		switch {
		case c&0xE0 == 0xC0:
			trailing = 1
			cp = uint32(c & 0x1F)
			if cp == 0 {
				if !replaceErrors {
					return false, ""
				}
				appendRune(&out, replacementChar)
				i++
				continue
			}
		case c&0xF0 == 0xE0:
			trailing = 2
			cp = uint32(c & 0x0F)
		case c&0xF8 == 0xF0:
			trailing = 3
			cp = uint32(c & 0x07)
		default:
			if !replaceErrors {
				return false, ""
			}
			appendRune(&out, replacementChar)
			i++
			continue
		}

		if i+trailing >= len(raw) {
			if !replaceErrors {
				return false, ""
			}
			appendRune(&out, replacementChar)
			i++
			continue
		}

		valid := true
		for t := 1; t <= trailing; t++ {
			cc := raw[i+t]
			if cc&0xC0 != 0x80 {
				valid = false
				break
			}
			cp = cp<<6 | uint32(cc&0x3F)
		}

		overlong := (trailing == 1 && cp < 0x80) || (trailing == 2 && cp < 0x800) || (trailing == 3 && cp < 0x10000)
		if !valid || overlong || cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
			if !replaceErrors {
				return false, ""
			}
			appendRune(&out, replacementChar)
			i++
			continue
		}

		appendRune(&out, cp)
		i += trailing + 1
	}

	return true, out.String()
}

// decodeUTF16Strict 严格（或替换模式）解码 raw 作为指定端序的 UTF-16。
func decodeUTF16Strict(raw []byte, littleEndian, replaceErrors bool) (ok bool, text string) {
	if len(raw)%2 != 0 && !replaceErrors {
		return false, ""
	}

	var out strings.Builder
	out.Grow(len(raw))

	i := 0
	for i+1 < len(raw) {
		w1 := readUnit16(raw, i, littleEndian)
		i += 2

		switch {
		case w1 >= 0xD800 && w1 <= 0xDBFF:
			if i+1 >= len(raw) {
				if !replaceErrors {
					return false, ""
				}
				appendRune(&out, replacementChar)
				i = len(raw)
				continue
			}
			w2 := readUnit16(raw, i, littleEndian)
			if w2 < 0xDC00 || w2 > 0xDFFF {
				if !replaceErrors {
					return false, ""
				}
				appendRune(&out, replacementChar)
				continue
			}
			i += 2
			cp := 0x10000 + (uint32(w1-0xD800)<<10 | uint32(w2-0xDC00))
			appendRune(&out, cp)
		case w1 >= 0xDC00 && w1 <= 0xDFFF:
			if !replaceErrors {
				return false, ""
			}
			appendRune(&out, replacementChar)
		default:
			appendRune(&out, uint32(w1))
		}
	}

	if i < len(raw) {
		if !replaceErrors {
			return false, ""
		}
		appendRune(&out, replacementChar)
	}

	return true, out.String()
}

// decodeLatin1 解码 raw 作为 Latin-1（ISO-8859-1）：每个字节原样作为一个
// 标量值。这个映射满射且总是成功。
func decodeLatin1(raw []byte) string {
	var out strings.Builder
	out.Grow(len(raw) * 2)
	for _, b := range raw {
		appendRune(&out, uint32(b))
	}
	return out.String()
}

// tryDecodeKnown 按规范化后的标签分派到具体解码器，并处理 utf-8-sig /
// utf-16 / utf-16le / utf-16be 各自的 BOM 剥离规则（C11）：
//   - utf-8-sig：若存在 EF BB BF 前缀则剥离后按 utf-8 解码。
//   - utf-16：要求至少 2 字节且能由 BOM 判定端序，否则失败（不猜测端序）。
//   - utf-16le / utf-16be：若存在对应 BOM 则剥离，不存在也按该端序解码。
//   - latin-1：总是成功。
func tryDecodeKnown(raw []byte, encoding string, replaceErrors bool) (ok bool, text string, usedEncoding string) {
	enc := normalizeLabel(encoding)

	switch enc {
	case UTF8:
		ok, text = decodeUTF8Strict(raw, replaceErrors)
		if ok {
			usedEncoding = UTF8
		}
		return ok, text, usedEncoding

	case UTF8Sig:
		trimmed := raw
		if hasPrefix(trimmed, []byte{0xEF, 0xBB, 0xBF}) {
			trimmed = trimmed[3:]
		}
		ok, text = decodeUTF8Strict(trimmed, replaceErrors)
		if ok {
			usedEncoding = UTF8Sig
		}
		return ok, text, usedEncoding

	case UTF16:
		if len(raw) >= 2 {
			if raw[0] == 0xFF && raw[1] == 0xFE {
				ok, text = decodeUTF16Strict(raw[2:], true, replaceErrors)
				if ok {
					usedEncoding = UTF16LE
				}
				return ok, text, usedEncoding
			}
			if raw[0] == 0xFE && raw[1] == 0xFF {
				ok, text = decodeUTF16Strict(raw[2:], false, replaceErrors)
				if ok {
					usedEncoding = UTF16BE
				}
				return ok, text, usedEncoding
			}
		}
		return false, "", ""

	case UTF16LE:
		payload := raw
		if hasPrefix(payload, []byte{0xFF, 0xFE}) {
			payload = payload[2:]
		}
		ok, text = decodeUTF16Strict(payload, true, replaceErrors)
		if ok {
			usedEncoding = UTF16LE
		}
		return ok, text, usedEncoding

	case UTF16BE:
		payload := raw
		if hasPrefix(payload, []byte{0xFE, 0xFF}) {
			payload = payload[2:]
		}
		ok, text = decodeUTF16Strict(payload, false, replaceErrors)
		if ok {
			usedEncoding = UTF16BE
		}
		return ok, text, usedEncoding

	case Latin1:
		return true, decodeLatin1(raw), Latin1

	default:
		return false, "", ""
	}
}

// Decode 依次按 encodings 给出的顺序尝试严格解码 raw，返回第一个成功
// 的结果（C11）。未知标签计入 Attempts 并按失败处理；空白标签直接跳过，
// 不计入 Attempts。全部尝试失败
// 时，若 replaceErrors 为 true，退化为对 raw 做一次 UTF-8 替换解码，
// 产出 {OK:false, Encoding:UTF8Replace, UsedFallback:true}；replaceErrors
// 为 false 时返回 {OK:false}，Text 为空。
//
// 调用方通常先用 BuildAttemptOrder 构造 encodings，再传给 Decode。
//
// log 是可选的协作者（§6.6），用法与 Detect 相同：省略或传 nil 时静默，
// 传入时对每次尝试、最终命中的编码以及是否退化为替换解码产出 Debug
// 级别的追踪信息。
func Decode(raw []byte, encodings []string, replaceErrors bool, log ...Logger) DecodeResult {
	l := resolveLogger(log)
	res := DecodeResult{Attempts: make([]string, 0, len(encodings))}

	for _, enc := range encodings {
		normalized := normalizeLabel(enc)
		if normalized == "" {
			continue
		}
		res.Attempts = append(res.Attempts, normalized)

		if ok, text, used := tryDecodeKnown(raw, normalized, false); ok {
			l.Debug("decode: strict attempt succeeded", "encoding", used, "attempts", res.Attempts)
			res.OK = true
			res.Text = text
			res.Encoding = used
			return res
		}
		l.Debug("decode: strict attempt failed", "encoding", normalized)
	}

	if !replaceErrors {
		l.Debug("decode: all attempts exhausted, replaceErrors disabled", "attempts", res.Attempts)
		return res
	}

	_, text := decodeUTF8Strict(raw, true)
	l.Debug("decode: all attempts exhausted, falling back to utf-8 replacement", "attempts", res.Attempts)
	res.OK = false
	res.Text = text
	res.Encoding = UTF8Replace
	res.UsedFallback = true
	return res
}

/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import "strings"

// 本文件给出探测器/解码器共用的规范编码标签、别名归一化表、
// 回退优先级顺序以及一组调优常量。它们对应 lx::encoding 与
// lx::engine 两侧共用的同一套字符串标识。

// 规范编码标签（探测器可能产生、解码器严格支持的一个子集见 Decode）。
const (
	UTF8        = "utf-8"
	UTF8Sig     = "utf-8-sig"
	UTF16       = "utf-16"
	UTF16LE     = "utf-16le"
	UTF16BE     = "utf-16be"
	UTF32LE     = "utf-32-le"
	UTF32BE     = "utf-32-be"
	ISO2022JP   = "iso-2022-jp"
	ShiftJIS    = "shift_jis"
	EUCJP       = "euc_jp"
	Big5        = "big5"
	Windows1250 = "windows-1250"
	ISO88592    = "iso-8859-2"
	Latin1      = "latin-1"
	UTF8Replace = "utf-8-replace"
)

// fallbackOrder 是仲裁器在置信度接近时使用的固定偏好顺序（§6.3）。
var fallbackOrder = []string{
	UTF8, UTF8Sig, UTF16LE, UTF16BE, UTF32LE, UTF32BE,
	ISO2022JP, ShiftJIS, EUCJP, Big5, Windows1250, ISO88592, Latin1,
}

// fallbackRank 返回 label 在 fallbackOrder 中的位次；未知标签返回列表长度
// （即排在所有已知标签之后）。
func fallbackRank(label string) int {
	for i, l := range fallbackOrder {
		if l == label {
			return i
		}
	}
	return len(fallbackOrder)
}

// 调优常量（§6.4）。
const (
	earlyExitBytes      = 4096
	earlyExitConfidence = 0.98
	ambiguityDelta      = 0.03
)

// normalizeLabel 把调用方传入的编码名（大小写不敏感，含常见别名）折叠为
// 规范标签（§6.2）。未命中别名表的输入仅做小写化后原样返回。
func normalizeLabel(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "utf8", "utf_8":
		return UTF8
	case "utf8-sig", "utf_8_sig":
		return UTF8Sig
	case "utf16", "utf_16":
		return UTF16
	case "utf16le":
		return UTF16LE
	case "utf16be":
		return UTF16BE
	case "latin1", "iso8859-1", "cp819":
		return Latin1
	default:
		return v
	}
}

// BuildAttemptOrder 按照优先编码、BOM 探测结果占位符与调用方提供的回退
// 编码，构造一个去重、非空的解码尝试顺序，供 Decode 使用。
//
// 顺序为：preferred（若非空）-> utf-8 -> utf-8-sig -> utf-16 -> fallbacks...
// 这与参考实现的宿主绑定层（lx_engine.cpp 的 decode_bytes_binding）构造
// candidate 列表的方式一致，只是把"先嗅探 BOM 再追加"的逻辑留给调用方
// （BOM 探测属于 Detect，而不是这个纯字符串工具函数的职责）。
func BuildAttemptOrder(preferred string, fallbacks ...string) []string {
	seen := make(map[string]struct{}, 4+len(fallbacks))
	order := make([]string, 0, 4+len(fallbacks))

	add := func(label string) {
		n := normalizeLabel(label)
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		order = append(order, n)
	}

	add(preferred)
	add(UTF8)
	add(UTF8Sig)
	add(UTF16)
	for _, f := range fallbacks {
		add(f)
	}
	return order
}

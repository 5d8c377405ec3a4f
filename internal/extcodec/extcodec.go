/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

// Package extcodec 是 pkg/charset 之外的扩展解码协作者（§6.6）：Detect
// 能报出的多字节/单字节候选标签里，只有 utf-8/utf-8-sig/utf-16le/
// utf-16be/latin-1 由 pkg/charset.Decode 本身严格实现；其余
// （shift_jis/euc_jp/big5/iso-2022-jp/windows-1250/iso-8859-2）要想真的
// 转成文本，需要借助 golang.org/x/text 的成熟编解码表。本包把这些表
// 包装成与 pkg/charset 解耦的一个小接口，调用方（internal/batch）在
// pkg/charset.Decode 的严格路径耗尽之后，按 Detect 给出的标签查询本
// 注册表做最后一次转换尝试。
package extcodec

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// 规范标签到 golang.org/x/text 编解码器的注册表。键与 pkg/charset 中的
// 规范标签常量保持字符串层面的一致（两个包刻意不相互导入，只共享字符串
// 约定，以避免 pkg/charset 引入对 golang.org/x/text 的依赖）。
var registry = map[string]encoding.Encoding{
	"shift_jis":    japanese.ShiftJIS,
	"euc_jp":       japanese.EUCJP,
	"iso-2022-jp":  japanese.ISO2022JP,
	"big5":         traditionalchinese.Big5,
	"windows-1250": charmap.Windows1250,
	"iso-8859-2":   charmap.ISO8859_2,
	"gb18030":      simplifiedchinese.GB18030,
	"gbk":          simplifiedchinese.GBK,
	"gb2312":       simplifiedchinese.GBK,
}

// Registry 是一个可替换、可裁剪的扩展解码协作者接口，internal/batch 依赖
// 此接口而非本包的具体类型，方便测试中替换为假实现。
type Registry interface {
	// Decode 把 raw 按 label（pkg/charset 规范标签）解码为 UTF-8 文本。
	// label 未注册时返回 error。
	Decode(raw []byte, label string) (string, error)
	// Supports 报告 label 是否有对应的扩展解码器。
	Supports(label string) bool
}

type textRegistry struct{}

// Default 是基于 golang.org/x/text 的默认 Registry 实现。
func Default() Registry { return textRegistry{} }

func (textRegistry) Supports(label string) bool {
	_, ok := registry[label]
	return ok
}

func (textRegistry) Decode(raw []byte, label string) (string, error) {
	enc, ok := registry[label]
	if !ok {
		return "", fmt.Errorf("extcodec: no registered decoder for label %q", label)
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("extcodec: decode %q: %w", label, err)
	}
	return string(out), nil
}

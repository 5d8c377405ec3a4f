/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

// Package collaborators 声明了编码探测/解码核心之外、围绕已解码文本工作
// 的几个协作者接口（§6.6）：文本统计、全文检索/替换、行偏移索引。它们在
// 原始实现中分别对应 stats.hpp、search.hpp、text_utils.hpp 这几个与编码
// 探测/解码完全正交的宿主侧工具。这些功能被明确划为 Non-goals（只描述
// 接口形状，不要求实现），本包因此只声明接口与数据结构，不提供任何
// 逻辑——留给宿主层按需实现或注入假实现用于测试。
//
// 本包目前没有被仓库内任何代码导入：这是刻意的，它标记的是 Non-goal
// 的边界本身，而不是一段等待接线的死代码。
package collaborators

// TextStatistics 是对一段已解码文本的结构性统计（字符数、词数、行数、
// 原始字节数），对应 stats.hpp 的 TextStatistics。
type TextStatistics struct {
	Chars int
	Words int
	Lines int
	Bytes int
}

// Statistics 由宿主层实现，对已解码文本给出结构性统计。
type Statistics interface {
	Stat(text string) TextStatistics
}

// Search 由宿主层实现，提供全文检索与替换，对应 search.hpp 的
// find_all/replace_all。
type Search interface {
	FindAll(text, query string, caseSensitive, wholeWords bool) []int
	ReplaceAll(text, query, replacement string, caseSensitive bool) string
}

// LineOffsets 由宿主层实现，提供行号到字节偏移的索引，对应
// text_utils.hpp 的 get_line_offset/get_line_offsets。
type LineOffsets interface {
	LineOffset(text string, lineNumber int) int
	AllLineOffsets(text string) []int
}

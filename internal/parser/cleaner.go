package parser

import (
	"strings"
	"unicode"
)

// cleanAllowedPunct 清洗后允许保留的标点集合
const cleanAllowedPunct = ".,;:!?()-&@+#%/*"

// CleanText 文本清洗：统一行尾、过滤白名单之外的标点、
// 折叠空白串为单个空格。清洗不会引入输入中不存在的字符。
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		case strings.ContainsRune(cleanAllowedPunct, r):
			sb.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

// normalizeLines 统一行尾并返回修剪后的行切片，保留空行作为段落边界
func normalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

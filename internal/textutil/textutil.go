// Package textutil 提供匹配流水线共用的纯文本处理函数：
// 分词、停用词过滤、词形还原、句子切分、相似度计算、可读性评分与关键词打分。
// 所有函数都是无状态的纯函数，可以在请求间自由共享。
package textutil

import (
	"strings"
	"unicode"
)

// stopWords 英文停用词表，用于关键词提取和技能匹配前的过滤
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
	"i": {}, "we": {}, "you": {}, "they": {}, "this": {}, "these": {},
	"those": {}, "been": {}, "being": {}, "am": {}, "do": {}, "does": {},
	"did": {}, "but": {}, "if": {}, "not": {}, "no": {}, "so": {}, "than": {},
	"then": {}, "there": {}, "their": {}, "them": {}, "can": {}, "could": {},
	"would": {}, "should": {}, "may": {}, "might": {}, "must": {}, "our": {},
	"your": {}, "his": {}, "her": {}, "my": {}, "me": {}, "us": {}, "about": {},
	"into": {}, "over": {}, "under": {}, "between": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"up": {}, "down": {}, "out": {}, "off": {}, "again": {}, "further": {},
	"more": {}, "most": {}, "other": {}, "some": {}, "such": {}, "only": {},
	"own": {}, "same": {}, "too": {}, "very": {}, "just": {}, "also": {},
	"each": {}, "both": {}, "all": {}, "any": {}, "few": {}, "how": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"etc": {}, "eg": {}, "ie": {},
}

// IsStopWord 判断给定词（小写）是否为停用词
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Tokenize 将文本切分为小写词元，剥离两端标点
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.ToLower(strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
		}))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ContentTokens 返回去除停用词并词形还原后的词元序列
func ContentTokens(text string) []string {
	raw := Tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if IsStopWord(t) {
			continue
		}
		tokens = append(tokens, Lemmatize(t))
	}
	return tokens
}

// Lemmatize 简化的英文词形还原：按后缀规则剥离复数和屈折变化。
// 不追求语言学上的完备，只需要让 "developing"/"developed"/"develops"
// 归一到同一个词干，供关键词统计和技能匹配使用。
func Lemmatize(word string) string {
	if len(word) <= 3 {
		return word
	}
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		stem := word[:len(word)-3]
		// 双写辅音：running -> run
		if len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] && isConsonant(rune(stem[len(stem)-1])) {
			return stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		stem := word[:len(word)-2]
		if len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] && isConsonant(rune(stem[len(stem)-1])) {
			return stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us"):
		return word[:len(word)-1]
	}
	return word
}

func isConsonant(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return unicode.IsLetter(r)
}

// SplitSentences 按句末标点切分句子，忽略空白片段
func SplitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			s := strings.TrimSpace(sb.String())
			if len(s) > 1 {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); len(s) > 1 {
		sentences = append(sentences, s)
	}
	return sentences
}

// NormalizeWhitespace 折叠所有空白串为单个空格并修剪两端
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate 按字节安全地截断UTF-8文本到最多max个字符
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// UniqueLower 返回去重后的小写字符串集合，保持首次出现顺序
func UniqueLower(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		l := strings.ToLower(strings.TrimSpace(it))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

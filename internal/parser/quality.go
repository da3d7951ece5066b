package parser

import (
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// ComputeQualityMetrics 基于原始文本计算质量指标。
// 解析其他部分失败时质量指标仍然反映原始文本。
func ComputeQualityMetrics(rawText string) QualityMetrics {
	words := textutil.Tokenize(rawText)
	sentences := textutil.SplitSentences(rawText)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	diversity := 0.0
	if len(words) > 0 {
		diversity = float64(len(unique)) / float64(len(words))
	}

	return QualityMetrics{
		WordCount:      len(words),
		CharCount:      len([]rune(rawText)),
		SentenceCount:  len(sentences),
		UniqueWords:    len(unique),
		WordDiversity:  diversity,
		GrammarScore:   estimateGrammarScore(rawText, sentences),
		KeywordDensity: keywordDensity(rawText, words),
		Readability:    textutil.Readability(rawText),
	}
}

// estimateGrammarScore 粗略的语法质量估计：句子首字母大写率
// 与句长合理性的组合，范围[0,1]。
func estimateGrammarScore(text string, sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}

	capitalized := 0
	reasonable := 0
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		first := rune(trimmed[0])
		if first >= 'A' && first <= 'Z' {
			capitalized++
		}
		wc := len(strings.Fields(trimmed))
		if wc >= 3 && wc <= 40 {
			reasonable++
		}
	}

	n := float64(len(sentences))
	score := 0.5*(float64(capitalized)/n) + 0.5*(float64(reasonable)/n)
	if score > 1 {
		score = 1
	}
	return score
}

// keywordDensity 词表技能词在全部词元中的占比
func keywordDensity(text string, words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, skill := range lexicon.AllSkills() {
		hits += strings.Count(lower, skill)
	}
	return float64(hits) / float64(len(words))
}

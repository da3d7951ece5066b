package textutil

import (
	"math"
	"sort"
)

// KeywordScore 一个关键词及其权重
type KeywordScore struct {
	Word  string
	Score float64
}

// TopKeywords 对文本做关键词打分，返回按分数降序的前N个词。
// 词元先经过小写、去标点、停用词过滤和词形还原，再按
// tf * (ln((U+1)/(f+1)) + 1) 打分，其中tf为相对词频、
// U为去重词元数、f为该词的原始频次。
func TopKeywords(text string, n int) []KeywordScore {
	tokens := ContentTokens(text)
	if len(tokens) == 0 || n <= 0 {
		return nil
	}

	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}

	unique := float64(len(freq))
	total := float64(len(tokens))

	scored := make([]KeywordScore, 0, len(freq))
	for word, f := range freq {
		tf := float64(f) / total
		idf := math.Log((unique+1.0)/(float64(f)+1.0)) + 1.0
		scored = append(scored, KeywordScore{Word: word, Score: tf * idf})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score == scored[j].Score {
			return scored[i].Word < scored[j].Word
		}
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// KeywordCosine 计算两段文本TF-IDF风格词频向量的余弦相似度
func KeywordCosine(a, b string) float64 {
	fa := termFrequencies(a)
	fb := termFrequencies(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for w, va := range fa {
		if vb, ok := fb[w]; ok {
			dot += va * vb
		}
		normA += va * va
	}
	for _, vb := range fb {
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termFrequencies(text string) map[string]float64 {
	tokens := ContentTokens(text)
	if len(tokens) == 0 {
		return nil
	}
	freq := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	total := float64(len(tokens))
	for t := range freq {
		freq[t] /= total
	}
	return freq
}

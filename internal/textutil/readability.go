package textutil

import "strings"

// ReadabilityMetrics 文本可读性指标
type ReadabilityMetrics struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease"`  // [0,100]，越高越易读
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"` // 对应的年级水平
	AvgSentenceLength  float64 `json:"avg_sentence_length"`  // 平均句长（词）
	AvgWordLength      float64 `json:"avg_word_length"`      // 平均词长（字符）
}

// Readability 计算Flesch可读性指标。
// Flesch Reading Ease = 206.835 - 1.015*(W/S) - 84.6*(Syl/W)，截断到[0,100]。
func Readability(text string) ReadabilityMetrics {
	sentences := SplitSentences(text)
	words := Tokenize(text)

	if len(words) == 0 || len(sentences) == 0 {
		return ReadabilityMetrics{}
	}

	totalSyllables := 0
	totalChars := 0
	for _, w := range words {
		totalSyllables += CountSyllables(w)
		totalChars += len([]rune(w))
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(totalSyllables) / float64(len(words))

	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if ease < 0 {
		ease = 0
	}
	if ease > 100 {
		ease = 100
	}

	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	if grade < 0 {
		grade = 0
	}

	return ReadabilityMetrics{
		FleschReadingEase:  ease,
		FleschKincaidGrade: grade,
		AvgSentenceLength:  wordsPerSentence,
		AvgWordLength:      float64(totalChars) / float64(len(words)),
	}
}

// CountSyllables 用元音游程近似统计单词音节数。
// 标准修正：结尾的哑音e减一，辅音后的"le"加一，每词最少一个音节。
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if strings.HasSuffix(word, "le") && len(word) > 2 && !isVowel(rune(word[len(word)-3])) {
		count++
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

package parser

import (
	"regexp"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// skillIndicators 短语中出现即认为是技能描述的指示词
var skillIndicators = []string{"skill", "experience", "knowledge", "proficient", "familiar", "expertise"}

// domainVerbs 领域相关动词词干，名词短语抽取时参考
var domainVerbs = map[string]struct{}{
	"develop": {}, "design": {}, "implement": {}, "build": {}, "create": {},
	"manage": {}, "lead": {}, "deploy": {}, "maintain": {}, "optimize": {},
	"analyze": {}, "test": {}, "automate": {}, "architect": {}, "integrate": {},
}

// wordBoundaryCache 词表技能的词边界正则缓存，词表只读所以进程级共享
var wordBoundaryCache = buildSkillPatterns()

func buildSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, skill := range lexicon.AllSkills() {
		patterns[skill] = regexp.MustCompile(`(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(skill) + `($|[^a-z0-9])`)
	}
	return patterns
}

// ExtractSkills 交叉比对技能词表（词边界匹配），并补充包含
// 技能指示词的短名词块（<=3词元），返回规范化小写技能集合。
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	var skills []string
	for skill, re := range wordBoundaryCache {
		if re.MatchString(lower) {
			skills = append(skills, skill)
		}
	}

	skills = append(skills, extractIndicatedChunks(text)...)

	return textutil.UniqueLower(skills)
}

// extractIndicatedChunks 收集含技能指示词句子中的短名词块
func extractIndicatedChunks(text string) []string {
	var chunks []string
	for _, sentence := range textutil.SplitSentences(text) {
		lower := strings.ToLower(sentence)
		indicated := false
		for _, ind := range skillIndicators {
			if strings.Contains(lower, ind) {
				indicated = true
				break
			}
		}
		if !indicated {
			// 含领域动词的句子同样参与抽取
			for _, t := range textutil.Tokenize(lower) {
				if _, ok := domainVerbs[textutil.Lemmatize(t)]; ok {
					indicated = true
					break
				}
			}
		}
		if !indicated {
			continue
		}

		// 逗号分隔的短片段是技能列表最常见的形态
		for _, part := range strings.Split(sentence, ",") {
			tokens := textutil.ContentTokens(part)
			if len(tokens) == 0 || len(tokens) > 3 {
				continue
			}
			candidate := strings.Join(tokens, " ")
			if _, ok := lexicon.CategoryOf(candidate); ok {
				chunks = append(chunks, candidate)
			}
		}
	}
	return chunks
}

// Package jobdesc 将自由形式的岗位描述转换为结构化的岗位要求记录。
package jobdesc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// DefaultTopKeywords 默认提取的关键词数量
const DefaultTopKeywords = 20

// industryHitThreshold 行业识别的关键词命中门槛
const industryHitThreshold = 3

// Job 岗位要求记录：岗位描述的结构化投影
type Job struct {
	Skills                []string              `json:"skills"`
	Keywords              []string              `json:"keywords"` // 按TF-IDF风格分数降序的top-N
	Requirements          Requirements          `json:"requirements"`
	Industry              []lexicon.Industry    `json:"industry"`
	RequiredLevel         lexicon.Level         `json:"required_level"` // JD侧的资历要求
	EducationRequirements EducationRequirements `json:"education_requirements"`
	RawText               string                `json:"raw_text"`
}

// Requirements 硬性要求
type Requirements struct {
	ExperienceYears int      `json:"experience_years"`
	EducationLevel  string   `json:"education_level"`
	SkillsRequired  []string `json:"skills_required"`
	Certifications  []string `json:"certifications"`
}

// EducationRequirements 学历要求
type EducationRequirements struct {
	Degree   string `json:"degree"`
	Field    string `json:"field"`
	Required bool   `json:"required"`
}

var (
	// 三种年限表达："N+ years experience"、"experience of N years"、"N-M years experience"
	yearsPlusRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*years?(?:\s+of)?\s+experience`)
	yearsOfRe    = regexp.MustCompile(`(?i)experience\s+of\s+(\d{1,2})\s*\+?\s*years?`)
	yearsRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*[-–]\s*(\d{1,2})\s*years?(?:\s+of)?\s+experience`)

	degreeFieldRe = regexp.MustCompile(`(?i)(bachelor|master|phd|ph\.d|doctorate)(?:'?s)?(?:\s+(?:degree|of\s+[a-z]+))?\s+in\s+([a-z][a-z ]{2,40}?)(?:[,.\n]|$)`)

	certRequiredRe = regexp.MustCompile(`(?i)\b((?:aws|azure|gcp|google|cisco|pmp|cissp|cka|ckad|oracle|scrum)[a-z ]{0,30}?certif\w*|certified\s+[a-z][a-z ]{2,40}?)(?:[,.\n]|$)`)
)

// Analyzer 岗位描述分析器
type Analyzer struct {
	topKeywords int
}

// NewAnalyzer 创建岗位描述分析器
func NewAnalyzer(topKeywords int) *Analyzer {
	if topKeywords <= 0 {
		topKeywords = DefaultTopKeywords
	}
	return &Analyzer{topKeywords: topKeywords}
}

// Analyze 将岗位描述解析为岗位要求记录
func (a *Analyzer) Analyze(jdText string) *Job {
	skills := parser.ExtractSkills(jdText)

	keywords := make([]string, 0, a.topKeywords)
	for _, ks := range textutil.TopKeywords(jdText, a.topKeywords) {
		keywords = append(keywords, ks.Word)
	}

	job := &Job{
		Skills:   skills,
		Keywords: keywords,
		Requirements: Requirements{
			ExperienceYears: ExtractRequiredYears(jdText),
			EducationLevel:  ExtractEducationLevel(jdText),
			SkillsRequired:  skills,
			Certifications:  ExtractRequiredCertifications(jdText),
		},
		Industry:      DetectIndustries(jdText),
		RequiredLevel: DetectRequiredLevel(jdText),
		RawText:       jdText,
	}
	job.EducationRequirements = extractEducationRequirements(jdText, job.Requirements.EducationLevel)

	logger.Debug().
		Int("skills", len(job.Skills)).
		Int("required_years", job.Requirements.ExperienceYears).
		Str("required_level", string(job.RequiredLevel)).
		Msg("岗位描述分析完成")

	return job
}

// ExtractRequiredYears 提取要求的工作年限，区间取上界，未找到返回0
func ExtractRequiredYears(text string) int {
	if m := yearsRangeRe.FindStringSubmatch(text); len(m) > 2 {
		if upper, err := strconv.Atoi(m[2]); err == nil {
			return upper
		}
	}
	if m := yearsPlusRe.FindStringSubmatch(text); len(m) > 1 {
		if years, err := strconv.Atoi(m[1]); err == nil {
			return years
		}
	}
	if m := yearsOfRe.FindStringSubmatch(text); len(m) > 1 {
		if years, err := strconv.Atoi(m[1]); err == nil {
			return years
		}
	}
	return 0
}

// ExtractEducationLevel 通过词干匹配提取要求的学历（bachelor/master/phd）
func ExtractEducationLevel(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "phd") || strings.Contains(lower, "ph.d") || strings.Contains(lower, "doctorate"):
		return "phd"
	case strings.Contains(lower, "master"):
		return "master"
	case strings.Contains(lower, "bachelor"):
		return "bachelor"
	}
	return ""
}

// ExtractRequiredCertifications 提取要求的证书名
func ExtractRequiredCertifications(text string) []string {
	var certs []string
	for _, m := range certRequiredRe.FindAllStringSubmatch(text, -1) {
		certs = append(certs, strings.TrimSpace(m[1]))
	}
	return textutil.UniqueLower(certs)
}

// DetectIndustries 行业识别：统计每个行业的关键词命中数，
// 命中>=3的行业入选；没有行业达标时返回 ["general"]。
func DetectIndustries(text string) []lexicon.Industry {
	lower := strings.ToLower(text)

	var detected []lexicon.Industry
	for _, ind := range lexicon.DetectableIndustries() {
		hits := 0
		for _, kw := range lexicon.IndustryKeywords(ind) {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits >= industryHitThreshold {
			detected = append(detected, ind)
		}
	}

	if len(detected) == 0 {
		return []lexicon.Industry{lexicon.IndustryGeneral}
	}
	return detected
}

// seniorityKeywords 资历关键词，按从高到低的优先级检查
var seniorityKeywords = []struct {
	level    lexicon.Level
	keywords []string
}{
	{lexicon.LevelExecutive, []string{"director", "vp", "vice president", "cto", "ceo", "head of", "executive"}},
	{lexicon.LevelSenior, []string{"senior", "lead", "principal", "staff", "10+ years"}},
	{lexicon.LevelMid, []string{"mid-level", "mid level", "intermediate", "3-5 years", "5+ years"}},
	{lexicon.LevelEntry, []string{"entry", "junior", "graduate", "fresher", "intern"}},
}

// DetectRequiredLevel 检测JD要求的资历等级，默认mid
func DetectRequiredLevel(text string) lexicon.Level {
	lower := strings.ToLower(text)
	for _, group := range seniorityKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.level
			}
		}
	}
	return lexicon.LevelMid
}

func extractEducationRequirements(text, level string) EducationRequirements {
	req := EducationRequirements{Degree: level}
	if level != "" {
		lower := strings.ToLower(text)
		req.Required = strings.Contains(lower, "required") ||
			strings.Contains(lower, "must have") ||
			strings.Contains(lower, "minimum")
	}
	if m := degreeFieldRe.FindStringSubmatch(text); len(m) > 2 {
		req.Field = strings.TrimSpace(strings.ToLower(m[2]))
	}
	return req
}

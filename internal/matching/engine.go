package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
)

// 评级与优劣势判定阈值
const (
	strengthThreshold    = 0.7
	improvementThreshold = 0.5
)

// Result 匹配引擎的输出
type Result struct {
	OverallScore     float64            `json:"overall_score"`
	Grade            string             `json:"grade"`
	Recommendation   string             `json:"recommendation"`
	DetailedScores   map[string]float64 `json:"detailed_scores"`
	MatchedSkills    []string           `json:"matched_skills"`
	MissingSkills    []string           `json:"missing_skills"`
	StrengthAreas    []string           `json:"strength_areas"`
	ImprovementAreas []string           `json:"improvement_areas"`
	IndustryFit      string             `json:"industry_fit"`
	ExperienceLevel  lexicon.Level      `json:"experience_level"`
}

// Engine 匹配引擎。无跨请求状态，可并发使用。
type Engine struct {
	weights ScoreWeights
}

// EngineOption 引擎配置选项
type EngineOption func(*Engine)

// WithWeights 覆盖默认权重向量，非法向量被忽略
func WithWeights(w ScoreWeights) EngineOption {
	return func(e *Engine) {
		if w.Valid() {
			e.weights = w
		}
	}
}

// NewEngine 创建匹配引擎
func NewEngine(options ...EngineOption) *Engine {
	e := &Engine{weights: DefaultWeights()}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Weights 返回引擎当前的权重向量
func (e *Engine) Weights() ScoreWeights { return e.weights }

// Match 计算简历与岗位的匹配结果
func (e *Engine) Match(resume *parser.Resume, job *jobdesc.Job) *Result {
	skills := SkillsScore(resume.Skills, job.Skills)
	years := parser.TotalExperienceYears(resume.Experience)
	candidateLevel := ExperienceLevelFromYears(years)

	scores := map[string]float64{
		ComponentSkillsMatch:         skills.Score,
		ComponentExperienceRelevance: ExperienceScore(resume.Experience, job),
		ComponentEducationMatch:      EducationScore(resume.Education, job),
		ComponentKeywordSimilarity:   KeywordSimilarityScore(resume.RawText, job.RawText),
		ComponentCertifications:      CertificationsScore(resume.Certifications, job),
		ComponentProjectsMatch:       ProjectsScore(resume.Projects, job),
		ComponentFormattingScore:     FormattingScore(resume),
		ComponentSeniorityMatch:      SeniorityScore(candidateLevel, job.RequiredLevel),
	}

	overall := Calibrate(e.weights.weighted(scores))
	grade, recommendation := GradeFor(overall)

	result := &Result{
		OverallScore:     overall,
		Grade:            grade,
		Recommendation:   recommendation,
		DetailedScores:   scores,
		MatchedSkills:    skills.Matched,
		MissingSkills:    skills.Missing,
		StrengthAreas:    strengthAreas(scores),
		ImprovementAreas: improvementAreas(scores),
		IndustryFit:      IndustryFit(resume.Skills, job.Industry),
		ExperienceLevel:  candidateLevel,
	}

	logger.Debug().
		Float64("overall_score", result.OverallScore).
		Str("grade", result.Grade).
		Int("matched_skills", len(result.MatchedSkills)).
		Msg("匹配计算完成")

	return result
}

// Calibrate 将加权和映射为0-100的总分：
// S型变换后，低分段(<0.3)按0.8缩放，高分段(>0.8)压缩为0.8+0.5*(x-0.8)。
// 变换各段均单调，保证总分是加权和的单调函数。
func Calibrate(weightedSum float64) float64 {
	x := sigmoid(clamp01(weightedSum))
	switch {
	case x < 0.3:
		x *= 0.8
	case x > 0.8:
		x = 0.8 + 0.5*(x-0.8)
	}
	return clamp01(x) * 100
}

// gradeTable 评级阈值与标准推荐语，按分数降序
var gradeTable = []struct {
	min            float64
	grade          string
	recommendation string
}{
	{85, "A+", "Excellent match. Strongly recommend applying and highlighting your closely aligned skills."},
	{75, "A", "Strong match. Apply with confidence and emphasize your most relevant experience."},
	{65, "B+", "Good match. Tailor your resume to the role's key requirements before applying."},
	{55, "B", "Moderate match. Address the missing skills in your cover letter and apply selectively."},
	{45, "C+", "Fair match. Consider upskilling in the missing areas before applying."},
	{35, "C", "Weak match. Significant skill gaps exist; targeted preparation is recommended."},
	{0, "D", "Poor match. This role requires a substantially different profile."},
}

// GradeFor 按总分返回评级与标准推荐语
func GradeFor(score float64) (grade, recommendation string) {
	for _, row := range gradeTable {
		if score >= row.min {
			return row.grade, row.recommendation
		}
	}
	last := gradeTable[len(gradeTable)-1]
	return last.grade, last.recommendation
}

// componentLabels 分量键到人类可读描述的映射
var componentLabels = map[string]string{
	ComponentSkillsMatch:         "Technical skill alignment",
	ComponentExperienceRelevance: "Relevant work experience",
	ComponentEducationMatch:      "Educational background",
	ComponentKeywordSimilarity:   "Resume-to-role keyword coverage",
	ComponentCertifications:      "Professional certifications",
	ComponentProjectsMatch:       "Project portfolio relevance",
	ComponentFormattingScore:     "Resume structure and readability",
	ComponentSeniorityMatch:      "Seniority level fit",
}

func strengthAreas(scores map[string]float64) []string {
	var out []string
	for _, key := range ComponentKeys {
		if scores[key] >= strengthThreshold {
			out = append(out, componentLabels[key])
		}
	}
	if len(out) == 0 {
		out = []string{"Balanced profile without a single dominant strength"}
	}
	return out
}

func improvementAreas(scores map[string]float64) []string {
	var out []string
	for _, key := range ComponentKeys {
		if scores[key] < improvementThreshold {
			out = append(out, componentLabels[key])
		}
	}
	if len(out) == 0 {
		out = []string{"No significant weaknesses identified"}
	}
	return out
}

// IndustryFit 用子串包含规则统计候选人技能与各行业关键词的重叠，
// 重叠>=5为Excellent，>=3为Good，其余视为可迁移。
func IndustryFit(skills []string, industries []lexicon.Industry) string {
	bestOverlap := 0
	var bestIndustry lexicon.Industry

	candidates := industries
	if len(candidates) == 0 || (len(candidates) == 1 && candidates[0] == lexicon.IndustryGeneral) {
		candidates = lexicon.DetectableIndustries()
	}

	for _, ind := range candidates {
		if ind == lexicon.IndustryGeneral {
			continue
		}
		overlap := 0
		for _, skill := range skills {
			sl := strings.ToLower(skill)
			for _, kw := range lexicon.IndustryKeywords(ind) {
				if strings.Contains(kw, sl) || strings.Contains(sl, kw) {
					overlap++
					break
				}
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestIndustry = ind
		}
	}

	switch {
	case bestOverlap >= 5:
		return fmt.Sprintf("Excellent fit for %s", industryDisplay(bestIndustry))
	case bestOverlap >= 3:
		return fmt.Sprintf("Good fit for %s", industryDisplay(bestIndustry))
	}
	return "Skills are transferable across industries"
}

func industryDisplay(ind lexicon.Industry) string {
	return strings.ReplaceAll(string(ind), "_", " ")
}

// SortComponentsDesc 返回按得分降序排列的分量键，供叙述层取top分量
func SortComponentsDesc(scores map[string]float64) []string {
	keys := append([]string(nil), ComponentKeys...)
	sort.SliceStable(keys, func(i, j int) bool {
		return scores[keys[i]] > scores[keys[j]]
	})
	return keys
}

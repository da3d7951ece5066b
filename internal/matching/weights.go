// Package matching 实现确定性的简历-岗位匹配引擎：八个分量得分、
// 固定权重向量、S型校准与评级。
package matching

import "math"

// 八个分量得分的稳定键名，detailed_scores 按这些键输出
const (
	ComponentSkillsMatch         = "skills_match"
	ComponentExperienceRelevance = "experience_relevance"
	ComponentEducationMatch      = "education_match"
	ComponentKeywordSimilarity   = "keyword_similarity"
	ComponentCertifications      = "certifications"
	ComponentProjectsMatch       = "projects_match"
	ComponentFormattingScore     = "formatting_score"
	ComponentSeniorityMatch      = "seniority_match"
)

// ComponentKeys 分量键的固定顺序
var ComponentKeys = []string{
	ComponentSkillsMatch,
	ComponentExperienceRelevance,
	ComponentEducationMatch,
	ComponentKeywordSimilarity,
	ComponentCertifications,
	ComponentProjectsMatch,
	ComponentFormattingScore,
	ComponentSeniorityMatch,
}

// ScoreWeights 不可变的评分权重向量，权重之和必须为1
type ScoreWeights struct {
	SkillsMatch         float64
	ExperienceRelevance float64
	EducationMatch      float64
	KeywordSimilarity   float64
	Certifications      float64
	ProjectsMatch       float64
	FormattingScore     float64
	SeniorityMatch      float64
}

// DefaultWeights 默认权重向量
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		SkillsMatch:         0.35,
		ExperienceRelevance: 0.25,
		EducationMatch:      0.15,
		KeywordSimilarity:   0.10,
		Certifications:      0.05,
		ProjectsMatch:       0.05,
		FormattingScore:     0.03,
		SeniorityMatch:      0.02,
	}
}

// Sum 权重之和，合法的权重向量必须满足 Sum() == 1
func (w ScoreWeights) Sum() float64 {
	return w.SkillsMatch + w.ExperienceRelevance + w.EducationMatch +
		w.KeywordSimilarity + w.Certifications + w.ProjectsMatch +
		w.FormattingScore + w.SeniorityMatch
}

// Valid 校验权重向量：每项非负且总和为1（容忍浮点误差）
func (w ScoreWeights) Valid() bool {
	for _, v := range []float64{
		w.SkillsMatch, w.ExperienceRelevance, w.EducationMatch,
		w.KeywordSimilarity, w.Certifications, w.ProjectsMatch,
		w.FormattingScore, w.SeniorityMatch,
	} {
		if v < 0 {
			return false
		}
	}
	return math.Abs(w.Sum()-1.0) < 1e-9
}

// weighted 按权重向量计算分量得分的加权和
func (w ScoreWeights) weighted(scores map[string]float64) float64 {
	return w.SkillsMatch*scores[ComponentSkillsMatch] +
		w.ExperienceRelevance*scores[ComponentExperienceRelevance] +
		w.EducationMatch*scores[ComponentEducationMatch] +
		w.KeywordSimilarity*scores[ComponentKeywordSimilarity] +
		w.Certifications*scores[ComponentCertifications] +
		w.ProjectsMatch*scores[ComponentProjectsMatch] +
		w.FormattingScore*scores[ComponentFormattingScore] +
		w.SeniorityMatch*scores[ComponentSeniorityMatch]
}

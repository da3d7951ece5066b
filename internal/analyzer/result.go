// Package analyzer 编排完整的分析流程：简历解析、岗位分析、匹配、
// 叙述生成与可选的模型增强，输出稳定字段名的分析结果。
package analyzer

import (
	"time"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/narrator"
)

// 分析状态
const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
)

// 分析深度
const (
	DepthComprehensive = "comprehensive" // 模型增强路径
	DepthStandard      = "standard"      // 纯确定性路径
)

// DeterministicEngine 确定性路径的ai_engine标识
const DeterministicEngine = "deterministic"

// Result 对外输出的分析结果。字段名是对外契约的一部分，不可变更。
type Result struct {
	CandidateName       string                      `json:"candidate_name"`
	OverallScore        float64                     `json:"overall_score"`
	ScoreConfidence     float64                     `json:"score_confidence"`
	Grade               string                      `json:"grade"`
	Recommendation      string                      `json:"recommendation"`
	ExperienceSummary   string                      `json:"experience_summary"`
	EducationSummary    string                      `json:"education_summary"`
	SkillsMatched       []string                    `json:"skills_matched"`
	SkillsMissing       []string                    `json:"skills_missing"`
	KeyStrengths        []string                    `json:"key_strengths"`
	AreasForImprovement []string                    `json:"areas_for_improvement"`
	CareerAdvice        []string                    `json:"career_advice"`
	IndustryInsights    []string                    `json:"industry_insights"`
	ExperienceLevel     lexicon.Level               `json:"experience_level"`
	IndustryFit         string                      `json:"industry_fit"`
	DetailedScores      map[string]float64          `json:"detailed_scores"`
	ResumeQuality       narrator.ResumeQuality      `json:"resume_quality"`
	SkillGaps           []narrator.SkillGap         `json:"skill_gaps"`
	SalaryExpectations  narrator.SalaryExpectations `json:"salary_expectations"`
	InterviewPrep       narrator.InterviewPrep      `json:"interview_prep"`
	AIEngine            string                      `json:"ai_engine"`
	AnalysisTimestamp   time.Time                   `json:"analysis_timestamp"`
	ModelVersion        string                      `json:"model_version"`
	AnalysisDepth       string                      `json:"analysis_depth"`
	IsFallback          bool                        `json:"is_fallback"`
	FallbackReason      string                      `json:"fallback_reason,omitempty"`

	// 批量分析附加字段
	Rank           int    `json:"rank,omitempty"`
	Filename       string `json:"filename,omitempty"`
	AnalysisStatus string `json:"analysis_status,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// applyOracleFields 将模型返回的JSON映射覆盖到确定性结果上。
// 只接受类型正确的已知键，其余键被忽略。
func applyOracleFields(r *Result, fields map[string]any) {
	if v, ok := fields["candidate_name"].(string); ok && v != "" {
		r.CandidateName = v
	}
	if v, ok := asFloat(fields["overall_score"]); ok && v >= 0 && v <= 100 {
		r.OverallScore = v
	}
	if v, ok := fields["grade"].(string); ok && validGrade(v) {
		r.Grade = v
	}
	if v, ok := fields["recommendation"].(string); ok && v != "" {
		r.Recommendation = v
	}
	if v, ok := fields["experience_summary"].(string); ok && v != "" {
		r.ExperienceSummary = v
	}
	if v, ok := fields["education_summary"].(string); ok && v != "" {
		r.EducationSummary = v
	}
	if v, ok := asStringSlice(fields["skills_matched"]); ok {
		r.SkillsMatched = v
	}
	if v, ok := asStringSlice(fields["skills_missing"]); ok {
		r.SkillsMissing = v
	}
	if v, ok := asStringSlice(fields["key_strengths"]); ok {
		r.KeyStrengths = v
	}
	if v, ok := asStringSlice(fields["areas_for_improvement"]); ok {
		r.AreasForImprovement = v
	}
	if v, ok := asStringSlice(fields["career_advice"]); ok {
		r.CareerAdvice = v
	}
	if v, ok := asStringSlice(fields["industry_insights"]); ok {
		r.IndustryInsights = v
	}
	if v, ok := fields["experience_level"].(string); ok && validLevel(v) {
		r.ExperienceLevel = lexicon.Level(v)
	}
	if v, ok := fields["industry_fit"].(string); ok && v != "" {
		r.IndustryFit = v
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	raw, ok := v.([]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func validGrade(g string) bool {
	switch g {
	case "A+", "A", "B+", "B", "C+", "C", "D":
		return true
	}
	return false
}

func validLevel(l string) bool {
	switch lexicon.Level(l) {
	case lexicon.LevelEntry, lexicon.LevelJunior, lexicon.LevelMid,
		lexicon.LevelSenior, lexicon.LevelLead, lexicon.LevelExecutive:
		return true
	}
	return false
}

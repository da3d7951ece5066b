package narrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/matching"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

func readabilityEase(ease float64) textutil.ReadabilityMetrics {
	return textutil.ReadabilityMetrics{FleschReadingEase: ease}
}

func TestExperienceSummaryEmpty(t *testing.T) {
	assert.Equal(t, "Ready to bring fresh perspective and enthusiasm to a new role.",
		ExperienceSummary(nil), "无经历时应返回固定的新人摘要")
}

func TestExperienceSummarySeniorAcrossOrganizations(t *testing.T) {
	experience := []parser.Experience{
		{Title: "Staff Engineer", Company: "Acme Corp", DurationMonths: 60},
		{Title: "Senior Engineer", Company: "Initech", DurationMonths: 48},
		{Title: "Engineer", Company: "Globex", DurationMonths: 36},
	}

	summary := ExperienceSummary(experience)
	assert.True(t, strings.HasPrefix(summary,
		"Senior professional with 10+ years of experience across 3 organizations."),
		"12年三家公司的经历摘要开头不符: %q", summary)
	assert.Contains(t, summary, "Most recently Staff Engineer at Acme Corp.",
		"摘要应附带最近一段职位")
}

func TestExperienceSummaryTiers(t *testing.T) {
	mid := ExperienceSummary([]parser.Experience{{DurationMonths: 72, Company: "Acme"}})
	assert.Contains(t, mid, "Experienced professional with 6 years", "5-10年档位措辞不符")

	early := ExperienceSummary([]parser.Experience{{DurationMonths: 36}})
	assert.Contains(t, early, "3 years of hands-on experience", "2-5年档位措辞不符")

	fresh := ExperienceSummary([]parser.Experience{{DurationMonths: 12}})
	assert.Contains(t, fresh, "Early-career professional", "2年以下档位措辞不符")
}

func TestExperienceSummaryCountsDistinctCompanies(t *testing.T) {
	experience := []parser.Experience{
		{Company: "Acme Corp", DurationMonths: 72},
		{Company: "acme corp", DurationMonths: 60},
	}
	summary := ExperienceSummary(experience)
	assert.Contains(t, summary, "across 1 organizations", "公司名应忽略大小写去重")
}

func TestEducationSummary(t *testing.T) {
	assert.Equal(t, "Education details not specified.", EducationSummary(nil),
		"无学历时应返回固定提示")

	education := []parser.Education{
		{Degree: "Bachelor of Science", Institution: "State College"},
		{Degree: "Master of Science", Institution: "Stanford University", GPA: "3.80"},
	}
	summary := EducationSummary(education)
	assert.Contains(t, summary, "Master of Science from Stanford University", "应选取排位最高的学位")
	assert.Contains(t, summary, "(GPA: 3.80)", "GPA达到3.0时应附带")
}

func TestEducationSummaryLowGPAOmitted(t *testing.T) {
	education := []parser.Education{{Degree: "Bachelor of Arts", GPA: "2.4"}}
	summary := EducationSummary(education)
	assert.NotContains(t, summary, "GPA", "GPA低于3.0时不应出现在摘要中")
}

func TestScoreConfidenceBounds(t *testing.T) {
	uniform := map[string]float64{"a": 0.9, "b": 0.9, "c": 0.9}
	high := ScoreConfidence(uniform)
	assert.InDelta(t, 0.9*(0.8+0.2*0.9), high, 1e-9, "离散度为0时应取0.9档")
	assert.LessOrEqual(t, high, maxConfidence)

	spread := map[string]float64{"a": 0.0, "b": 1.0}
	low := ScoreConfidence(spread)
	assert.InDelta(t, 0.7*(0.8+0.2*0.5), low, 1e-9, "高离散度应取0.7档")

	assert.InDelta(t, 0.7, ScoreConfidence(nil), 1e-9, "无分量时置信度应为0.7")
}

func TestScoreConfidenceNeverExceedsCap(t *testing.T) {
	perfect := map[string]float64{"a": 1.0, "b": 1.0, "c": 1.0, "d": 1.0}
	assert.LessOrEqual(t, ScoreConfidence(perfect), maxConfidence, "置信度不得超过0.95")
}

func TestSalaryBandScaling(t *testing.T) {
	// mid档基准 85000-130000，score=50 -> scale=1.0
	band := SalaryBand(lexicon.LevelMid, 50, "Skills are transferable across industries")
	assert.Equal(t, "USD", band.Currency)
	assert.Equal(t, 85000, band.Min, "score=50时应保持基准下限")
	assert.Equal(t, 130000, band.Max, "score=50时应保持基准上限")

	higher := SalaryBand(lexicon.LevelMid, 100, "Good fit for software engineering")
	assert.Greater(t, higher.Min, band.Min, "更高的总分应抬升薪资区间")
}

func TestSalaryBandExcellentFitBonus(t *testing.T) {
	plain := SalaryBand(lexicon.LevelSenior, 80, "Good fit for software engineering")
	boosted := SalaryBand(lexicon.LevelSenior, 80, "Excellent fit for software engineering")
	assert.Greater(t, boosted.Min, plain.Min, "Excellent契合应有1.1倍加成")
	assert.Greater(t, boosted.Max, plain.Max)
}

func TestSalaryBandLadderMonotone(t *testing.T) {
	prevMax := 0
	for _, level := range []lexicon.Level{
		lexicon.LevelEntry, lexicon.LevelJunior, lexicon.LevelMid,
		lexicon.LevelSenior, lexicon.LevelLead, lexicon.LevelExecutive,
	} {
		band := SalaryBand(level, 50, "")
		assert.Greater(t, band.Max, prevMax, "薪资上限应随资历阶梯递增: %s", level)
		assert.Less(t, band.Min, band.Max, "区间下限必须小于上限: %s", level)
		prevMax = band.Max
	}
}

func TestSkillGapsImportance(t *testing.T) {
	gaps := skillGaps([]string{"docker", "kubernetes", "terraform", "ansible", "kafka"})
	assert.Len(t, gaps, 5)
	for i, gap := range gaps {
		if i < 3 {
			assert.Equal(t, "high", gap.Importance, "前三个缺口应为high: %s", gap.Skill)
		} else {
			assert.Equal(t, "medium", gap.Importance, "之后的缺口应为medium: %s", gap.Skill)
		}
		assert.Contains(t, gap.Suggestion, gap.Skill, "建议文案应引用技能名")
	}
}

func TestNarrateFullOutput(t *testing.T) {
	resume := &parser.Resume{
		Experience: []parser.Experience{{
			Title: "Software Engineer", Company: "Acme Corp", DurationMonths: 72,
		}},
		Education: []parser.Education{{Degree: "Bachelor of Science", Institution: "State College"}},
		Projects:  []parser.Project{{Name: "Analyzer"}},
		Skills:    []string{"python", "react", "aws", "docker", "git"},
		QualityMetrics: parser.QualityMetrics{WordCount: 500, WordDiversity: 0.6},
	}
	job := &jobdesc.Job{
		Industry:     []lexicon.Industry{lexicon.IndustrySoftware},
		Requirements: jobdesc.Requirements{ExperienceYears: 5},
	}
	match := &matching.Result{
		OverallScore:     78,
		DetailedScores:   map[string]float64{"skills_match": 0.9, "education_match": 0.7},
		MatchedSkills:    []string{"python", "react"},
		MissingSkills:    []string{"docker"},
		StrengthAreas:    []string{"Technical skill alignment"},
		ImprovementAreas: []string{"Professional certifications"},
		IndustryFit:      "Good fit for software engineering",
		ExperienceLevel:  lexicon.LevelMid,
	}

	narrative := New().Narrate(resume, job, match)

	assert.Contains(t, narrative.ExperienceSummary, "6 years")
	assert.Contains(t, narrative.EducationSummary, "Bachelor of Science")
	assert.NotEmpty(t, narrative.CareerAdvice, "应产出职业建议")
	assert.NotEmpty(t, narrative.IndustryInsights)
	assert.Len(t, narrative.SkillGaps, 1)
	assert.Equal(t, "docker", narrative.SkillGaps[0].Skill)
	assert.Greater(t, narrative.SalaryExpectations.Min, 0)
	assert.Greater(t, narrative.ScoreConfidence, 0.0)
	assert.LessOrEqual(t, narrative.ScoreConfidence, maxConfidence)

	prep := narrative.InterviewPrep
	assert.Len(t, prep.QuestionsToAsk, 3, "反问集合应为固定的三条")
	assert.Contains(t, prep.LikelyQuestions[0], "python", "首个预测问题应围绕头部匹配技能")
	assert.Contains(t, prep.TalkingPoints[0], "Software Engineer at Acme Corp",
		"首个谈话要点应为最近职位")
}

func TestInterviewPrepFallbacks(t *testing.T) {
	resume := &parser.Resume{}
	match := &matching.Result{
		ImprovementAreas: []string{"No significant weaknesses identified"},
	}
	prep := interviewPrep(resume, match)
	assert.Equal(t, []string{"Tell us about the most impactful project you have delivered."},
		prep.LikelyQuestions, "无信号时应给出兜底问题")
	assert.Equal(t, []string{"Your motivation for this role and your learning trajectory."},
		prep.TalkingPoints, "无信号时应给出兜底谈话要点")
}

func TestResumeQualityAssessmentTiers(t *testing.T) {
	clean := resumeQuality(&parser.Resume{
		Skills: []string{"python", "react", "aws", "docker", "git"},
		QualityMetrics: parser.QualityMetrics{
			WordCount:     500,
			WordDiversity: 0.6,
			Readability:   readabilityEase(55),
		},
	})
	assert.Equal(t, "Well-structured resume", clean.Assessment, "无建议时应为良好评价")
	assert.Empty(t, clean.Suggestions)

	rough := resumeQuality(&parser.Resume{
		QualityMetrics: parser.QualityMetrics{WordCount: 100, WordDiversity: 0.2},
	})
	assert.Equal(t, "The resume needs substantial polishing", rough.Assessment,
		"三条以上建议时应为需打磨评价")
	assert.GreaterOrEqual(t, len(rough.Suggestions), 3)
}

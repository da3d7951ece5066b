// Package narrator 将匹配结果渲染为面向候选人的叙述性内容：
// 经历/教育摘要、职业建议、薪资区间、面试准备与置信度。
// 全部输出由模板确定性生成，不依赖外部模型。
package narrator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/matching"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
)

// maxConfidence 置信度上限
const maxConfidence = 0.95

// SkillGap 技能缺口条目
type SkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
	Suggestion string `json:"suggestion"`
}

// SalaryExpectations 薪资预期区间（年薪，美元）
type SalaryExpectations struct {
	Currency string `json:"currency"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Note     string `json:"note"`
}

// InterviewPrep 面试准备包
type InterviewPrep struct {
	LikelyQuestions []string `json:"likely_questions"`
	TalkingPoints   []string `json:"talking_points"`
	QuestionsToAsk  []string `json:"questions_to_ask"`
}

// ResumeQuality 简历质量评价
type ResumeQuality struct {
	Assessment  string   `json:"assessment"`
	WordCount   int      `json:"word_count"`
	Readability float64  `json:"readability"`
	Suggestions []string `json:"suggestions"`
}

// Narrative 叙述层的全部产出
type Narrative struct {
	ExperienceSummary  string             `json:"experience_summary"`
	EducationSummary   string             `json:"education_summary"`
	CareerAdvice       []string           `json:"career_advice"`
	IndustryInsights   []string           `json:"industry_insights"`
	ResumeQuality      ResumeQuality      `json:"resume_quality"`
	SkillGaps          []SkillGap         `json:"skill_gaps"`
	SalaryExpectations SalaryExpectations `json:"salary_expectations"`
	InterviewPrep      InterviewPrep      `json:"interview_prep"`
	ScoreConfidence    float64            `json:"score_confidence"`
}

// Narrator 叙述生成器。无状态，可并发使用。
type Narrator struct{}

// New 创建叙述生成器
func New() *Narrator { return &Narrator{} }

// Narrate 基于解析结果与匹配结果生成全部叙述内容
func (n *Narrator) Narrate(resume *parser.Resume, job *jobdesc.Job, match *matching.Result) *Narrative {
	return &Narrative{
		ExperienceSummary:  ExperienceSummary(resume.Experience),
		EducationSummary:   EducationSummary(resume.Education),
		CareerAdvice:       careerAdvice(match),
		IndustryInsights:   industryInsights(job, match),
		ResumeQuality:      resumeQuality(resume),
		SkillGaps:          skillGaps(match.MissingSkills),
		SalaryExpectations: SalaryBand(match.ExperienceLevel, match.OverallScore, match.IndustryFit),
		InterviewPrep:      interviewPrep(resume, match),
		ScoreConfidence:    ScoreConfidence(match.DetailedScores),
	}
}

// ExperienceSummary 按总年限分档生成经历摘要
func ExperienceSummary(experience []parser.Experience) string {
	if len(experience) == 0 {
		return "Ready to bring fresh perspective and enthusiasm to a new role."
	}

	years := parser.TotalExperienceYears(experience)
	companies := countCompanies(experience)
	latest := experience[0]

	var head string
	switch {
	case years >= 10:
		head = fmt.Sprintf("Senior professional with 10+ years of experience across %d organizations.", companies)
	case years >= 5:
		head = fmt.Sprintf("Experienced professional with %.0f years of experience across %d organizations.", years, companies)
	case years >= 2:
		head = fmt.Sprintf("Professional with %.0f years of hands-on experience.", years)
	default:
		head = "Early-career professional building a practical track record."
	}

	if latest.Title != "" && latest.Company != "" {
		return head + fmt.Sprintf(" Most recently %s at %s.", latest.Title, latest.Company)
	}
	if latest.Title != "" {
		return head + fmt.Sprintf(" Most recently working as %s.", latest.Title)
	}
	return head
}

// EducationSummary 取排位最高的学位生成教育摘要，GPA>=3.0时附带
func EducationSummary(education []parser.Education) string {
	if len(education) == 0 {
		return "Education details not specified."
	}

	best := education[0]
	bestRank := lexicon.DegreeRank(best.Degree)
	for _, edu := range education[1:] {
		if r := lexicon.DegreeRank(edu.Degree); r > bestRank {
			best, bestRank = edu, r
		}
	}

	summary := best.Degree
	if summary == "" {
		summary = "Formal education listed"
	}
	if best.Institution != "" {
		summary += " from " + best.Institution
	}
	if gpa, err := strconv.ParseFloat(best.GPA, 64); err == nil && gpa >= 3.0 {
		summary += fmt.Sprintf(" (GPA: %.2f)", gpa)
	}
	return summary + "."
}

// ScoreConfidence 置信度 = min(0.95, f(std) * (0.8 + 0.2*mean))，
// f(std)按分量得分的离散程度分档：<0.15取0.9，<0.25取0.8，其余0.7。
func ScoreConfidence(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0.7
	}

	mean := 0.0
	for _, v := range scores {
		mean += v
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, v := range scores {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(scores)))

	factor := 0.7
	switch {
	case std < 0.15:
		factor = 0.9
	case std < 0.25:
		factor = 0.8
	}

	return math.Min(maxConfidence, factor*(0.8+0.2*mean))
}

// salaryBase 资历阶梯对应的基准年薪区间（美元）
var salaryBase = map[int][2]int{
	1: {50000, 75000},
	2: {65000, 95000},
	3: {85000, 130000},
	4: {120000, 180000},
	5: {150000, 220000},
	6: {180000, 300000},
}

// SalaryBand 薪资区间：基准区间按 0.8+0.4*(score/100) 缩放，
// 行业契合为Excellent时额外乘1.1。
func SalaryBand(level lexicon.Level, overallScore float64, industryFit string) SalaryExpectations {
	base := salaryBase[lexicon.LadderRank(level)]

	scale := 0.8 + 0.4*(overallScore/100.0)
	if strings.HasPrefix(industryFit, "Excellent") {
		scale *= 1.1
	}

	return SalaryExpectations{
		Currency: "USD",
		Min:      roundToThousand(float64(base[0]) * scale),
		Max:      roundToThousand(float64(base[1]) * scale),
		Note:     "Estimated annual range based on seniority, match quality, and industry fit.",
	}
}

func careerAdvice(match *matching.Result) []string {
	var advice []string

	if len(match.MissingSkills) > 0 {
		top := match.MissingSkills
		if len(top) > 3 {
			top = top[:3]
		}
		advice = append(advice, fmt.Sprintf("Prioritize closing the gap on %s; these appear directly in the role requirements.", strings.Join(top, ", ")))
	}
	for _, area := range match.ImprovementAreas {
		if strings.HasPrefix(area, "No significant") {
			continue
		}
		advice = append(advice, fmt.Sprintf("Strengthen this area before applying: %s.", strings.ToLower(area)))
	}
	if len(match.MatchedSkills) > 0 {
		advice = append(advice, fmt.Sprintf("Lead your resume summary with %s to mirror the role's language.", strings.Join(topN(match.MatchedSkills, 3), ", ")))
	}

	if len(advice) == 0 {
		advice = []string{"Your profile aligns well with this role; focus on quantifying achievements in your resume."}
	}
	return advice
}

func industryInsights(job *jobdesc.Job, match *matching.Result) []string {
	insights := []string{match.IndustryFit + "."}
	for _, ind := range job.Industry {
		if ind == lexicon.IndustryGeneral {
			continue
		}
		insights = append(insights, fmt.Sprintf("This role sits in the %s space; expect interviewers to probe %s fundamentals.",
			strings.ReplaceAll(string(ind), "_", " "), strings.ReplaceAll(string(ind), "_", " ")))
	}
	if job.Requirements.ExperienceYears > 0 {
		insights = append(insights, fmt.Sprintf("The posting asks for %d+ years of experience; frame your background against that bar.", job.Requirements.ExperienceYears))
	}
	return insights
}

func resumeQuality(resume *parser.Resume) ResumeQuality {
	qm := resume.QualityMetrics

	var suggestions []string
	if qm.WordCount < 300 {
		suggestions = append(suggestions, "The resume is short; expand experience bullets with measurable outcomes.")
	}
	if qm.WordCount > 1000 {
		suggestions = append(suggestions, "The resume is long; trim older roles to keep it under two pages.")
	}
	if qm.Readability.FleschReadingEase < 30 {
		suggestions = append(suggestions, "Sentences are dense; shorten them for easier scanning.")
	}
	if qm.WordDiversity < 0.4 {
		suggestions = append(suggestions, "Wording is repetitive; vary your action verbs.")
	}
	if len(resume.Skills) < 5 {
		suggestions = append(suggestions, "Few recognizable skills were found; add an explicit skills section.")
	}

	assessment := "Well-structured resume"
	switch {
	case len(suggestions) >= 3:
		assessment = "The resume needs substantial polishing"
	case len(suggestions) > 0:
		assessment = "Solid resume with room for improvement"
	}

	return ResumeQuality{
		Assessment:  assessment,
		WordCount:   qm.WordCount,
		Readability: qm.Readability.FleschReadingEase,
		Suggestions: suggestions,
	}
}

func skillGaps(missing []string) []SkillGap {
	gaps := make([]SkillGap, 0, len(missing))
	for i, skill := range missing {
		importance := "medium"
		if i < 3 {
			importance = "high"
		}
		gaps = append(gaps, SkillGap{
			Skill:      skill,
			Importance: importance,
			Suggestion: fmt.Sprintf("Build a small demonstrable project using %s and reference it on your resume.", skill),
		})
	}
	return gaps
}

// fixedQuestionsToAsk 固定的反问问题集合
var fixedQuestionsToAsk = []string{
	"What does success look like in this role after the first six months?",
	"How is the team structured, and who would I collaborate with most?",
	"What are the biggest technical challenges the team is facing right now?",
}

// interviewPrep 三类预测问题（顶部匹配技能、顶部优势、顶部待改进项）、
// 三个谈话要点（最近职位与头部项目）、固定的反问集合。
func interviewPrep(resume *parser.Resume, match *matching.Result) InterviewPrep {
	var questions []string
	if len(match.MatchedSkills) > 0 {
		questions = append(questions, fmt.Sprintf("Describe a project where you used %s to solve a real problem.", match.MatchedSkills[0]))
	}
	if len(match.StrengthAreas) > 0 {
		questions = append(questions, fmt.Sprintf("Your profile is strong on %s. Walk us through a concrete example.", strings.ToLower(match.StrengthAreas[0])))
	}
	if len(match.ImprovementAreas) > 0 && !strings.HasPrefix(match.ImprovementAreas[0], "No significant") {
		questions = append(questions, fmt.Sprintf("How are you addressing %s?", strings.ToLower(match.ImprovementAreas[0])))
	}
	if len(questions) == 0 {
		questions = []string{"Tell us about the most impactful project you have delivered."}
	}

	var points []string
	if len(resume.Experience) > 0 {
		latest := resume.Experience[0]
		if latest.Title != "" {
			point := "Your most recent role as " + latest.Title
			if latest.Company != "" {
				point += " at " + latest.Company
			}
			points = append(points, point+".")
		}
	}
	if len(resume.Projects) > 0 && resume.Projects[0].Name != "" {
		points = append(points, fmt.Sprintf("The %s project and the technologies behind it.", resume.Projects[0].Name))
	}
	if len(match.MatchedSkills) > 0 {
		points = append(points, fmt.Sprintf("Hands-on depth in %s.", strings.Join(topN(match.MatchedSkills, 3), ", ")))
	}
	if len(points) == 0 {
		points = []string{"Your motivation for this role and your learning trajectory."}
	}

	return InterviewPrep{
		LikelyQuestions: questions,
		TalkingPoints:   points,
		QuestionsToAsk:  append([]string(nil), fixedQuestionsToAsk...),
	}
}

func countCompanies(experience []parser.Experience) int {
	seen := make(map[string]struct{})
	for _, exp := range experience {
		name := strings.ToLower(strings.TrimSpace(exp.Company))
		if name != "" {
			seen[name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return len(experience)
	}
	return len(seen)
}

func topN(items []string, n int) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func roundToThousand(v float64) int {
	return int(math.Round(v/1000.0)) * 1000
}

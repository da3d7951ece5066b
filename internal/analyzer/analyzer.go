package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/matching"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/narrator"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/oracle"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
)

// DefaultModelVersion 确定性分析管线的版本号
const DefaultModelVersion = "deterministic-v2"

// Analyzer 分析流程编排器。除注册表的配额计数外无共享状态，可并发使用。
type Analyzer struct {
	parser       *parser.Parser
	jobAnalyzer  *jobdesc.Analyzer
	engine       *matching.Engine
	narrator     *narrator.Narrator
	registry     *oracle.Registry
	modelVersion string
	now          func() time.Time
}

// Option 编排器配置选项
type Option func(*Analyzer)

// WithRegistry 挂载模型客户端注册表，启用模型增强路径
func WithRegistry(registry *oracle.Registry) Option {
	return func(a *Analyzer) {
		a.registry = registry
	}
}

// WithModelVersion 覆盖结果中的model_version标识
func WithModelVersion(v string) Option {
	return func(a *Analyzer) {
		if v != "" {
			a.modelVersion = v
		}
	}
}

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithParser 覆盖默认的简历解析器
func WithParser(p *parser.Parser) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.parser = p
		}
	}
}

// WithEngine 覆盖默认的匹配引擎
func WithEngine(e *matching.Engine) Option {
	return func(a *Analyzer) {
		if e != nil {
			a.engine = e
		}
	}
}

// WithJobAnalyzer 覆盖默认的岗位描述分析器
func WithJobAnalyzer(j *jobdesc.Analyzer) Option {
	return func(a *Analyzer) {
		if j != nil {
			a.jobAnalyzer = j
		}
	}
}

// New 创建分析编排器
func New(options ...Option) *Analyzer {
	a := &Analyzer{
		parser:       parser.New(),
		jobAnalyzer:  jobdesc.NewAnalyzer(jobdesc.DefaultTopKeywords),
		engine:       matching.NewEngine(),
		narrator:     narrator.New(),
		modelVersion: DefaultModelVersion,
		now:          time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// AnalyzeResume 分析单份简历与岗位描述的匹配情况。
// 文本不足50字符返回ErrBadDocument；模型路径失败时自动回落到
// 确定性路径并在结果中标注is_fallback与fallback_reason。
func (a *Analyzer) AnalyzeResume(ctx context.Context, resumeText, jobDescription, filename string) (*Result, error) {
	if len(strings.TrimSpace(resumeText)) < MinDocumentChars {
		return nil, fmt.Errorf("%w: 文本长度不足%d字符", ErrBadDocument, MinDocumentChars)
	}

	cleaned := parser.CleanText(resumeText)
	resume := a.parser.Parse(cleaned)
	job := a.jobAnalyzer.Analyze(jobDescription)
	match := a.engine.Match(resume, job)
	narrative := a.narrator.Narrate(resume, job, match)

	result := a.assemble(resume, match, narrative, filename)

	if a.registry != nil && a.registry.Len() > 0 {
		fields, oracleName, err := a.registry.Analyze(ctx, cleaned, jobDescription)
		if err != nil {
			result.IsFallback = true
			result.FallbackReason = err.Error()
			logger.Warn().Err(err).Msg("模型路径失败，使用确定性结果兜底")
		} else {
			applyOracleFields(result, fields)
			result.AIEngine = oracleName
			result.AnalysisDepth = DepthComprehensive
		}
	}

	logger.Info().
		Float64("overall_score", result.OverallScore).
		Str("grade", result.Grade).
		Str("engine", result.AIEngine).
		Bool("is_fallback", result.IsFallback).
		Msg("简历分析完成")

	return result, nil
}

// BatchInput 批量分析的单项输入
type BatchInput struct {
	ResumeText string
	Filename   string
}

// AnalyzeBatch 对一组简历逐份执行分析，结果按overall_score降序
// 排列并赋rank。单项失败不会中断批次，失败位置输出一条
// overall_score=50、grade=C、analysis_status=partial的兜底记录。
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []BatchInput, jobDescription string) []*Result {
	results := make([]*Result, 0, len(inputs))
	for _, input := range inputs {
		result, err := a.AnalyzeResume(ctx, input.ResumeText, jobDescription, input.Filename)
		if err != nil {
			logger.Warn().Err(err).Str("filename", input.Filename).Msg("批量分析中单项失败")
			result = a.failedItemResult(input.Filename, err)
		} else {
			result.AnalysisStatus = StatusCompleted
		}
		result.Filename = input.Filename
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	for i, r := range results {
		r.Rank = i + 1
	}
	return results
}

// assemble 将各环节产出拼装为完整的确定性结果
func (a *Analyzer) assemble(resume *parser.Resume, match *matching.Result, narrative *narrator.Narrative, filename string) *Result {
	return &Result{
		CandidateName:       resume.PersonalInfo.Name,
		OverallScore:        match.OverallScore,
		ScoreConfidence:     narrative.ScoreConfidence,
		Grade:               match.Grade,
		Recommendation:      match.Recommendation,
		ExperienceSummary:   narrative.ExperienceSummary,
		EducationSummary:    narrative.EducationSummary,
		SkillsMatched:       match.MatchedSkills,
		SkillsMissing:       match.MissingSkills,
		KeyStrengths:        match.StrengthAreas,
		AreasForImprovement: match.ImprovementAreas,
		CareerAdvice:        narrative.CareerAdvice,
		IndustryInsights:    narrative.IndustryInsights,
		ExperienceLevel:     match.ExperienceLevel,
		IndustryFit:         match.IndustryFit,
		DetailedScores:      match.DetailedScores,
		ResumeQuality:       narrative.ResumeQuality,
		SkillGaps:           narrative.SkillGaps,
		SalaryExpectations:  narrative.SalaryExpectations,
		InterviewPrep:       narrative.InterviewPrep,
		AIEngine:            DeterministicEngine,
		AnalysisTimestamp:   a.now().UTC(),
		ModelVersion:        a.modelVersion,
		AnalysisDepth:       DepthStandard,
		Filename:            filename,
	}
}

// failedItemResult 批量分析中失败项的合成兜底记录
func (a *Analyzer) failedItemResult(filename string, cause error) *Result {
	return &Result{
		OverallScore:      50,
		Grade:             "C",
		Recommendation:    "Analysis could not be completed for this resume; review the document and retry.",
		AIEngine:          DeterministicEngine,
		AnalysisTimestamp: a.now().UTC(),
		ModelVersion:      a.modelVersion,
		AnalysisDepth:     DepthStandard,
		IsFallback:        true,
		FallbackReason:    cause.Error(),
		Filename:          filename,
		AnalysisStatus:    StatusPartial,
		ErrorMessage:      cause.Error(),
	}
}

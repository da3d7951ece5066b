package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/oracle"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
)

const sampleResumeText = `Jane Doe
jane.doe@example.com

Summary
Software engineer focused on web platforms.

Experience
Software Engineer at Acme Corp, 2020 - present
• Built web applications with Python and React
• Deployed workloads to AWS

Education
Bachelor of Science in Computer Science, Stanford University, 2012 - 2016

Skills
Python, React, AWS`

const sampleJobText = `Software Engineer
Looking for 3+ years of experience building services with Python, React and Docker.
Bachelor's degree in Computer Science, preferred.`

// stubChatModel 测试用的模型客户端桩
type stubChatModel struct {
	response string
	err      error
}

func (m *stubChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.response}, nil
}

func (m *stubChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stub 未实现 Stream")
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestAnalyzer(options ...Option) *Analyzer {
	base := []Option{
		WithClock(fixedClock()),
		WithParser(parser.New(parser.WithClock(fixedClock()))),
	}
	return New(append(base, options...)...)
}

func TestAnalyzeResumeRejectsShortDocument(t *testing.T) {
	a := newTestAnalyzer()
	_, err := a.AnalyzeResume(context.Background(), "too short", sampleJobText, "short.txt")
	require.Error(t, err)
	assert.True(t, IsBadDocument(err), "不足50字符应返回文档无效错误")
	assert.ErrorIs(t, err, ErrBadDocument)
}

func TestAnalyzeResumeDeterministicPath(t *testing.T) {
	a := newTestAnalyzer()
	result, err := a.AnalyzeResume(context.Background(), sampleResumeText, sampleJobText, "jane.txt")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Greater(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
	assert.NotEmpty(t, result.Grade)
	assert.NotEmpty(t, result.Recommendation)
	assert.Contains(t, result.SkillsMatched, "python")
	assert.Contains(t, result.SkillsMissing, "docker")
	assert.NotEmpty(t, result.ExperienceSummary)
	assert.NotEmpty(t, result.EducationSummary)
	assert.Len(t, result.DetailedScores, 8, "detailed_scores应包含全部八个分量")
	assert.Greater(t, result.ScoreConfidence, 0.0)
	assert.Greater(t, result.SalaryExpectations.Min, 0)

	assert.Equal(t, DeterministicEngine, result.AIEngine, "无注册表时引擎应为deterministic")
	assert.Equal(t, DefaultModelVersion, result.ModelVersion)
	assert.Equal(t, DepthStandard, result.AnalysisDepth)
	assert.False(t, result.IsFallback)
	assert.Equal(t, fixedClock()(), result.AnalysisTimestamp, "时间戳应来自注入的时钟")
	assert.Equal(t, "jane.txt", result.Filename)
}

func TestAnalyzeResumeOracleOverlay(t *testing.T) {
	registry := oracle.NewRegistry()
	registry.Register("qwen-plus", &stubChatModel{
		response: `{"overall_score": 91, "grade": "A+", "candidate_name": "Jane M. Doe", "ignored_key": true}`,
	}, 0)

	a := newTestAnalyzer(WithRegistry(registry))
	result, err := a.AnalyzeResume(context.Background(), sampleResumeText, sampleJobText, "jane.txt")
	require.NoError(t, err)

	assert.Equal(t, 91.0, result.OverallScore, "模型返回的总分应覆盖确定性总分")
	assert.Equal(t, "A+", result.Grade)
	assert.Equal(t, "Jane M. Doe", result.CandidateName)
	assert.Equal(t, "qwen-plus", result.AIEngine, "引擎应标为所用客户端名")
	assert.Equal(t, DepthComprehensive, result.AnalysisDepth)
	assert.False(t, result.IsFallback)
	assert.NotEmpty(t, result.ExperienceSummary, "模型未覆盖的字段应保留确定性产出")
}

func TestAnalyzeResumeOracleFailureFallsBack(t *testing.T) {
	registry := oracle.NewRegistry()
	registry.Register("flaky", &stubChatModel{err: errors.New("connection refused")}, 0)

	a := newTestAnalyzer(WithRegistry(registry))
	result, err := a.AnalyzeResume(context.Background(), sampleResumeText, sampleJobText, "jane.txt")
	require.NoError(t, err, "模型路径失败不应让整个分析失败")

	assert.True(t, result.IsFallback, "模型失败后应标注兜底")
	assert.Contains(t, result.FallbackReason, "connection refused")
	assert.Equal(t, DeterministicEngine, result.AIEngine)
	assert.Equal(t, DepthStandard, result.AnalysisDepth)
	assert.Greater(t, result.OverallScore, 0.0, "兜底结果仍应带确定性分数")
}

func TestAnalyzeResumeModelVersionOverride(t *testing.T) {
	a := newTestAnalyzer(WithModelVersion("deterministic-v3"))
	result, err := a.AnalyzeResume(context.Background(), sampleResumeText, sampleJobText, "jane.txt")
	require.NoError(t, err)
	assert.Equal(t, "deterministic-v3", result.ModelVersion)
}

func TestAnalyzeBatchRanksAndPartialFailure(t *testing.T) {
	a := newTestAnalyzer()
	inputs := []BatchInput{
		{ResumeText: sampleResumeText, Filename: "jane.txt"},
		{ResumeText: "way too short", Filename: "broken.txt"},
		{ResumeText: sampleResumeText, Filename: "jane-copy.txt"},
	}

	results := a.AnalyzeBatch(context.Background(), inputs, sampleJobText)
	require.Len(t, results, 3, "单项失败不应缩短批次结果")

	for i, r := range results {
		assert.Equal(t, i+1, r.Rank, "rank应为1..n")
		if i > 0 {
			assert.LessOrEqual(t, r.OverallScore, results[i-1].OverallScore,
				"结果应按overall_score降序")
		}
	}

	var failed *Result
	for _, r := range results {
		if r.Filename == "broken.txt" {
			failed = r
		}
	}
	require.NotNil(t, failed, "失败项也应出现在批次结果中")
	assert.Equal(t, 50.0, failed.OverallScore, "失败项应得到合成的中位分")
	assert.Equal(t, "C", failed.Grade)
	assert.Equal(t, StatusPartial, failed.AnalysisStatus)
	assert.True(t, failed.IsFallback)
	assert.NotEmpty(t, failed.ErrorMessage)

	for _, r := range results {
		if r.Filename != "broken.txt" {
			assert.Equal(t, StatusCompleted, r.AnalysisStatus, "成功项状态应为completed")
		}
	}
}

func TestApplyOracleFieldsValidation(t *testing.T) {
	r := &Result{
		CandidateName: "Jane Doe",
		OverallScore:  72,
		Grade:         "B+",
		SkillsMatched: []string{"python"},
	}

	applyOracleFields(r, map[string]any{
		"overall_score":    150.0,            // 超出范围，忽略
		"grade":            "S",              // 非法评级，忽略
		"candidate_name":   "",               // 空串，忽略
		"experience_level": "wizard",         // 非法级别，忽略
		"skills_matched":   []any{"go", 1.0}, // 混合类型，忽略
	})
	assert.Equal(t, 72.0, r.OverallScore, "越界总分不应覆盖")
	assert.Equal(t, "B+", r.Grade, "非法评级不应覆盖")
	assert.Equal(t, "Jane Doe", r.CandidateName)
	assert.Equal(t, []string{"python"}, r.SkillsMatched)

	applyOracleFields(r, map[string]any{
		"overall_score":    88.0,
		"grade":            "A+",
		"skills_matched":   []any{"go", "python"},
		"experience_level": "senior",
	})
	assert.Equal(t, 88.0, r.OverallScore)
	assert.Equal(t, "A+", r.Grade)
	assert.Equal(t, []string{"go", "python"}, r.SkillsMatched)
	assert.Equal(t, "senior", string(r.ExperienceLevel))
}

func TestApplyOracleFieldsAcceptsIntScore(t *testing.T) {
	r := &Result{OverallScore: 60}
	applyOracleFields(r, map[string]any{"overall_score": 85})
	assert.Equal(t, 85.0, r.OverallScore, "整数总分也应被接受")
}

func TestWriteCSVReport(t *testing.T) {
	results := []*Result{
		{
			Rank: 1, Filename: "jane.txt", CandidateName: "Jane Doe",
			OverallScore: 86.5, Grade: "A+", ExperienceLevel: "junior",
			SkillsMatched:  []string{"python", "react"},
			SkillsMissing:  []string{"docker"},
			AnalysisStatus: StatusCompleted,
		},
		{
			Rank: 2, Filename: "broken.txt", OverallScore: 50, Grade: "C",
			AnalysisStatus: StatusPartial, ErrorMessage: "文档无法提取出有效文本",
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSVReport(&sb, results))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3, "应为表头加两行数据")
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0], "首行应为列头")
	assert.Contains(t, lines[1], "jane.txt")
	assert.Contains(t, lines[1], "86.5")
	assert.Contains(t, lines[1], "python; react")
	assert.Contains(t, lines[2], "partial")
}

package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com
+1 555-123-4567
San Francisco, CA
linkedin.com/in/janedoe

Summary
Software engineer with a passion for distributed systems.

Experience
Senior Software Engineer at Acme Corp, 2018 - present
• Built REST APIs with Python and React
• Deployed services to AWS

Education
Bachelor of Science in Computer Science, Stanford University, 2012 - 2016

Skills
Python, React, AWS, Docker

Projects
Resume Analyzer - matching tool
Technologies: Python, Flask

Certifications
AWS Certified Solutions Architect - Amazon, 2020`

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseAssemblesFullRecord(t *testing.T) {
	p := New(WithClock(fixedClock))
	resume := p.Parse(sampleResume)

	assert.Len(t, resume.Sections, len(SectionKeys), "章节映射必须包含七个键")

	assert.Equal(t, "Jane Doe", resume.PersonalInfo.Name, "姓名不符")
	assert.Equal(t, "jane.doe@example.com", resume.PersonalInfo.Email, "邮箱不符")
	assert.Equal(t, "San Francisco, CA", resume.PersonalInfo.Location, "地点不符")
	assert.Equal(t, "janedoe", resume.PersonalInfo.LinkedIn, "LinkedIn句柄不符")

	for _, skill := range []string{"python", "react", "aws", "docker"} {
		assert.Contains(t, resume.Skills, skill, "技能集合缺少: %s", skill)
	}

	require.NotEmpty(t, resume.Experience, "应解析出工作经历")
	exp := resume.Experience[0]
	assert.Equal(t, "Senior Software Engineer", exp.Title)
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, 72, exp.DurationMonths, "present应按注入时钟的年份解析")

	require.NotEmpty(t, resume.Education, "应解析出教育经历")
	assert.Contains(t, resume.Education[0].Degree, "Bachelor")
	assert.Equal(t, "Stanford University", resume.Education[0].Institution)

	require.Len(t, resume.Certifications, 1, "应解析出一条证书")
	assert.Equal(t, "AWS Certified Solutions Architect", resume.Certifications[0].Name)
	assert.Equal(t, "2020", resume.Certifications[0].Date)

	require.Len(t, resume.Projects, 1, "应解析出一个项目")
	assert.Equal(t, "Resume Analyzer", resume.Projects[0].Name)
	assert.Contains(t, resume.Projects[0].Technologies, "flask")

	assert.Greater(t, resume.QualityMetrics.WordCount, 0, "质量指标应基于原始文本计算")
}

func TestParseDeterministic(t *testing.T) {
	p := New(WithClock(fixedClock))
	first := p.Parse(sampleResume)
	second := p.Parse(sampleResume)
	assert.Equal(t, first, second, "同一文本两次解析结果必须完全一致")
}

func TestParseHeaderlessResumeFallsBack(t *testing.T) {
	text := `Jane Doe
Software Engineer at Acme Corp, 2018 - 2020.
Graduated with a Bachelor of Science from Stanford University.`

	p := New(WithClock(fixedClock))
	resume := p.Parse(text)

	for _, key := range SectionKeys {
		assert.Equal(t, "", resume.Sections[key], "无标题简历不应有任何章节内容")
	}
	require.NotEmpty(t, resume.Experience, "章节缺失时应回退到经历句子解析")
	assert.Equal(t, "Software Engineer", resume.Experience[0].Title)
	require.NotEmpty(t, resume.Education, "章节缺失时应回退到教育句子解析")
}

func TestParseRawTextTruncation(t *testing.T) {
	p := New(WithRawTextLimit(100), WithClock(fixedClock))
	resume := p.Parse(strings.Repeat("word ", 2000))
	assert.Len(t, resume.RawText, 100, "原始文本应截断到配置的上限")
}

func TestParseEmptyText(t *testing.T) {
	p := New(WithClock(fixedClock))
	resume := p.Parse("")

	assert.NotNil(t, resume, "空文本也应返回完整形态的记录")
	assert.Len(t, resume.Sections, len(SectionKeys))
	assert.Empty(t, resume.Skills)
	assert.Empty(t, resume.Experience)
	assert.Equal(t, "", resume.PersonalInfo.Name)
}

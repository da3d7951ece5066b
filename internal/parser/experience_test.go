package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMonths(t *testing.T) {
	assert.Equal(t, 72, DurationMonths("2018", "present", 2024), "2018到present（2024）应为72个月")
	assert.Equal(t, 48, DurationMonths("2018", "2022", 2024), "2018到2022应为48个月")
	assert.Equal(t, 0, DurationMonths("2018", "2018", 2024), "同年起止应为0个月")
	assert.Equal(t, 24, DurationMonths("2022", "now", 2024), "now应按当前年份解析")
}

func TestDurationMonthsNeverNegative(t *testing.T) {
	assert.Equal(t, 0, DurationMonths("2022", "2018", 2024), "结束早于开始时应返回0而非负数")
	assert.Equal(t, 0, DurationMonths("", "2020", 2024), "开始年份缺失应返回0")
	assert.Equal(t, 0, DurationMonths("2018", "unknown", 2024), "结束年份无法解析应返回0")
}

func TestParseExperienceSingleEntry(t *testing.T) {
	text := `Senior Software Engineer at Acme Corp, 2018 - present
• Built REST APIs with Python
• Led a team of five engineers`

	entries := ParseExperience(text, 2024)
	require.Len(t, entries, 1, "应解析出一条工作经历")

	entry := entries[0]
	assert.Equal(t, "Senior Software Engineer", entry.Title, "职位名不符")
	assert.Equal(t, "Acme Corp", entry.Company, "公司名不符")
	assert.Equal(t, [2]string{"2018", "present"}, entry.Dates, "起止日期不符")
	assert.Equal(t, 72, entry.DurationMonths, "任职时长不符")
	assert.Len(t, entry.BulletPoints, 2, "应收集两条要点")
	assert.Equal(t, "Built REST APIs with Python", entry.BulletPoints[0])
}

func TestParseExperienceMultipleEntriesKeepOrder(t *testing.T) {
	text := `Senior Software Engineer at Acme Corp, 2018 - present
• Built microservices
Software Developer at Initech, 2015 - 2018
• Maintained billing services`

	entries := ParseExperience(text, 2024)
	require.Len(t, entries, 2, "应解析出两条工作经历")

	assert.Equal(t, "Acme Corp", entries[0].Company, "条目应保持简历中的出现顺序")
	assert.Equal(t, "Initech", entries[1].Company)
	assert.Equal(t, 36, entries[1].DurationMonths, "第二段经历时长不符")
}

func TestParseExperienceEmpty(t *testing.T) {
	assert.Nil(t, ParseExperience("", 2024), "空章节应返回nil")
	assert.Nil(t, ParseExperience("   \n  ", 2024), "纯空白章节应返回nil")
}

func TestTotalExperienceYears(t *testing.T) {
	entries := []Experience{
		{DurationMonths: 36},
		{DurationMonths: 24},
	}
	assert.InDelta(t, 5.0, TotalExperienceYears(entries), 1e-9, "总经验年数应为时长之和除以12")
	assert.Zero(t, TotalExperienceYears(nil), "无经历时总年数应为0")
}

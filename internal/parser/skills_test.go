package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkillsFromLexicon(t *testing.T) {
	skills := ExtractSkills("Experienced with Python, React and Docker deployments")
	assert.Contains(t, skills, "python", "应命中词表技能python")
	assert.Contains(t, skills, "react", "应命中词表技能react")
	assert.Contains(t, skills, "docker", "应命中词表技能docker")
}

func TestExtractSkillsWordBoundary(t *testing.T) {
	// "JavaScript" 不能让子串 "java" 误命中
	skills := ExtractSkills("Expert in JavaScript development")
	assert.Contains(t, skills, "javascript", "应命中javascript")
	assert.NotContains(t, skills, "java", "java不应作为javascript的子串被命中")
}

func TestExtractSkillsSymbolSuffix(t *testing.T) {
	skills := ExtractSkills("Strong knowledge of C++ and C#")
	assert.Contains(t, skills, "c++", "应命中带符号后缀的技能c++")
	assert.Contains(t, skills, "c#", "应命中带符号后缀的技能c#")
}

func TestExtractSkillsNormalizedLower(t *testing.T) {
	skills := ExtractSkills("PYTHON and Python and python")
	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	assert.Equal(t, 1, count, "技能应小写化且去重")
}

func TestExtractSkillsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSkills(""), "空文本不应产出技能")
	assert.Empty(t, ExtractSkills("nothing relevant here"), "无技能文本不应产出技能")
}

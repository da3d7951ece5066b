package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails(t *testing.T) {
	emails := ExtractEmails("Contact: Jane.Doe@Example.COM or jane.doe@example.com")
	assert.Equal(t, []string{"jane.doe@example.com"}, emails, "邮箱应小写化并去重")

	assert.Empty(t, ExtractEmails("no email here"), "无邮箱文本应返回空结果")
}

func TestExtractPhones(t *testing.T) {
	phones := ExtractPhones("Call me at +1 555-123-4567 anytime")
	assert.Equal(t, []string{"+1 555-123-4567"}, phones, "应抽取出国际格式电话号码")
}

func TestExtractPhonesFiltersShortNumbers(t *testing.T) {
	assert.Empty(t, ExtractPhones("ext. 555-0100"), "少于10位数字的号码应被过滤")
	assert.Empty(t, ExtractPhones("Worked 2018 - 2022 at Acme"), "年份区间不应被误判为电话")
}

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("Portfolio: https://janedoe.dev and www.example.com/projects")
	assert.Contains(t, urls, "https://janedoe.dev", "应抽取https链接")
	assert.Contains(t, urls, "www.example.com/projects", "应抽取www链接")
}

func TestExtractLinkedIn(t *testing.T) {
	assert.Equal(t, "jane-doe", ExtractLinkedIn("https://www.linkedin.com/in/jane-doe"),
		"应抽取LinkedIn句柄")
	assert.Equal(t, "", ExtractLinkedIn("no profile"), "未找到时应返回空字符串")
}

func TestExtractGitHub(t *testing.T) {
	assert.Equal(t, "github.com/janedoe", ExtractGitHub("Code at github.com/janedoe"),
		"应抽取GitHub主页")
	assert.Equal(t, "", ExtractGitHub("no code"), "未找到时应返回空字符串")
}

func TestExtractDates(t *testing.T) {
	dates := ExtractDates("Worked 2018 - present, graduated May 2016")
	assert.Contains(t, dates, "2018 - present", "应抽取年份到present的区间")
	assert.Contains(t, dates, "May 2016", "应抽取月份加年份的日期")
}

func TestExtractLocations(t *testing.T) {
	locs := ExtractLocations("Based in San Francisco, CA. Earlier in Austin, Texas.")
	assert.Contains(t, locs, "San Francisco, CA", "应抽取 City, ST 形式的地点")
	assert.Contains(t, locs, "Austin, Texas", "应抽取 City, Country 形式的地点")
}

func TestExtractPersonName(t *testing.T) {
	assert.Equal(t, "Jane Doe", ExtractPersonName("Jane Doe\njane@example.com\n555-123-4567"),
		"应从头部行中识别出姓名")
}

func TestExtractPersonNameSkipsNoise(t *testing.T) {
	// 含@或数字的行不可能是姓名行
	text := "jane@example.com\n+1 555-123-4567\nJane Doe"
	assert.Equal(t, "Jane Doe", ExtractPersonName(text), "应跳过邮箱与电话行")

	assert.Equal(t, "", ExtractPersonName("one\ntwo\nthree\nfour\nfive\nJane Doe"),
		"头部五行之外的姓名不应被识别")
}

func TestExtractOrganizations(t *testing.T) {
	orgs := ExtractOrganizations("Worked at Acme Inc. then studied at Stanford University")
	assert.Contains(t, orgs, "Acme Inc", "应抽取公司后缀结尾的组织名")
	assert.Contains(t, orgs, "Stanford University", "应抽取大学名")
}

func TestExtractEducationSentences(t *testing.T) {
	text := "I love hiking. Graduated from Stanford with a bachelor degree. Built many systems."
	sentences := ExtractEducationSentences(text)
	assert.Len(t, sentences, 1, "只有含教育关键词的句子应被保留")
	assert.Contains(t, sentences[0], "bachelor", "过滤结果应包含教育句子")
}

func TestExtractExperienceSentences(t *testing.T) {
	text := "I love hiking. Worked as a software engineer at Acme. The weather was nice."
	sentences := ExtractExperienceSentences(text)
	assert.Len(t, sentences, 1, "只有含经历关键词的句子应被保留")
}

func TestExtractEntitiesCombined(t *testing.T) {
	text := "Jane Doe\njane@example.com\nSan Francisco, CA\nWorked as an engineer at Acme Inc. since 2019."
	entities := ExtractEntities(text)

	assert.Equal(t, []string{"Jane Doe"}, entities.Persons, "组合抽取应找到姓名")
	assert.Equal(t, []string{"jane@example.com"}, entities.Emails, "组合抽取应找到邮箱")
	assert.NotEmpty(t, entities.Locations, "组合抽取应找到地点")
	assert.NotEmpty(t, entities.Experience, "组合抽取应找到经历句子")
}

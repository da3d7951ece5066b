package parser

import (
	"regexp"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// 抽取用正则是解析器的承重墙，每个都是独立命名、可单测的函数。
var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// 电话：国际格式、带分隔符格式或裸10位数字
	phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[\s\-.]?)?(?:\(\d{2,4}\)[\s\-.]?)?\d{3}[\s\-.]?\d{3,4}[\s\-.]?\d{3,4}`)

	urlRe = regexp.MustCompile(`https?://[^\s,;)]+|www\.[^\s,;)]+`)

	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9\-_%]+)`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/([a-zA-Z0-9\-_]+)`)

	// 日期：YYYY、MM/YYYY、Month YYYY、YYYY-YYYY、YYYY - present
	dateRe = regexp.MustCompile(`(?i)\b(?:(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+)?(?:19|20)\d{2}(?:\s*[-–—to]+\s*(?:present|current|now|(?:19|20)\d{2}))?\b`)

	yearRangeRe = regexp.MustCompile(`(?i)((?:19|20)\d{2})\s*[-–—to]+\s*(present|current|now|(?:19|20)\d{2})`)

	// 地点：City, ST 或 City, Country
	locationRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?),\s*([A-Z]{2}|[A-Z][a-z]+)\b`)

	gpaRe = regexp.MustCompile(`(?i)gpa\s*:?\s*([0-4]\.\d{1,2})`)

	// 组织：以公司/机构后缀或大学关键词结尾的大写词组
	orgRe = regexp.MustCompile(`\b([A-Z][A-Za-z&.]+(?:\s[A-Z][A-Za-z&.]+){0,4}\s(?:Inc\.?|LLC|Ltd\.?|Corp\.?|Corporation|Company|Technologies|Solutions|Systems|Labs|University|College|Institute))\b`)

	// 人名：简历头部的两到三个首字母大写的词
	personRe = regexp.MustCompile(`^([A-Z][a-z]+(?:\s[A-Z]\.?)?(?:\s[A-Z][a-z]+){1,2})\s*$`)
)

// ExtractEmails 抽取所有邮箱地址
func ExtractEmails(text string) []string {
	return textutil.UniqueLower(emailRe.FindAllString(text, -1))
}

// ExtractPhones 抽取电话号码，过滤掉明显是年份区间的误匹配
func ExtractPhones(text string) []string {
	var phones []string
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := countDigits(m)
		if digits < 10 || digits > 15 {
			continue
		}
		phones = append(phones, strings.TrimSpace(m))
	}
	return uniqueStrings(phones)
}

// ExtractURLs 抽取URL
func ExtractURLs(text string) []string {
	return uniqueStrings(urlRe.FindAllString(text, -1))
}

// ExtractLinkedIn 抽取LinkedIn句柄，未找到返回空字符串
func ExtractLinkedIn(text string) string {
	if m := linkedinRe.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return ""
}

// ExtractGitHub 抽取GitHub主页URL，未找到返回空字符串
func ExtractGitHub(text string) string {
	if m := githubRe.FindStringSubmatch(text); len(m) > 1 {
		return "github.com/" + m[1]
	}
	return ""
}

// ExtractDates 抽取日期与年份区间表达
func ExtractDates(text string) []string {
	var dates []string
	for _, m := range dateRe.FindAllString(text, -1) {
		dates = append(dates, strings.TrimSpace(m))
	}
	return uniqueStrings(dates)
}

// ExtractLocations 抽取 "City, ST" 形式的地点
func ExtractLocations(text string) []string {
	var locs []string
	for _, m := range locationRe.FindAllString(text, -1) {
		locs = append(locs, strings.TrimSpace(m))
	}
	return uniqueStrings(locs)
}

// ExtractPersonName 从文本头部若干行里寻找候选人姓名
func ExtractPersonName(text string) string {
	lines := normalizeLines(text)
	limit := 5
	for i, line := range lines {
		if i >= limit {
			break
		}
		if line == "" || strings.Contains(line, "@") || strings.ContainsAny(line, "0123456789") {
			continue
		}
		if m := personRe.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// ExtractOrganizations 抽取组织机构名
func ExtractOrganizations(text string) []string {
	var orgs []string
	for _, m := range orgRe.FindAllStringSubmatch(text, -1) {
		orgs = append(orgs, m[1])
	}
	return uniqueStrings(orgs)
}

// educationSentenceKeywords 教育相关句子的过滤关键词
var educationSentenceKeywords = []string{
	"bachelor", "master", "phd", "ph.d", "degree", "university", "college",
	"institute", "graduated", "gpa", "diploma", "major",
}

// experienceSentenceKeywords 经历相关句子的过滤关键词
var experienceSentenceKeywords = []string{
	"worked", "managed", "led", "developed", "responsible", "experience",
	"engineer", "developer", "manager", "analyst", "intern", "built",
	"designed", "implemented", "launched", "maintained",
}

// ExtractEducationSentences 过滤出疑似教育经历的句子
func ExtractEducationSentences(text string) []string {
	return filterSentences(text, educationSentenceKeywords)
}

// ExtractExperienceSentences 过滤出疑似工作经历的片段
func ExtractExperienceSentences(text string) []string {
	return filterSentences(text, experienceSentenceKeywords)
}

func filterSentences(text string, keywords []string) []string {
	var out []string
	for _, s := range textutil.SplitSentences(text) {
		lower := strings.ToLower(s)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// ExtractEntities 组合全部实体抽取器
func ExtractEntities(text string) Entities {
	return Entities{
		Persons:       firstNonEmpty(ExtractPersonName(text)),
		Organizations: ExtractOrganizations(text),
		Dates:         ExtractDates(text),
		Locations:     ExtractLocations(text),
		Emails:        ExtractEmails(text),
		Phones:        ExtractPhones(text),
		URLs:          ExtractURLs(text),
		Education:     ExtractEducationSentences(text),
		Experience:    ExtractExperienceSentences(text),
	}
}

func firstNonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func uniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// 职位：以常见职位名词结尾的大写词组
	jobTitleRe = regexp.MustCompile(`\b([A-Z][A-Za-z+#./]*(?:\s[A-Za-z+#./&]+){0,4}\s?(?:Manager|Engineer|Developer|Analyst|Designer|Architect|Consultant|Scientist|Director|Lead|Specialist|Administrator|Intern))\b`)

	// 公司：at 之后或逗号之后的大写词组
	companyAfterAtRe = regexp.MustCompile(`(?i)\bat\s+([A-Z][A-Za-z&.\- ]{1,40}?)(?:[,.\n(]|$)`)
	companyCommaRe   = regexp.MustCompile(`,\s*([A-Z][A-Za-z&.\- ]{1,40}?)(?:[,.\n(]|$)`)

	bulletRe = regexp.MustCompile(`^\s*[•\-*]\s*(.+)$`)

	expEntrySplitRe = regexp.MustCompile(`(?i)^((?:19|20)\d{2}|[A-Z].*(?:manager|engineer|developer|analyst|designer|architect|consultant|scientist|director|lead|specialist|intern))`)
)

// ParseExperience 从经历章节文本解析出有序的工作经历（保持简历顺序）。
// nowYear 用于解析 "present" 结束日期。
func ParseExperience(sectionText string, nowYear int) []Experience {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var entries []Experience
	for _, block := range splitEntryBlocks(sectionText, expEntrySplitRe) {
		entry := parseExperienceBlock(block, nowYear)
		if entry.Title == "" && entry.Company == "" && entry.Dates[0] == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseExperienceBlock(block string, nowYear int) Experience {
	entry := Experience{Description: strings.TrimSpace(block)}

	if m := jobTitleRe.FindStringSubmatch(block); len(m) > 1 {
		entry.Title = strings.TrimSpace(m[1])
	}

	if m := companyAfterAtRe.FindStringSubmatch(block); len(m) > 1 {
		entry.Company = strings.TrimSpace(m[1])
	} else if entry.Title != "" {
		// 职位后面跟逗号的形式: "Software Engineer, Acme Corp"
		rest := block[strings.Index(block, entry.Title)+len(entry.Title):]
		if m := companyCommaRe.FindStringSubmatch(rest); len(m) > 1 {
			entry.Company = strings.TrimSpace(m[1])
		}
	}

	if m := yearRangeRe.FindStringSubmatch(block); len(m) > 2 {
		entry.Dates[0] = m[1]
		entry.Dates[1] = strings.ToLower(m[2])
	}

	if m := locationRe.FindStringSubmatch(block); len(m) > 0 {
		entry.Location = strings.TrimSpace(m[0])
	}

	for _, line := range normalizeLines(block) {
		if m := bulletRe.FindStringSubmatch(line); len(m) > 1 {
			entry.BulletPoints = append(entry.BulletPoints, strings.TrimSpace(m[1]))
		}
	}

	entry.DurationMonths = DurationMonths(entry.Dates[0], entry.Dates[1], nowYear)

	return entry
}

// DurationMonths 计算经历时长（月）。(end-start)*12，"present"按nowYear解析，
// 解析失败返回0，结果永远非负。
func DurationMonths(start, end string, nowYear int) int {
	startYear, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0
	}

	endYear := 0
	switch strings.ToLower(strings.TrimSpace(end)) {
	case "present", "current", "now":
		endYear = nowYear
	default:
		endYear, err = strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return 0
		}
	}

	months := (endYear - startYear) * 12
	if months < 0 {
		return 0
	}
	return months
}

// TotalExperienceYears 汇总全部经历时长，换算为年
func TotalExperienceYears(entries []Experience) float64 {
	total := 0
	for _, e := range entries {
		total += e.DurationMonths
	}
	return float64(total) / 12.0
}

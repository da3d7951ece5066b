package parser

import (
	"regexp"
	"strings"
)

var (
	degreeRe = regexp.MustCompile(`(?i)\b((?:bachelor|master|doctor)(?:'?s)?(?:\s+of\s+[a-z]+(?:\s+in\s+[a-z ]+?)?)?|ph\.?d\.?|b\.?s\.?c?\.?|m\.?s\.?c?\.?|b\.?tech|m\.?tech|b\.?e\.?|m\.?e\.?|mba|associate(?:'?s)?(?:\s+degree)?|diploma)\b(?:\s+in\s+([A-Za-z][A-Za-z ]+?))?(?:[,.\n]|$)`)

	institutionRe = regexp.MustCompile(`\b([A-Z][A-Za-z&.'\-]+(?:\s[A-Za-z&.'\-]+){0,5}\s(?:University|College|Institute|School|Academy)|(?:University|Institute)\s+of\s+[A-Z][A-Za-z ]+)\b`)

	// 教育条目的分割信号：空行、以年份开头的行、机构关键词开头的大写行
	eduEntrySplitRe = regexp.MustCompile(`(?i)^((?:19|20)\d{2}|[A-Z].*(?:university|college|institute|school)|bachelor|master|ph\.?d|b\.s|m\.s)`)
)

// ParseEducation 从教育章节文本解析出有序的教育经历。
// 条目按空行、年份行头或机构关键词切分，每个条目分别探测
// 学位、机构、年份区间和GPA，缺失字段一律为空字符串。
func ParseEducation(sectionText string) []Education {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var entries []Education
	for _, block := range splitEntryBlocks(sectionText, eduEntrySplitRe) {
		entry := parseEducationBlock(block)
		if entry.Degree == "" && entry.Institution == "" && entry.Dates[0] == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseEducationBlock(block string) Education {
	entry := Education{Description: strings.TrimSpace(block)}

	if m := degreeRe.FindStringSubmatch(block); len(m) > 1 {
		degree := strings.TrimSpace(m[1])
		if len(m) > 2 && m[2] != "" {
			degree = degree + " in " + strings.TrimSpace(m[2])
		}
		entry.Degree = degree
	}

	if m := institutionRe.FindStringSubmatch(block); len(m) > 1 {
		entry.Institution = strings.TrimSpace(m[1])
	}

	if m := yearRangeRe.FindStringSubmatch(block); len(m) > 2 {
		entry.Dates[0] = m[1]
		entry.Dates[1] = strings.ToLower(m[2])
	} else if m := regexp.MustCompile(`\b(19|20)\d{2}\b`).FindString(block); m != "" {
		entry.Dates[1] = m
	}

	if m := gpaRe.FindStringSubmatch(block); len(m) > 1 {
		entry.GPA = m[1]
	}

	return entry
}

// splitEntryBlocks 将章节文本按空行或条目信号行切分成块
func splitEntryBlocks(text string, signal *regexp.Regexp) []string {
	lines := normalizeLines(text)

	var blocks []string
	var buf []string

	flush := func() {
		if len(buf) > 0 {
			blocks = append(blocks, strings.Join(buf, "\n"))
			buf = nil
		}
	}

	for _, line := range lines {
		if line == "" {
			flush()
			continue
		}
		// 信号行且缓冲区已有内容时开启新块
		if len(buf) > 0 && signal.MatchString(line) {
			flush()
		}
		buf = append(buf, line)
	}
	flush()

	return blocks
}

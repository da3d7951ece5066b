package parser

import (
	"regexp"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

var (
	techListRe = regexp.MustCompile(`(?i)(?:technologies|tech stack|built with|stack|using)\s*:?\s*([^\n.]+)`)

	certNameRe   = regexp.MustCompile(`(?i)^(.+?)(?:\s*[-,(]\s*|$)`)
	certIssuerRe = regexp.MustCompile(`(?i)\b(?:by|from|issued by)\s+([A-Z][A-Za-z &.\-]{2,40})`)
	certDateRe   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ParseProjects 从项目章节解析项目列表。每个空行分隔的块视为一个项目，
// 首行取项目名，技术栈行取技术集合，列表行作为特性。
func ParseProjects(sectionText string) []Project {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var projects []Project
	for _, block := range splitBlankLineBlocks(sectionText) {
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}

		proj := Project{Description: strings.TrimSpace(block)}

		// 首行通常是 "Name - description" 或 "Name: description"
		head := lines[0]
		if idx := strings.IndexAny(head, "-:–"); idx > 0 {
			proj.Name = strings.TrimSpace(head[:idx])
		} else {
			proj.Name = strings.TrimSpace(head)
		}

		if m := techListRe.FindStringSubmatch(block); len(m) > 1 {
			for _, t := range strings.Split(m[1], ",") {
				t = strings.TrimSpace(strings.Trim(t, ".;"))
				if t != "" {
					proj.Technologies = append(proj.Technologies, strings.ToLower(t))
				}
			}
		}
		// 技术栈行缺失时退化为词表技能抽取
		if len(proj.Technologies) == 0 {
			proj.Technologies = ExtractSkills(block)
		}
		proj.Technologies = textutil.UniqueLower(proj.Technologies)

		if urls := ExtractURLs(block); len(urls) > 0 {
			proj.URL = urls[0]
		}

		for _, line := range lines[1:] {
			if m := bulletRe.FindStringSubmatch(line); len(m) > 1 {
				proj.Features = append(proj.Features, strings.TrimSpace(m[1]))
			}
		}

		projects = append(projects, proj)
	}
	return projects
}

// ParseCertifications 从证书章节解析证书列表，每个非空行一条
func ParseCertifications(sectionText string) []Certification {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var certs []Certification
	for _, line := range nonEmptyLines(sectionText) {
		line = strings.TrimLeft(line, "•-* \t")
		if line == "" {
			continue
		}

		cert := Certification{Description: line}

		if m := certNameRe.FindStringSubmatch(line); len(m) > 1 {
			cert.Name = strings.TrimSpace(m[1])
		} else {
			cert.Name = line
		}
		if m := certIssuerRe.FindStringSubmatch(line); len(m) > 1 {
			cert.Issuer = strings.TrimSpace(m[1])
		}
		if m := certDateRe.FindString(line); m != "" {
			cert.Date = m
		}

		certs = append(certs, cert)
	}
	return certs
}

func splitBlankLineBlocks(text string) []string {
	var blocks []string
	var buf []string
	for _, line := range normalizeLines(text) {
		if line == "" {
			if len(buf) > 0 {
				blocks = append(blocks, strings.Join(buf, "\n"))
				buf = nil
			}
			continue
		}
		buf = append(buf, line)
	}
	if len(buf) > 0 {
		blocks = append(blocks, strings.Join(buf, "\n"))
	}
	return blocks
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range normalizeLines(text) {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

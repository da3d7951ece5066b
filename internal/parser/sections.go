package parser

import (
	"regexp"
	"strings"
)

// sectionHeaderPatterns 七个章节的标题识别模式。
// 行内匹配到任意一个模式即打开新的当前章节，后续非空行都归入该章节。
var sectionHeaderPatterns = map[string]*regexp.Regexp{
	SectionContact:        regexp.MustCompile(`(?i)^\s*(contact( information| info)?|personal (information|details))\s*:?\s*$`),
	SectionSummary:        regexp.MustCompile(`(?i)^\s*(professional summary|summary|objective|profile|about me?)\s*:?\s*$`),
	SectionExperience:     regexp.MustCompile(`(?i)^\s*((work|professional|employment)\s+(experience|history)|experience|career history)\s*:?\s*$`),
	SectionEducation:      regexp.MustCompile(`(?i)^\s*(education(al)?( background| qualifications)?|academic (background|qualifications))\s*:?\s*$`),
	SectionSkills:         regexp.MustCompile(`(?i)^\s*((technical |core |key )?skills( & abilities)?|technologies|competencies)\s*:?\s*$`),
	SectionProjects:       regexp.MustCompile(`(?i)^\s*((personal |key |selected )?projects?|portfolio)\s*:?\s*$`),
	SectionCertifications: regexp.MustCompile(`(?i)^\s*(certifications?|licenses?( & certifications?)?|courses)\s*:?\s*$`),
}

// DetectSections 按行扫描检测章节。返回的映射永远包含全部七个键；
// 第一个章节标题之前的行不归属任何章节。
func DetectSections(text string) map[string]string {
	sections := make(map[string]string, len(SectionKeys))
	for _, key := range SectionKeys {
		sections[key] = ""
	}

	var current string
	var buf strings.Builder

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	for _, line := range normalizeLines(text) {
		if key, ok := matchSectionHeader(line); ok {
			flush()
			current = key
			// 同一章节出现两次时，续写已有内容
			if sections[key] != "" {
				buf.WriteString(sections[key])
				buf.WriteString("\n")
			}
			continue
		}
		if current == "" || line == "" {
			if current != "" && line == "" {
				buf.WriteString("\n")
			}
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	flush()

	return sections
}

func matchSectionHeader(line string) (string, bool) {
	if line == "" || len(line) > 60 {
		return "", false
	}
	for _, key := range SectionKeys {
		if sectionHeaderPatterns[key].MatchString(line) {
			return key, true
		}
	}
	return "", false
}

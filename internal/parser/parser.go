// Package parser 将非结构化的简历文本解析为结构化的候选人记录。
// 解析流程：清洗 -> 章节检测 -> 实体抽取 -> 教育/经历/项目/证书
// 解析 -> 技能抽取 -> 质量指标。任何单个抽取环节失败只会让对应
// 字段取默认值，不会中断整体解析。
package parser

import (
	"strings"
	"time"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// DefaultRawTextLimit 候选人记录中保留的原始文本上限（字符）
const DefaultRawTextLimit = 5000

// Parser 简历解析器。无跨请求状态，可并发使用。
type Parser struct {
	rawTextLimit int
	now          func() time.Time
}

// Option 解析器配置选项
type Option func(*Parser)

// WithRawTextLimit 设置候选人记录中原始文本的截断长度
func WithRawTextLimit(limit int) Option {
	return func(p *Parser) {
		if limit > 0 {
			p.rawTextLimit = limit
		}
	}
}

// WithClock 注入时钟，用于解析 "present" 结束日期（测试用）
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// New 创建简历解析器
func New(options ...Option) *Parser {
	p := &Parser{
		rawTextLimit: DefaultRawTextLimit,
		now:          time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse 将简历文本解析为候选人记录。
// 返回的记录永远是完整形态：七个章节键齐全，缺失字段为零值。
func (p *Parser) Parse(rawText string) *Resume {
	nowYear := p.now().Year()

	resume := &Resume{
		RawText:  textutil.Truncate(rawText, p.rawTextLimit),
		Sections: DetectSections(rawText),
	}

	resume.Entities = ExtractEntities(rawText)
	resume.PersonalInfo = p.assemblePersonalInfo(rawText, resume.Entities)

	// 章节缺失时回退到全篇文本，保证旧式无标题简历也能解析出条目
	eduText := resume.Sections[SectionEducation]
	if eduText == "" {
		eduText = strings.Join(resume.Entities.Education, "\n")
	}
	resume.Education = ParseEducation(eduText)

	expText := resume.Sections[SectionExperience]
	if expText == "" {
		expText = strings.Join(resume.Entities.Experience, "\n")
	}
	resume.Experience = ParseExperience(expText, nowYear)

	resume.Certifications = ParseCertifications(resume.Sections[SectionCertifications])
	resume.Projects = ParseProjects(resume.Sections[SectionProjects])

	resume.Skills = ExtractSkills(rawText)
	resume.Entities.Skills = resume.Skills

	resume.QualityMetrics = ComputeQualityMetrics(rawText)

	logger.Debug().
		Int("sections_found", countNonEmptySections(resume.Sections)).
		Int("skills", len(resume.Skills)).
		Int("experience_entries", len(resume.Experience)).
		Int("education_entries", len(resume.Education)).
		Msg("简历解析完成")

	return resume
}

// assemblePersonalInfo 汇总个人信息，未找到的字段保持空字符串
func (p *Parser) assemblePersonalInfo(rawText string, entities Entities) PersonalInfo {
	info := PersonalInfo{
		LinkedIn:  ExtractLinkedIn(rawText),
		Portfolio: ExtractGitHub(rawText),
	}
	if len(entities.Persons) > 0 {
		info.Name = entities.Persons[0]
	}
	if len(entities.Emails) > 0 {
		info.Email = entities.Emails[0]
	}
	if len(entities.Phones) > 0 {
		info.Phone = entities.Phones[0]
	}
	if len(entities.Locations) > 0 {
		info.Location = entities.Locations[0]
	}
	if info.Portfolio == "" && len(entities.URLs) > 0 {
		// LinkedIn之外的第一个URL当作作品集
		for _, u := range entities.URLs {
			if !strings.Contains(strings.ToLower(u), "linkedin.com") {
				info.Portfolio = u
				break
			}
		}
	}
	return info
}

func countNonEmptySections(sections map[string]string) int {
	n := 0
	for _, v := range sections {
		if v != "" {
			n++
		}
	}
	return n
}

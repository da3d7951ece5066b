package parser

import "github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"

// 固定的七个章节键。章节映射永远包含全部七个键，缺失章节对应空字符串。
const (
	SectionContact        = "contact"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

// SectionKeys 按固定顺序列出七个章节键
var SectionKeys = []string{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionProjects,
	SectionCertifications,
}

// Resume 候选人记录：简历文本的结构化投影
type Resume struct {
	RawText        string            `json:"raw_text"` // 截断到RawTextLimit
	Sections       map[string]string `json:"sections"`
	Entities       Entities          `json:"entities"`
	PersonalInfo   PersonalInfo      `json:"personal_info"`
	Education      []Education       `json:"education"`
	Experience     []Experience      `json:"experience"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`
	Skills         []string          `json:"skills"` // 规范化小写技能集合
	QualityMetrics QualityMetrics    `json:"quality_metrics"`
}

// Entities 从简历文本中抽取的并列实体列表
type Entities struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
	Locations     []string `json:"locations"`
	Emails        []string `json:"emails"`
	Phones        []string `json:"phones"`
	URLs          []string `json:"urls"`
	Education     []string `json:"education"`  // 候选教育相关句子
	Experience    []string `json:"experience"` // 候选经历相关片段
	Skills        []string `json:"skills"`
}

// PersonalInfo 个人信息，未找到的字段为空字符串
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

// Education 单条教育经历
type Education struct {
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	Dates       [2]string `json:"dates"` // [start, end]
	GPA         string    `json:"gpa"`
	Description string    `json:"description"`
}

// Experience 单条工作经历，保持简历中的出现顺序
type Experience struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Dates          [2]string `json:"dates"` // [start, end]
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	BulletPoints   []string  `json:"bullet_points"`
	DurationMonths int       `json:"duration_months"` // 永远>=0，解析失败为0
}

// Certification 单条证书
type Certification struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Project 单个项目
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Features     []string `json:"features"`
}

// QualityMetrics 简历文本质量指标
type QualityMetrics struct {
	WordCount      int                         `json:"word_count"`
	CharCount      int                         `json:"char_count"`
	SentenceCount  int                         `json:"sentence_count"`
	UniqueWords    int                         `json:"unique_words"`
	WordDiversity  float64                     `json:"word_diversity"` // [0,1]
	GrammarScore   float64                     `json:"grammar_score"`  // [0,1]
	KeywordDensity float64                     `json:"keyword_density"`
	Readability    textutil.ReadabilityMetrics `json:"readability"`
}

// Package lexicon 维护静态的技能词表与行业关键词集合。
// 词表在进程启动时构建一次，之后只读共享，解析器和匹配引擎
// 都基于同一份词表做抽取与归类。
package lexicon

import "strings"

// Category 技能类别
type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryTools     Category = "tools"
	CategorySoft      Category = "soft_skills"
	CategoryIndustry  Category = "industry"
)

// Industry 行业标识，固定集合
type Industry string

const (
	IndustrySoftware  Industry = "software_engineering"
	IndustryData      Industry = "data_science"
	IndustryCloud     Industry = "cloud_devops"
	IndustryProduct   Industry = "product_management"
	IndustryMarketing Industry = "marketing"
	IndustryGeneral   Industry = "general"
)

// skillsByCategory 分类的技能词表。全部小写，解析时按词边界匹配。
var skillsByCategory = map[Category][]string{
	CategoryTechnical: {
		"python", "java", "javascript", "typescript", "go", "golang", "c++",
		"c#", "ruby", "php", "swift", "kotlin", "rust", "scala", "r",
		"sql", "html", "css", "react", "angular", "vue", "node.js", "nodejs",
		"django", "flask", "spring", "express", "fastapi", "graphql", "rest",
		"machine learning", "deep learning", "data science", "nlp",
		"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn",
		"pandas", "numpy", "data analysis", "statistics", "algorithms",
		"data structures", "microservices", "distributed systems", "api",
	},
	CategoryTools: {
		"git", "docker", "kubernetes", "jenkins", "terraform", "ansible",
		"aws", "azure", "gcp", "linux", "bash", "jira", "confluence",
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "kafka",
		"rabbitmq", "spark", "hadoop", "airflow", "tableau", "power bi",
		"excel", "figma", "photoshop", "grafana", "prometheus", "ci/cd",
		"github", "gitlab", "selenium", "postman",
	},
	CategorySoft: {
		"communication", "leadership", "teamwork", "problem solving",
		"critical thinking", "time management", "adaptability", "creativity",
		"collaboration", "presentation", "negotiation", "mentoring",
		"project management", "agile", "scrum", "kanban", "stakeholder management",
	},
	CategoryIndustry: {
		"fintech", "healthcare", "e-commerce", "saas", "banking", "insurance",
		"retail", "logistics", "telecom", "gaming", "edtech", "advertising",
		"seo", "sem", "content marketing", "social media", "crm", "erp",
		"product management", "ux", "ui", "a/b testing", "analytics",
	},
}

// industryKeywords 每个行业的关键词集合，用于行业识别与行业契合度
var industryKeywords = map[Industry][]string{
	IndustrySoftware: {
		"software", "developer", "engineering", "backend", "frontend",
		"full stack", "api", "microservices", "java", "python", "go",
		"javascript", "react", "code", "programming", "agile", "git",
	},
	IndustryData: {
		"data", "machine learning", "analytics", "statistics", "python",
		"sql", "model", "pandas", "tensorflow", "pytorch", "visualization",
		"big data", "etl", "data science", "deep learning", "nlp",
	},
	IndustryCloud: {
		"cloud", "aws", "azure", "gcp", "devops", "kubernetes", "docker",
		"terraform", "infrastructure", "ci/cd", "deployment", "monitoring",
		"linux", "automation", "sre", "reliability",
	},
	IndustryProduct: {
		"product", "roadmap", "stakeholder", "requirements", "user story",
		"agile", "scrum", "backlog", "market research", "prioritization",
		"metrics", "kpi", "user experience", "a/b testing",
	},
	IndustryMarketing: {
		"marketing", "seo", "sem", "campaign", "brand", "content",
		"social media", "advertising", "conversion", "engagement",
		"email marketing", "crm", "analytics", "growth",
	},
}

// lookup 技能 -> 类别 的反向索引
var lookup map[string]Category

func init() {
	lookup = make(map[string]Category)
	for cat, skills := range skillsByCategory {
		for _, s := range skills {
			lookup[s] = cat
		}
	}
}

// AllSkills 返回全量技能词表（所有类别合并）
func AllSkills() []string {
	var all []string
	for _, skills := range skillsByCategory {
		all = append(all, skills...)
	}
	return all
}

// SkillsInCategory 返回指定类别的技能词表
func SkillsInCategory(cat Category) []string {
	return skillsByCategory[cat]
}

// CategoryOf 查询技能所属类别，未知技能返回false
func CategoryOf(skill string) (Category, bool) {
	cat, ok := lookup[strings.ToLower(strings.TrimSpace(skill))]
	return cat, ok
}

// Categories 将技能集合映射为其类别集合，未知技能被忽略
func Categories(skills []string) map[Category]struct{} {
	cats := make(map[Category]struct{})
	for _, s := range skills {
		if cat, ok := CategoryOf(s); ok {
			cats[cat] = struct{}{}
		}
	}
	return cats
}

// IndustryKeywords 返回指定行业的关键词集合
func IndustryKeywords(ind Industry) []string {
	return industryKeywords[ind]
}

// DetectableIndustries 返回可识别的行业列表（不含general）
func DetectableIndustries() []Industry {
	return []Industry{IndustrySoftware, IndustryData, IndustryCloud, IndustryProduct, IndustryMarketing}
}

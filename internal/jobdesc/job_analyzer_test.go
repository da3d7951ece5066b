package jobdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
)

func TestExtractRequiredYears(t *testing.T) {
	cases := map[string]int{
		"5+ years of experience with Python": 5,
		"at least 3 years experience":        3,
		"experience of 7 years in backend":   7,
		"no years mentioned at all":          0,
	}
	for text, want := range cases {
		assert.Equal(t, want, ExtractRequiredYears(text), "年限抽取不符: %q", text)
	}
}

func TestExtractRequiredYearsRangeTakesUpperBound(t *testing.T) {
	assert.Equal(t, 5, ExtractRequiredYears("3-5 years of experience required"),
		"年限区间应取上界")
	assert.Equal(t, 8, ExtractRequiredYears("5 - 8 years experience in Go"),
		"带空格的区间同样应取上界")
}

func TestExtractEducationLevel(t *testing.T) {
	assert.Equal(t, "phd", ExtractEducationLevel("PhD preferred"))
	assert.Equal(t, "master", ExtractEducationLevel("Master's degree in CS"))
	assert.Equal(t, "bachelor", ExtractEducationLevel("Bachelor degree required"))
	assert.Equal(t, "", ExtractEducationLevel("no degree needed"))
}

func TestExtractEducationLevelPrecedence(t *testing.T) {
	// 同时出现多个学历时取最高一级
	assert.Equal(t, "master", ExtractEducationLevel("Bachelor or Master degree accepted"))
	assert.Equal(t, "phd", ExtractEducationLevel("Master required, PhD preferred"))
}

func TestExtractRequiredCertifications(t *testing.T) {
	certs := ExtractRequiredCertifications("Requires AWS Certified Solutions Architect, and Python.")
	assert.Contains(t, certs, "certified solutions architect", "应抽取出证书名")

	assert.Empty(t, ExtractRequiredCertifications("no credentials needed"), "无证书文本应返回空结果")
}

func TestDetectIndustries(t *testing.T) {
	jd := "We build software for developers. Python and React programming, agile teams."
	industries := DetectIndustries(jd)
	assert.Contains(t, industries, lexicon.IndustrySoftware, "命中三个以上关键词的行业应入选")
}

func TestDetectIndustriesDefaultGeneral(t *testing.T) {
	industries := DetectIndustries("We need a friendly barista to brew espresso and chat with regulars.")
	assert.Equal(t, []lexicon.Industry{lexicon.IndustryGeneral}, industries,
		"没有行业达标时应返回general")
}

func TestDetectRequiredLevel(t *testing.T) {
	cases := map[string]lexicon.Level{
		"Senior Backend Engineer":          lexicon.LevelSenior,
		"Director of Engineering":          lexicon.LevelExecutive,
		"Junior developer wanted":          lexicon.LevelEntry,
		"Mid-level position available":     lexicon.LevelMid,
		"Backend position, no level named": lexicon.LevelMid,
	}
	for text, want := range cases {
		assert.Equal(t, want, DetectRequiredLevel(text), "资历等级识别不符: %q", text)
	}
}

func TestDetectRequiredLevelHighestWins(t *testing.T) {
	// 同时出现senior与junior时按从高到低的优先级取senior
	assert.Equal(t, lexicon.LevelSenior, DetectRequiredLevel("Senior role mentoring junior engineers"))
}

func TestAnalyzeFullJobDescription(t *testing.T) {
	jd := `Senior Backend Engineer

We are a software company building cloud infrastructure.
Requirements:
- 5+ years of experience with Python and Go
- Bachelor's degree in Computer Science, required
- AWS Certified Solutions Architect, preferred
- Hands-on with Docker, Kubernetes and AWS`

	job := NewAnalyzer(0).Analyze(jd)

	for _, skill := range []string{"python", "go", "docker", "kubernetes", "aws"} {
		assert.Contains(t, job.Skills, skill, "岗位技能缺少: %s", skill)
	}
	assert.NotEmpty(t, job.Keywords, "应提取出关键词")
	assert.Equal(t, 5, job.Requirements.ExperienceYears, "要求年限不符")
	assert.Equal(t, "bachelor", job.Requirements.EducationLevel, "要求学历不符")
	assert.Equal(t, lexicon.LevelSenior, job.RequiredLevel, "要求资历不符")
	assert.Contains(t, job.Industry, lexicon.IndustrySoftware, "应识别出软件行业")
	assert.Contains(t, job.Industry, lexicon.IndustryCloud, "应识别出云行业")
	assert.Equal(t, jd, job.RawText, "原始文本应原样保留")

	assert.Equal(t, "bachelor", job.EducationRequirements.Degree)
	assert.True(t, job.EducationRequirements.Required, "出现required时学历应为硬性要求")
	assert.Equal(t, "computer science", job.EducationRequirements.Field, "学历专业不符")
}

func TestAnalyzeEmptyText(t *testing.T) {
	job := NewAnalyzer(10).Analyze("")
	assert.Empty(t, job.Skills, "空JD不应有技能")
	assert.Equal(t, 0, job.Requirements.ExperienceYears)
	assert.Equal(t, []lexicon.Industry{lexicon.IndustryGeneral}, job.Industry)
	assert.Equal(t, lexicon.LevelMid, job.RequiredLevel, "空JD应取默认mid等级")
}

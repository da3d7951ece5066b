package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/jobdesc"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/lexicon"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/parser"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

const (
	// neutralSkillsPrior JD未提取到任何技能时skills_match的中性先验
	neutralSkillsPrior = 0.7
	// neutralNoSignal 简历侧完全缺失某类信号时的保守基线
	neutralNoSignal = 0.3
	// missingSkillsLimit missing_skills最多保留的条目数
	missingSkillsLimit = 10
)

// SkillsBreakdown skills_match的得分分解与匹配明细
type SkillsBreakdown struct {
	Score   float64
	Matched []string
	Missing []string
}

// SkillsScore 技能匹配：精确命中 + 部分匹配（相似度>=0.7）+ 类别覆盖。
// 部分匹配项对已精确命中的技能同样计分，总分截断到1.0。
// JD侧技能集为空时返回中性先验0.7。
func SkillsScore(resumeSkills, jobSkills []string) SkillsBreakdown {
	if len(jobSkills) == 0 {
		return SkillsBreakdown{Score: neutralSkillsPrior}
	}

	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[strings.ToLower(s)] = struct{}{}
	}

	var matched, missing []string
	exactHits := 0
	partialSum := 0.0
	for _, j := range jobSkills {
		jl := strings.ToLower(j)
		_, exact := resumeSet[jl]
		if exact {
			exactHits++
		}

		best := 0.0
		for _, r := range resumeSkills {
			if sim := textutil.Similarity(jl, r); sim > best {
				best = sim
			}
		}
		if best >= textutil.PartialMatchThreshold {
			partialSum += best
			matched = append(matched, jl)
		} else if !exact {
			missing = append(missing, jl)
		}
	}

	n := float64(len(jobSkills))
	score := float64(exactHits)/n + partialSum/n*0.7

	resumeCats := lexicon.Categories(resumeSkills)
	jobCats := lexicon.Categories(jobSkills)
	if len(jobCats) > 0 {
		covered := 0
		for cat := range jobCats {
			if _, ok := resumeCats[cat]; ok {
				covered++
			}
		}
		score += float64(covered) / float64(len(jobCats)) * 0.3
	}

	sort.Strings(matched)
	sort.Strings(missing)
	if len(missing) > missingSkillsLimit {
		missing = missing[:missingSkillsLimit]
	}

	return SkillsBreakdown{
		Score:   clamp01(score),
		Matched: textutil.UniqueLower(matched),
		Missing: textutil.UniqueLower(missing),
	}
}

// ExperienceScore 经历相关性：工作年限是否达标、职位名称与JD标题的
// 相似度（阈值0.6）、行业是否吻合，三项加权。
func ExperienceScore(experience []parser.Experience, job *jobdesc.Job) float64 {
	years := parser.TotalExperienceYears(experience)

	duration := 0.0
	if required := job.Requirements.ExperienceYears; required > 0 {
		duration = math.Min(1, years/float64(required))
	} else {
		// JD未声明年限时按5年满额折算
		duration = math.Min(1, years/5.0)
	}

	title := 0.0
	jdTitle := firstNonEmptyLine(job.RawText)
	if jdTitle != "" {
		for _, exp := range experience {
			if exp.Title == "" {
				continue
			}
			sim := textutil.Similarity(exp.Title, jdTitle)
			if sim >= textutil.TitleMatchThreshold {
				title = 1.0
				break
			}
			if sim > title {
				title = sim
			}
		}
	}

	industry := neutralNoSignal
	resumeIndustries := make(map[lexicon.Industry]struct{})
	for _, ind := range jobdesc.DetectIndustries(rawExperienceText(experience)) {
		resumeIndustries[ind] = struct{}{}
	}
	for _, ind := range job.Industry {
		if _, ok := resumeIndustries[ind]; ok {
			industry = 1.0
			break
		}
	}

	return clamp01(0.4*duration + 0.35*title + 0.25*industry)
}

// EducationScore 教育匹配：学位0.5 + 专业0.3 + 院校0.2。
// JD未声明学历要求时，有学历记录给0.7，否则0.5。
func EducationScore(education []parser.Education, job *jobdesc.Job) float64 {
	required := job.Requirements.EducationLevel
	if required == "" {
		if len(education) > 0 {
			return 0.7
		}
		return 0.5
	}
	if len(education) == 0 {
		return 0.0
	}

	bestRank := 0
	for _, edu := range education {
		if r := lexicon.DegreeRank(edu.Degree); r > bestRank {
			bestRank = r
		}
	}
	requiredRank := lexicon.DegreeRank(required)

	score := 0.0
	switch {
	case bestRank >= requiredRank && bestRank > 0:
		score += 0.5
	case bestRank == requiredRank-1:
		score += 0.25
	}

	if field := job.EducationRequirements.Field; field != "" {
		for _, edu := range education {
			haystack := strings.ToLower(edu.Degree + " " + edu.Description)
			if strings.Contains(haystack, field) {
				score += 0.3
				break
			}
		}
	}

	for _, edu := range education {
		if strings.TrimSpace(edu.Institution) != "" {
			score += 0.2
			break
		}
	}

	return clamp01(score)
}

// KeywordSimilarityScore 简历与JD全文的TF余弦相似度，经S型整形
func KeywordSimilarityScore(resumeText, jdText string) float64 {
	return sigmoid(textutil.KeywordCosine(resumeText, jdText))
}

// CertificationsScore 证书名称与JD要求技能有交集的证书占比。
// 简历无证书时：JD也未要求证书给保守基线，否则0。
func CertificationsScore(certs []parser.Certification, job *jobdesc.Job) float64 {
	if len(certs) == 0 {
		if len(job.Requirements.Certifications) == 0 {
			return neutralNoSignal
		}
		return 0.0
	}

	required := make(map[string]struct{}, len(job.Requirements.SkillsRequired))
	for _, s := range job.Requirements.SkillsRequired {
		required[strings.ToLower(s)] = struct{}{}
	}

	relevant := 0
	for _, cert := range certs {
		for _, tok := range textutil.Tokenize(cert.Name) {
			if _, ok := required[tok]; ok {
				relevant++
				break
			}
		}
	}
	return clamp01(float64(relevant) / float64(len(certs)))
}

// ProjectsScore 每个项目的技术栈与JD技能的重叠占比，外加描述命中
// JD关键词的加成，取所有项目的平均值。
func ProjectsScore(projects []parser.Project, job *jobdesc.Job) float64 {
	if len(projects) == 0 {
		return neutralNoSignal
	}
	if len(job.Skills) == 0 {
		return 0.5
	}

	jobSet := make(map[string]struct{}, len(job.Skills))
	for _, s := range job.Skills {
		jobSet[strings.ToLower(s)] = struct{}{}
	}

	total := 0.0
	for _, proj := range projects {
		overlap := 0
		for _, tech := range proj.Technologies {
			if _, ok := jobSet[strings.ToLower(tech)]; ok {
				overlap++
			}
		}
		score := float64(overlap) / float64(len(job.Skills))

		descLower := strings.ToLower(proj.Description)
		for _, kw := range job.Keywords {
			if strings.Contains(descLower, kw) {
				score += 0.1
				break
			}
		}
		total += clamp01(score)
	}
	return clamp01(total / float64(len(projects)))
}

// FormattingScore 版式质量：词数区间 + 可读性区间 + 章节覆盖度
func FormattingScore(resume *parser.Resume) float64 {
	qm := resume.QualityMetrics

	wordBand := 0.4
	switch {
	case qm.WordCount >= 400 && qm.WordCount <= 800:
		wordBand = 1.0
	case qm.WordCount >= 300 && qm.WordCount <= 1000:
		wordBand = 0.7
	}

	readBand := 0.4
	fre := qm.Readability.FleschReadingEase
	switch {
	case fre >= 30 && fre <= 70:
		readBand = 1.0
	case fre >= 20 && fre <= 80:
		readBand = 0.7
	}

	covered := 0
	for _, key := range parser.SectionKeys {
		if strings.TrimSpace(resume.Sections[key]) != "" {
			covered++
		}
	}
	coverage := float64(covered) / float64(len(parser.SectionKeys))

	return clamp01(0.4*wordBand + 0.3*readBand + 0.3*coverage)
}

// SeniorityScore 资历阶梯距离打分：相等1.0，差一级0.7，差两级0.4，其余0.1
func SeniorityScore(candidate, required lexicon.Level) float64 {
	diff := lexicon.LadderRank(candidate) - lexicon.LadderRank(required)
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.4
	}
	return 0.1
}

// ExperienceLevelFromYears 从总工作年限推导候选人资历等级
func ExperienceLevelFromYears(years float64) lexicon.Level {
	switch {
	case years < 2:
		return lexicon.LevelEntry
	case years < 5:
		return lexicon.LevelJunior
	case years < 10:
		return lexicon.LevelMid
	}
	return lexicon.LevelSenior
}

func rawExperienceText(experience []parser.Experience) string {
	var sb strings.Builder
	for _, exp := range experience {
		sb.WriteString(exp.Title)
		sb.WriteString(" ")
		sb.WriteString(exp.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sigmoid 以0.5为中心、斜率8的S型整形函数
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-8*(x-0.5)))
}

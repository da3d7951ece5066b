package oracle

import (
	"fmt"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/textutil"
)

// 进入提示词前的文本截断上限（字符）
const (
	ResumePromptLimit = 3000
	JDPromptLimit     = 2000
)

// systemPrompt 分析任务的系统提示词
const systemPrompt = `You are a senior technical recruiter who evaluates how well a resume matches a job description. You always answer with a single valid JSON object and nothing else.`

// analysisPromptTemplate 固定的分析提示词，要求模型输出分析结果JSON。
// 字段名必须与确定性分析路径的输出保持一致。
const analysisPromptTemplate = `Analyze the following resume against the job description and respond with ONE JSON object using exactly these keys (omit keys you cannot infer):

{
  "candidate_name": string,
  "overall_score": number (0-100),
  "grade": one of "A+","A","B+","B","C+","C","D",
  "recommendation": string,
  "experience_summary": string,
  "education_summary": string,
  "skills_matched": [string],
  "skills_missing": [string],
  "key_strengths": [string],
  "areas_for_improvement": [string],
  "career_advice": [string],
  "industry_insights": [string],
  "experience_level": one of "entry","junior","mid","senior","lead","executive",
  "industry_fit": string
}

Rules:
- Output must be a single valid JSON object, no markdown fences, no commentary.
- All strings use double quotes; inner double quotes must be escaped.
- Be specific: name actual skills and gaps from the texts.

JOB DESCRIPTION:
"""
%s
"""

RESUME:
"""
%s
"""`

// BuildPrompt 构建分析提示词，简历与岗位描述分别截断到各自上限
func BuildPrompt(resumeText, jdText string) (system, user string) {
	return systemPrompt, fmt.Sprintf(analysisPromptTemplate,
		textutil.Truncate(jdText, JDPromptLimit),
		textutil.Truncate(resumeText, ResumePromptLimit),
	)
}

// ExtractJSON 提取文本中第一个花括号配平的JSON子串，找不到返回空串
func ExtractJSON(text string) string {
	start := -1
	level := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if start == -1 {
				start = i
			}
			level++
		case '}':
			if start == -1 {
				continue
			}
			level--
			if level == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

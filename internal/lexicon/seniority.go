package lexicon

import "strings"

// Level 资历等级，六级阶梯
type Level string

const (
	LevelEntry     Level = "entry"
	LevelJunior    Level = "junior"
	LevelMid       Level = "mid"
	LevelSenior    Level = "senior"
	LevelLead      Level = "lead"
	LevelExecutive Level = "executive"
)

// ladder 资历阶梯的序数值，用于seniority_match打分
var ladder = map[Level]int{
	LevelEntry:     1,
	LevelJunior:    2,
	LevelMid:       3,
	LevelSenior:    4,
	LevelLead:      5,
	LevelExecutive: 6,
}

// LadderRank 返回资历等级在阶梯上的序数，未知等级按mid处理
func LadderRank(l Level) int {
	if r, ok := ladder[l]; ok {
		return r
	}
	return ladder[LevelMid]
}

// DegreeRank 学位排序：PhD=5, Master=4, Bachelor=3, Associate=2, Diploma=1
func DegreeRank(degree string) int {
	d := normalizeDegree(degree)
	switch d {
	case "phd":
		return 5
	case "master":
		return 4
	case "bachelor":
		return 3
	case "associate":
		return 2
	case "diploma":
		return 1
	}
	return 0
}

func normalizeDegree(degree string) string {
	lower := strings.ToLower(degree)
	switch {
	case strings.Contains(lower, "ph.d") || strings.Contains(lower, "phd") || strings.Contains(lower, "doctor"):
		return "phd"
	case strings.Contains(lower, "master") || strings.Contains(lower, "m.s") || strings.Contains(lower, "msc") || strings.Contains(lower, "mba") || strings.Contains(lower, "m.eng"):
		return "master"
	case strings.Contains(lower, "bachelor") || strings.Contains(lower, "b.s") || strings.Contains(lower, "bsc") || strings.Contains(lower, "b.e") || strings.Contains(lower, "b.tech") || strings.Contains(lower, "b.a"):
		return "bachelor"
	case strings.Contains(lower, "associate"):
		return "associate"
	case strings.Contains(lower, "diploma"):
		return "diploma"
	}
	return ""
}

package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvHeader 批量报告的列头
var csvHeader = []string{
	"rank", "filename", "candidate_name", "overall_score", "grade",
	"experience_level", "skills_matched", "skills_missing",
	"analysis_status", "error_message",
}

// WriteCSVReport 将批量分析结果导出为CSV报告
func WriteCSVReport(w io.Writer, results []*Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("写入CSV表头失败: %w", err)
	}

	for _, r := range results {
		row := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Filename,
			r.CandidateName,
			fmt.Sprintf("%.1f", r.OverallScore),
			r.Grade,
			string(r.ExperienceLevel),
			strings.Join(r.SkillsMatched, "; "),
			strings.Join(r.SkillsMissing, "; "),
			r.AnalysisStatus,
			r.ErrorMessage,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("写入CSV行失败: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

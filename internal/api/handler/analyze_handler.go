// Package handler 承载HTTP层的业务处理逻辑，
// 负责文件落盘、文本提取与分析流程的调用。
package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/analyzer"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/extractor"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/oracle"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/scratch"
)

// AnalyzeHandler 分析请求处理器
type AnalyzeHandler struct {
	analyzer *analyzer.Analyzer
	scratch  *scratch.Dir
	registry *oracle.Registry
}

// NewAnalyzeHandler 创建分析请求处理器。registry可以为nil（纯确定性模式）。
func NewAnalyzeHandler(a *analyzer.Analyzer, dir *scratch.Dir, registry *oracle.Registry) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: a,
		scratch:  dir,
		registry: registry,
	}
}

// AnalyzeResponse 单份分析的响应
type AnalyzeResponse struct {
	RequestID string           `json:"request_id"`
	Result    *analyzer.Result `json:"result"`
}

// BatchResponse 批量分析的响应
type BatchResponse struct {
	RequestID string             `json:"request_id"`
	Count     int                `json:"count"`
	Results   []*analyzer.Result `json:"results"`
}

// HandleAnalyzeFile 处理单文件分析：文件先落盘到暂存目录，
// 提取文本后立即删除暂存文件，再执行分析。
func (h *AnalyzeHandler) HandleAnalyzeFile(ctx context.Context, filename string, data []byte, jobDescription string) (*AnalyzeResponse, error) {
	path, err := h.scratch.Save(filename, data)
	if err != nil {
		return nil, fmt.Errorf("暂存上传文件失败: %w", err)
	}
	defer func() {
		if err := h.scratch.Remove(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("删除暂存文件失败")
		}
	}()

	text, err := extractor.ExtractText(path)
	if err != nil {
		return nil, err
	}

	return h.HandleAnalyzeText(ctx, text, jobDescription, filename)
}

// HandleAnalyzeText 处理纯文本分析
func (h *AnalyzeHandler) HandleAnalyzeText(ctx context.Context, resumeText, jobDescription, filename string) (*AnalyzeResponse, error) {
	result, err := h.analyzer.AnalyzeResume(ctx, resumeText, jobDescription, filename)
	if err != nil {
		return nil, err
	}
	return &AnalyzeResponse{
		RequestID: uuid.NewString(),
		Result:    result,
	}, nil
}

// BatchFile 批量分析的单个上传文件
type BatchFile struct {
	Filename string
	Data     []byte
}

// HandleBatch 处理批量文件分析。单个文件提取失败不会中断批次，
// 该文件以空文本进入分析并由编排器输出partial兜底记录。
func (h *AnalyzeHandler) HandleBatch(ctx context.Context, files []BatchFile, jobDescription string) (*BatchResponse, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("批量分析至少需要一个文件")
	}

	inputs := make([]analyzer.BatchInput, 0, len(files))
	for _, f := range files {
		text, err := extractor.ExtractTextFromBytes(f.Filename, f.Data)
		if err != nil {
			logger.Warn().Err(err).Str("filename", f.Filename).Msg("批量分析中文件提取失败")
			text = ""
		}
		inputs = append(inputs, analyzer.BatchInput{ResumeText: text, Filename: f.Filename})
	}

	results := h.analyzer.AnalyzeBatch(ctx, inputs, jobDescription)
	return &BatchResponse{
		RequestID: uuid.NewString(),
		Count:     len(results),
		Results:   results,
	}, nil
}

// OracleStatuses 返回全部模型客户端的配额状态
func (h *AnalyzeHandler) OracleStatuses() []oracle.Status {
	if h.registry == nil {
		return nil
	}
	return h.registry.Statuses()
}

// SweepScratch 触发暂存目录清扫
func (h *AnalyzeHandler) SweepScratch() (int, error) {
	return h.scratch.SweepOlderThan(scratch.DefaultMaxAge)
}

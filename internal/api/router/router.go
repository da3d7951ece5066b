// Package router 注册HTTP路由
package router

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/analyzer"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/api/handler"
)

// analyzeTextRequest 纯文本分析的请求体
type analyzeTextRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

// RegisterRoutes 注册API路由
func RegisterRoutes(h *server.Hertz, analyzeHandler *handler.AnalyzeHandler) {
	api := h.Group("/api/v1")

	// 单文件分析：multipart的file字段 + job_description字段
	api.POST("/analyze", func(c context.Context, ctx *app.RequestContext) {
		jobDescription := ctx.PostForm("job_description")
		if jobDescription == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少job_description字段"})
			return
		}

		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}
		data, err := readMultipartFile(fileHeader.Open())
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		resp, err := analyzeHandler.HandleAnalyzeFile(c, fileHeader.Filename, data, jobDescription)
		if err != nil {
			writeAnalyzeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 纯文本分析
	api.POST("/analyze/text", func(c context.Context, ctx *app.RequestContext) {
		var req analyzeTextRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体不是合法的JSON"})
			return
		}
		if req.JobDescription == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少job_description字段"})
			return
		}

		resp, err := analyzeHandler.HandleAnalyzeText(c, req.ResumeText, req.JobDescription, "")
		if err != nil {
			writeAnalyzeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 批量分析：multipart的files字段（可多个）+ job_description字段
	api.POST("/analyze/batch", func(c context.Context, ctx *app.RequestContext) {
		resp, err := handleBatchRequest(c, ctx, analyzeHandler)
		if err != nil {
			writeAnalyzeError(ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 批量分析CSV报告
	api.POST("/analyze/batch/report", func(c context.Context, ctx *app.RequestContext) {
		resp, err := handleBatchRequest(c, ctx, analyzeHandler)
		if err != nil {
			writeAnalyzeError(ctx, err)
			return
		}

		var buf bytes.Buffer
		if err := analyzer.WriteCSVReport(&buf, resp.Results); err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="batch_report.csv"`)
		ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})

	// 模型客户端配额状态
	api.GET("/oracles", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"oracles": analyzeHandler.OracleStatuses()})
	})

	// 暂存目录清扫（运维入口）
	api.POST("/maintenance/sweep", func(c context.Context, ctx *app.RequestContext) {
		removed, err := analyzeHandler.SweepScratch()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"removed": removed})
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

func handleBatchRequest(c context.Context, ctx *app.RequestContext, analyzeHandler *handler.AnalyzeHandler) (*handler.BatchResponse, error) {
	jobDescription := ctx.PostForm("job_description")
	if jobDescription == "" {
		return nil, errBadRequest("缺少job_description字段")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, errBadRequest("请求不是合法的multipart表单")
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return nil, errBadRequest("files字段为空")
	}

	files := make([]handler.BatchFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		data, err := readMultipartFile(fh.Open())
		if err != nil {
			return nil, errBadRequest("读取上传文件失败: " + fh.Filename)
		}
		files = append(files, handler.BatchFile{Filename: fh.Filename, Data: data})
	}

	return analyzeHandler.HandleBatch(c, files, jobDescription)
}

// badRequestError HTTP层的客户端错误
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func errBadRequest(msg string) error { return badRequestError{msg: msg} }

// writeAnalyzeError 统一的错误响应：文档无效和参数错误算客户端错误，
// 其余算服务端错误。失败永远返回结构化JSON。
func writeAnalyzeError(ctx *app.RequestContext, err error) {
	var badReq badRequestError
	switch {
	case analyzer.IsBadDocument(err):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error(), "kind": "bad_document"})
	case errors.As(err, &badReq):
		ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error(), "kind": "bad_request"})
	default:
		ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error(), "kind": "internal"})
	}
}

func readMultipartFile(f io.ReadCloser, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Package extractor 从上传的简历文件中提取纯文本。
// 支持PDF、DOCX、DOC与TXT；提取不出有效文本时返回文档无效错误。
package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/analyzer"
	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
)

// docxTagRe 去除DOCX内容中残留的XML标签
var docxTagRe = regexp.MustCompile(`<[^>]+>`)

// ExtractText 按扩展名分派提取文件文本。
// 提取结果不足50字符时视为文档无效。
func ExtractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取文件失败: %w", err)
	}

	text, err := ExtractTextFromBytes(filepath.Base(path), data)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ExtractTextFromBytes 从内存中的文件内容提取文本
func ExtractTextFromBytes(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx", ".doc":
		text, err = extractDocx(data)
	case ".txt", "":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: 不支持的文件格式 %q", analyzer.ErrBadDocument, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", analyzer.ErrBadDocument, err)
	}

	if len(strings.TrimSpace(text)) < analyzer.MinDocumentChars {
		return "", fmt.Errorf("%w: 提取文本不足%d字符", analyzer.ErrBadDocument, analyzer.MinDocumentChars)
	}

	logger.Debug().Str("filename", filename).Int("chars", len(text)).Msg("文本提取完成")
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析PDF失败: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// 单页失败不终止整份文档的提取
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析DOCX失败: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	return docxTagRe.ReplaceAllString(content, " "), nil
}

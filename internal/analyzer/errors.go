package analyzer

import "errors"

// MinDocumentChars 简历文本的最小有效长度（字符）
const MinDocumentChars = 50

// ErrBadDocument 文档无法提取出足够的文本。属于客户端错误，
// 不走兜底路径，直接返回调用方。
var ErrBadDocument = errors.New("文档无法提取出有效文本")

// IsBadDocument 判断错误是否为文档无效错误
func IsBadDocument(err error) bool {
	return errors.Is(err, ErrBadDocument)
}

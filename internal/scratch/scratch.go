// Package scratch 管理上传文件的临时暂存目录。
// 文件以UUIDv7命名落盘，请求结束即删除；遗留文件由定期清扫兜底。
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
)

// DefaultMaxAge 清扫时判定文件过期的默认年龄
const DefaultMaxAge = time.Hour

// Dir 暂存目录
type Dir struct {
	root string
}

// New 创建暂存目录管理器，目录不存在时自动创建
func New(root string) (*Dir, error) {
	if root == "" {
		root = filepath.Join(os.TempDir(), "resume-analyzer")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("创建暂存目录失败: %w", err)
	}
	return &Dir{root: root}, nil
}

// Root 暂存目录路径
func (d *Dir) Root() string { return d.root }

// Save 将内容写入暂存目录，返回落盘路径。
// 文件名为UUIDv7加原始扩展名，时间有序便于排查。
func (d *Dir) Save(originalName string, data []byte) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成文件名失败: %w", err)
	}

	path := filepath.Join(d.root, id.String()+filepath.Ext(originalName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入暂存文件失败: %w", err)
	}
	return path, nil
}

// Remove 删除暂存文件，文件不存在不算错误
func (d *Dir) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除暂存文件失败: %w", err)
	}
	return nil
}

// SweepOlderThan 清扫修改时间早于maxAge的暂存文件，返回删除数量
func (d *Dir) SweepOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, fmt.Errorf("读取暂存目录失败: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(d.root, entry.Name())); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		logger.Info().Int("removed", removed).Str("dir", d.root).Msg("暂存目录清扫完成")
	}
	return removed, nil
}

package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/FAIZAVENGER/resume-analyzer-sub000/internal/logger"
)

// quotaResetInterval 配额标记的自动复位间隔
const quotaResetInterval = 24 * time.Hour

// ErrNoOracleAvailable 所有客户端都不可用（未注册或配额耗尽）
var ErrNoOracleAvailable = errors.New("没有可用的模型客户端")

// IsQuotaError 判断错误是否为配额类错误（消息包含 quota 或 429）
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "429")
}

// Status 单个客户端的配额状态快照
type Status struct {
	Name          string    `json:"name"`
	RequestsToday int       `json:"requests_today"`
	QuotaExceeded bool      `json:"quota_exceeded"`
	LastReset     time.Time `json:"last_reset"`
}

// entry 注册表内部的客户端条目，计数器由注册表的互斥锁保护
type entry struct {
	name          string
	client        model.BaseChatModel
	dailyQuota    int
	requestsToday int
	quotaExceeded bool
	lastReset     time.Time
}

// Registry 模型客户端注册表。跨请求共享，持有每个客户端的
// 当日请求数与配额标记；配额标记在24小时后自动复位。
type Registry struct {
	mu      sync.Mutex
	entries []*entry
	now     func() time.Time
}

// RegistryOption 注册表配置选项
type RegistryOption func(*Registry)

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry 创建空的客户端注册表
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{now: time.Now}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register 注册一个客户端。dailyQuota<=0表示不限额。
// 客户端按注册顺序尝试，排在前面的优先。
func (r *Registry) Register(name string, client model.BaseChatModel, dailyQuota int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, &entry{
		name:       name,
		client:     client,
		dailyQuota: dailyQuota,
		lastReset:  r.now(),
	})
}

// Len 已注册客户端数量
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Statuses 返回全部客户端的配额状态快照
func (r *Registry) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Status{
			Name:          e.name,
			RequestsToday: e.requestsToday,
			QuotaExceeded: e.quotaExceeded,
			LastReset:     e.lastReset,
		})
	}
	return out
}

// pick 选择第一个未超配额的客户端并记一次请求。
// 超过复位间隔的配额标记在此处顺带复位。
func (r *Registry) pick() (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, e := range r.entries {
		if now.Sub(e.lastReset) >= quotaResetInterval {
			e.quotaExceeded = false
			e.requestsToday = 0
			e.lastReset = now
		}
		if e.quotaExceeded {
			continue
		}
		if e.dailyQuota > 0 && e.requestsToday >= e.dailyQuota {
			e.quotaExceeded = true
			continue
		}
		e.requestsToday++
		return e, nil
	}
	return nil, ErrNoOracleAvailable
}

// markQuotaExceeded 标记客户端配额耗尽
func (r *Registry) markQuotaExceeded(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.name == name {
			e.quotaExceeded = true
			return
		}
	}
}

// Analyze 调用首个可用客户端做简历-岗位分析，返回解析后的JSON映射
// 与所用客户端名。配额类错误会给对应客户端打上quota_exceeded标记。
// 同一请求内不会重试其他客户端，失败直接交给确定性路径兜底。
func (r *Registry) Analyze(ctx context.Context, resumeText, jdText string) (map[string]any, string, error) {
	e, err := r.pick()
	if err != nil {
		return nil, "", err
	}

	system, user := BuildPrompt(resumeText, jdText)
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	response, err := e.client.Generate(ctx, messages)
	if err != nil {
		if IsQuotaError(err) {
			r.markQuotaExceeded(e.name)
			logger.Warn().Str("oracle", e.name).Err(err).Msg("客户端配额耗尽，已标记")
		}
		return nil, e.name, fmt.Errorf("模型调用失败: %w", err)
	}
	if response == nil || response.Content == "" {
		return nil, e.name, fmt.Errorf("模型返回了空响应")
	}

	content := strings.TrimPrefix(response.Content, "\uFEFF")
	jsonStr := ExtractJSON(content)
	if jsonStr == "" {
		return nil, e.name, fmt.Errorf("未能从模型响应中提取JSON: %.200s", content)
	}
	if !utf8.ValidString(jsonStr) {
		jsonStr = strings.ToValidUTF8(jsonStr, "")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, e.name, fmt.Errorf("反序列化模型JSON失败: %w", err)
	}

	logger.Debug().Str("oracle", e.name).Int("fields", len(result)).Msg("模型分析完成")
	return result, e.name, nil
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"horizon/internal/faq"
)

// ErrEmptyQuestion 问题为空（校验失败，不触发任何外部调用）
var ErrEmptyQuestion = errors.New("question is empty")

// DefaultMaxCompletionTokens 远程补全的默认输出上限
const DefaultMaxCompletionTokens = 500

// Completer 远程补全协作方
// prompt 原样发送，maxTokens 限制输出长度
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ResolverService 问答解析服务
// 解析顺序：FAQ 精确匹配 → FAQ 包含匹配 → 远程补全 → 兜底应答表 → 最终兜底
// 除空问题校验外不返回错误，调用方总能拿到非空答案
type ResolverService struct {
	table     *faq.Table
	completer Completer
	maxTokens int
}

// NewResolverService 创建问答解析服务
// maxTokens <= 0 时使用 DefaultMaxCompletionTokens
func NewResolverService(table *faq.Table, completer Completer, maxTokens int) *ResolverService {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxCompletionTokens
	}
	return &ResolverService{
		table:     table,
		completer: completer,
		maxTokens: maxTokens,
	}
}

// Resolve 解析问题并返回答案
// 唯一的错误是 ErrEmptyQuestion；远程失败在内部通过兜底链消化
func (s *ResolverService) Resolve(ctx context.Context, question string) (string, error) {
	if faq.Normalize(question) == "" {
		return "", ErrEmptyQuestion
	}

	// FAQ 数据集（精确 + 包含匹配）
	if answer, ok := s.table.Lookup(question); ok {
		return answer, nil
	}

	// 远程补全，发送原始问题文本
	// completer 为 nil 时（AI 未配置）直接走兜底链
	if s.completer != nil {
		answer, err := s.completer.Complete(ctx, question, s.maxTokens)
		if err == nil && answer != "" {
			return answer, nil
		}
		if err != nil {
			log.Warn().Err(err).Msg("completion failed, falling back to canned answers")
		}
	}

	// 兜底应答表（问候/寒暄）
	if answer, ok := faq.FallbackAnswer(question); ok {
		return answer, nil
	}

	// 最终兜底，回显原始问题
	return faq.ApologyAnswer(question), nil
}

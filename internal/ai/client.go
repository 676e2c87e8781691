package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"horizon/internal/ai/component"
	"horizon/internal/config"
)

// Client AI 能力层客户端
// 职责: 封装远程补全调用，提供统一接口
type Client struct {
	cfg       *config.AIConfig
	chatModel model.ChatModel
}

// NewClient 创建 AI 客户端
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("AI API key not configured, completion calls will fail")
	}

	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Client{
		cfg:       cfg,
		chatModel: chatModel,
	}, nil
}

// Complete 单轮补全
// prompt 原样发送，maxTokens 限制输出长度（<=0 时使用模型默认值）
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	var opts []model.Option
	if maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(maxTokens))
	}

	response, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return response.Content, nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	return nil
}

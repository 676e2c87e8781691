package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"horizon/internal/model"
	"horizon/internal/pkg/cache"
	"horizon/internal/repository"
)

var (
	ErrMissingUserID         = errors.New("用户ID不能为空")
	ErrMissingConversationID = errors.New("对话ID不能为空")
	ErrMissingTurns          = errors.New("对话内容不能为空")
	ErrConversationNotFound  = errors.New("对话不存在")
	ErrDeleteNotVerified     = errors.New("对话删除未生效")
)

// 标题规则：取第一条用户消息，超过 30 字符截断并加省略号
const (
	titleMaxLen        = 30
	defaultInsertTitle = "New conversation"
	defaultListTitle   = "Untitled Chat"
)

// ConversationRepository 对话持久化协作方
// 由 repository.ConversationRepo 实现；不存在的记录返回 repository.ErrNotFound
type ConversationRepository interface {
	Insert(ctx context.Context, conv *model.Conversation) error
	FindByID(ctx context.Context, id string) (*model.Conversation, error)
	UpdateByID(ctx context.Context, id string, update repository.ConversationUpdate) error
	DeleteByID(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, userID string) ([]*model.Conversation, error)
}

// SaveOptions 保存时的可选字段
// nil 字段不进入更新载荷，已有值不会被覆盖（部分更新契约）
type SaveOptions struct {
	Title    *string
	Archived *bool
}

// ConversationService 对话生命周期服务
// 负责首存/续存判定、标题派生、归档、重命名和带校验的删除
// cache 可为 nil（未配置 Redis 时直连仓库）
type ConversationService struct {
	repo  ConversationRepository
	cache *cache.RedisCache
}

// NewConversationService 创建对话服务
func NewConversationService(repo ConversationRepository, redisCache *cache.RedisCache) *ConversationService {
	return &ConversationService{
		repo:  repo,
		cache: redisCache,
	}
}

// Save 保存对话
// 未持久化的对话执行插入并回填 ID（本服务是 ID 的唯一写入方），
// 已持久化的对话执行部分更新：turns 和 updated_at 总是写入，
// title/archived 只在 opts 显式携带时写入
func (s *ConversationService) Save(ctx context.Context, conv *model.Conversation, turns []model.Turn, opts SaveOptions) error {
	if conv == nil {
		return ErrMissingConversationID
	}
	if conv.UserID == "" {
		return ErrMissingUserID
	}
	if len(turns) == 0 {
		return ErrMissingTurns
	}

	if !conv.Saved() {
		// 首次保存：派生标题并插入
		title := deriveTitle(turns)
		if opts.Title != nil && strings.TrimSpace(*opts.Title) != "" {
			title = *opts.Title
		}

		conv.Title = title
		conv.Turns = turns
		conv.Archived = false

		if err := s.repo.Insert(ctx, conv); err != nil {
			// 保持未持久化状态，由调用方决定是否重试
			return fmt.Errorf("insert conversation: %w", err)
		}

		s.invalidateList(ctx, conv.UserID)
		return nil
	}

	// 续存：部分更新
	update := repository.ConversationUpdate{
		Turns:    &turns,
		Title:    opts.Title,
		Archived: opts.Archived,
	}
	if err := s.repo.UpdateByID(ctx, conv.ID.Hex(), update); err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}

	conv.Turns = turns
	if opts.Title != nil {
		conv.Title = *opts.Title
	}
	if opts.Archived != nil {
		conv.Archived = *opts.Archived
	}

	s.invalidateList(ctx, conv.UserID)
	return nil
}

// Get 获取指定对话（校验归属）
func (s *ConversationService) Get(ctx context.Context, userID, id string) (*model.Conversation, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if id == "" {
		return nil, ErrMissingConversationID
	}

	conv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if conv.UserID != userID {
		// 不泄露他人对话的存在性
		return nil, ErrConversationNotFound
	}

	return conv, nil
}

// Rename 重命名对话
// 空白标题是 no-op：不发出任何协作方调用，已有标题保持不变
func (s *ConversationService) Rename(ctx context.Context, userID, id, newTitle string) error {
	title := strings.TrimSpace(newTitle)
	if title == "" {
		return nil
	}

	conv, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	update := repository.ConversationUpdate{Title: &title}
	if err := s.repo.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("rename conversation: %w", err)
	}

	s.invalidateList(ctx, conv.UserID)
	return nil
}

// Archive 归档/取消归档对话
func (s *ConversationService) Archive(ctx context.Context, userID, id string, archived bool) error {
	conv, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	update := repository.ConversationUpdate{Archived: &archived}
	if err := s.repo.UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("archive conversation: %w", err)
	}

	s.invalidateList(ctx, conv.UserID)
	return nil
}

// Delete 删除对话（三段式）
// 1. 存在性检查：查询失败则中止；不存在视为已删除（幂等成功）
// 2. 执行删除
// 3. 复查确认：记录仍在返回 ErrDeleteNotVerified，复查失败按失败处理
func (s *ConversationService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if id == "" {
		return ErrMissingConversationID
	}

	conv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// 已经不存在，幂等成功
			return nil
		}
		return fmt.Errorf("verify conversation existence: %w", err)
	}
	if conv.UserID != userID {
		// 他人的对话对当前用户等同于不存在，
		// 与删除不存在记录保持同一响应，不泄露存在性
		return nil
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	// 复查确认删除生效
	_, err = s.repo.FindByID(ctx, id)
	if err == nil {
		log.Error().Str("conversation_id", id).Msg("conversation still exists after delete")
		return ErrDeleteNotVerified
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("verify conversation deletion: %w", err)
	}

	s.invalidateList(ctx, userID)
	return nil
}

// ListByOwner 查询用户对话列表
// 按创建时间倒序，最多 repository.ListLimit 条；
// 标题为空时回退为默认值，archived 缺省为 false
func (s *ConversationService) ListByOwner(ctx context.Context, userID string) ([]model.ConversationSummary, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	if s.cache != nil {
		var cached []model.ConversationSummary
		if err := s.cache.Get(ctx, cache.ConversationListKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	convs, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]model.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		title := conv.Title
		if strings.TrimSpace(title) == "" {
			title = defaultListTitle
		}
		turns := conv.Turns
		if turns == nil {
			turns = []model.Turn{}
		}
		summaries = append(summaries, model.ConversationSummary{
			ID:        conv.ID.Hex(),
			Title:     title,
			Timestamp: conv.CreatedAt,
			Turns:     turns,
			Archived:  conv.Archived,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ConversationListKey(userID), summaries, cache.ConversationListTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache conversation list")
		}
	}

	return summaries, nil
}

// invalidateList 使用户的列表缓存失效
func (s *ConversationService) invalidateList(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ConversationListKey(userID)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate conversation list cache")
	}
}

// deriveTitle 从第一条用户消息派生标题
// 按字符（rune）截断，避免多字节文本被切在字节中间
func deriveTitle(turns []model.Turn) string {
	for _, t := range turns {
		if t.IsBot {
			continue
		}
		runes := []rune(t.Text)
		if len(runes) > titleMaxLen {
			return string(runes[:titleMaxLen]) + "..."
		}
		return t.Text
	}
	return defaultInsertTitle
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"horizon/internal/model"
	"horizon/internal/pkg/ctxutil"
	"horizon/internal/pkg/id"
	"horizon/internal/service"
)

// ChatHandler 对话处理器
// convService 可为 nil（未配置数据库时答案照常返回，只是不落库）
type ChatHandler struct {
	resolver    *service.ResolverService
	convService *service.ConversationService
}

// NewChatHandler 创建对话处理器
func NewChatHandler(resolver *service.ResolverService, convService *service.ConversationService) *ChatHandler {
	return &ChatHandler{
		resolver:    resolver,
		convService: convService,
	}
}

// Chat 对话接口
// @Summary      发送消息并获取回答
// @Description  解析问题并返回答案，登录用户的对话会持久化；持久化失败不影响答案返回
// @Tags         对话
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      model.ChatRequest  true  "对话请求"
// @Success      200      {object}  model.ChatResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	answer, err := h.resolver.Resolve(ctx, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Code:    40001,
				Message: "Message must not be empty",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Failed to resolve answer",
			Detail:  err.Error(),
		})
		return
	}

	resp := model.ChatResponse{
		Answer: answer,
	}

	// 持久化（可选）：失败只降级为未保存，答案照常返回
	if h.convService != nil {
		if userID, ok := ctxutil.GetUserID(ctx); ok {
			conv, turns, loadErr := h.loadConversation(c, userID, req.ConversationID)
			if loadErr == nil {
				now := time.Now()
				turns = append(turns,
					model.Turn{ID: id.New(), Text: req.Message, IsBot: false, Timestamp: now},
					model.Turn{ID: id.New(), Text: answer, IsBot: true, Timestamp: now},
				)

				if saveErr := h.convService.Save(ctx, conv, turns, service.SaveOptions{}); saveErr != nil {
					log.Warn().Err(saveErr).Msg("failed to save conversation")
				} else {
					resp.ConversationID = conv.ID.Hex()
					resp.Saved = true
				}
			} else {
				log.Warn().Err(loadErr).Str("conversation_id", req.ConversationID).
					Msg("failed to load conversation")
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// loadConversation 加载既有对话或准备新对话
func (h *ChatHandler) loadConversation(c *gin.Context, userID, conversationID string) (*model.Conversation, []model.Turn, error) {
	if conversationID == "" {
		return &model.Conversation{UserID: userID}, nil, nil
	}

	conv, err := h.convService.Get(c.Request.Context(), userID, conversationID)
	if err != nil {
		return nil, nil, err
	}
	return conv, conv.Turns, nil
}

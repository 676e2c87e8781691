package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"horizon/internal/model"
	"horizon/internal/pkg/ctxutil"
	"horizon/internal/service"
)

// ConversationHandler 对话管理处理器
type ConversationHandler struct {
	convService *service.ConversationService
}

// NewConversationHandler 创建对话管理处理器
func NewConversationHandler(convService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		convService: convService,
	}
}

// List 获取对话列表
// @Summary      获取对话列表
// @Description  获取当前用户的对话列表，按创建时间倒序，最多30条
// @Tags         对话
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	summaries, err := h.convService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Failed to list conversations",
			Detail:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": summaries,
		"total":         len(summaries),
	})
}

// Rename 重命名对话
// @Summary      重命名对话
// @Description  修改对话标题，空白标题不做任何修改
// @Tags         对话
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "对话ID"
// @Param        request  body      model.RenameConversationRequest  true  "重命名请求"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id}/rename [post]
func (h *ConversationHandler) Rename(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	var req model.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	id := c.Param("id")
	if err := h.convService.Rename(c.Request.Context(), userID, id, req.Title); err != nil {
		h.writeError(c, err, "Failed to rename conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation renamed",
	})
}

// Archive 归档对话
// @Summary      归档/取消归档对话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                             true  "对话ID"
// @Param        request  body      model.ArchiveConversationRequest  true  "归档请求"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id}/archive [post]
func (h *ConversationHandler) Archive(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	var req model.ArchiveConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	id := c.Param("id")
	if err := h.convService.Archive(c.Request.Context(), userID, id, *req.Archived); err != nil {
		h.writeError(c, err, "Failed to archive conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation archived",
	})
}

// Delete 删除对话
// @Summary      删除对话
// @Description  删除对话并复查确认；对话本就不存在视为删除成功
// @Tags         对话
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "对话ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	id := c.Param("id")
	if err := h.convService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrDeleteNotVerified) {
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{
				Code:    50002,
				Message: "Conversation deletion could not be verified",
			})
			return
		}
		h.writeError(c, err, "Failed to delete conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation deleted",
	})
}

// writeError 按错误类型写入响应
func (h *ConversationHandler) writeError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, service.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Code:    40401,
			Message: "Conversation not found",
		})
	case errors.Is(err, service.ErrMissingConversationID):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40003,
			Message: "Conversation ID is required",
		})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: fallbackMessage,
			Detail:  err.Error(),
		})
	}
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"horizon/internal/model"
	"horizon/internal/service"
)

// ReferenceHandler 参考资料处理器
type ReferenceHandler struct {
	refService *service.ReferenceService
}

// NewReferenceHandler 创建参考资料处理器
func NewReferenceHandler(refService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{
		refService: refService,
	}
}

// List 查询参考链接
// @Summary      查询参考链接
// @Description  根据查询文本返回相关的文档和资源链接
// @Tags         参考资料
// @Produce      json
// @Param        q    query     string  true  "查询文本"
// @Success      200  {object}  model.ReferencesResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /api/v1/references [get]
func (h *ReferenceHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: "q is required",
		})
		return
	}

	refs := h.refService.Lookup(query)

	c.JSON(http.StatusOK, model.ReferencesResponse{
		Query:      query,
		References: refs,
	})
}

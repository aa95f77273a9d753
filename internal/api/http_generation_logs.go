package api

import (
	"context"
	"net/http"

	"pizzeria/internal/entity"
	"pizzeria/internal/validate"

	"github.com/gin-gonic/gin"
)

// ListGenerationLogs handles GET /api/generation-logs.
func (h *HTTPHandler) ListGenerationLogs(c *gin.Context) {
	query, fields := validate.GenerationLogsQuery(c.Request.URL.Query())
	if fields != nil {
		ValidationFailed(c, fields)
		return
	}

	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repositoryTimeout)
	defer cancel()

	logs, pagination, err := h.generationLogService.List(ctx, user.ID, query)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if logs == nil {
		logs = []entity.GenerationLogItem{}
	}

	c.JSON(http.StatusOK, entity.GenerationLogListResponse{
		Data:       logs,
		Pagination: pagination,
	})
}

package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"pizzeria/internal/entity"
	"pizzeria/internal/validate"

	"github.com/gin-gonic/gin"
)

const (
	repositoryTimeout = 5 * time.Second
	// Creation may wait on the ingredient suggester.
	creationTimeout = 30 * time.Second

	maxBodyBytes = 1 << 20 // 1 MiB
)

// ListCompositions handles GET /api/compositions.
func (h *HTTPHandler) ListCompositions(c *gin.Context) {
	query, fields := validate.CompositionsQuery(c.Request.URL.Query())
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

	compositions, pagination, err := h.compositionService.List(ctx, user.ID, query)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if compositions == nil {
		compositions = []entity.DbComposition{}
	}

	c.JSON(http.StatusOK, entity.CompositionListResponse{
		Data:       compositions,
		Pagination: pagination,
	})
}

// CreateComposition handles POST /api/compositions.
func (h *HTTPHandler) CreateComposition(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}

	cmd, fields := validate.CreateComposition(body)
	if fields != nil {
		ValidationFailed(c, fields)
		return
	}

	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), creationTimeout)
	defer cancel()

	composition, err := h.compositionService.Create(ctx, cmd, user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, composition)
}

// GetComposition handles GET /api/compositions/:id.
func (h *HTTPHandler) GetComposition(c *gin.Context) {
	id, err := validate.CompositionID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repositoryTimeout)
	defer cancel()

	composition, err := h.compositionService.GetByID(ctx, id, user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if composition == nil {
		NotFound(c, "composition not found")
		return
	}

	c.JSON(http.StatusOK, composition)
}

// UpdateComposition handles PATCH /api/compositions/:id.
func (h *HTTPHandler) UpdateComposition(c *gin.Context) {
	id, err := validate.CompositionID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		BadRequest(c, "failed to read request body")
		return
	}

	updates, fields := validate.UpdateComposition(body)
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

	composition, err := h.compositionService.Update(ctx, id, user.ID, updates)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, composition)
}

// DeleteComposition handles DELETE /api/compositions/:id.
func (h *HTTPHandler) DeleteComposition(c *gin.Context) {
	id, err := validate.CompositionID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repositoryTimeout)
	defer cancel()

	if err := h.compositionService.Delete(ctx, id, user.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pizzeria/internal/validate"

	"github.com/gin-gonic/gin"
)

const maxPhotoBytes = 8 << 20 // 8 MiB

var allowedPhotoExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// UploadCompositionPhoto handles POST /api/compositions/:id/photo. The photo
// is sent as the multipart form field "photo"; the stored file's public URL is
// patched into the composition.
func (h *HTTPHandler) UploadCompositionPhoto(c *gin.Context) {
	id, err := validate.CompositionID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		BadRequest(c, "missing photo upload")
		return
	}
	if fileHeader.Size <= 0 || fileHeader.Size > maxPhotoBytes {
		BadRequest(c, "photo must be between 1 byte and 8 MiB")
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if _, ok := allowedPhotoExtensions[ext]; !ok {
		BadRequest(c, "photo must be a jpg, jpeg, png or webp file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		BadRequest(c, "failed to open photo upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		BadRequest(c, "failed to read photo upload")
		return
	}

	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repositoryTimeout)
	defer cancel()

	composition, err := h.compositionService.AttachPhoto(ctx, id, user.ID, data, ext)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, composition)
}

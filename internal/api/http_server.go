package api

import (
	"strings"
	"time"

	"pizzeria/internal/ai"
	"pizzeria/internal/auth"
	"pizzeria/internal/config"
	"pizzeria/internal/entity"
	"pizzeria/internal/model"
	"pizzeria/internal/service"
	"pizzeria/internal/storage"

	"github.com/gin-gonic/gin"
)

// HTTPHandler wires the HTTP routes to the service layer.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	authManager       *auth.Manager
	defaultUser       *entity.DbUser

	compositionService   *service.CompositionService
	generationLogService *service.GenerationLogService
}

// NewHTTPHandler creates the handler and its services. defaultUser is the
// seeded account used as the caller identity when no token is presented.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, suggester ai.Suggester, defaultUser *entity.DbUser) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	publicBase := normalisePublicBase(cfg.StoragePublicBaseURL)

	return &HTTPHandler{
		cfg:                  cfg,
		repo:                 repo,
		storage:              store,
		storagePublicBase:    publicBase,
		authManager:          authManager,
		defaultUser:          defaultUser,
		compositionService:   service.NewCompositionService(repo, suggester, store, publicBase),
		generationLogService: service.NewGenerationLogService(repo),
	}, nil
}

// RegisterRoutes mounts all API routes on the engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.Use(h.IdentityMiddleware())
	{
		api.GET("/compositions", h.ListCompositions)
		api.POST("/compositions", h.CreateComposition)
		api.GET("/compositions/:id", h.GetComposition)
		api.PATCH("/compositions/:id", h.UpdateComposition)
		api.DELETE("/compositions/:id", h.DeleteComposition)
		api.POST("/compositions/:id/photo", h.UploadCompositionPhoto)

		api.GET("/generation-logs", h.ListGenerationLogs)
	}

	// Serve locally stored photos directly when the backend exposes a
	// directory and the public base is a same-host path.
	if provider, ok := h.storage.(storage.LocalBaseDirProvider); ok && strings.HasPrefix(h.storagePublicBase, "/") {
		r.Static(h.storagePublicBase, provider.LocalBaseDir())
	}
}

// Health reports process liveness.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"showfolio/internal/api/middleware"
	"showfolio/internal/portfolio"
)

// GalleryHandler serves the public portfolio gallery. Results are cached
// briefly since the gallery is the hottest read path and tolerates a
// slightly stale listing.
type GalleryHandler struct {
	composer *portfolio.Composer
	cache    *gocache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewGalleryHandler(composer *portfolio.Composer, cacheTTL time.Duration, logger *slog.Logger) *GalleryHandler {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &GalleryHandler{
		composer: composer,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns every public portfolio, newest first, optionally filtered
// by a case-insensitive search over name, tagline, bio and location.
func (h *GalleryHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	cacheKey := "gallery:" + strings.ToLower(search)

	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, gin.H{"portfolios": cached})
		return
	}

	items, err := h.composer.PublicPortfolios(c.Request.Context(), search)
	if err != nil {
		logger := middleware.LoggerFromContext(c)
		if logger == nil {
			logger = h.logger
		}
		if logger != nil {
			logger.Error("list gallery", slog.Any("error", err))
		}
		Internal(c, "failed to load gallery")
		return
	}

	h.cache.Set(cacheKey, items, h.cacheTTL)
	c.JSON(http.StatusOK, gin.H{"portfolios": items})
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"showfolio/internal/api/middleware"
	"showfolio/internal/database"
	"showfolio/internal/portfolio"
	"showfolio/internal/session"
	"showfolio/internal/theme"
	"showfolio/internal/web"
)

// PageHandler renders the server-side pages. Protected pages sit behind
// PageGuard; the handler itself only shapes page data.
type PageHandler struct {
	composer *portfolio.Composer
	sessions *session.Store
	logger   *slog.Logger
}

func NewPageHandler(composer *portfolio.Composer, sessions *session.Store, logger *slog.Logger) *PageHandler {
	return &PageHandler{composer: composer, sessions: sessions, logger: logger}
}

func (h *PageHandler) Home(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "home", web.PageData{Title: "Home"})
}

func (h *PageHandler) Login(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "login", web.PageData{Title: "Sign in"})
}

func (h *PageHandler) Register(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "register", web.PageData{Title: "Sign up"})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	profile := sessionProfile(c)
	if profile == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	data := web.PageData{
		Title:    "Dashboard",
		FullName: profile.FullName,
		Role:     profile.Role,
		SignedIn: true,
	}

	if profile.Role == database.RoleStudent {
		model, err := h.composer.ByOwner(c.Request.Context(), profile.ID)
		if err != nil {
			h.loggerFor(c).Error("dashboard portfolio load", slog.Any("error", err))
		}
		data.Portfolio = model
	}

	h.renderPage(c, http.StatusOK, "dashboard", data)
}

func (h *PageHandler) CreatePortfolio(c *gin.Context) {
	h.editorPage(c, "create")
}

func (h *PageHandler) EditPortfolio(c *gin.Context) {
	h.editorPage(c, "edit")
}

func (h *PageHandler) editorPage(c *gin.Context, mode string) {
	profile := sessionProfile(c)
	if profile == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.renderPage(c, http.StatusOK, "editor", web.PageData{
		Title:      "Portfolio editor",
		FullName:   profile.FullName,
		Role:       profile.Role,
		SignedIn:   true,
		EditorMode: mode,
	})
}

func (h *PageHandler) Gallery(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	items, err := h.composer.PublicPortfolios(c.Request.Context(), search)
	if err != nil {
		h.loggerFor(c).Error("gallery page load", slog.Any("error", err))
		items = nil
	}
	h.renderPage(c, http.StatusOK, "gallery", web.PageData{
		Title:    "Gallery",
		SignedIn: h.signedIn(c),
		Gallery:  items,
		Search:   search,
	})
}

// PublicPortfolio renders the themed public page. Private and missing
// portfolios both land on the 404 page.
func (h *PageHandler) PublicPortfolio(c *gin.Context) {
	username := c.Param("username")

	model, err := h.composer.ByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.loggerFor(c).Error("public portfolio load", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := theme.Render(c.Writer, model); err != nil {
		h.loggerFor(c).Error("render public portfolio", slog.Any("error", err))
	}
}

func (h *PageHandler) NotFound(c *gin.Context) {
	h.renderPage(c, http.StatusNotFound, "notfound", web.PageData{
		Title:    "Not found",
		SignedIn: h.signedIn(c),
	})
}

func (h *PageHandler) renderPage(c *gin.Context, status int, name string, data web.PageData) {
	if !data.SignedIn {
		data.SignedIn = h.signedIn(c)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := web.Render(c.Writer, name, data); err != nil {
		h.loggerFor(c).Error("render page", slog.String("page", name), slog.Any("error", err))
	}
}

func (h *PageHandler) signedIn(c *gin.Context) bool {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		return false
	}
	snap := h.sessions.Resolve(c.Request.Context(), token)
	return snap.State == session.StateAuthenticated
}

func (h *PageHandler) loggerFor(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func sessionProfile(c *gin.Context) *database.Profile {
	value, exists := c.Get("sessionProfile")
	if !exists {
		return nil
	}
	profile, ok := value.(*database.Profile)
	if !ok {
		return nil
	}
	return profile
}

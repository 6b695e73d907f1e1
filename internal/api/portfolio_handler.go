package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"showfolio/internal/api/middleware"
	"showfolio/internal/database"
	"showfolio/internal/portfolio"
	"showfolio/internal/storage"
	"showfolio/internal/tasks"
	"showfolio/internal/theme"
)

const snapshotURLTTL = 15 * time.Minute

// PortfolioHandler serves the owner-facing portfolio CRUD plus the
// snapshot render pipeline.
type PortfolioHandler struct {
	db          *gorm.DB
	composer    *portfolio.Composer
	asynqClient *asynq.Client
	storage     *storage.Client
	logger      *slog.Logger
}

func NewPortfolioHandler(db *gorm.DB, composer *portfolio.Composer, asynqClient *asynq.Client, storageClient *storage.Client, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		db:          db,
		composer:    composer,
		asynqClient: asynqClient,
		storage:     storageClient,
		logger:      logger,
	}
}

type educationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type experienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type projectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
	GithubLink   string   `json:"github_link"`
}

type skillEntry struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

type savePortfolioRequest struct {
	Username   string            `json:"username"`
	Tagline    string            `json:"tagline"`
	Bio        string            `json:"bio"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	Website    string            `json:"website"`
	Github     string            `json:"github"`
	Linkedin   string            `json:"linkedin"`
	Theme      string            `json:"theme"`
	IsPublic   *bool             `json:"is_public"`
	Education  []educationEntry  `json:"education"`
	Experience []experienceEntry `json:"experience"`
	Projects   []projectEntry    `json:"projects"`
	Skills     []skillEntry      `json:"skills"`
}

type portfolioHead struct {
	Username    string    `json:"username"`
	Tagline     string    `json:"tagline"`
	Bio         string    `json:"bio"`
	Phone       string    `json:"phone"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	Github      string    `json:"github"`
	Linkedin    string    `json:"linkedin"`
	Theme       string    `json:"theme"`
	IsPublic    bool      `json:"is_public"`
	HasSnapshot bool      `json:"has_snapshot"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type portfolioResponse struct {
	Portfolio  portfolioHead     `json:"portfolio"`
	Owner      ownerResponse     `json:"owner"`
	Education  []educationEntry  `json:"education"`
	Experience []experienceEntry `json:"experience"`
	Projects   []projectEntry    `json:"projects"`
	Skills     []skillEntry      `json:"skills"`
}

type ownerResponse struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func newPortfolioResponse(m *portfolio.ReadModel) portfolioResponse {
	resp := portfolioResponse{
		Portfolio: portfolioHead{
			Username:    m.Portfolio.Username,
			Tagline:     m.Portfolio.Tagline,
			Bio:         m.Portfolio.Bio,
			Phone:       m.Portfolio.Phone,
			Location:    m.Portfolio.Location,
			Website:     m.Portfolio.Website,
			Github:      m.Portfolio.Github,
			Linkedin:    m.Portfolio.Linkedin,
			Theme:       m.Portfolio.Theme,
			IsPublic:    m.Portfolio.IsPublic,
			HasSnapshot: m.Portfolio.SnapshotKey != "",
			UpdatedAt:   m.Portfolio.UpdatedAt,
		},
		Owner:      ownerResponse{FullName: m.Owner.FullName, Email: m.Owner.Email},
		Education:  make([]educationEntry, 0, len(m.Education)),
		Experience: make([]experienceEntry, 0, len(m.Experience)),
		Projects:   make([]projectEntry, 0, len(m.Projects)),
		Skills:     make([]skillEntry, 0, len(m.Skills)),
	}
	for _, e := range m.Education {
		resp.Education = append(resp.Education, educationEntry{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	for _, e := range m.Experience {
		resp.Experience = append(resp.Experience, experienceEntry{
			Company:     e.Company,
			Position:    e.Position,
			Location:    e.Location,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	for _, p := range m.Projects {
		resp.Projects = append(resp.Projects, projectEntry{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: []string(p.Technologies),
			Link:         p.Link,
			GithubLink:   p.GithubLink,
		})
	}
	for _, s := range m.Skills {
		resp.Skills = append(resp.Skills, skillEntry{
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
		})
	}
	return resp
}

func (r *savePortfolioRequest) validate() error {
	for i, e := range r.Education {
		if strings.TrimSpace(e.Institution) == "" || strings.TrimSpace(e.Degree) == "" || strings.TrimSpace(e.Field) == "" {
			return fmt.Errorf("education entry %d: institution, degree and field are required", i)
		}
	}
	for i, e := range r.Experience {
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Position) == "" {
			return fmt.Errorf("experience entry %d: company and position are required", i)
		}
	}
	for i, p := range r.Projects {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("project entry %d: title is required", i)
		}
	}
	for i, s := range r.Skills {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("skill entry %d: name is required", i)
		}
	}
	return nil
}

// Get returns the caller's portfolio with all collections, or 404 when
// none has been created yet.
func (h *PortfolioHandler) Get(c *gin.Context) {
	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.composer.ByOwner(c.Request.Context(), profileID)
	if err != nil {
		h.loggerFromContext(c).Error("load portfolio", slog.Any("error", err))
		Internal(c, "failed to load portfolio")
		return
	}
	if model == nil {
		NotFound(c, "no portfolio yet")
		return
	}
	c.JSON(http.StatusOK, newPortfolioResponse(model))
}

// Create inserts a new portfolio for the caller. The username is
// normalized once here and never changes afterwards.
func (h *PortfolioHandler) Create(c *gin.Context) {
	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req savePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	username := portfolio.NormalizeUsername(req.Username)
	if username == "" {
		BadRequest(c, "username must contain at least one letter or digit")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("profile_id", uint64(profileID)))

	var count int64
	if err := h.db.WithContext(ctx).Model(&database.Portfolio{}).
		Where("profile_id = ?", profileID).Count(&count).Error; err != nil {
		logger.Error("check existing portfolio", slog.Any("error", err))
		Internal(c, "failed to create portfolio")
		return
	}
	if count > 0 {
		Conflict(c, "portfolio already exists")
		return
	}

	if err := h.db.WithContext(ctx).Model(&database.Portfolio{}).
		Where("username = ?", username).Count(&count).Error; err != nil {
		logger.Error("check username", slog.Any("error", err))
		Internal(c, "failed to create portfolio")
		return
	}
	if count > 0 {
		Conflict(c, "username already taken")
		return
	}

	record := database.Portfolio{
		ProfileID: profileID,
		Username:  username,
		Tagline:   req.Tagline,
		Bio:       req.Bio,
		Phone:     req.Phone,
		Location:  req.Location,
		Website:   req.Website,
		Github:    req.Github,
		Linkedin:  req.Linkedin,
		Theme:     theme.Normalize(req.Theme),
		IsPublic:  req.IsPublic == nil || *req.IsPublic,
	}
	if err := h.db.WithContext(ctx).Create(&record).Error; err != nil {
		logger.Error("insert portfolio", slog.Any("error", err))
		Internal(c, "failed to create portfolio")
		return
	}

	if err := h.insertCollections(ctx, record.ID, &req); err != nil {
		logger.Error("insert portfolio collections", slog.Any("error", err))
		Internal(c, err.Error())
		return
	}

	logger.Info("portfolio created",
		slog.Uint64("portfolio_id", uint64(record.ID)),
		slog.String("username", username),
	)
	h.replyWithModel(c, http.StatusCreated, profileID)
}

// Update replaces the portfolio head row and all four collections.
// The stored username wins over whatever the request carries.
func (h *PortfolioHandler) Update(c *gin.Context) {
	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req savePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("profile_id", uint64(profileID)))

	var record database.Portfolio
	if err := h.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no portfolio yet")
			return
		}
		logger.Error("load portfolio", slog.Any("error", err))
		Internal(c, "failed to update portfolio")
		return
	}

	updates := map[string]any{
		"tagline":   req.Tagline,
		"bio":       req.Bio,
		"phone":     req.Phone,
		"location":  req.Location,
		"website":   req.Website,
		"github":    req.Github,
		"linkedin":  req.Linkedin,
		"theme":     theme.Normalize(req.Theme),
		"is_public": req.IsPublic == nil || *req.IsPublic,
	}
	if err := h.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
		logger.Error("update portfolio", slog.Any("error", err))
		Internal(c, "failed to update portfolio")
		return
	}

	if err := h.deleteCollections(ctx, record.ID); err != nil {
		logger.Error("clear portfolio collections", slog.Any("error", err))
		Internal(c, err.Error())
		return
	}
	if err := h.insertCollections(ctx, record.ID, &req); err != nil {
		logger.Error("insert portfolio collections", slog.Any("error", err))
		Internal(c, err.Error())
		return
	}

	logger.Info("portfolio updated", slog.Uint64("portfolio_id", uint64(record.ID)))
	h.replyWithModel(c, http.StatusOK, profileID)
}

// deleteCollections hard-deletes every child row so the subsequent
// inserts see a clean slate.
func (h *PortfolioHandler) deleteCollections(ctx context.Context, portfolioID uint) error {
	for _, model := range []any{
		&database.Education{},
		&database.Experience{},
		&database.Project{},
		&database.Skill{},
	} {
		if err := h.db.WithContext(ctx).Unscoped().
			Where("portfolio_id = ?", portfolioID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertCollections bulk-inserts the four collections concurrently.
// Inserts are independent: every one runs to completion even when a
// sibling fails, and the caller surfaces the first error as-is.
func (h *PortfolioHandler) insertCollections(ctx context.Context, portfolioID uint, req *savePortfolioRequest) error {
	var g errgroup.Group

	g.Go(func() error {
		if len(req.Education) == 0 {
			return nil
		}
		rows := make([]database.Education, 0, len(req.Education))
		for _, e := range req.Education {
			rows = append(rows, database.Education{
				PortfolioID: portfolioID,
				Institution: e.Institution,
				Degree:      e.Degree,
				Field:       e.Field,
				StartDate:   e.StartDate,
				EndDate:     e.EndDate,
				Description: e.Description,
			})
		}
		return h.db.WithContext(ctx).Create(&rows).Error
	})

	g.Go(func() error {
		if len(req.Experience) == 0 {
			return nil
		}
		rows := make([]database.Experience, 0, len(req.Experience))
		for _, e := range req.Experience {
			rows = append(rows, database.Experience{
				PortfolioID: portfolioID,
				Company:     e.Company,
				Position:    e.Position,
				Location:    e.Location,
				StartDate:   e.StartDate,
				EndDate:     e.EndDate,
				Description: e.Description,
			})
		}
		return h.db.WithContext(ctx).Create(&rows).Error
	})

	g.Go(func() error {
		if len(req.Projects) == 0 {
			return nil
		}
		rows := make([]database.Project, 0, len(req.Projects))
		for _, p := range req.Projects {
			rows = append(rows, database.Project{
				PortfolioID:  portfolioID,
				Title:        p.Title,
				Description:  p.Description,
				Technologies: datatypes.JSONSlice[string](p.Technologies),
				Link:         p.Link,
				GithubLink:   p.GithubLink,
			})
		}
		return h.db.WithContext(ctx).Create(&rows).Error
	})

	g.Go(func() error {
		if len(req.Skills) == 0 {
			return nil
		}
		rows := make([]database.Skill, 0, len(req.Skills))
		for _, s := range req.Skills {
			rows = append(rows, database.Skill{
				PortfolioID: portfolioID,
				Name:        s.Name,
				Category:    s.Category,
				Proficiency: s.Proficiency,
			})
		}
		return h.db.WithContext(ctx).Create(&rows).Error
	})

	return g.Wait()
}

func (h *PortfolioHandler) replyWithModel(c *gin.Context, status int, profileID uint) {
	model, err := h.composer.ByOwner(c.Request.Context(), profileID)
	if err != nil || model == nil {
		h.loggerFromContext(c).Error("reload portfolio after save", slog.Any("error", err))
		Internal(c, "failed to load portfolio")
		return
	}
	c.JSON(status, newPortfolioResponse(model))
}

// RequestSnapshot enqueues an HTML snapshot render and returns 202.
func (h *PortfolioHandler) RequestSnapshot(c *gin.Context) {
	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var record database.Portfolio
	if err := h.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no portfolio yet")
			return
		}
		Internal(c, "failed to query portfolio")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewSnapshotRenderTask(record.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		h.loggerFromContext(c).Error("enqueue snapshot render", slog.Any("error", err))
		Internal(c, "failed to enqueue snapshot render")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "snapshot render request accepted",
		"task_id": info.ID,
	})
}

// GetSnapshot returns a presigned URL for the latest rendered snapshot,
// or 409 while none has been produced yet.
func (h *PortfolioHandler) GetSnapshot(c *gin.Context) {
	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var record database.Portfolio
	if err := h.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "no portfolio yet")
			return
		}
		Internal(c, "failed to query portfolio")
		return
	}

	if record.SnapshotKey == "" {
		Conflict(c, "snapshot not ready")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, record.SnapshotKey, snapshotURLTTL)
	if err != nil {
		h.loggerFromContext(c).Error("generate presigned url", slog.Any("error", err))
		Internal(c, "failed to generate download url")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int(snapshotURLTTL.Seconds()),
	})
}

func (h *PortfolioHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

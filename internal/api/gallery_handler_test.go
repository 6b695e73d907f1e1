package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"showfolio/internal/database"
	"showfolio/internal/portfolio"
)

func newGalleryRouter(db *gorm.DB, cacheTTL time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGalleryHandler(portfolio.NewComposer(db), cacheTTL, nil)
	r := gin.New()
	r.GET("/v1/gallery", h.List)
	return r
}

func listGallery(t *testing.T, r *gin.Engine, query string) []portfolio.GalleryItem {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/gallery"+query, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Portfolios []portfolio.GalleryItem `json:"portfolios"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Portfolios
}

func seedGalleryPortfolio(t *testing.T, db *gorm.DB, email, username, tagline string, public bool) {
	t.Helper()
	profile := seedProfile(t, db, email, database.RoleStudent)
	record := database.Portfolio{
		ProfileID: profile.ID,
		Username:  username,
		Tagline:   tagline,
		IsPublic:  public,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
}

func TestGalleryListsOnlyPublicPortfolios(t *testing.T) {
	db := newTestDB(t)
	seedGalleryPortfolio(t, db, "a@example.com", "alice", "Backend engineer", true)
	seedGalleryPortfolio(t, db, "b@example.com", "bob", "Frontend engineer", false)

	r := newGalleryRouter(db, time.Minute)
	items := listGallery(t, r, "")
	if len(items) != 1 || items[0].Username != "alice" {
		t.Fatalf("items = %+v", items)
	}
}

func TestGallerySearchFilters(t *testing.T) {
	db := newTestDB(t)
	seedGalleryPortfolio(t, db, "a@example.com", "alice", "Backend engineer", true)
	seedGalleryPortfolio(t, db, "b@example.com", "bob", "Designer", true)

	r := newGalleryRouter(db, time.Minute)
	items := listGallery(t, r, "?search=BACKEND")
	if len(items) != 1 || items[0].Username != "alice" {
		t.Fatalf("items = %+v", items)
	}
}

func TestGalleryServesFromCache(t *testing.T) {
	db := newTestDB(t)
	seedGalleryPortfolio(t, db, "a@example.com", "alice", "Backend engineer", true)

	r := newGalleryRouter(db, time.Minute)
	if items := listGallery(t, r, ""); len(items) != 1 {
		t.Fatalf("first read items = %+v", items)
	}

	// A new portfolio does not appear until the cache entry expires.
	seedGalleryPortfolio(t, db, "b@example.com", "bob", "Designer", true)
	if items := listGallery(t, r, ""); len(items) != 1 {
		t.Fatalf("cached read items = %+v", items)
	}
}

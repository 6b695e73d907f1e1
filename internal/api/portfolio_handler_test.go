package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"showfolio/internal/database"
	"showfolio/internal/portfolio"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// SQLite cannot take concurrent writers; serialize at the pool.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, email, role string) database.Profile {
	t.Helper()
	profile := database.Profile{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Jane Doe",
		Role:         role,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

// newPortfolioRouter serves the owner endpoints with the caller identity
// pinned to profileID.
func newPortfolioRouter(db *gorm.DB, profileID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPortfolioHandler(db, portfolio.NewComposer(db), nil, nil, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("profileID", profileID) })
	r.GET("/v1/portfolio", h.Get)
	r.POST("/v1/portfolio", h.Create)
	r.PUT("/v1/portfolio", h.Update)
	r.GET("/v1/portfolio/snapshot", h.GetSnapshot)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodePortfolio(t *testing.T, w *httptest.ResponseRecorder) portfolioResponse {
	t.Helper()
	var resp portfolioResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, w.Body.String())
	}
	return resp
}

func TestGetPortfolioNoneYet(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	w := doJSON(t, r, http.MethodGet, "/v1/portfolio", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", w.Code, w.Body.String())
	}
}

func TestCreateNormalizesUsername(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	w := doJSON(t, r, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "JohnDoe!"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", w.Code, w.Body.String())
	}
	resp := decodePortfolio(t, w)
	if resp.Portfolio.Username != "johndoe" {
		t.Fatalf("username = %q, want johndoe", resp.Portfolio.Username)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	create := savePortfolioRequest{
		Username: "janedoe",
		Tagline:  "Engineer",
		Theme:    "minimal",
		Experience: []experienceEntry{
			{Company: "Acme", Position: "Dev", StartDate: "2023-01", EndDate: "2024-06"},
		},
		Skills: []skillEntry{
			{Name: "Go", Category: "Languages", Proficiency: "advanced"},
		},
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/portfolio", create); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, "/v1/portfolio", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d (body: %s)", w.Code, w.Body.String())
	}
	resp := decodePortfolio(t, w)
	if resp.Portfolio.Username != "janedoe" || resp.Portfolio.Tagline != "Engineer" || resp.Portfolio.Theme != "minimal" {
		t.Fatalf("head = %+v", resp.Portfolio)
	}
	if len(resp.Experience) != 1 || resp.Experience[0].Company != "Acme" || resp.Experience[0].Position != "Dev" {
		t.Fatalf("experience = %+v", resp.Experience)
	}
	if len(resp.Skills) != 1 || resp.Skills[0].Name != "Go" {
		t.Fatalf("skills = %+v", resp.Skills)
	}
	if resp.Owner.FullName != "Jane Doe" {
		t.Fatalf("owner = %+v", resp.Owner)
	}
}

func TestCreateConflicts(t *testing.T) {
	db := newTestDB(t)
	first := seedProfile(t, db, "first@example.com", database.RoleStudent)
	second := seedProfile(t, db, "second@example.com", database.RoleStudent)

	firstRouter := newPortfolioRouter(db, first.ID)
	if w := doJSON(t, firstRouter, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "taken"}); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d (body: %s)", w.Code, w.Body.String())
	}

	// One portfolio per identity.
	if w := doJSON(t, firstRouter, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "another"}); w.Code != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}

	// Usernames are globally unique.
	secondRouter := newPortfolioRouter(db, second.ID)
	if w := doJSON(t, secondRouter, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "Taken"}); w.Code != http.StatusConflict {
		t.Fatalf("duplicate username status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}
}

func TestUpdateReplacesCollectionsAndKeepsUsername(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	create := savePortfolioRequest{
		Username: "janedoe",
		Education: []educationEntry{
			{Institution: "Old U", Degree: "BSc", Field: "CS", StartDate: "2018-09", EndDate: "2022-06"},
		},
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/portfolio", create); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", w.Code, w.Body.String())
	}

	update := savePortfolioRequest{
		Username: "differentname",
		Tagline:  "Updated",
		Education: []educationEntry{
			{Institution: "New U", Degree: "MSc", Field: "CS", StartDate: "2022-09", EndDate: "2024-06"},
		},
	}
	w := doJSON(t, r, http.MethodPut, "/v1/portfolio", update)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d (body: %s)", w.Code, w.Body.String())
	}
	resp := decodePortfolio(t, w)
	if resp.Portfolio.Username != "janedoe" {
		t.Fatalf("username changed to %q", resp.Portfolio.Username)
	}
	if resp.Portfolio.Tagline != "Updated" {
		t.Fatalf("tagline = %q", resp.Portfolio.Tagline)
	}
	if len(resp.Education) != 1 || resp.Education[0].Institution != "New U" {
		t.Fatalf("education not replaced: %+v", resp.Education)
	}

	var count int64
	if err := db.Model(&database.Education{}).Count(&count).Error; err != nil {
		t.Fatalf("count education: %v", err)
	}
	if count != 1 {
		t.Fatalf("education rows = %d, want 1", count)
	}
}

func TestSaveValidation(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	// Nothing survives normalization.
	if w := doJSON(t, r, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "!!!"}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty username status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}

	bad := savePortfolioRequest{
		Username: "janedoe",
		Education: []educationEntry{
			{Degree: "BSc", Field: "CS"},
		},
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/portfolio", bad); w.Code != http.StatusBadRequest {
		t.Fatalf("missing institution status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
}

func TestInsertCollectionsRunIndependently(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	record := database.Portfolio{ProfileID: profile.ID, Username: "janedoe"}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}

	// Break exactly one collection.
	if err := db.Migrator().DropTable(&database.Education{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	h := NewPortfolioHandler(db, portfolio.NewComposer(db), nil, nil, nil)
	req := &savePortfolioRequest{
		Education: []educationEntry{
			{Institution: "U", Degree: "BSc", Field: "CS"},
		},
		Skills: []skillEntry{
			{Name: "Go", Category: "Languages"},
		},
	}

	err := h.insertCollections(context.Background(), record.ID, req)
	if err == nil {
		t.Fatal("expected the education insert to fail")
	}

	// The failure of one insert must not cancel its siblings.
	var count int64
	if err := db.Model(&database.Skill{}).Where("portfolio_id = ?", record.ID).Count(&count).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if count != 1 {
		t.Fatalf("skill rows = %d, want 1", count)
	}
}

func TestGetSnapshotNotReady(t *testing.T) {
	db := newTestDB(t)
	profile := seedProfile(t, db, "jane@example.com", database.RoleStudent)
	r := newPortfolioRouter(db, profile.ID)

	if w := doJSON(t, r, http.MethodPost, "/v1/portfolio", savePortfolioRequest{Username: "janedoe"}); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, "/v1/portfolio/snapshot", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("snapshot status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}
}

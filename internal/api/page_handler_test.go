package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"showfolio/internal/api/middleware"
	"showfolio/internal/auth"
	"showfolio/internal/database"
	"showfolio/internal/portfolio"
	"showfolio/internal/session"
)

func newPageStack(t *testing.T, db *gorm.DB) (*gin.Engine, *session.Store) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	authService, err := auth.NewAuthService(privPEM, pubPEM, 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	sessions := session.NewStore(db, authService, nil, nil)

	gin.SetMode(gin.TestMode)
	pageHandler := NewPageHandler(portfolio.NewComposer(db), sessions, nil)

	r := gin.New()
	r.GET("/portfolio/:username", pageHandler.PublicPortfolio)
	r.GET("/dashboard", middleware.PageGuard(sessions, ""), pageHandler.Dashboard)
	studentPages := r.Group("/portfolio")
	studentPages.Use(middleware.PageGuard(sessions, database.RoleStudent))
	{
		studentPages.GET("/create", pageHandler.CreatePortfolio)
		studentPages.GET("/edit", pageHandler.EditPortfolio)
	}
	r.NoRoute(pageHandler.NotFound)

	return r, sessions
}

func signUpAndCookie(t *testing.T, sessions *session.Store, email, role string) *http.Cookie {
	t.Helper()
	_, pair, err := sessions.SignUp(context.Background(), email, "hunter2hunter2", "Test Person", role)
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: pair.AccessToken}
}

func getPage(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardRedirectsWhenSignedOut(t *testing.T) {
	db := newTestDB(t)
	r, _ := newPageStack(t, db)

	w := getPage(r, "/dashboard", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
}

func TestStudentPageRedirectsRecruiterToDashboard(t *testing.T) {
	db := newTestDB(t)
	r, sessions := newPageStack(t, db)
	cookie := signUpAndCookie(t, sessions, "recruiter@example.com", database.RoleRecruiter)

	w := getPage(r, "/portfolio/create", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("redirect to %q, want /dashboard", loc)
	}
}

func TestDashboardRendersForStudent(t *testing.T) {
	db := newTestDB(t)
	r, sessions := newPageStack(t, db)
	cookie := signUpAndCookie(t, sessions, "student@example.com", database.RoleStudent)

	w := getPage(r, "/dashboard", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Test Person") {
		t.Fatal("dashboard missing the signed-in name")
	}
	if !strings.Contains(w.Body.String(), "No portfolio yet") {
		t.Fatal("dashboard should prompt to create a portfolio")
	}
}

func TestUnknownPathRendersNotFoundPage(t *testing.T) {
	db := newTestDB(t)
	r, _ := newPageStack(t, db)

	w := getPage(r, "/does/not/exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "404") {
		t.Fatal("missing not-found page body")
	}
}

func TestPublicPortfolioPage(t *testing.T) {
	db := newTestDB(t)
	r, _ := newPageStack(t, db)

	owner := seedProfile(t, db, "owner@example.com", database.RoleStudent)
	record := database.Portfolio{
		ProfileID: owner.ID,
		Username:  "janedoe",
		Tagline:   "Engineer",
		Theme:     "neon", // unknown, renders as modern
		IsPublic:  true,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}

	w := getPage(r, "/portfolio/janedoe", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Jane Doe") {
		t.Fatal("public page missing owner name")
	}
	if !strings.Contains(w.Body.String(), "Engineer") {
		t.Fatal("public page missing tagline")
	}
}

func TestPublicPortfolioPrivateRenders404(t *testing.T) {
	db := newTestDB(t)
	r, _ := newPageStack(t, db)

	owner := seedProfile(t, db, "owner@example.com", database.RoleStudent)
	record := database.Portfolio{
		ProfileID: owner.ID,
		Username:  "hidden",
		IsPublic:  false,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}

	for _, path := range []string{"/portfolio/hidden", "/portfolio/nosuchuser"} {
		w := getPage(r, path, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", path, w.Code)
		}
	}
}

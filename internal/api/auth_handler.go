package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"showfolio/internal/api/middleware"
	"showfolio/internal/auth"
	"showfolio/internal/database"
	"showfolio/internal/session"
)

const refreshTokenCookieName = "refresh_token"

// AuthHandler serves registration, login, refresh, logout, and the forced
// password change for admin-issued accounts.
type AuthHandler struct {
	db                    *gorm.DB
	sessions              *session.Store
	redis                 redis.UniversalClient
	logger                *slog.Logger
	loginRateLimitPerHour int
	loginLockThreshold    int
	loginLockTTL          time.Duration
	cookieDomain          string
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(
	db *gorm.DB,
	sessions *session.Store,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	loginRateLimitPerHour int,
	loginLockThreshold int,
	loginLockTTL time.Duration,
	cookieDomain string,
) *AuthHandler {
	return &AuthHandler{
		db:                    db,
		sessions:              sessions,
		redis:                 redisClient,
		logger:                logger,
		loginRateLimitPerHour: loginRateLimitPerHour,
		loginLockThreshold:    loginLockThreshold,
		loginLockTTL:          loginLockTTL,
		cookieDomain:          cookieDomain,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Role     string `json:"role" binding:"required,oneof=student recruiter"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken        string `json:"access_token"`
	TokenType          string `json:"token_type"`
	ExpiresIn          int    `json:"expires_in"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

// Register creates a new identity with its profile row.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", req.Email))

	rateKey := "rate:register:" + c.ClientIP() + ":" + time.Now().UTC().Format("2006010215")
	if count, err := bumpCounter(ctx, h.redis, rateKey, time.Hour); err == nil && count > int64(h.loginRateLimitPerHour) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	profile, pair, err := h.sessions.SignUp(ctx, req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrDuplicateEmail):
			logger.Info("register conflict: email already exists")
			Conflict(c, err.Error())
		case errors.Is(err, session.ErrWeakPassword), errors.Is(err, session.ErrInvalidRole):
			BadRequest(c, err.Error())
		default:
			logger.Error("register failed", slog.Any("error", err))
			Internal(c, "internal error")
		}
		return
	}

	logger.Info("profile registered",
		slog.Uint64("profile_id", uint64(profile.ID)),
		slog.String("role", profile.Role),
	)
	h.replyWithTokenPair(c, http.StatusCreated, profile, pair)
}

// Login verifies credentials and issues a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logger := h.loggerFromContext(c).With(slog.String("email", email))

	// Per IP+email, hourly window.
	rateKey := "rate:login:" + ip + ":" + email + ":" + time.Now().UTC().Format("2006010215")
	count, err := bumpCounter(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > int64(h.loginRateLimitPerHour) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	lockKey := "lock:login:" + email
	if ttl, _ := h.redis.TTL(ctx, lockKey).Result(); ttl > 0 {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "account temporarily locked"})
		return
	}

	profile, pair, err := h.sessions.SignIn(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			logger.Info("login failed: invalid credentials")
			_ = h.incrementLoginFail(ctx, email)
			Unauthorized(c)
			return
		}
		logger.Error("login failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	_ = h.redis.Del(ctx, "lock:login:fail:"+email).Err()

	h.replyWithTokenPair(c, http.StatusOK, profile, pair)
}

// Refresh rotates the refresh token and issues a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken == "" {
		Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c)

	profile, pair, err := h.sessions.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			logger.Info("refresh token rejected")
			Unauthorized(c)
			return
		}
		logger.Error("refresh failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	h.replyWithTokenPair(c, http.StatusOK, profile, pair)
}

// Logout revokes the refresh token and clears cookies. Local state is
// cleared even when revocation fails upstream.
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken := h.extractRefreshToken(c); refreshToken != "" {
		h.sessions.SignOut(c.Request.Context(), refreshToken)
	}
	h.clearAuthCookies(c)
	c.Status(http.StatusOK)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required,min=8,max=72"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required,min=8,max=72"`
}

// ChangePassword verifies the current password and stores the new one,
// clearing the must-change flag set by the admin bootstrap.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		BadRequest(c, "password confirmation does not match")
		return
	}
	if strings.TrimSpace(req.NewPassword) == strings.TrimSpace(req.CurrentPassword) {
		BadRequest(c, "new password must be different from current password")
		return
	}

	profileID, ok := profileIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.Uint64("profile_id", uint64(profileID)))

	var profile database.Profile
	if err := h.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		logger.Info("change password: profile not found", slog.Any("error", err))
		Unauthorized(c)
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, profile.PasswordHash) {
		logger.Info("change password: current password mismatch")
		Unauthorized(c)
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logger.Error("change password: hash failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	if err := h.db.WithContext(ctx).Model(&profile).Updates(map[string]any{
		"password_hash":        hashed,
		"must_change_password": false,
	}).Error; err != nil {
		logger.Error("change password: update failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	profile2, pair, err := h.sessions.SignIn(ctx, profile.Email, req.NewPassword)
	if err != nil {
		logger.Error("change password: reissue tokens failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}
	h.replyWithTokenPair(c, http.StatusOK, profile2, pair)
}

func (h *AuthHandler) replyWithTokenPair(c *gin.Context, status int, profile *database.Profile, pair auth.TokenPair) {
	h.setRefreshCookie(c, pair.RefreshToken)
	h.setSessionCookie(c, pair.AccessToken)
	c.JSON(status, tokenResponse{
		AccessToken:        pair.AccessToken,
		TokenType:          "Bearer",
		ExpiresIn:          int(h.sessions.AccessTokenTTL().Seconds()),
		Role:               profile.Role,
		MustChangePassword: profile.MustChangePassword,
	})
}

func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshTokenCookieName); err == nil && token != "" {
		return token
	}

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	maxAge := int(h.sessions.RefreshTokenTTL().Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    refreshToken,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Domain:   h.getCookieDomain(),
		Expires:  time.Now().Add(h.sessions.RefreshTokenTTL()),
	})
}

// The session cookie carries the access token for the server-rendered pages.
func (h *AuthHandler) setSessionCookie(c *gin.Context, accessToken string) {
	maxAge := int(h.sessions.AccessTokenTTL().Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    accessToken,
		MaxAge:   maxAge,
		Path:     "/",
		Secure:   h.isHTTPSRequest(c),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Domain:   h.getCookieDomain(),
	})
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	for _, name := range []string{refreshTokenCookieName, middleware.SessionCookieName} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			Path:     "/",
			Secure:   h.isHTTPSRequest(c),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Domain:   h.getCookieDomain(),
		})
	}
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) isHTTPSRequest(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.Request.Header.Get("X-Forwarded-Proto"), "https")
}

func (h *AuthHandler) getCookieDomain() string { return strings.TrimSpace(h.cookieDomain) }

func (h *AuthHandler) incrementLoginFail(ctx context.Context, email string) error {
	failKey := "lock:login:fail:" + email
	count, err := h.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		_ = h.redis.Expire(ctx, failKey, h.loginLockTTL).Err()
	}
	if count >= int64(h.loginLockThreshold) {
		_ = h.redis.Set(ctx, "lock:login:"+email, "1", h.loginLockTTL).Err()
	}
	return nil
}

func profileIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("profileID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

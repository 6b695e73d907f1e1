// Package session holds the authenticated-identity state of the application:
// sign-in/up/out, token resolution for incoming requests, and synchronous
// change notification for interested components.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"showfolio/internal/auth"
	"showfolio/internal/database"
)

const refreshBlacklistKeyPrefix = "auth:refresh:blacklist:"

// Sentinel errors surfaced by the identity provider side of the store.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("role must be student or recruiter")
)

// State describes the outcome of a session resolution.
type State int

const (
	// StateLoading is the zero value: resolution has not completed yet.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Snapshot is one resolved view of the session. The zero value means
// resolution is still pending.
type Snapshot struct {
	State   State
	Profile *database.Profile
}

// Event kinds delivered to subscribers.
const (
	EventSignedIn  = "signed_in"
	EventSignedUp  = "signed_up"
	EventSignedOut = "signed_out"
	EventRefreshed = "refreshed"
)

// Event notifies subscribers of an auth-state change.
type Event struct {
	Kind    string
	Profile *database.Profile
}

// Store owns session state. It is the sole writer of auth state; every other
// component observes it through Resolve or Subscribe.
type Store struct {
	db          *gorm.DB
	authService *auth.AuthService
	redis       redis.UniversalClient
	logger      *slog.Logger

	mu          sync.Mutex
	subscribers []func(Event)
}

// NewStore constructs the session store.
func NewStore(db *gorm.DB, authService *auth.AuthService, redisClient redis.UniversalClient, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:          db,
		authService: authService,
		redis:       redisClient,
		logger:      logger,
	}
}

// Subscribe registers a callback invoked synchronously, in registration
// order, on every auth-state change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subscribers[idx] = nil
	}
}

func (s *Store) notify(event Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(event)
		}
	}
}

// SignUp creates the identity and its profile row in one insert, then issues
// a token pair. Duplicate emails and weak passwords map to sentinel errors.
func (s *Store) SignUp(ctx context.Context, email, password, fullName, role string) (*database.Profile, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return nil, auth.TokenPair{}, ErrWeakPassword
	}
	if role != database.RoleStudent && role != database.RoleRecruiter {
		return nil, auth.TokenPair{}, ErrInvalidRole
	}

	var existing database.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, auth.TokenPair{}, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.TokenPair{}, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	profile := database.Profile{
		Email:        email,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, auth.TokenPair{}, fmt.Errorf("create profile: %w", err)
	}

	pair, err := s.authService.GenerateTokenPair(profile.ID, profile.Role, profile.MustChangePassword)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.notify(Event{Kind: EventSignedUp, Profile: &profile})
	return &profile, pair, nil
}

// SignIn verifies credentials and issues a token pair. Unknown emails and
// password mismatches are indistinguishable to the caller.
func (s *Store) SignIn(ctx context.Context, email, password string) (*database.Profile, auth.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var profile database.Profile
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.TokenPair{}, ErrInvalidCredentials
		}
		return nil, auth.TokenPair{}, fmt.Errorf("lookup profile: %w", err)
	}

	if !s.authService.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.authService.GenerateTokenPair(profile.ID, profile.Role, profile.MustChangePassword)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.notify(Event{Kind: EventSignedIn, Profile: &profile})
	return &profile, pair, nil
}

// Refresh validates a refresh token against the blacklist, rotates it, and
// issues a fresh pair.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (*database.Profile, auth.TokenPair, error) {
	claims, err := s.authService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" || claims.ID == "" {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	key := refreshBlacklistKeyPrefix + claims.ID
	if err := s.redis.Get(ctx, key).Err(); err == nil {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	} else if !errors.Is(err, redis.Nil) {
		return nil, auth.TokenPair{}, fmt.Errorf("blacklist lookup: %w", err)
	}

	var profile database.Profile
	if err := s.db.WithContext(ctx).First(&profile, claims.ProfileID).Error; err != nil {
		return nil, auth.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.authService.GenerateTokenPair(profile.ID, profile.Role, profile.MustChangePassword)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	// Rotate the old refresh token so it cannot be replayed.
	if err := s.revoke(ctx, key, claims.ExpiresAt); err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.notify(Event{Kind: EventRefreshed, Profile: &profile})
	return &profile, pair, nil
}

// SignOut blacklists the refresh token. Revocation failures are logged but
// never surfaced; the caller clears local state regardless.
func (s *Store) SignOut(ctx context.Context, refreshToken string) {
	defer s.notify(Event{Kind: EventSignedOut})

	claims, err := s.authService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" || claims.ID == "" {
		return
	}

	key := refreshBlacklistKeyPrefix + claims.ID
	if err := s.revoke(ctx, key, claims.ExpiresAt); err != nil {
		s.logger.Error("sign out: revoke refresh token failed", slog.Any("error", err))
	}
}

// Resolve turns an access token into a session snapshot. Any validation or
// lookup failure resolves to an unauthenticated snapshot.
func (s *Store) Resolve(ctx context.Context, accessToken string) Snapshot {
	if strings.TrimSpace(accessToken) == "" {
		return Snapshot{State: StateUnauthenticated}
	}

	claims, err := s.authService.ValidateToken(accessToken)
	if err != nil || claims.TokenType != "access" {
		return Snapshot{State: StateUnauthenticated}
	}

	var profile database.Profile
	if err := s.db.WithContext(ctx).First(&profile, claims.ProfileID).Error; err != nil {
		return Snapshot{State: StateUnauthenticated}
	}

	return Snapshot{State: StateAuthenticated, Profile: &profile}
}

// AccessTokenTTL exposes the access token lifetime for cookie expiry.
func (s *Store) AccessTokenTTL() time.Duration { return s.authService.AccessTokenTTL() }

// RefreshTokenTTL exposes the refresh token lifetime for cookie expiry.
func (s *Store) RefreshTokenTTL() time.Duration { return s.authService.RefreshTokenTTL() }

func (s *Store) revoke(ctx context.Context, key string, expiresAt *jwt.NumericDate) error {
	var ttl time.Duration
	if expiresAt == nil {
		ttl = s.authService.RefreshTokenTTL()
	} else {
		ttl = time.Until(expiresAt.Time)
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.redis.Set(ctx, key, "revoked", ttl).Err()
}

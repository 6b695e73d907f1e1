package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"showfolio/internal/database"
)

// ErrNotFound covers both a nonexistent username and an existing-but-private
// portfolio; callers cannot tell the two apart.
var ErrNotFound = errors.New("portfolio not found")

// ErrLoadFailed reports that at least one child-collection fetch failed.
// Collections that did load keep their rows; the rest stay empty.
var ErrLoadFailed = errors.New("portfolio load failed")

// Composer joins a portfolio row with its four child collections into one
// read model. It is the only reader that assembles them together.
type Composer struct {
	db *gorm.DB
}

// NewComposer constructs a Composer over the given database handle.
func NewComposer(db *gorm.DB) *Composer {
	return &Composer{db: db}
}

// ByOwner fetches the at-most-one portfolio belonging to the profile.
// A missing portfolio returns (nil, nil): "no portfolio yet" is not an error.
func (c *Composer) ByOwner(ctx context.Context, profileID uint) (*ReadModel, error) {
	var p database.Portfolio
	err := c.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query portfolio: %w", err)
	}

	return c.assemble(ctx, p)
}

// ByUsername fetches the public portfolio with the given username. Privacy is
// enforced by the lookup predicate itself: private rows and missing rows both
// yield ErrNotFound.
func (c *Composer) ByUsername(ctx context.Context, username string) (*ReadModel, error) {
	var p database.Portfolio
	err := c.db.WithContext(ctx).
		Where("username = ? AND is_public = ?", username, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query portfolio: %w", err)
	}

	return c.assemble(ctx, p)
}

func (c *Composer) assemble(ctx context.Context, p database.Portfolio) (*ReadModel, error) {
	model := &ReadModel{Portfolio: p}

	var owner database.Profile
	if err := c.db.WithContext(ctx).First(&owner, p.ProfileID).Error; err != nil {
		return nil, fmt.Errorf("query owner profile: %w", err)
	}
	model.Owner = Owner{FullName: owner.FullName, Email: owner.Email}

	// The four fetches race with no relative order. A failed fetch leaves its
	// slice empty while the others keep whatever they loaded.
	var g errgroup.Group
	g.Go(func() error {
		return c.db.WithContext(ctx).
			Where("portfolio_id = ?", p.ID).
			Order("start_date DESC").
			Find(&model.Education).Error
	})
	g.Go(func() error {
		return c.db.WithContext(ctx).
			Where("portfolio_id = ?", p.ID).
			Order("start_date DESC").
			Find(&model.Experience).Error
	})
	g.Go(func() error {
		return c.db.WithContext(ctx).
			Where("portfolio_id = ?", p.ID).
			Order("created_at DESC").
			Find(&model.Projects).Error
	})
	g.Go(func() error {
		return c.db.WithContext(ctx).
			Where("portfolio_id = ?", p.ID).
			Order("category ASC").
			Find(&model.Skills).Error
	})

	if err := g.Wait(); err != nil {
		return model, fmt.Errorf("%w: %s", ErrLoadFailed, err)
	}
	return model, nil
}

// PublicPortfolios lists every public portfolio newest-first, with the owner
// name joined on. The search term filters on owner name, tagline, bio, and
// location, matching case-insensitively.
func (c *Composer) PublicPortfolios(ctx context.Context, search string) ([]GalleryItem, error) {
	var rows []database.Portfolio
	if err := c.db.WithContext(ctx).
		Preload("Profile").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list public portfolios: %w", err)
	}

	search = strings.ToLower(strings.TrimSpace(search))
	items := make([]GalleryItem, 0, len(rows))
	for _, p := range rows {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		items = append(items, GalleryItem{
			Username: p.Username,
			FullName: p.Profile.FullName,
			Tagline:  p.Tagline,
			Bio:      p.Bio,
			Location: p.Location,
			Theme:    p.Theme,
		})
	}
	return items, nil
}

func matchesSearch(p database.Portfolio, search string) bool {
	for _, field := range []string{p.Profile.FullName, p.Tagline, p.Bio, p.Location} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

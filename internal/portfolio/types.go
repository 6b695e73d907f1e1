package portfolio

import (
	"sort"

	"showfolio/internal/database"
)

// Owner carries the profile fields attached to a portfolio for display.
type Owner struct {
	FullName string
	Email    string
}

// ReadModel is the composed view of a portfolio and its four child
// collections, ready for rendering or JSON serialization.
type ReadModel struct {
	Portfolio  database.Portfolio
	Owner      Owner
	Education  []database.Education
	Experience []database.Experience
	Projects   []database.Project
	Skills     []database.Skill
}

// SkillGroup is one render-time category bucket.
type SkillGroup struct {
	Category string
	Skills   []database.Skill
}

// SkillsByCategory groups skills by category, categories sorted ascending.
// Within a group the fetch order is preserved.
func (m *ReadModel) SkillsByCategory() []SkillGroup {
	byCategory := make(map[string][]database.Skill)
	for _, s := range m.Skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([]SkillGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, SkillGroup{Category: c, Skills: byCategory[c]})
	}
	return groups
}

// GalleryItem is one public portfolio card in the gallery listing.
type GalleryItem struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Tagline  string `json:"tagline"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Theme    string `json:"theme"`
}

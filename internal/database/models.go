package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Profile roles. A role is fixed at registration; no role-change flow exists.
const (
	RoleStudent   = "student"
	RoleRecruiter = "recruiter"
)

// Profile represents an account identity.
type Profile struct {
	gorm.Model
	Email              string `gorm:"uniqueIndex;size:255"`
	PasswordHash       string `gorm:"size:255"`
	FullName           string `gorm:"size:255"`
	Role               string `gorm:"size:16;default:student"`
	MustChangePassword bool   `gorm:"default:false"`
	Portfolio          *Portfolio
}

// Portfolio is the public-facing profile page owned by exactly one Profile.
// ProfileID carries a unique index: one portfolio per identity.
type Portfolio struct {
	gorm.Model
	ProfileID   uint    `gorm:"uniqueIndex"`
	Profile     Profile `gorm:"constraint:OnDelete:CASCADE"`
	Username    string  `gorm:"uniqueIndex;size:64"`
	Tagline     string  `gorm:"size:255"`
	Bio         string
	Phone       string `gorm:"size:64"`
	Location    string `gorm:"size:255"`
	Website     string `gorm:"size:512"`
	Github      string `gorm:"size:512"`
	Linkedin    string `gorm:"size:512"`
	Theme       string `gorm:"size:16;default:modern"`
	IsPublic    bool   `gorm:"default:true"`
	SnapshotKey string `gorm:"size:512"`

	Education  []Education  `gorm:"constraint:OnDelete:CASCADE"`
	Experience []Experience `gorm:"constraint:OnDelete:CASCADE"`
	Projects   []Project    `gorm:"constraint:OnDelete:CASCADE"`
	Skills     []Skill      `gorm:"constraint:OnDelete:CASCADE"`
}

// Education is one schooling entry. Dates are free-text strings ordered lexically.
type Education struct {
	gorm.Model
	PortfolioID uint   `gorm:"index"`
	Institution string `gorm:"size:255"`
	Degree      string `gorm:"size:255"`
	Field       string `gorm:"size:255"`
	StartDate   string `gorm:"size:32"`
	EndDate     string `gorm:"size:32"`
	Description string
}

// Experience is one employment entry.
type Experience struct {
	gorm.Model
	PortfolioID uint   `gorm:"index"`
	Company     string `gorm:"size:255"`
	Position    string `gorm:"size:255"`
	Location    string `gorm:"size:255"`
	StartDate   string `gorm:"size:32"`
	EndDate     string `gorm:"size:32"`
	Description string
}

// Project is one showcased project. Technologies are stored as a JSONB array.
type Project struct {
	gorm.Model
	PortfolioID  uint   `gorm:"index"`
	Title        string `gorm:"size:255"`
	Description  string
	Technologies datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Link         string                      `gorm:"size:512"`
	GithubLink   string                      `gorm:"size:512"`
}

// Skill is one named skill grouped under a free-text category at render time.
type Skill struct {
	gorm.Model
	PortfolioID uint   `gorm:"index"`
	Name        string `gorm:"size:255"`
	Category    string `gorm:"size:255"`
	Proficiency string `gorm:"size:64"`
}

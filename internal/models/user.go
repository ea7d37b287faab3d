package models

import "time"

// UserRole represents the household role of a user
type UserRole string

const (
	UserRoleParent     UserRole = "parent"
	UserRoleChild      UserRole = "child"
	UserRolePersonal   UserRole = "personal"
	UserRoleBoyfriend  UserRole = "boyfriend"
	UserRoleGirlfriend UserRole = "girlfriend"
)

// ValidRole reports whether the given role is one of the supported household roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleParent, UserRoleChild, UserRolePersonal, UserRoleBoyfriend, UserRoleGirlfriend:
		return true
	}
	return false
}

// User represents the user model in the database
type User struct {
	Base
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        UserRole   `gorm:"not null;default:personal" json:"role"`
	Points      int        `gorm:"not null;default:0" json:"points"`
	Avatar      string     `json:"avatar,omitempty"`
	FamilyID    *string    `gorm:"type:uuid" json:"family_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Tasks  []Task  `gorm:"foreignKey:AssignedBy" json:"tasks,omitempty"`
	Events []Event `gorm:"foreignKey:UserID" json:"events,omitempty"`
}

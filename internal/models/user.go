package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser       = "user"
	RoleSuperAdmin = "super_admin"

	// LegacyRoleSuperAdmin is the numeric role id the platform used before
	// named roles were introduced. Rows migrated from the old schema still
	// carry it.
	LegacyRoleSuperAdmin = 1
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	DisplayName  string         `gorm:"size:100" json:"display_name"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	LegacyRoleID int            `gorm:"default:0" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsSuperAdmin folds the legacy numeric role id and the named role into one
// capability. Every super-admin check goes through here or SuperAdmins.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin || u.LegacyRoleID == LegacyRoleSuperAdmin
}

// SuperAdmins is the query-side twin of IsSuperAdmin.
func SuperAdmins(db *gorm.DB) *gorm.DB {
	return db.Where("role = ? OR legacy_role_id = ?", RoleSuperAdmin, LegacyRoleSuperAdmin)
}

// Name returns the label shown in the moderation queue.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the users table owned by the identity service.
// Billing only reads it (names + role for the finance view).
type UserModel struct {
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserFirstName string    `gorm:"column:user_first_name;type:text;not null" json:"user_first_name"`
	UserLastName  string    `gorm:"column:user_last_name;type:text;not null"  json:"user_last_name"`
	UserEmail     string    `gorm:"column:user_email;type:text;not null;uniqueIndex" json:"user_email"`
	UserRole      string    `gorm:"column:user_role;type:text;not null;default:student" json:"user_role"`
	UserIsActive  bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u UserModel) FullName() string {
	return u.UserFirstName + " " + u.UserLastName
}

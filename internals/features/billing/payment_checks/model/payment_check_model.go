package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentCheckModel is one uploaded proof-of-payment file claimed against a
// (student, group) pair. Not validated against the ledger — reconciliation
// is a query-time join.
type PaymentCheckModel struct {
	PaymentCheckID uuid.UUID `gorm:"column:payment_check_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_check_id"`

	PaymentCheckStudentID uuid.UUID `gorm:"column:payment_check_student_id;type:uuid;not null;index" json:"payment_check_student_id"`
	PaymentCheckGroupID   uuid.UUID `gorm:"column:payment_check_group_id;type:uuid;not null;index"   json:"payment_check_group_id"`

	// Opaque storage key, not a local path.
	PaymentCheckObjectKey string `gorm:"column:payment_check_object_key;type:text;not null" json:"payment_check_object_key"`
	PaymentCheckFileName  string `gorm:"column:payment_check_file_name;type:text;not null"  json:"payment_check_file_name"`

	PaymentCheckUploadedAt time.Time      `gorm:"column:payment_check_uploaded_at;autoCreateTime" json:"payment_check_uploaded_at"`
	PaymentCheckUpdatedAt  *time.Time     `gorm:"column:payment_check_updated_at;autoUpdateTime"  json:"payment_check_updated_at,omitempty"`
	PaymentCheckDeletedAt  gorm.DeletedAt `gorm:"column:payment_check_deleted_at;index"           json:"payment_check_deleted_at,omitempty"`
}

func (PaymentCheckModel) TableName() string { return "payment_checks" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentRequisiteModel is static reference data telling students where to
// pay: bank, account and an optional QR image stored in OSS.
type PaymentRequisiteModel struct {
	PaymentRequisiteID uuid.UUID `gorm:"column:payment_requisite_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_requisite_id"`

	PaymentRequisiteBankName      string `gorm:"column:payment_requisite_bank_name;type:text;not null" json:"payment_requisite_bank_name"`
	PaymentRequisiteAccountNumber string `gorm:"column:payment_requisite_account_number;type:text;not null" json:"payment_requisite_account_number"`
	PaymentRequisiteRecipient     string `gorm:"column:payment_requisite_recipient;type:text;not null" json:"payment_requisite_recipient"`

	// Storage key of the uploaded QR image (optional).
	PaymentRequisiteQRKey *string `gorm:"column:payment_requisite_qr_key;type:text" json:"payment_requisite_qr_key,omitempty"`

	// Free-form extras (SWIFT, comment templates, ...)
	PaymentRequisiteExtra datatypes.JSONMap `gorm:"column:payment_requisite_extra;type:jsonb" json:"payment_requisite_extra,omitempty"`

	PaymentRequisiteCreatedAt time.Time      `gorm:"column:payment_requisite_created_at;autoCreateTime" json:"payment_requisite_created_at"`
	PaymentRequisiteUpdatedAt *time.Time     `gorm:"column:payment_requisite_updated_at;autoUpdateTime" json:"payment_requisite_updated_at,omitempty"`
	PaymentRequisiteDeletedAt gorm.DeletedAt `gorm:"column:payment_requisite_deleted_at;index"          json:"payment_requisite_deleted_at,omitempty"`
}

func (PaymentRequisiteModel) TableName() string { return "payment_requisites" }

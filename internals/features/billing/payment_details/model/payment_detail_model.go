package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment status of a ledger entry. Strictly derived from
// (current month, months paid) — never set independently.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// PaymentDetailModel is one student's billing ledger for one group
// enrollment.
type PaymentDetailModel struct {
	PaymentDetailID uuid.UUID `gorm:"column:payment_detail_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_detail_id"`

	// One active ledger row per (student, group)
	PaymentDetailStudentID uuid.UUID `gorm:"column:payment_detail_student_id;type:uuid;not null;uniqueIndex:uq_payment_detail_student_group" json:"payment_detail_student_id"`
	PaymentDetailGroupID   uuid.UUID `gorm:"column:payment_detail_group_id;type:uuid;not null;uniqueIndex:uq_payment_detail_student_group"   json:"payment_detail_group_id"`

	// Snapshot of the course price at enrollment; later price changes do not
	// touch existing ledgers.
	PaymentDetailPrice decimal.Decimal `gorm:"column:payment_detail_price;type:numeric(12,2);not null" json:"payment_detail_price"`

	PaymentDetailJoinedAt     time.Time `gorm:"column:payment_detail_joined_at;type:date;not null" json:"payment_detail_joined_at"`
	PaymentDetailMonthsPaid   int       `gorm:"column:payment_detail_months_paid;not null;default:1" json:"payment_detail_months_paid"`
	PaymentDetailCurrentMonth int       `gorm:"column:payment_detail_current_month;not null;default:1" json:"payment_detail_current_month"`

	// deadline = joined_at + months_paid months; recomputed on every write
	PaymentDetailDeadline time.Time `gorm:"column:payment_detail_deadline;type:date;not null" json:"payment_detail_deadline"`

	PaymentDetailStatus   string `gorm:"column:payment_detail_status;type:text;not null;default:paid" json:"payment_detail_status"`
	PaymentDetailIsActive bool   `gorm:"column:payment_detail_is_active;not null;default:true" json:"payment_detail_is_active"`

	PaymentDetailCreatedAt time.Time      `gorm:"column:payment_detail_created_at;autoCreateTime" json:"payment_detail_created_at"`
	PaymentDetailUpdatedAt *time.Time     `gorm:"column:payment_detail_updated_at;autoUpdateTime" json:"payment_detail_updated_at,omitempty"`
	PaymentDetailDeletedAt gorm.DeletedAt `gorm:"column:payment_detail_deleted_at;index"          json:"payment_detail_deleted_at,omitempty"`
}

func (PaymentDetailModel) TableName() string { return "payment_details" }

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "langschool_backend/internals/features/billing/payment_details/model"
)

/* =============== REQUESTS =============== */

type CreateInitialPaymentRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	GroupID   uuid.UUID `json:"group_id"   validate:"required"`
}

// Update (partial, admin only). status is accepted for wire compatibility
// with older clients but always overridden by the derived value.
type UpdatePaymentDetailRequest struct {
	MonthsPaid         *int    `json:"months_paid"          validate:"omitempty,gte=0"`
	CurrentMonthNumber *int    `json:"current_month_number" validate:"omitempty,gte=1"`
	Status             *string `json:"status"               validate:"omitempty,oneof=paid unpaid"`
}

type InactivatePaymentQuery struct {
	StudentID uuid.UUID `query:"student_id" validate:"required"`
	GroupID   uuid.UUID `query:"group_id"   validate:"required"`
}

/* =============== RESPONSES =============== */

type PaymentDetailResponse struct {
	PaymentDetailID uuid.UUID `json:"payment_detail_id"`

	StudentID uuid.UUID `json:"student_id"`
	GroupID   uuid.UUID `json:"group_id"`

	Price              decimal.Decimal `json:"price"`
	JoinedAt           time.Time       `json:"joined_at"`
	MonthsPaid         int             `json:"months_paid"`
	CurrentMonthNumber int             `json:"current_month_number"`
	Deadline           time.Time       `json:"deadline"`
	Status             string          `json:"status"`
	IsActive           bool            `json:"is_active"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func FromModel(row m.PaymentDetailModel) PaymentDetailResponse {
	return PaymentDetailResponse{
		PaymentDetailID:    row.PaymentDetailID,
		StudentID:          row.PaymentDetailStudentID,
		GroupID:            row.PaymentDetailGroupID,
		Price:              row.PaymentDetailPrice,
		JoinedAt:           row.PaymentDetailJoinedAt,
		MonthsPaid:         row.PaymentDetailMonthsPaid,
		CurrentMonthNumber: row.PaymentDetailCurrentMonth,
		Deadline:           row.PaymentDetailDeadline,
		Status:             row.PaymentDetailStatus,
		IsActive:           row.PaymentDetailIsActive,
		CreatedAt:          row.PaymentDetailCreatedAt,
		UpdatedAt:          row.PaymentDetailUpdatedAt,
	}
}

func FromModels(rows []m.PaymentDetailModel) []PaymentDetailResponse {
	out := make([]PaymentDetailResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}

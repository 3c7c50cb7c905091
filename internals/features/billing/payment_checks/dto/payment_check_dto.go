package dto

import (
	"time"

	"github.com/google/uuid"

	m "langschool_backend/internals/features/billing/payment_checks/model"
)

type PaymentCheckResponse struct {
	PaymentCheckID uuid.UUID `json:"payment_check_id"`

	StudentID uuid.UUID `json:"student_id"`
	GroupID   uuid.UUID `json:"group_id"`

	FileName   string    `json:"file_name"`
	ObjectKey  string    `json:"object_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func FromModel(row m.PaymentCheckModel) PaymentCheckResponse {
	return PaymentCheckResponse{
		PaymentCheckID: row.PaymentCheckID,
		StudentID:      row.PaymentCheckStudentID,
		GroupID:        row.PaymentCheckGroupID,
		FileName:       row.PaymentCheckFileName,
		ObjectKey:      row.PaymentCheckObjectKey,
		UploadedAt:     row.PaymentCheckUploadedAt,
	}
}

func FromModels(rows []m.PaymentCheckModel) []PaymentCheckResponse {
	out := make([]PaymentCheckResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}

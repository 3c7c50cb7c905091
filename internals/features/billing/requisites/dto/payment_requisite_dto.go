package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "langschool_backend/internals/features/billing/requisites/model"
)

type CreatePaymentRequisiteRequest struct {
	BankName      string            `json:"bank_name"      validate:"required,min=2"`
	AccountNumber string            `json:"account_number" validate:"required,min=4"`
	Recipient     string            `json:"recipient"      validate:"required,min=2"`
	Extra         datatypes.JSONMap `json:"extra"          validate:"omitempty"`
}

func (r CreatePaymentRequisiteRequest) ToModel() *m.PaymentRequisiteModel {
	return &m.PaymentRequisiteModel{
		PaymentRequisiteBankName:      r.BankName,
		PaymentRequisiteAccountNumber: r.AccountNumber,
		PaymentRequisiteRecipient:     r.Recipient,
		PaymentRequisiteExtra:         r.Extra,
	}
}

type UpdatePaymentRequisiteRequest struct {
	BankName      *string           `json:"bank_name"      validate:"omitempty,min=2"`
	AccountNumber *string           `json:"account_number" validate:"omitempty,min=4"`
	Recipient     *string           `json:"recipient"      validate:"omitempty,min=2"`
	Extra         datatypes.JSONMap `json:"extra"          validate:"omitempty"`
}

func (r UpdatePaymentRequisiteRequest) ApplyTo(mo *m.PaymentRequisiteModel) {
	if r.BankName != nil {
		mo.PaymentRequisiteBankName = *r.BankName
	}
	if r.AccountNumber != nil {
		mo.PaymentRequisiteAccountNumber = *r.AccountNumber
	}
	if r.Recipient != nil {
		mo.PaymentRequisiteRecipient = *r.Recipient
	}
	if r.Extra != nil {
		mo.PaymentRequisiteExtra = r.Extra
	}
}

type PaymentRequisiteResponse struct {
	PaymentRequisiteID uuid.UUID `json:"payment_requisite_id"`

	BankName      string            `json:"bank_name"`
	AccountNumber string            `json:"account_number"`
	Recipient     string            `json:"recipient"`
	QRKey         *string           `json:"qr_key,omitempty"`
	Extra         datatypes.JSONMap `json:"extra,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromModel(row m.PaymentRequisiteModel) PaymentRequisiteResponse {
	return PaymentRequisiteResponse{
		PaymentRequisiteID: row.PaymentRequisiteID,
		BankName:           row.PaymentRequisiteBankName,
		AccountNumber:      row.PaymentRequisiteAccountNumber,
		Recipient:          row.PaymentRequisiteRecipient,
		QRKey:              row.PaymentRequisiteQRKey,
		Extra:              row.PaymentRequisiteExtra,
		CreatedAt:          row.PaymentRequisiteCreatedAt,
	}
}

func FromModels(rows []m.PaymentRequisiteModel) []PaymentRequisiteResponse {
	out := make([]PaymentRequisiteResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}

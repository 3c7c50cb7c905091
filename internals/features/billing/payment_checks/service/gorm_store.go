package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "langschool_backend/internals/features/billing/payment_checks/model"
)

// GormCheckStore is the production CheckStore backed by Postgres.
type GormCheckStore struct {
	DB *gorm.DB
}

func NewGormCheckStore(db *gorm.DB) *GormCheckStore {
	return &GormCheckStore{DB: db}
}

func (s *GormCheckStore) FindCheck(ctx context.Context, id uuid.UUID) (*model.PaymentCheckModel, error) {
	var row model.PaymentCheckModel
	if err := s.DB.WithContext(ctx).
		Where("payment_check_id = ?", id).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormCheckStore) DeleteCheck(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Delete(&model.PaymentCheckModel{}, "payment_check_id = ?", id).Error
}

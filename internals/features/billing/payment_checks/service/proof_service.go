package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "langschool_backend/internals/features/billing/payment_checks/model"
)

// CheckStore is the metadata seam for payment proofs. Absent rows surface
// as gorm.ErrRecordNotFound.
type CheckStore interface {
	FindCheck(ctx context.Context, id uuid.UUID) (*model.PaymentCheckModel, error)
	DeleteCheck(ctx context.Context, id uuid.UUID) error
}

// ObjectRemover removes stored objects without ever failing the caller.
type ObjectRemover interface {
	DeleteBestEffort(ctx context.Context, key string)
}

type ProofService struct {
	Store   CheckStore
	Objects ObjectRemover
}

func NewProofService(store CheckStore, objects ObjectRemover) *ProofService {
	return &ProofService{Store: store, Objects: objects}
}

func (s *ProofService) Find(ctx context.Context, id uuid.UUID) (*model.PaymentCheckModel, error) {
	row, err := s.Store.FindCheck(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Payment check not found")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return row, nil
}

// Delete removes the stored object best-effort, then the metadata row.
// A storage outage never blocks the metadata removal.
func (s *ProofService) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.Find(ctx, id)
	if err != nil {
		return err
	}

	s.Objects.DeleteBestEffort(ctx, row.PaymentCheckObjectKey)

	if err := s.Store.DeleteCheck(ctx, id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete payment check")
	}
	return nil
}

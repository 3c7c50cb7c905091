package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
	groupModel "langschool_backend/internals/features/school/groups/model"
)

/* =======================================================================
   Pure billing math
======================================================================= */

// DeriveStatus: paid iff the student has paid up to (or past) the month the
// calendar has reached. Never stored independently of this comparison.
func DeriveStatus(currentMonth, monthsPaid int) string {
	if currentMonth <= monthsPaid {
		return detailModel.StatusPaid
	}
	return detailModel.StatusUnpaid
}

// ComputeDeadline = joined_at + months_paid months.
func ComputeDeadline(joinedAt time.Time, monthsPaid int) time.Time {
	return joinedAt.AddDate(0, monthsPaid, 0)
}

// EffectiveJoinDate: a student joining before the group starts is billed
// from the group start.
func EffectiveJoinDate(groupStart, today time.Time) time.Time {
	if groupStart.After(today) {
		return groupStart
	}
	return today
}

// DateOnly drops the time-of-day component; billing works in whole days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

/* =======================================================================
   Ledger operations
======================================================================= */

// LedgerStore is the persistence seam for ledger operations. Absent rows
// surface as gorm.ErrRecordNotFound.
type LedgerStore interface {
	FindGroup(ctx context.Context, groupID uuid.UUID) (*groupModel.GroupModel, error)
	FindEntry(ctx context.Context, studentID, groupID uuid.UUID) (*detailModel.PaymentDetailModel, error)
	CreateEntry(ctx context.Context, entry *detailModel.PaymentDetailModel) error
	SetInactive(ctx context.Context, id uuid.UUID) error
}

type LedgerService struct {
	Store LedgerStore
	Now   func() time.Time
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{Store: NewGormLedgerStore(db), Now: time.Now}
}

// CreateInitialPayment opens the billing ledger when a student joins a group.
// Idempotent: a second call for the same (student, group) returns the
// existing row untouched with created=false.
func (s *LedgerService) CreateInitialPayment(ctx context.Context, studentID, groupID uuid.UUID) (*detailModel.PaymentDetailModel, bool, error) {
	group, err := s.Store.FindGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fiber.NewError(fiber.StatusNotFound, "Group not found")
		}
		return nil, false, err
	}
	if group.Course == nil {
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "Group has no course attached")
	}

	existing, err := s.Store.FindEntry(ctx, studentID, groupID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	joinedAt := DateOnly(EffectiveJoinDate(group.GroupStartDate, s.Now()))
	entry := &detailModel.PaymentDetailModel{
		PaymentDetailStudentID:    studentID,
		PaymentDetailGroupID:      groupID,
		PaymentDetailPrice:        group.Course.CoursePrice,
		PaymentDetailJoinedAt:     joinedAt,
		PaymentDetailMonthsPaid:   1,
		PaymentDetailCurrentMonth: 1,
		PaymentDetailDeadline:     ComputeDeadline(joinedAt, 1),
		PaymentDetailStatus:       DeriveStatus(1, 1),
		PaymentDetailIsActive:     true,
	}

	if err := s.Store.CreateEntry(ctx, entry); err != nil {
		// A concurrent create for the same pair loses the race on the
		// composite unique index; that is still the idempotent no-op path.
		if isUniqueViolation(err) {
			if row, ferr := s.Store.FindEntry(ctx, studentID, groupID); ferr == nil {
				return row, false, nil
			}
		}
		return nil, false, err
	}
	return entry, true, nil
}

// InactivatePayment flags the ledger row when the student leaves the group.
// Returns (nil, nil) when no row exists. The row is kept for reporting.
func (s *LedgerService) InactivatePayment(ctx context.Context, studentID, groupID uuid.UUID) (*detailModel.PaymentDetailModel, error) {
	entry, err := s.Store.FindEntry(ctx, studentID, groupID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Store.SetInactive(ctx, entry.PaymentDetailID); err != nil {
		return nil, err
	}
	entry.PaymentDetailIsActive = false
	return entry, nil
}

// ApplyPartialUpdate applies admin-supplied fields and re-derives deadline
// and status. A supplied status is deliberately ignored.
func ApplyPartialUpdate(entry *detailModel.PaymentDetailModel, monthsPaid, currentMonth *int) error {
	if monthsPaid != nil {
		if *monthsPaid < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "months_paid must not be negative")
		}
		entry.PaymentDetailMonthsPaid = *monthsPaid
	}
	if currentMonth != nil {
		if *currentMonth < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "current_month must be >= 1")
		}
		entry.PaymentDetailCurrentMonth = *currentMonth
	}
	entry.PaymentDetailDeadline = ComputeDeadline(entry.PaymentDetailJoinedAt, entry.PaymentDetailMonthsPaid)
	entry.PaymentDetailStatus = DeriveStatus(entry.PaymentDetailCurrentMonth, entry.PaymentDetailMonthsPaid)
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
	groupModel "langschool_backend/internals/features/school/groups/model"
)

type pairKey struct{ student, group uuid.UUID }

// fakeLedgerStore enforces the (student, group) uniqueness the composite
// index provides in Postgres.
type fakeLedgerStore struct {
	groups  map[uuid.UUID]*groupModel.GroupModel
	entries map[pairKey]*detailModel.PaymentDetailModel

	createCalls int
	// raceWinner, when set, is inserted just before CreateEntry fails with a
	// unique violation, like a concurrent request winning the insert.
	raceWinner *detailModel.PaymentDetailModel
}

func newFakeStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		groups:  map[uuid.UUID]*groupModel.GroupModel{},
		entries: map[pairKey]*detailModel.PaymentDetailModel{},
	}
}

func (f *fakeLedgerStore) addGroup(start, end time.Time, price string) uuid.UUID {
	id := uuid.New()
	f.groups[id] = &groupModel.GroupModel{
		GroupID:        id,
		GroupName:      "English B2 Evening",
		GroupStartDate: start,
		GroupEndDate:   end,
		GroupIsActive:  true,
		Course: &groupModel.CourseModel{
			CourseID:    uuid.New(),
			CourseTitle: "English B2",
			CoursePrice: decimal.RequireFromString(price),
		},
	}
	return id
}

func (f *fakeLedgerStore) FindGroup(ctx context.Context, groupID uuid.UUID) (*groupModel.GroupModel, error) {
	g, ok := f.groups[groupID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (f *fakeLedgerStore) FindEntry(ctx context.Context, studentID, groupID uuid.UUID) (*detailModel.PaymentDetailModel, error) {
	e, ok := f.entries[pairKey{studentID, groupID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeLedgerStore) CreateEntry(ctx context.Context, entry *detailModel.PaymentDetailModel) error {
	f.createCalls++
	key := pairKey{entry.PaymentDetailStudentID, entry.PaymentDetailGroupID}
	if f.raceWinner != nil {
		f.entries[key] = f.raceWinner
		f.raceWinner = nil
		return errors.New(`duplicate key value violates unique constraint "uq_payment_detail_student_group"`)
	}
	if _, ok := f.entries[key]; ok {
		return errors.New(`duplicate key value violates unique constraint "uq_payment_detail_student_group"`)
	}
	entry.PaymentDetailID = uuid.New()
	cp := *entry
	f.entries[key] = &cp
	return nil
}

func (f *fakeLedgerStore) SetInactive(ctx context.Context, id uuid.UUID) error {
	for _, e := range f.entries {
		if e.PaymentDetailID == id {
			e.PaymentDetailIsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func ledgerAt(store LedgerStore, today time.Time) *LedgerService {
	return &LedgerService{Store: store, Now: func() time.Time { return today }}
}

func TestCreateInitialPayment_OpensLedger(t *testing.T) {
	store := newFakeStore()
	groupID := store.addGroup(date(2025, time.January, 1), date(2025, time.December, 1), "1500.00")
	studentID := uuid.New()

	entry, created, err := ledgerAt(store, date(2025, time.March, 10)).
		CreateInitialPayment(context.Background(), studentID, groupID)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, studentID, entry.PaymentDetailStudentID)
	assert.Equal(t, groupID, entry.PaymentDetailGroupID)
	assert.True(t, entry.PaymentDetailPrice.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, date(2025, time.March, 10), entry.PaymentDetailJoinedAt, "joins after group start: billed from today")
	assert.Equal(t, 1, entry.PaymentDetailMonthsPaid)
	assert.Equal(t, 1, entry.PaymentDetailCurrentMonth)
	assert.Equal(t, date(2025, time.April, 10), entry.PaymentDetailDeadline)
	assert.Equal(t, detailModel.StatusPaid, entry.PaymentDetailStatus)
	assert.True(t, entry.PaymentDetailIsActive)
}

func TestCreateInitialPayment_BilledFromGroupStart(t *testing.T) {
	store := newFakeStore()
	groupID := store.addGroup(date(2025, time.September, 1), date(2026, time.June, 1), "1200.00")

	entry, created, err := ledgerAt(store, date(2025, time.August, 20)).
		CreateInitialPayment(context.Background(), uuid.New(), groupID)
	require.NoError(t, err)
	require.True(t, created)

	assert.Equal(t, date(2025, time.September, 1), entry.PaymentDetailJoinedAt)
	assert.Equal(t, date(2025, time.October, 1), entry.PaymentDetailDeadline)
}

func TestCreateInitialPayment_SecondCallReturnsExistingRow(t *testing.T) {
	store := newFakeStore()
	groupID := store.addGroup(date(2025, time.January, 1), date(2025, time.December, 1), "1500.00")
	studentID := uuid.New()
	svc := ledgerAt(store, date(2025, time.March, 10))

	first, created, err := svc.CreateInitialPayment(context.Background(), studentID, groupID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.CreateInitialPayment(context.Background(), studentID, groupID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.PaymentDetailID, second.PaymentDetailID)

	assert.Len(t, store.entries, 1, "exactly one row for the pair")
	assert.Equal(t, 1, store.createCalls, "existence check short-circuits the insert")
}

func TestCreateInitialPayment_LostInsertRaceReturnsWinner(t *testing.T) {
	store := newFakeStore()
	groupID := store.addGroup(date(2025, time.January, 1), date(2025, time.December, 1), "1500.00")
	studentID := uuid.New()

	winner := &detailModel.PaymentDetailModel{
		PaymentDetailID:        uuid.New(),
		PaymentDetailStudentID: studentID,
		PaymentDetailGroupID:   groupID,
	}
	store.raceWinner = winner

	entry, created, err := ledgerAt(store, date(2025, time.March, 10)).
		CreateInitialPayment(context.Background(), studentID, groupID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.PaymentDetailID, entry.PaymentDetailID)
	assert.Len(t, store.entries, 1)
}

func TestCreateInitialPayment_GroupMissing(t *testing.T) {
	store := newFakeStore()

	_, _, err := ledgerAt(store, date(2025, time.March, 10)).
		CreateInitialPayment(context.Background(), uuid.New(), uuid.New())

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
	assert.Zero(t, store.createCalls)
}

func TestInactivatePayment(t *testing.T) {
	store := newFakeStore()
	groupID := store.addGroup(date(2025, time.January, 1), date(2025, time.December, 1), "1500.00")
	studentID := uuid.New()
	svc := ledgerAt(store, date(2025, time.March, 10))

	_, _, err := svc.CreateInitialPayment(context.Background(), studentID, groupID)
	require.NoError(t, err)

	entry, err := svc.InactivatePayment(context.Background(), studentID, groupID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.False(t, entry.PaymentDetailIsActive)
	assert.False(t, store.entries[pairKey{studentID, groupID}].PaymentDetailIsActive, "row kept, only flagged")
}

func TestInactivatePayment_AbsentPairIsNoop(t *testing.T) {
	store := newFakeStore()

	entry, err := ledgerAt(store, date(2025, time.March, 10)).
		InactivatePayment(context.Background(), uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

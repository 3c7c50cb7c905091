package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
)

// fakeLedgerRepo keeps entries in memory and can fail saves per id.
type fakeLedgerRepo struct {
	entries  map[uuid.UUID]*RolloverEntry
	statuses map[uuid.UUID]string
	failSave map[uuid.UUID]error
	listErr  error
}

func newFakeRepo(entries ...RolloverEntry) *fakeLedgerRepo {
	r := &fakeLedgerRepo{
		entries:  map[uuid.UUID]*RolloverEntry{},
		statuses: map[uuid.UUID]string{},
		failSave: map[uuid.UUID]error{},
	}
	for i := range entries {
		e := entries[i]
		r.entries[e.ID] = &e
	}
	return r
}

func (r *fakeLedgerRepo) ListActiveEntries(ctx context.Context) ([]RolloverEntry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]RolloverEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeLedgerRepo) SaveAdvance(ctx context.Context, id uuid.UUID, currentMonth int, status string) error {
	if err := r.failSave[id]; err != nil {
		return err
	}
	r.entries[id].CurrentMonth = currentMonth
	r.statuses[id] = status
	return nil
}

func engineAt(repo LedgerRepo, today time.Time) *RolloverEngine {
	en := NewRolloverEngine(repo)
	en.Now = func() time.Time { return today }
	return en
}

func TestRollover_AdvancesPastBoundary(t *testing.T) {
	id := uuid.New()
	repo := newFakeRepo(RolloverEntry{
		ID:           id,
		JoinedAt:     date(2025, time.January, 1),
		MonthsPaid:   1,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.December, 1),
	})

	advanced, failed, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, advanced)
	assert.Equal(t, 0, failed)

	assert.Equal(t, 2, repo.entries[id].CurrentMonth)
	assert.Equal(t, detailModel.StatusUnpaid, repo.statuses[id], "2 > 1 months paid")
}

func TestRollover_SameDayRerunIsNoop(t *testing.T) {
	id := uuid.New()
	repo := newFakeRepo(RolloverEntry{
		ID:           id,
		JoinedAt:     date(2025, time.January, 1),
		MonthsPaid:   1,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.December, 1),
	})
	en := engineAt(repo, date(2025, time.February, 1))

	_, _, err := en.Run(context.Background())
	require.NoError(t, err)
	advanced, _, err := en.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, advanced, "the advanced counter moved the boundary forward")
	assert.Equal(t, 2, repo.entries[id].CurrentMonth)
}

func TestRollover_GroupEndDateGuard(t *testing.T) {
	id := uuid.New()
	repo := newFakeRepo(RolloverEntry{
		ID:           id,
		JoinedAt:     date(2025, time.January, 1),
		MonthsPaid:   1,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.January, 15),
	})

	advanced, _, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, advanced, "boundary 2025-02-01 is past the group end")
	assert.Equal(t, 1, repo.entries[id].CurrentMonth)
}

func TestRollover_BoundaryOnEndDateDoesNotAdvance(t *testing.T) {
	repo := newFakeRepo(RolloverEntry{
		ID:           uuid.New(),
		JoinedAt:     date(2025, time.January, 1),
		MonthsPaid:   1,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.February, 1), // == boundary
	})

	advanced, _, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, advanced)
}

func TestRollover_BeforeBoundaryIsNoop(t *testing.T) {
	repo := newFakeRepo(RolloverEntry{
		ID:           uuid.New(),
		JoinedAt:     date(2025, time.January, 10),
		MonthsPaid:   1,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.December, 1),
	})

	advanced, _, err := engineAt(repo, date(2025, time.February, 9)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, advanced)
}

func TestRollover_PaidStudentStaysPaid(t *testing.T) {
	id := uuid.New()
	repo := newFakeRepo(RolloverEntry{
		ID:           id,
		JoinedAt:     date(2025, time.January, 1),
		MonthsPaid:   3,
		CurrentMonth: 1,
		GroupEndDate: date(2025, time.December, 1),
	})

	_, _, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.entries[id].CurrentMonth)
	assert.Equal(t, detailModel.StatusPaid, repo.statuses[id], "2 <= 3 months paid")
}

func TestRollover_FailingRowDoesNotBlockOthers(t *testing.T) {
	bad, good := uuid.New(), uuid.New()
	repo := newFakeRepo(
		RolloverEntry{
			ID:           bad,
			JoinedAt:     date(2025, time.January, 1),
			MonthsPaid:   1,
			CurrentMonth: 1,
			GroupEndDate: date(2025, time.December, 1),
		},
		RolloverEntry{
			ID:           good,
			JoinedAt:     date(2025, time.January, 1),
			MonthsPaid:   1,
			CurrentMonth: 1,
			GroupEndDate: date(2025, time.December, 1),
		},
	)
	repo.failSave[bad] = errors.New("connection reset")

	advanced, failed, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, advanced)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, repo.entries[good].CurrentMonth)
	assert.Equal(t, 1, repo.entries[bad].CurrentMonth)
}

func TestRollover_ListFailureIsFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("db down")

	_, _, err := engineAt(repo, date(2025, time.February, 1)).Run(context.Background())
	assert.Error(t, err)
}

func TestShouldAdvance(t *testing.T) {
	base := RolloverEntry{
		JoinedAt:     date(2025, time.March, 15),
		CurrentMonth: 2,
		GroupEndDate: date(2026, time.March, 1),
	}
	// boundary = 2025-05-15

	assert.False(t, ShouldAdvance(base, date(2025, time.May, 14)))
	assert.True(t, ShouldAdvance(base, date(2025, time.May, 15)))
	assert.True(t, ShouldAdvance(base, date(2025, time.June, 1)))
}

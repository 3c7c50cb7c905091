package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

/* =======================================================================
   Monthly rollover engine
======================================================================= */

// RolloverEntry is the slice of a ledger row the engine needs, joined with
// the group's end date.
type RolloverEntry struct {
	ID           uuid.UUID
	JoinedAt     time.Time
	MonthsPaid   int
	CurrentMonth int
	GroupEndDate time.Time
}

// LedgerRepo is the persistence seam of the rollover engine.
type LedgerRepo interface {
	// ListActiveEntries returns active ledger rows of active groups.
	ListActiveEntries(ctx context.Context) ([]RolloverEntry, error)
	// SaveAdvance persists the advanced month counter and derived status.
	SaveAdvance(ctx context.Context, id uuid.UUID, currentMonth int, status string) error
}

type RolloverEngine struct {
	Repo LedgerRepo
	Now  func() time.Time
}

func NewRolloverEngine(repo LedgerRepo) *RolloverEngine {
	return &RolloverEngine{Repo: repo, Now: time.Now}
}

// NextBoundary is the date the entry's next billing month starts.
func NextBoundary(joinedAt time.Time, currentMonth int) time.Time {
	return joinedAt.AddDate(0, currentMonth, 0)
}

// ShouldAdvance: the month counter moves once the boundary has passed, but
// never past the group's end date. Advancing moves the boundary forward, so
// re-running on the same day is a no-op.
func ShouldAdvance(e RolloverEntry, today time.Time) bool {
	boundary := NextBoundary(e.JoinedAt, e.CurrentMonth)
	return !today.Before(boundary) && boundary.Before(e.GroupEndDate)
}

// Run processes the whole working set in one pass. A failing row is logged
// and skipped; the rest of the batch continues.
func (en *RolloverEngine) Run(ctx context.Context) (advanced, failed int, err error) {
	today := DateOnly(en.Now())

	entries, err := en.Repo.ListActiveEntries(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		if !ShouldAdvance(e, today) {
			continue
		}
		next := e.CurrentMonth + 1
		status := DeriveStatus(next, e.MonthsPaid)
		if err := en.Repo.SaveAdvance(ctx, e.ID, next, status); err != nil {
			log.Printf("[ROLLOVER] entry %s: save failed: %v", e.ID, err)
			failed++
			continue
		}
		advanced++
	}
	return advanced, failed, nil
}

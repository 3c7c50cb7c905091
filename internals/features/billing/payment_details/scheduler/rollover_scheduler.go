package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"langschool_backend/internals/configs"
	"langschool_backend/internals/features/billing/payment_details/service"
)

// RegisterRolloverJob attaches the daily billing rollover to an explicitly
// constructed cron instance. The schedule defaults to midnight.
func RegisterRolloverJob(c *cron.Cron, db *gorm.DB) error {
	schedule := configs.GetEnv("BILLING_ROLLOVER_CRON", "0 0 * * *")
	_, err := c.AddFunc(schedule, func() {
		RunDailyRollover(db)
	})
	if err != nil {
		return err
	}
	log.Printf("[ROLLOVER] registered schedule=%q", schedule)
	return nil
}

// RunDailyRollover is the named, independently invocable job body. The
// manual admin trigger calls it with the same semantics as the cron.
func RunDailyRollover(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	engine := service.NewRolloverEngine(service.NewGormLedgerRepo(db))
	advanced, failed, err := engine.Run(ctx)
	if err != nil {
		log.Printf("[ROLLOVER] run failed: %v", err)
		return
	}
	log.Printf("[ROLLOVER] done: advanced=%d failed=%d", advanced, failed)
}

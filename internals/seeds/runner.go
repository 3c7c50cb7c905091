package seeds

import (
	"log"

	groupModel "langschool_backend/internals/features/school/groups/model"
	userModel "langschool_backend/internals/features/school/users/model"
	billing "langschool_backend/internals/seeds/billing"

	"gorm.io/gorm"
)

// RunDevSeeds loads local development fixtures. Controlled by the
// SEED_DEV_DATA env flag so it never runs against a real database.
// The users/courses/groups tables are owned by the school service in
// deployments; a fresh dev database has none of them, so they are migrated
// here before the inserts.
func RunDevSeeds(db *gorm.DB) {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&groupModel.CourseModel{},
		&groupModel.GroupModel{},
	); err != nil {
		log.Fatalf("❌ dev reference-table migration failed: %v", err)
	}
	billing.SeedBillingFromJSON(db, "internals/seeds/billing/data_billing.json")
}

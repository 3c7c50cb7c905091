package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "langschool_backend/internals/route/details"

	"langschool_backend/internals/helpers/oss"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, storage *oss.Service) {
	startTime = time.Now()

	BaseRoutes(app)

	log.Println("[INFO] Setting up BillingRoutes...")
	routeDetails.BillingRoutes(app, db, storage)
}

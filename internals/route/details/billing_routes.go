package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"langschool_backend/internals/constants"
	financeCtl "langschool_backend/internals/features/billing/finance/controller"
	checkCtl "langschool_backend/internals/features/billing/payment_checks/controller"
	detailCtl "langschool_backend/internals/features/billing/payment_details/controller"
	requisiteCtl "langschool_backend/internals/features/billing/requisites/controller"
	"langschool_backend/internals/helpers/oss"
	"langschool_backend/internals/middlewares"
	authmw "langschool_backend/internals/middlewares/auth"
)

func BillingRoutes(app *fiber.App, db *gorm.DB, storage *oss.Service) {
	details := detailCtl.NewPaymentDetailController(db)
	checks := checkCtl.NewPaymentCheckController(db, storage)
	requisites := requisiteCtl.NewPaymentRequisiteController(db, storage)
	finance := financeCtl.NewFinanceController(db)

	api := app.Group("/api", authmw.AuthMiddleware())

	// ===================== PAYMENT DETAILS =====================
	api.Get("/payment-details", details.Get) // ?payment_id|group_id|student_id

	// ===================== CHECKS (payment proofs) =====================
	chk := api.Group("/checks")
	chk.Post("/", middlewares.UploadRateLimiter(), checks.Upload)
	chk.Get("/", checks.List)
	chk.Get("/:id", checks.GetByID)
	chk.Get("/:id/file", checks.Download)
	chk.Patch("/:id", middlewares.UploadRateLimiter(), checks.Replace)

	// ===================== REQUISITES =====================
	api.Get("/requisites", requisites.List)

	// ===================== FINANCE (teacher and admin) =====================
	fin := api.Group("/finance",
		authmw.OnlyRoles(constants.RoleErrorTeacher("finance"), constants.TeacherAndAbove...))
	fin.Get("/", finance.GetFinance)
	fin.Get("/export", finance.Export) // ?format=csv|xlsx

	// ===================== ADMIN =====================
	admin := api.Group("/admin",
		authmw.OnlyRoles(constants.RoleErrorAdmin("billing"), constants.AdminOnly...))

	admin.Post("/payment-details", details.CreateInitial)
	admin.Patch("/payment-details/:id", details.Update)
	admin.Delete("/payment-details", details.Inactivate) // ?student_id&group_id
	admin.Post("/billing/rollover", details.TriggerRollover)

	admin.Delete("/checks/:id", checks.Delete)

	admin.Post("/requisites", requisites.Create)
	admin.Patch("/requisites/:id", requisites.Update)
	admin.Put("/requisites/:id/qr", middlewares.UploadRateLimiter(), requisites.UploadQR)
	admin.Delete("/requisites/:id", requisites.Delete)
}

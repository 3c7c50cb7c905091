package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"langschool_backend/internals/constants"
	dto "langschool_backend/internals/features/billing/payment_details/dto"
	model "langschool_backend/internals/features/billing/payment_details/model"
	"langschool_backend/internals/features/billing/payment_details/service"
	helper "langschool_backend/internals/helpers"
)

type PaymentDetailController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewPaymentDetailController(db *gorm.DB) *PaymentDetailController {
	return &PaymentDetailController{DB: db, Ledger: service.NewLedgerService(db)}
}

/* ======================= CREATE INITIAL ======================= */
// POST /api/admin/payment-details
func (h *PaymentDetailController) CreateInitial(c *fiber.Ctx) error {
	var req dto.CreateInitialPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	entry, created, err := h.Ledger.CreateInitialPayment(c.UserContext(), req.StudentID, req.GroupID)
	if err != nil {
		return err
	}
	if !created {
		return helper.JsonOK(c, "Ledger entry already exists", dto.FromModel(*entry))
	}
	return helper.JsonCreated(c, "Ledger entry created", dto.FromModel(*entry))
}

/* ======================= QUERY ======================= */
// GET /api/payment-details?payment_id=|group_id=|student_id=
// Exactly one of the three selectors must be supplied.
func (h *PaymentDetailController) Get(c *fiber.Ctx) error {
	paymentID := strings.TrimSpace(c.Query("payment_id"))
	groupID := strings.TrimSpace(c.Query("group_id"))
	studentID := strings.TrimSpace(c.Query("student_id"))

	supplied := 0
	for _, v := range []string{paymentID, groupID, studentID} {
		if v != "" {
			supplied++
		}
	}
	if supplied != 1 {
		return fiber.NewError(fiber.StatusBadRequest,
			"Supply exactly one of payment_id, group_id or student_id")
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}

	switch {
	case paymentID != "":
		id, err := uuid.Parse(paymentID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "payment_id is not a valid UUID")
		}
		var row model.PaymentDetailModel
		if err := h.DB.WithContext(c.UserContext()).Where("payment_detail_id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ledger entry not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := h.ensureOwnRow(c, role, row.PaymentDetailStudentID); err != nil {
			return err
		}
		return helper.JsonOK(c, "OK", dto.FromModel(row))

	case groupID != "":
		if role == constants.RoleStudent {
			return fiber.NewError(fiber.StatusForbidden, "Students may only query their own entries")
		}
		id, err := uuid.Parse(groupID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id is not a valid UUID")
		}
		var rows []model.PaymentDetailModel
		if err := h.DB.WithContext(c.UserContext()).Where("payment_detail_group_id = ?", id).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "OK", dto.FromModels(rows))

	default:
		id, err := uuid.Parse(studentID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id is not a valid UUID")
		}
		if err := h.ensureOwnRow(c, role, id); err != nil {
			return err
		}
		var rows []model.PaymentDetailModel
		if err := h.DB.WithContext(c.UserContext()).Where("payment_detail_student_id = ?", id).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return helper.JsonOK(c, "OK", dto.FromModels(rows))
	}
}

/* ======================= UPDATE (PATCH, partial) ======================= */
// PATCH /api/admin/payment-details/:id
func (h *PaymentDetailController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	var req dto.UpdatePaymentDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.PaymentDetailModel
	if err := h.DB.WithContext(c.UserContext()).Where("payment_detail_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Ledger entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// status, if present in the payload, is ignored: always derived
	if err := service.ApplyPartialUpdate(&row, req.MonthsPaid, req.CurrentMonthNumber); err != nil {
		return err
	}

	if err := h.DB.WithContext(c.UserContext()).Model(&model.PaymentDetailModel{}).
		Where("payment_detail_id = ?", row.PaymentDetailID).
		Updates(map[string]interface{}{
			"payment_detail_months_paid":   row.PaymentDetailMonthsPaid,
			"payment_detail_current_month": row.PaymentDetailCurrentMonth,
			"payment_detail_deadline":      row.PaymentDetailDeadline,
			"payment_detail_status":        row.PaymentDetailStatus,
		}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update ledger entry")
	}
	return helper.JsonOK(c, "Ledger entry updated", dto.FromModel(row))
}

/* ======================= INACTIVATE ======================= */
// DELETE /api/admin/payment-details?student_id=&group_id=
// The row is flagged inactive, never removed; history feeds reporting.
func (h *PaymentDetailController) Inactivate(c *fiber.Ctx) error {
	var q dto.InactivatePaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := validator.New().Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	entry, err := h.Ledger.InactivatePayment(c.UserContext(), q.StudentID, q.GroupID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if entry == nil {
		return helper.JsonOK(c, "No ledger entry for this pair", nil)
	}
	return helper.JsonOK(c, "Ledger entry inactivated", dto.FromModel(*entry))
}

/* ======================= MANUAL ROLLOVER TRIGGER ======================= */
// POST /api/admin/billing/rollover — same job body the cron runs.
func (h *PaymentDetailController) TriggerRollover(c *fiber.Ctx) error {
	engine := service.NewRolloverEngine(service.NewGormLedgerRepo(h.DB))
	advanced, failed, err := engine.Run(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "Rollover finished", fiber.Map{
		"advanced": advanced,
		"failed":   failed,
	})
}

func (h *PaymentDetailController) ensureOwnRow(c *fiber.Ctx, role string, ownerID uuid.UUID) error {
	if role != constants.RoleStudent {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if userID != ownerID {
		return fiber.NewError(fiber.StatusForbidden, "Students may only query their own entries")
	}
	return nil
}

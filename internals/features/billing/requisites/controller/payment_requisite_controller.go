package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "langschool_backend/internals/features/billing/requisites/dto"
	model "langschool_backend/internals/features/billing/requisites/model"
	helper "langschool_backend/internals/helpers"
	"langschool_backend/internals/helpers/oss"
)

type PaymentRequisiteController struct {
	DB      *gorm.DB
	Storage *oss.Service
}

func NewPaymentRequisiteController(db *gorm.DB, storage *oss.Service) *PaymentRequisiteController {
	return &PaymentRequisiteController{DB: db, Storage: storage}
}

/* ======================= LIST (public for logged-in users) ======================= */
// GET /api/requisites
func (h *PaymentRequisiteController) List(c *fiber.Ctx) error {
	var rows []model.PaymentRequisiteModel
	if err := h.DB.WithContext(c.UserContext()).Order("payment_requisite_created_at ASC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

/* ======================= CREATE ======================= */
// POST /api/admin/requisites
func (h *PaymentRequisiteController) Create(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequisiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create requisite")
	}
	return helper.JsonCreated(c, "Requisite created", dto.FromModel(*row))
}

/* ======================= UPDATE ======================= */
// PATCH /api/admin/requisites/:id
func (h *PaymentRequisiteController) Update(c *fiber.Ctx) error {
	row, err := h.find(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePaymentRequisiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyTo(row)
	if err := h.DB.WithContext(c.UserContext()).Save(row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update requisite")
	}
	return helper.JsonOK(c, "Requisite updated", dto.FromModel(*row))
}

/* ======================= QR UPLOAD ======================= */
// PUT /api/admin/requisites/:id/qr (multipart: file)
func (h *PaymentRequisiteController) UploadQR(c *fiber.Ctx) error {
	row, err := h.find(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is missing")
	}
	if err := helper.ValidateProofUpload(fh); err != nil {
		return err
	}

	key, err := h.Storage.UploadImageAsWebP(c.UserContext(), "requisites", fh)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Storage upload failed: "+err.Error())
	}

	oldKey := row.PaymentRequisiteQRKey
	row.PaymentRequisiteQRKey = &key
	if err := h.DB.WithContext(c.UserContext()).Model(&model.PaymentRequisiteModel{}).
		Where("payment_requisite_id = ?", row.PaymentRequisiteID).
		Update("payment_requisite_qr_key", key).Error; err != nil {
		h.Storage.DeleteBestEffort(c.UserContext(), key)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update requisite")
	}
	if oldKey != nil {
		h.Storage.DeleteBestEffort(c.UserContext(), *oldKey)
	}
	return helper.JsonOK(c, "QR uploaded", dto.FromModel(*row))
}

/* ======================= DELETE ======================= */
// DELETE /api/admin/requisites/:id
func (h *PaymentRequisiteController) Delete(c *fiber.Ctx) error {
	row, err := h.find(c)
	if err != nil {
		return err
	}

	if row.PaymentRequisiteQRKey != nil {
		h.Storage.DeleteBestEffort(c.UserContext(), *row.PaymentRequisiteQRKey)
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(&model.PaymentRequisiteModel{}, "payment_requisite_id = ?", row.PaymentRequisiteID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete requisite")
	}
	return helper.JsonOK(c, "Requisite deleted", nil)
}

func (h *PaymentRequisiteController) find(c *fiber.Ctx) (*model.PaymentRequisiteModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	var row model.PaymentRequisiteModel
	if err := h.DB.WithContext(c.UserContext()).Where("payment_requisite_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Requisite not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &row, nil
}

package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"langschool_backend/internals/constants"
	dto "langschool_backend/internals/features/billing/payment_checks/dto"
	model "langschool_backend/internals/features/billing/payment_checks/model"
	"langschool_backend/internals/features/billing/payment_checks/service"
	groupModel "langschool_backend/internals/features/school/groups/model"
	helper "langschool_backend/internals/helpers"
	"langschool_backend/internals/helpers/oss"
)

type PaymentCheckController struct {
	DB      *gorm.DB
	Storage *oss.Service
	Proofs  *service.ProofService
}

func NewPaymentCheckController(db *gorm.DB, storage *oss.Service) *PaymentCheckController {
	return &PaymentCheckController{
		DB:      db,
		Storage: storage,
		Proofs:  service.NewProofService(service.NewGormCheckStore(db), storage),
	}
}

/* ======================= UPLOAD ======================= */
// POST /api/checks  (multipart: file, group_id, [student_id admin only])
func (h *PaymentCheckController) Upload(c *fiber.Ctx) error {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	groupID, err := uuid.Parse(strings.TrimSpace(c.FormValue("group_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "group_id is not a valid UUID")
	}

	studentID := userID
	if s := strings.TrimSpace(c.FormValue("student_id")); s != "" {
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Only admins may upload for another student")
		}
		studentID, err = uuid.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "student_id is not a valid UUID")
		}
	}

	var group groupModel.GroupModel
	if err := h.DB.WithContext(c.UserContext()).Where("group_id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Group not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is missing")
	}
	if err := helper.ValidateProofUpload(fh); err != nil {
		return err
	}

	key, err := h.storeProof(c, studentID, fh)
	if err != nil {
		return err
	}

	row := &model.PaymentCheckModel{
		PaymentCheckStudentID: studentID,
		PaymentCheckGroupID:   groupID,
		PaymentCheckObjectKey: key,
		PaymentCheckFileName:  fh.Filename,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		// the object is already stored; reap it so it does not leak
		h.Storage.DeleteBestEffort(c.UserContext(), key)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save payment check")
	}
	return helper.JsonCreated(c, "Payment check uploaded", dto.FromModel(*row))
}

/* ======================= REPLACE ======================= */
// PATCH /api/checks/:id  (multipart: file optional)
func (h *PaymentCheckController) Replace(c *fiber.Ctx) error {
	row, err := h.findCheck(c)
	if err != nil {
		return err
	}
	if err := h.ensureOwnerOrAdmin(c, row); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		// nothing to replace
		return helper.JsonOK(c, "Payment check unchanged", dto.FromModel(*row))
	}
	if err := helper.ValidateProofUpload(fh); err != nil {
		return err
	}

	oldKey := row.PaymentCheckObjectKey
	key, err := h.storeProof(c, row.PaymentCheckStudentID, fh)
	if err != nil {
		return err
	}

	row.PaymentCheckObjectKey = key
	row.PaymentCheckFileName = fh.Filename
	if err := h.DB.WithContext(c.UserContext()).Model(&model.PaymentCheckModel{}).
		Where("payment_check_id = ?", row.PaymentCheckID).
		Updates(map[string]interface{}{
			"payment_check_object_key": key,
			"payment_check_file_name":  fh.Filename,
		}).Error; err != nil {
		h.Storage.DeleteBestEffort(c.UserContext(), key)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update payment check")
	}

	// Old object removal never blocks the metadata update.
	h.Storage.DeleteBestEffort(c.UserContext(), oldKey)
	return helper.JsonOK(c, "Payment check replaced", dto.FromModel(*row))
}

/* ======================= DOWNLOAD ======================= */
// GET /api/checks/:id/file — owner, any teacher, or admin
func (h *PaymentCheckController) Download(c *fiber.Ctx) error {
	row, err := h.findCheck(c)
	if err != nil {
		return err
	}

	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleStudent {
		if err := h.ensureOwnerOrAdmin(c, row); err != nil {
			return err
		}
	}

	reader, err := h.Storage.Download(c.UserContext(), row.PaymentCheckObjectKey)
	if err != nil {
		if oss.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Stored file not found")
		}
		return fiber.NewError(fiber.StatusBadGateway, "Storage read failed: "+err.Error())
	}

	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=%q", filepath.Base(row.PaymentCheckFileName)))
	return c.SendStream(reader)
}

/* ======================= GET / LIST ======================= */
// GET /api/checks/:id
func (h *PaymentCheckController) GetByID(c *fiber.Ctx) error {
	row, err := h.findCheck(c)
	if err != nil {
		return err
	}
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleStudent {
		if err := h.ensureOwnerOrAdmin(c, row); err != nil {
			return err
		}
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*row))
}

// GET /api/checks?group_id=&student_id= — teacher/admin review listing;
// students get their own uploads only.
func (h *PaymentCheckController) List(c *fiber.Ctx) error {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}

	base := h.DB.WithContext(c.UserContext()).Model(&model.PaymentCheckModel{})

	if role == constants.RoleStudent {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		base = base.Where("payment_check_student_id = ?", userID)
	} else {
		if s := strings.TrimSpace(c.Query("student_id")); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "student_id is not a valid UUID")
			}
			base = base.Where("payment_check_student_id = ?", id)
		}
	}
	if g := strings.TrimSpace(c.Query("group_id")); g != "" {
		id, err := uuid.Parse(g)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "group_id is not a valid UUID")
		}
		base = base.Where("payment_check_group_id = ?", id)
	}

	var rows []model.PaymentCheckModel
	if err := base.Order("payment_check_uploaded_at DESC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

/* ======================= DELETE ======================= */
// DELETE /api/admin/checks/:id — storage removal is best-effort, metadata
// removal always proceeds.
func (h *PaymentCheckController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	if err := h.Proofs.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonOK(c, "Payment check deleted", nil)
}

/* ======================= internal ======================= */

// storeProof pushes the file to object storage: images are re-encoded to
// webp, pdfs go as-is. Returns the storage key.
func (h *PaymentCheckController) storeProof(c *fiber.Ctx, studentID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	dir := "checks/" + studentID.String()

	if constants.IsImageExt(fh.Filename) {
		key, err := h.Storage.UploadImageAsWebP(c.UserContext(), dir, fh)
		if err != nil {
			return "", fiber.NewError(fiber.StatusBadGateway, "Storage upload failed: "+err.Error())
		}
		return key, nil
	}

	key, _, err := h.Storage.UploadFormFile(c.UserContext(), dir, fh)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Storage upload failed: "+err.Error())
	}
	return key, nil
}

func (h *PaymentCheckController) findCheck(c *fiber.Ctx) (*model.PaymentCheckModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return h.Proofs.Find(c.UserContext(), id)
}

func (h *PaymentCheckController) ensureOwnerOrAdmin(c *fiber.Ctx, row *model.PaymentCheckModel) error {
	role, err := helper.GetUserRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleAdmin {
		return nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if userID != row.PaymentCheckStudentID {
		return fiber.NewError(fiber.StatusForbidden, "Only the uploader or an admin may do this")
	}
	return nil
}

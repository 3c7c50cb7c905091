package controller

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	dto "langschool_backend/internals/features/billing/finance/dto"
	checkModel "langschool_backend/internals/features/billing/payment_checks/model"
	groupModel "langschool_backend/internals/features/school/groups/model"
	helper "langschool_backend/internals/helpers"
)

type FinanceController struct {
	DB *gorm.DB
}

func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{DB: db}
}

// financeFlatRow is the raw join scan target; checks get attached afterwards.
type financeFlatRow struct {
	StudentID uuid.UUID `gorm:"column:student_id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`

	GroupID     uuid.UUID `gorm:"column:group_id"`
	GroupName   string    `gorm:"column:group_name"`
	CourseTitle string    `gorm:"column:course_title"`

	Price        decimal.Decimal `gorm:"column:price"`
	JoinedAt     time.Time       `gorm:"column:joined_at"`
	MonthsPaid   int             `gorm:"column:months_paid"`
	CurrentMonth int             `gorm:"column:current_month"`
	Deadline     time.Time       `gorm:"column:deadline"`
	Status       string          `gorm:"column:status"`
	IsActive     bool            `gorm:"column:is_active"`
}

/* ======================= GET /api/finance ======================= */
// ?group_id=&search=&page=&size=
func (h *FinanceController) GetFinance(c *fiber.Ctx) error {
	base, err := h.baseQuery(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// A page past the end clamps to the last page, never errors.
	page, _ := helper.ClampPage(paging.Page, paging.Size, total)
	offset := (page - 1) * paging.Size

	var flat []financeFlatRow
	if err := base.
		Select(financeSelect).
		Order("LOWER(u.user_last_name) ASC, LOWER(u.user_first_name) ASC").
		Limit(paging.Size).
		Offset(offset).
		Scan(&flat).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	rows, err := h.attachChecks(c, flat)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPagination(page, paging.Size, total, len(rows)),
	})
}

/* ======================= GET /api/finance/export ======================= */
// ?group_id=&search=&format=csv|xlsx — full result set, no pagination.
func (h *FinanceController) Export(c *fiber.Ctx) error {
	base, err := h.baseQuery(c)
	if err != nil {
		return err
	}

	var flat []financeFlatRow
	if err := base.
		Select(financeSelect).
		Order("LOWER(u.user_last_name) ASC, LOWER(u.user_first_name) ASC").
		Scan(&flat).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	rows, err := h.attachChecks(c, flat)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format", "csv")))
	stamp := time.Now().Format("2006-01-02")
	switch format {
	case "csv":
		data, err := renderCSV(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "finance_"+stamp+".csv"))
		return c.Send(data)
	case "xlsx":
		data, err := renderXLSX(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "finance_"+stamp+".xlsx"))
		return c.Send(data)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be csv or xlsx")
	}
}

/* ======================= internals ======================= */

// financeSelect maps the join columns onto financeFlatRow. Applied after
// Count so the count query stays a plain count(*).
const financeSelect = `pd.payment_detail_student_id AS student_id,
	u.user_first_name AS first_name,
	u.user_last_name AS last_name,
	pd.payment_detail_group_id AS group_id,
	g.group_name AS group_name,
	cr.course_title AS course_title,
	pd.payment_detail_price AS price,
	pd.payment_detail_joined_at AS joined_at,
	pd.payment_detail_months_paid AS months_paid,
	pd.payment_detail_current_month AS current_month,
	pd.payment_detail_deadline AS deadline,
	pd.payment_detail_status AS status,
	pd.payment_detail_is_active AS is_active`

// baseQuery builds the users × groups × payment_details join with filters.
func (h *FinanceController) baseQuery(c *fiber.Ctx) (*gorm.DB, error) {
	base := h.DB.WithContext(c.UserContext()).
		Table("payment_details AS pd").
		Joins("JOIN users u ON u.user_id = pd.payment_detail_student_id").
		Joins("JOIN groups g ON g.group_id = pd.payment_detail_group_id").
		Joins("JOIN courses cr ON cr.course_id = g.group_course_id").
		Where("pd.payment_detail_deleted_at IS NULL")

	if s := strings.TrimSpace(c.Query("group_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "group_id is not a valid UUID")
		}
		var group groupModel.GroupModel
		if err := h.DB.WithContext(c.UserContext()).Where("group_id = ?", id).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Group not found")
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		base = base.Where("pd.payment_detail_group_id = ?", id)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		base = base.Where(`(u.user_first_name ILIKE ? OR u.user_last_name ILIKE ? OR EXISTS (
			SELECT 1 FROM payment_checks pc
			WHERE pc.payment_check_student_id = pd.payment_detail_student_id
			  AND pc.payment_check_group_id = pd.payment_detail_group_id
			  AND pc.payment_check_deleted_at IS NULL
			  AND pc.payment_check_file_name ILIKE ?))`, like, like, like)
	}

	return base, nil
}

// attachChecks loads all proofs for the page's (student, group) pairs in one
// query and folds them into the rows.
func (h *FinanceController) attachChecks(c *fiber.Ctx, flat []financeFlatRow) ([]dto.FinanceRow, error) {
	rows := make([]dto.FinanceRow, 0, len(flat))
	if len(flat) == 0 {
		return rows, nil
	}

	pairs := make([][]interface{}, 0, len(flat))
	for _, f := range flat {
		pairs = append(pairs, []interface{}{f.StudentID, f.GroupID})
	}

	var checks []checkModel.PaymentCheckModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("(payment_check_student_id, payment_check_group_id) IN ?", pairs).
		Order("payment_check_uploaded_at ASC").
		Find(&checks).Error; err != nil {
		return nil, err
	}

	type pairKey struct{ s, g uuid.UUID }
	byPair := make(map[pairKey][]dto.CheckBrief, len(flat))
	for _, ch := range checks {
		k := pairKey{ch.PaymentCheckStudentID, ch.PaymentCheckGroupID}
		byPair[k] = append(byPair[k], dto.CheckBrief{
			PaymentCheckID: ch.PaymentCheckID,
			FileName:       ch.PaymentCheckFileName,
			ObjectKey:      ch.PaymentCheckObjectKey,
			UploadedAt:     ch.PaymentCheckUploadedAt,
		})
	}

	for _, f := range flat {
		briefs := byPair[pairKey{f.StudentID, f.GroupID}]
		if briefs == nil {
			briefs = []dto.CheckBrief{}
		}
		rows = append(rows, dto.FinanceRow{
			StudentID:          f.StudentID,
			FirstName:          f.FirstName,
			LastName:           f.LastName,
			GroupID:            f.GroupID,
			GroupName:          f.GroupName,
			CourseTitle:        f.CourseTitle,
			Price:              f.Price,
			JoinedAt:           f.JoinedAt,
			MonthsPaid:         f.MonthsPaid,
			CurrentMonthNumber: f.CurrentMonth,
			Deadline:           f.Deadline,
			Status:             f.Status,
			IsActive:           f.IsActive,
			Checks:             briefs,
		})
	}
	return rows, nil
}

func renderCSV(rows []dto.FinanceRow) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(dto.ExportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(dto.BuildExportRecord(row)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(rows []dto.FinanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Finance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, title := range dto.ExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, val := range dto.BuildExportRecord(row) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

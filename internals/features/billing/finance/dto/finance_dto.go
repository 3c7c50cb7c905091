package dto

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
)

// CheckBrief is the proof slice shown inside a finance row.
type CheckBrief struct {
	PaymentCheckID uuid.UUID `json:"payment_check_id"`
	FileName       string    `json:"file_name"`
	ObjectKey      string    `json:"object_key"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// FinanceRow is one logical (student, group) reconciliation row: ledger data
// joined with names and all proofs claimed against the pair. Rows without
// proofs still appear, with an empty checks list.
type FinanceRow struct {
	StudentID uuid.UUID `json:"student_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`

	GroupID     uuid.UUID `json:"group_id"`
	GroupName   string    `json:"group_name"`
	CourseTitle string    `json:"course_title"`

	Price              decimal.Decimal `json:"price"`
	JoinedAt           time.Time       `json:"joined_at"`
	MonthsPaid         int             `json:"months_paid"`
	CurrentMonthNumber int             `json:"current_month_number"`
	Deadline           time.Time       `json:"deadline"`
	Status             string          `json:"status"`
	IsActive           bool            `json:"is_active"`

	Checks []CheckBrief `json:"checks"`
}

// StatusLabel turns the stored enum into the human-readable export string.
func StatusLabel(status string) string {
	switch status {
	case detailModel.StatusPaid:
		return "Paid"
	case detailModel.StatusUnpaid:
		return "Unpaid"
	default:
		return status
	}
}

// ExportHeader is the first row of CSV/XLSX exports.
var ExportHeader = []string{
	"Last name", "First name", "Group", "Course", "Price",
	"Joined at", "Months paid", "Current month", "Deadline", "Status", "Proofs",
}

// BuildExportRecord flattens one finance row for CSV/XLSX output.
func BuildExportRecord(row FinanceRow) []string {
	proofs := ""
	for i, ch := range row.Checks {
		if i > 0 {
			proofs += "; "
		}
		proofs += ch.FileName
	}
	return []string{
		row.LastName,
		row.FirstName,
		row.GroupName,
		row.CourseTitle,
		row.Price.StringFixed(2),
		row.JoinedAt.Format("2006-01-02"),
		strconv.Itoa(row.MonthsPaid),
		strconv.Itoa(row.CurrentMonthNumber),
		row.Deadline.Format("2006-01-02"),
		StatusLabel(row.Status),
		proofs,
	}
}


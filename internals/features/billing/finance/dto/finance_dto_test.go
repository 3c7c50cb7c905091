package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Paid", StatusLabel(detailModel.StatusPaid))
	assert.Equal(t, "Unpaid", StatusLabel(detailModel.StatusUnpaid))
	assert.Equal(t, "weird", StatusLabel("weird"))
}

func TestBuildExportRecord(t *testing.T) {
	row := FinanceRow{
		StudentID:          uuid.New(),
		FirstName:          "Anna",
		LastName:           "Petrova",
		GroupID:            uuid.New(),
		GroupName:          "English B2 Evening",
		CourseTitle:        "English B2",
		Price:              decimal.RequireFromString("1500.5"),
		JoinedAt:           time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		MonthsPaid:         3,
		CurrentMonthNumber: 2,
		Deadline:           time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Status:             detailModel.StatusPaid,
		Checks: []CheckBrief{
			{FileName: "transfer_jan.jpg"},
			{FileName: "transfer_feb.pdf"},
		},
	}

	rec := BuildExportRecord(row)
	assert.Equal(t, []string{
		"Petrova", "Anna", "English B2 Evening", "English B2", "1500.50",
		"2025-01-01", "3", "2", "2025-04-01", "Paid",
		"transfer_jan.jpg; transfer_feb.pdf",
	}, rec)
	assert.Len(t, rec, len(ExportHeader))
}

func TestBuildExportRecord_NoProofs(t *testing.T) {
	rec := BuildExportRecord(FinanceRow{
		FirstName: "Ivan",
		LastName:  "Sidorov",
		Price:     decimal.NewFromInt(900),
		Status:    detailModel.StatusUnpaid,
	})
	assert.Equal(t, "", rec[len(rec)-1])
	assert.Equal(t, "Unpaid", rec[9])
	assert.Equal(t, "900.00", rec[4])
}

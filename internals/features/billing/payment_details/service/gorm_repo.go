package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	detailModel "langschool_backend/internals/features/billing/payment_details/model"
	groupModel "langschool_backend/internals/features/school/groups/model"
)

// GormLedgerStore is the production LedgerStore backed by Postgres.
type GormLedgerStore struct {
	DB *gorm.DB
}

func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{DB: db}
}

func (s *GormLedgerStore) FindGroup(ctx context.Context, groupID uuid.UUID) (*groupModel.GroupModel, error) {
	var group groupModel.GroupModel
	if err := s.DB.WithContext(ctx).
		Preload("Course").
		Where("group_id = ?", groupID).
		First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *GormLedgerStore) FindEntry(ctx context.Context, studentID, groupID uuid.UUID) (*detailModel.PaymentDetailModel, error) {
	var entry detailModel.PaymentDetailModel
	if err := s.DB.WithContext(ctx).
		Where("payment_detail_student_id = ? AND payment_detail_group_id = ?", studentID, groupID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormLedgerStore) CreateEntry(ctx context.Context, entry *detailModel.PaymentDetailModel) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

func (s *GormLedgerStore) SetInactive(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Model(&detailModel.PaymentDetailModel{}).
		Where("payment_detail_id = ?", id).
		Update("payment_detail_is_active", false).Error
}

// GormLedgerRepo is the production LedgerRepo backed by Postgres.
type GormLedgerRepo struct {
	DB *gorm.DB
}

func NewGormLedgerRepo(db *gorm.DB) *GormLedgerRepo {
	return &GormLedgerRepo{DB: db}
}

type rolloverRow struct {
	PaymentDetailID           uuid.UUID `gorm:"column:payment_detail_id"`
	PaymentDetailJoinedAt     time.Time `gorm:"column:payment_detail_joined_at"`
	PaymentDetailMonthsPaid   int       `gorm:"column:payment_detail_months_paid"`
	PaymentDetailCurrentMonth int       `gorm:"column:payment_detail_current_month"`
	GroupEndDate              time.Time `gorm:"column:group_end_date"`
}

func (r *GormLedgerRepo) ListActiveEntries(ctx context.Context) ([]RolloverEntry, error) {
	var rows []rolloverRow
	err := r.DB.WithContext(ctx).
		Table("payment_details AS pd").
		Select(`pd.payment_detail_id, pd.payment_detail_joined_at,
			pd.payment_detail_months_paid, pd.payment_detail_current_month,
			g.group_end_date`).
		Joins("JOIN groups g ON g.group_id = pd.payment_detail_group_id").
		Where("pd.payment_detail_is_active = TRUE").
		Where("pd.payment_detail_deleted_at IS NULL").
		Where("g.group_is_active = TRUE AND g.group_deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]RolloverEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RolloverEntry{
			ID:           row.PaymentDetailID,
			JoinedAt:     row.PaymentDetailJoinedAt,
			MonthsPaid:   row.PaymentDetailMonthsPaid,
			CurrentMonth: row.PaymentDetailCurrentMonth,
			GroupEndDate: row.GroupEndDate,
		})
	}
	return entries, nil
}

func (r *GormLedgerRepo) SaveAdvance(ctx context.Context, id uuid.UUID, currentMonth int, status string) error {
	return r.DB.WithContext(ctx).
		Model(&detailModel.PaymentDetailModel{}).
		Where("payment_detail_id = ?", id).
		Updates(map[string]interface{}{
			"payment_detail_current_month": currentMonth,
			"payment_detail_status":        status,
		}).Error
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CourseModel mirrors the courses table owned by the school service.
type CourseModel struct {
	CourseID    uuid.UUID       `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseTitle string          `gorm:"column:course_title;type:text;not null" json:"course_title"`
	CoursePrice decimal.Decimal `gorm:"column:course_price;type:numeric(12,2);not null" json:"course_price"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt *time.Time     `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at,omitempty"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index"          json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

// GroupModel mirrors the groups table owned by the school service. Billing
// treats it as the read-only group/course registry.
type GroupModel struct {
	GroupID       uuid.UUID `gorm:"column:group_id;type:uuid;default:gen_random_uuid();primaryKey" json:"group_id"`
	GroupCourseID uuid.UUID `gorm:"column:group_course_id;type:uuid;not null" json:"group_course_id"`
	GroupName     string    `gorm:"column:group_name;type:text;not null" json:"group_name"`

	GroupStartDate time.Time `gorm:"column:group_start_date;type:date;not null" json:"group_start_date"`
	GroupEndDate   time.Time `gorm:"column:group_end_date;type:date;not null"   json:"group_end_date"`
	GroupIsActive  bool      `gorm:"column:group_is_active;not null;default:true" json:"group_is_active"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt *time.Time     `gorm:"column:group_updated_at;autoUpdateTime" json:"group_updated_at,omitempty"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index"          json:"group_deleted_at,omitempty"`

	Course *CourseModel `gorm:"foreignKey:GroupCourseID;references:CourseID" json:"course,omitempty"`
}

func (GroupModel) TableName() string { return "groups" }

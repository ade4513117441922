// file: internals/features/crm/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Model: EnrollmentModel
========================= */

// Enrollment adalah interval keanggotaan student pada satu group:
// [start_date, end_date], end_date NULL berarti masih berjalan.
// Invariant: end_date >= start_date bila terisi.
type EnrollmentModel struct {
	EnrollmentID             uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:enrollment_organization_id" json:"enrollment_organization_id"`

	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:enrollment_student_id" json:"enrollment_student_id"`
	EnrollmentGroupID   uuid.UUID `gorm:"type:uuid;not null;index;column:enrollment_group_id" json:"enrollment_group_id"`

	EnrollmentStartDate time.Time  `gorm:"type:date;not null;column:enrollment_start_date" json:"enrollment_start_date"`
	EnrollmentEndDate   *time.Time `gorm:"type:date;column:enrollment_end_date" json:"enrollment_end_date,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (e *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if e.EnrollmentID == uuid.Nil {
		e.EnrollmentID = uuid.New()
	}
	return nil
}

// Range mengembalikan interval keanggotaan sebagai dateutil.DateRange.
func (e *EnrollmentModel) Range() dateutil.DateRange {
	return dateutil.DateRange{Start: e.EnrollmentStartDate, End: e.EnrollmentEndDate}
}

// IsActiveOn: start_date <= d && (end_date IS NULL || end_date >= d).
func (e *EnrollmentModel) IsActiveOn(d time.Time) bool {
	return e.Range().ContainsDate(d)
}

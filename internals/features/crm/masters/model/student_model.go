// file: internals/features/crm/masters/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: StudentModel
========================= */

type StudentModel struct {
	StudentID             uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:student_organization_id" json:"student_organization_id"`

	StudentName  string  `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentEmail *string `gorm:"type:varchar(160);column:student_email" json:"student_email,omitempty"`
	StudentPhone *string `gorm:"type:varchar(32);column:student_phone" json:"student_phone,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if s.StudentID == uuid.Nil {
		s.StudentID = uuid.New()
	}
	return nil
}

// file: internals/features/crm/masters/model/teacher_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: TeacherModel
========================= */

type TeacherModel struct {
	TeacherID             uuid.UUID `gorm:"type:uuid;primaryKey;column:teacher_id" json:"teacher_id"`
	TeacherOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:teacher_organization_id" json:"teacher_organization_id"`

	TeacherName  string  `gorm:"type:varchar(120);not null;column:teacher_name" json:"teacher_name"`
	TeacherEmail *string `gorm:"type:varchar(160);column:teacher_email" json:"teacher_email,omitempty"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"-"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (t *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if t.TeacherID == uuid.Nil {
		t.TeacherID = uuid.New()
	}
	return nil
}

/* =========================
   Model: VenueModel
========================= */

type VenueModel struct {
	VenueID             uuid.UUID `gorm:"type:uuid;primaryKey;column:venue_id" json:"venue_id"`
	VenueOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:venue_organization_id" json:"venue_organization_id"`

	VenueName    string  `gorm:"type:varchar(120);not null;column:venue_name" json:"venue_name"`
	VenueAddress *string `gorm:"type:text;column:venue_address" json:"venue_address,omitempty"`

	VenueCreatedAt time.Time      `gorm:"column:venue_created_at;autoCreateTime" json:"venue_created_at"`
	VenueUpdatedAt time.Time      `gorm:"column:venue_updated_at;autoUpdateTime" json:"venue_updated_at"`
	VenueDeletedAt gorm.DeletedAt `gorm:"column:venue_deleted_at;index" json:"-"`
}

func (VenueModel) TableName() string { return "venues" }

func (v *VenueModel) BeforeCreate(tx *gorm.DB) error {
	if v.VenueID == uuid.Nil {
		v.VenueID = uuid.New()
	}
	return nil
}

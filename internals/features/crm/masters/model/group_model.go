// file: internals/features/crm/masters/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: GroupModel
========================= */

// Group adalah rombongan belajar reguler. Teacher/venue di sini adalah
// assignment SAAT INI; session yang sudah digenerate menyimpan snapshot
// sendiri dan tidak ikut berubah ketika assignment diganti.
type GroupModel struct {
	GroupID             uuid.UUID `gorm:"type:uuid;primaryKey;column:group_id" json:"group_id"`
	GroupOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:group_organization_id" json:"group_organization_id"`

	GroupName string `gorm:"type:varchar(120);not null;column:group_name" json:"group_name"`

	GroupTeacherID uuid.UUID  `gorm:"type:uuid;not null;column:group_teacher_id" json:"group_teacher_id"`
	GroupTeacher   *TeacherModel `gorm:"foreignKey:GroupTeacherID;references:TeacherID;constraint:OnDelete:RESTRICT" json:"group_teacher,omitempty"`

	GroupVenueID *uuid.UUID  `gorm:"type:uuid;column:group_venue_id" json:"group_venue_id,omitempty"`
	GroupVenue   *VenueModel `gorm:"foreignKey:GroupVenueID;references:VenueID;constraint:OnDelete:SET NULL" json:"group_venue,omitempty"`

	GroupIsActive bool `gorm:"not null;default:true;column:group_is_active" json:"group_is_active"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;autoCreateTime" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;autoUpdateTime" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"-"`
}

func (GroupModel) TableName() string { return "groups" }

func (g *GroupModel) BeforeCreate(tx *gorm.DB) error {
	if g.GroupID == uuid.Nil {
		g.GroupID = uuid.New()
	}
	return nil
}

// file: internals/features/crm/masters/model/organization_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: OrganizationModel
========================= */

// Organization adalah tenant boundary: semua entity di bawahnya di-scope
// oleh organization_id. Resolusi subdomain→organization ada di layer luar.
type OrganizationModel struct {
	OrganizationID   uuid.UUID `gorm:"type:uuid;primaryKey;column:organization_id" json:"organization_id"`
	OrganizationName string    `gorm:"type:varchar(120);not null;column:organization_name" json:"organization_name"`
	OrganizationSlug string    `gorm:"type:varchar(120);not null;uniqueIndex;column:organization_slug" json:"organization_slug"`

	OrganizationCreatedAt time.Time      `gorm:"column:organization_created_at;autoCreateTime" json:"organization_created_at"`
	OrganizationUpdatedAt time.Time      `gorm:"column:organization_updated_at;autoUpdateTime" json:"organization_updated_at"`
	OrganizationDeletedAt gorm.DeletedAt `gorm:"column:organization_deleted_at;index" json:"-"`
}

func (OrganizationModel) TableName() string { return "organizations" }

func (o *OrganizationModel) BeforeCreate(tx *gorm.DB) error {
	if o.OrganizationID == uuid.Nil {
		o.OrganizationID = uuid.New()
	}
	return nil
}

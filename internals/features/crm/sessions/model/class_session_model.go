// file: internals/features/crm/sessions/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enum: SessionStatus
========================= */

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionHeld      SessionStatus = "held"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionScheduled, SessionHeld, SessionCancelled:
		return true
	}
	return false
}

/* =========================
   Model: ClassSessionModel
========================= */

// ClassSession adalah satu pertemuan ber-tanggal konkret. Teacher/venue di
// sini adalah SNAPSHOT assignment group saat generate; mengganti assignment
// group tidak mengubah session yang sudah ada.
//
// Unique index (group_id, date) adalah backstop race generate konkuren:
// pre-check "sudah ada?" hanyalah optimasi, constraint inilah yang menjamin
// tidak pernah ada dua session untuk group yang sama di tanggal yang sama.
type ClassSessionModel struct {
	ClassSessionID             uuid.UUID `gorm:"type:uuid;primaryKey;column:class_session_id" json:"class_session_id"`
	ClassSessionOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:class_session_organization_id" json:"class_session_organization_id"`

	// NULL = session privat/ad hoc tanpa group.
	ClassSessionGroupID *uuid.UUID `gorm:"type:uuid;column:class_session_group_id;uniqueIndex:uq_class_sessions_group_date,where:class_session_deleted_at IS NULL" json:"class_session_group_id,omitempty"`

	// version asal materialisasi; NULL untuk session manual.
	ClassSessionScheduleVersionID *uuid.UUID `gorm:"type:uuid;column:class_session_schedule_version_id;index" json:"class_session_schedule_version_id,omitempty"`

	ClassSessionTeacherID uuid.UUID  `gorm:"type:uuid;not null;column:class_session_teacher_id" json:"class_session_teacher_id"`
	ClassSessionVenueID   *uuid.UUID `gorm:"type:uuid;column:class_session_venue_id" json:"class_session_venue_id,omitempty"`

	ClassSessionDate      time.Time `gorm:"type:date;not null;column:class_session_date;uniqueIndex:uq_class_sessions_group_date,where:class_session_deleted_at IS NULL" json:"class_session_date"`
	ClassSessionStartTime *string   `gorm:"type:varchar(5);column:class_session_start_time" json:"class_session_start_time,omitempty"` // HH:mm
	ClassSessionEndTime   *string   `gorm:"type:varchar(5);column:class_session_end_time" json:"class_session_end_time,omitempty"`     // HH:mm

	ClassSessionStatus SessionStatus `gorm:"type:varchar(12);not null;default:'scheduled';column:class_session_status" json:"class_session_status"`

	// snapshot assignment (teacher/venue/group) saat generate
	ClassSessionAssignmentSnapshot datatypes.JSONMap `gorm:"column:class_session_assignment_snapshot" json:"class_session_assignment_snapshot,omitempty"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time      `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index" json:"-"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (cs *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if cs.ClassSessionID == uuid.Nil {
		cs.ClassSessionID = uuid.New()
	}
	return nil
}

// file: internals/features/crm/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum: RecordStatus
========================= */

type RecordStatus string

const (
	RecordPresent RecordStatus = "present"
	RecordAbsent  RecordStatus = "absent"
	RecordExcused RecordStatus = "excused"
	RecordLate    RecordStatus = "late"
)

func (s RecordStatus) Valid() bool {
	switch s {
	case RecordPresent, RecordAbsent, RecordExcused, RecordLate:
		return true
	}
	return false
}

/* =========================
   Model: AttendanceRecordModel
========================= */

// AttendanceRecord: maksimal satu record per (session, student) — ditegakkan
// unique index, semua write berupa upsert. Tidak pakai soft delete supaya
// key upsert tidak pernah tertutup row terhapus.
type AttendanceRecordModel struct {
	AttendanceRecordID             uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_id" json:"attendance_record_id"`
	AttendanceRecordOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_record_organization_id" json:"attendance_record_organization_id"`

	AttendanceRecordClassSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_session_student;column:attendance_record_class_session_id" json:"attendance_record_class_session_id"`
	AttendanceRecordStudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_session_student;column:attendance_record_student_id" json:"attendance_record_student_id"`

	AttendanceRecordStatus   RecordStatus `gorm:"type:varchar(12);not null;column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordMarkedAt time.Time    `gorm:"not null;column:attendance_record_marked_at" json:"attendance_record_marked_at"`
	AttendanceRecordMarkedBy *uuid.UUID   `gorm:"type:uuid;column:attendance_record_marked_by" json:"attendance_record_marked_by,omitempty"`

	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (ar *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if ar.AttendanceRecordID == uuid.Nil {
		ar.AttendanceRecordID = uuid.New()
	}
	return nil
}

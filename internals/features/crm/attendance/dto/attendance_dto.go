// file: internals/features/crm/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/crm/attendance/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type UpsertEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent excused late"`
}

type BulkUpsertRequest struct {
	Entries []UpsertEntry `json:"entries" validate:"required,min=1,dive"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

// AttendanceEntry adalah satu baris hasil merge expected × recorded.
// Status nil = expected tapi belum ditandai ("not marked") — merge ini
// read-only, tidak pernah memfabrikasi record.
type AttendanceEntry struct {
	StudentID   uuid.UUID           `json:"student_id"`
	StudentName string              `json:"student_name"`
	Expected    bool                `json:"expected"`
	Status      *model.RecordStatus `json:"status"`
	MarkedAt    *time.Time          `json:"marked_at,omitempty"`
	RecordID    *uuid.UUID          `json:"record_id,omitempty"`
}

type SessionAttendanceResponse struct {
	SessionID   uuid.UUID         `json:"session_id"`
	GroupID     *uuid.UUID        `json:"group_id,omitempty"`
	SessionDate string            `json:"session_date"`
	Entries     []AttendanceEntry `json:"entries"`
}

// MissingAttendanceRow: satu session held yang expected roster-nya belum
// lengkap ditandai.
type MissingAttendanceRow struct {
	SessionID         uuid.UUID   `json:"session_id"`
	GroupID           uuid.UUID   `json:"group_id"`
	GroupName         string      `json:"group_name"`
	SessionDate       string      `json:"session_date"`
	ExpectedCount     int         `json:"expected_count"`
	RecordedCount     int         `json:"recorded_count"`
	MissingStudentIDs []uuid.UUID `json:"missing_student_ids"`
}

// file: internals/features/crm/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Requests
========================= */

type GenerateSessionsRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

type PatchSessionRequest struct {
	Status model.SessionStatus `json:"status" validate:"required,oneof=scheduled held cancelled"`
}

/* =========================
   Responses
========================= */

type SessionResponse struct {
	SessionID         uuid.UUID           `json:"session_id"`
	GroupID           *uuid.UUID          `json:"group_id,omitempty"`
	ScheduleVersionID *uuid.UUID          `json:"schedule_version_id,omitempty"`
	TeacherID         uuid.UUID           `json:"teacher_id"`
	VenueID           *uuid.UUID          `json:"venue_id,omitempty"`
	Date              string              `json:"date"`
	StartTime         *string             `json:"start_time,omitempty"`
	EndTime           *string             `json:"end_time,omitempty"`
	Status            model.SessionStatus `json:"status"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func FromSessionModel(cs model.ClassSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:         cs.ClassSessionID,
		GroupID:           cs.ClassSessionGroupID,
		ScheduleVersionID: cs.ClassSessionScheduleVersionID,
		TeacherID:         cs.ClassSessionTeacherID,
		VenueID:           cs.ClassSessionVenueID,
		Date:              dateutil.FormatDate(cs.ClassSessionDate),
		StartTime:         cs.ClassSessionStartTime,
		EndTime:           cs.ClassSessionEndTime,
		Status:            cs.ClassSessionStatus,
		UpdatedAt:         cs.ClassSessionUpdatedAt,
	}
}

// file: internals/features/crm/enrollments/dto/enrollment_dto.go
package dto

import (
	"github.com/google/uuid"

	"kelasku_backend/internals/features/crm/enrollments/model"
	svc "kelasku_backend/internals/features/crm/enrollments/service"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Requests
========================= */

type MoveEnrollmentRequest struct {
	FromGroupID uuid.UUID `json:"from_group_id" validate:"required"`
	ToGroupID   uuid.UUID `json:"to_group_id" validate:"required"`
	StartDate   string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	// opsional; default: sehari sebelum start_date
	EndDate *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

/* =========================
   Responses
========================= */

type EnrollmentResponse struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	GroupID      uuid.UUID `json:"group_id"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date,omitempty"`
}

func FromEnrollmentModel(e model.EnrollmentModel) EnrollmentResponse {
	resp := EnrollmentResponse{
		EnrollmentID: e.EnrollmentID,
		StudentID:    e.EnrollmentStudentID,
		GroupID:      e.EnrollmentGroupID,
		StartDate:    dateutil.FormatDate(e.EnrollmentStartDate),
	}
	if e.EnrollmentEndDate != nil {
		s := dateutil.FormatDate(*e.EnrollmentEndDate)
		resp.EndDate = &s
	}
	return resp
}

type MoveResponse struct {
	ClosedEnrollment EnrollmentResponse `json:"closed_enrollment"`
	NewEnrollment    EnrollmentResponse `json:"new_enrollment"`
}

type RosterRow struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date,omitempty"`
}

func FromRosterEntries(rows []svc.RosterEntry) []RosterRow {
	out := make([]RosterRow, 0, len(rows))
	for _, r := range rows {
		row := RosterRow{
			EnrollmentID: r.EnrollmentID,
			StudentID:    r.StudentID,
			StudentName:  r.StudentName,
			StartDate:    dateutil.FormatDate(r.StartDate),
		}
		if r.EndDate != nil {
			s := dateutil.FormatDate(*r.EndDate)
			row.EndDate = &s
		}
		out = append(out, row)
	}
	return out
}

// file: internals/features/crm/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/crm/schedules/model"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type SlotPayload struct {
	DayOfWeek int    `json:"day_of_week" validate:"required,min=1,max=7"`
	StartTime string `json:"start_time" validate:"required"` // HH:mm, diparse di service
	SortOrder int    `json:"sort_order" validate:"omitempty,min=0"`
}

// GenerateWindow: window materialisasi opsional yang menempel di upsert
// (upsert + langsung generate dalam satu request).
type GenerateWindow struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}

type UpsertScheduleRequest struct {
	Recurrence        string          `json:"recurrence" validate:"required,oneof=one_time weekly twice_weekly"`
	DurationHours     float64         `json:"duration_hours" validate:"required,gt=0"`
	EffectiveFrom     string          `json:"effective_from" validate:"required,datetime=2006-01-02"`
	ApplyToFutureOnly bool            `json:"apply_to_future_only"`
	Slots             []SlotPayload   `json:"slots" validate:"required,min=1,max=2,dive"`
	Generate          *GenerateWindow `json:"generate,omitempty" validate:"omitempty"`
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ScheduleSlotResponse struct {
	ScheduleSlotID uuid.UUID `json:"schedule_slot_id"`
	DayOfWeek      int       `json:"day_of_week"`
	StartTime      string    `json:"start_time"`
	SortOrder      int       `json:"sort_order"`
}

type ScheduleVersionResponse struct {
	ScheduleVersionID uuid.UUID              `json:"schedule_version_id"`
	GroupID           uuid.UUID              `json:"group_id"`
	Recurrence        model.Recurrence       `json:"recurrence"`
	DurationHours     float64                `json:"duration_hours"`
	EffectiveFrom     string                 `json:"effective_from"`
	EffectiveTo       *string                `json:"effective_to,omitempty"`
	IsCurrent         bool                   `json:"is_current"`
	Slots             []ScheduleSlotResponse `json:"slots"`
	CreatedAt         time.Time              `json:"created_at"`
}

func FromVersionModel(sv model.ScheduleVersionModel) ScheduleVersionResponse {
	var to *string
	if sv.ScheduleVersionEffectiveTo != nil {
		s := dateutil.FormatDate(*sv.ScheduleVersionEffectiveTo)
		to = &s
	}
	slots := make([]ScheduleSlotResponse, 0, len(sv.ScheduleVersionSlots))
	for _, sl := range sv.ScheduleVersionSlots {
		slots = append(slots, ScheduleSlotResponse{
			ScheduleSlotID: sl.ScheduleSlotID,
			DayOfWeek:      sl.ScheduleSlotDayOfWeek,
			StartTime:      sl.ScheduleSlotStartTime,
			SortOrder:      sl.ScheduleSlotSortOrder,
		})
	}
	return ScheduleVersionResponse{
		ScheduleVersionID: sv.ScheduleVersionID,
		GroupID:           sv.ScheduleVersionGroupID,
		Recurrence:        sv.ScheduleVersionRecurrence,
		DurationHours:     sv.ScheduleVersionDurationHours,
		EffectiveFrom:     dateutil.FormatDate(sv.ScheduleVersionEffectiveFrom),
		EffectiveTo:       to,
		IsCurrent:         sv.IsCurrentOn(dateutil.Today()),
		Slots:             slots,
		CreatedAt:         sv.ScheduleVersionCreatedAt,
	}
}

func FromVersionModels(rows []model.ScheduleVersionModel) []ScheduleVersionResponse {
	out := make([]ScheduleVersionResponse, 0, len(rows))
	for _, sv := range rows {
		out = append(out, FromVersionModel(sv))
	}
	return out
}

// file: internals/features/crm/sessions/service/generate_sessions_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	schedModel "kelasku_backend/internals/features/crm/schedules/model"
	schedService "kelasku_backend/internals/features/crm/schedules/service"
	"kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Generator + Options
========================= */

// batas window per call; caller yang butuh lebih memanggil berulang
// (tiap call idempotent, dedupe by key)
const maxGenerateDays = 366

type Generator struct {
	DB    *gorm.DB
	Store *schedService.Store
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{DB: db, Store: schedService.NewStore(db)}
}

type GenerateOptions struct {
	BatchSize int
}

/* =========================
   Public API
========================= */

func (g *Generator) GenerateSessionsFromSchedule(ctx context.Context, orgID, groupID uuid.UUID, from, to time.Time) (int, error) {
	return g.GenerateSessionsFromScheduleWithOpts(ctx, orgID, groupID, from, to, nil)
}

// GenerateSessionsFromScheduleWithOpts meng-expand setiap schedule version
// yang memotong [from, to] menjadi session konkret, idempotent:
//
//  1. window di-clamp ke [effective_from, effective_to ?? to] per version;
//  2. tiap tanggal yang weekday-nya cocok dengan slot menjadi kandidat,
//     end_time = start_time + duration_hours;
//  3. tanggal yang sudah punya session (group, date) di-skip — pre-check
//     sebagai optimasi, ON CONFLICT DO NOTHING sebagai jaminan;
//  4. teacher/venue di-snapshot dari assignment group SAAT INI.
//
// Return: jumlah session yang benar-benar dibuat.
func (g *Generator) GenerateSessionsFromScheduleWithOpts(
	ctx context.Context,
	orgID, groupID uuid.UUID,
	from, to time.Time,
	opts *GenerateOptions,
) (int, error) {
	if opts == nil {
		opts = &GenerateOptions{}
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	from, to = dateutil.DateOnly(from), dateutil.DateOnly(to)
	if to.Before(from) {
		return 0, errs.Validationf("to (%s) harus >= from (%s)", dateutil.FormatDate(to), dateutil.FormatDate(from))
	}
	if span := int(to.Sub(from).Hours()/24) + 1; span > maxGenerateDays {
		return 0, errs.Validationf("window %d hari melebihi batas %d hari per call", span, maxGenerateDays)
	}

	// 1) Group (org-scoped) + assignment saat ini untuk snapshot.
	var grp mastersModel.GroupModel
	if err := g.DB.WithContext(ctx).
		Preload("GroupTeacher").Preload("GroupVenue").
		Where("group_organization_id = ? AND group_id = ?", orgID, groupID).
		Take(&grp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, errs.NotFound("group tidak ditemukan")
		}
		return 0, errs.FromStorage(err)
	}

	// 2) Version yang memotong window, dengan slot.
	versions, err := g.Store.GetSlots(ctx, orgID, groupID, from, to)
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, nil
	}

	// 3) Pre-check: tanggal yang sudah punya session di window.
	existing, err := g.existingDates(ctx, orgID, groupID, from, to)
	if err != nil {
		return 0, err
	}

	snapshot := buildAssignmentSnapshot(&grp)

	rows := make([]model.ClassSessionModel, 0, 64)
	withinBatch := map[time.Time]bool{}

	appendRow := func(sv *schedModel.ScheduleVersionModel, slot schedModel.ScheduleSlotModel, d time.Time) {
		if existing[d] || withinBatch[d] {
			return
		}
		startMin, err := dateutil.ParseClock(slot.ScheduleSlotStartTime)
		if err != nil {
			return // slot korup; divalidasi saat upsert, jangan fabrikasi jam
		}
		startStr := dateutil.FormatClock(startMin)
		endStr := dateutil.FormatClock(startMin + int(sv.ScheduleVersionDurationHours*60+0.5))
		gid := groupID
		svid := sv.ScheduleVersionID
		rows = append(rows, model.ClassSessionModel{
			ClassSessionOrganizationID:     orgID,
			ClassSessionGroupID:            &gid,
			ClassSessionScheduleVersionID:  &svid,
			ClassSessionTeacherID:          grp.GroupTeacherID,
			ClassSessionVenueID:            grp.GroupVenueID,
			ClassSessionDate:               d,
			ClassSessionStartTime:          &startStr,
			ClassSessionEndTime:            &endStr,
			ClassSessionStatus:             model.SessionScheduled,
			ClassSessionAssignmentSnapshot: snapshot,
		})
		withinBatch[d] = true
	}

	for i := range versions {
		sv := &versions[i]
		lo, hi, ok := sv.EffectiveRange().ClampTo(from, to)
		if !ok || len(sv.ScheduleVersionSlots) == 0 {
			continue
		}

		if sv.ScheduleVersionRecurrence == schedModel.RecurrenceOneTime {
			// Maksimal satu session: tanggal pertama dalam window yang cocok
			// dengan weekday slot. Tidak ada auto-shift ke hari terdekat.
			slot := sv.ScheduleVersionSlots[0]
			for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
				if dateutil.ISOWeekday(d) == slot.ScheduleSlotDayOfWeek {
					appendRow(sv, slot, d)
					break
				}
			}
			continue
		}

		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			for _, slot := range sv.ScheduleVersionSlots {
				if dateutil.ISOWeekday(d) == slot.ScheduleSlotDayOfWeek {
					appendRow(sv, slot, d)
				}
			}
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}

	// 4) Idempotent insert (batch). Unique (group_id, date) menyerap race
	// antara pre-check dan insert.
	res := g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, opts.BatchSize)
	if res.Error != nil {
		if errs.IsUniqueViolation(res.Error) {
			return 0, nil // seluruh batch sudah ada
		}
		return 0, errs.FromStorage(res.Error)
	}
	return int(res.RowsAffected), nil
}

/* =========================
   Helpers
========================= */

func (g *Generator) existingDates(ctx context.Context, orgID, groupID uuid.UUID, from, to time.Time) (map[time.Time]bool, error) {
	var dates []time.Time
	if err := g.DB.WithContext(ctx).
		Model(&model.ClassSessionModel{}).
		Where("class_session_organization_id = ? AND class_session_group_id = ?", orgID, groupID).
		Where("class_session_date BETWEEN ? AND ?", from, to).
		Pluck("class_session_date", &dates).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	out := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		out[dateutil.DateOnly(d)] = true
	}
	return out, nil
}

func buildAssignmentSnapshot(grp *mastersModel.GroupModel) datatypes.JSONMap {
	snap := datatypes.JSONMap{
		"group_id":   grp.GroupID.String(),
		"group_name": grp.GroupName,
		"teacher_id": grp.GroupTeacherID.String(),
	}
	if grp.GroupTeacher != nil {
		snap["teacher_name"] = grp.GroupTeacher.TeacherName
	}
	if grp.GroupVenueID != nil {
		snap["venue_id"] = grp.GroupVenueID.String()
		if grp.GroupVenue != nil {
			snap["venue_name"] = grp.GroupVenue.VenueName
		}
	}
	return snap
}

// file: internals/features/crm/schedules/service/schedule_store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	"kelasku_backend/internals/features/crm/schedules/dto"
	"kelasku_backend/internals/features/crm/schedules/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Schedule Store
========================= */

// Store menyimpan definisi recurrence per group sebagai daftar version
// ber-effective-date. Cutover "apply to future only" menutup version lama
// dan membuat version baru — history tidak pernah ditulis ulang.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

const minutesPerDay = 24 * 60

// validatePayload memeriksa kardinalitas recurrence↔slot, day_of_week 1..7,
// format HH:mm, dan batas "selesai di hari yang sama" (wraparound lewat
// tengah malam tidak didukung — ditolak di boundary ini).
func validatePayload(req dto.UpsertScheduleRequest) (model.Recurrence, error) {
	rec := model.Recurrence(req.Recurrence)
	if !rec.Valid() {
		return "", errs.Validationf("recurrence %q tidak dikenal", req.Recurrence)
	}
	if want := rec.SlotCount(); len(req.Slots) != want {
		return "", errs.Validationf("recurrence %s butuh tepat %d slot, dapat %d", rec, want, len(req.Slots))
	}
	if req.DurationHours <= 0 {
		return "", errs.Validationf("duration_hours harus > 0")
	}
	durMinutes := int(req.DurationHours*60 + 0.5)
	seen := map[int]bool{}
	for _, sl := range req.Slots {
		if sl.DayOfWeek < 1 || sl.DayOfWeek > 7 {
			return "", errs.Validationf("day_of_week %d di luar 1..7", sl.DayOfWeek)
		}
		start, err := dateutil.ParseClock(sl.StartTime)
		if err != nil {
			return "", errs.Validationf("start_time: %v", err)
		}
		// berakhir TEPAT di tengah malam juga ditolak: "24:00" bukan
		// HH:mm yang valid, round-trip parse akan gagal
		if start+durMinutes >= minutesPerDay {
			return "", errs.Validationf("slot %s + %.2f jam mencapai tengah malam (tidak didukung)",
				sl.StartTime, req.DurationHours)
		}
		if rec == model.RecurrenceTwiceWeekly && seen[sl.DayOfWeek] {
			return "", errs.Validationf("twice_weekly butuh dua hari yang berbeda")
		}
		seen[sl.DayOfWeek] = true
	}
	return rec, nil
}

func (s *Store) ensureGroup(tx *gorm.DB, orgID, groupID uuid.UUID) error {
	var g mastersModel.GroupModel
	if err := tx.Where("group_organization_id = ? AND group_id = ?", orgID, groupID).
		Take(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.NotFound("group tidak ditemukan")
		}
		return errs.FromStorage(err)
	}
	return nil
}

// currentVersion: version yang masih terbuka (effective_to NULL) atau yang
// meng-cover hari ini; nil bila group belum punya jadwal.
func (s *Store) currentVersion(tx *gorm.DB, orgID, groupID uuid.UUID) (*model.ScheduleVersionModel, error) {
	today := dateutil.Today()
	var sv model.ScheduleVersionModel
	err := tx.
		Where("schedule_version_organization_id = ? AND schedule_version_group_id = ?", orgID, groupID).
		Where("schedule_version_effective_to IS NULL OR schedule_version_effective_to >= ?", today).
		Order("schedule_version_effective_from DESC").
		Take(&sv).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errs.FromStorage(err)
	}
	return &sv, nil
}

// Upsert membuat/mengganti definisi jadwal group.
//
//   - apply_to_future_only=false: version saat ini di-overwrite in place
//     (slot diganti). Ditolak dengan Conflict bila sudah ada session yang
//     dimaterialisasi dari version itu — history yang sudah dipakai immutable;
//     caller harus memakai cutover future-only.
//   - apply_to_future_only=true: version lama ditutup di effective_from - 1
//     hari, version baru dibuat. Slot lama tidak disentuh.
func (s *Store) Upsert(ctx context.Context, orgID, groupID uuid.UUID, req dto.UpsertScheduleRequest) (*model.ScheduleVersionModel, error) {
	rec, err := validatePayload(req)
	if err != nil {
		return nil, err
	}
	effectiveFrom, err := dateutil.ParseDate(req.EffectiveFrom)
	if err != nil {
		return nil, errs.Validationf("effective_from: %v", err)
	}

	var out *model.ScheduleVersionModel
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureGroup(tx, orgID, groupID); err != nil {
			return err
		}
		cur, err := s.currentVersion(tx, orgID, groupID)
		if err != nil {
			return err
		}

		newSlots := make([]model.ScheduleSlotModel, 0, len(req.Slots))
		for i, sl := range req.Slots {
			order := sl.SortOrder
			if order == 0 {
				order = i
			}
			newSlots = append(newSlots, model.ScheduleSlotModel{
				ScheduleSlotDayOfWeek: sl.DayOfWeek,
				ScheduleSlotStartTime: sl.StartTime,
				ScheduleSlotSortOrder: order,
			})
		}

		if cur != nil && !req.ApplyToFutureOnly {
			// effective_from baru tidak boleh mundur menimpa interval
			// version lama yang sudah ditutup oleh cutover sebelumnya.
			var prev model.ScheduleVersionModel
			perr := tx.
				Where("schedule_version_organization_id = ? AND schedule_version_group_id = ?", orgID, groupID).
				Where("schedule_version_id <> ? AND schedule_version_effective_to IS NOT NULL", cur.ScheduleVersionID).
				Order("schedule_version_effective_to DESC").
				Take(&prev).Error
			if perr != nil && perr != gorm.ErrRecordNotFound {
				return errs.FromStorage(perr)
			}
			if perr == nil && !effectiveFrom.After(dateutil.DateOnly(*prev.ScheduleVersionEffectiveTo)) {
				return errs.Validationf("effective_from (%s) menimpa version lama yang sudah ditutup di %s",
					dateutil.FormatDate(effectiveFrom), dateutil.FormatDate(*prev.ScheduleVersionEffectiveTo))
			}

			// Overwrite in place — hanya boleh selama belum ada session
			// yang lahir dari version ini.
			var used int64
			if err := tx.Table("class_sessions").
				Where("class_session_schedule_version_id = ? AND class_session_deleted_at IS NULL", cur.ScheduleVersionID).
				Count(&used).Error; err != nil {
				return errs.FromStorage(err)
			}
			if used > 0 {
				return errs.Conflictf(int(used),
					"version sudah dipakai %d session; gunakan apply_to_future_only", used)
			}

			if err := tx.Where("schedule_slot_version_id = ?", cur.ScheduleVersionID).
				Delete(&model.ScheduleSlotModel{}).Error; err != nil {
				return errs.FromStorage(err)
			}
			updates := map[string]any{
				"schedule_version_recurrence":     rec,
				"schedule_version_duration_hours": req.DurationHours,
				"schedule_version_effective_from": effectiveFrom,
			}
			if err := tx.Model(&model.ScheduleVersionModel{}).
				Where("schedule_version_id = ?", cur.ScheduleVersionID).
				Updates(updates).Error; err != nil {
				return errs.FromStorage(err)
			}
			for i := range newSlots {
				newSlots[i].ScheduleSlotVersionID = cur.ScheduleVersionID
			}
			if err := tx.Create(&newSlots).Error; err != nil {
				return errs.FromStorage(err)
			}

			cur.ScheduleVersionRecurrence = rec
			cur.ScheduleVersionDurationHours = req.DurationHours
			cur.ScheduleVersionEffectiveFrom = effectiveFrom
			cur.ScheduleVersionSlots = newSlots
			out = cur
			return nil
		}

		// Cutover future-only (atau version pertama).
		if cur != nil {
			closeAt := effectiveFrom.AddDate(0, 0, -1)
			if closeAt.Before(dateutil.DateOnly(cur.ScheduleVersionEffectiveFrom)) {
				return errs.Validationf("effective_from (%s) mendahului version berjalan (%s)",
					dateutil.FormatDate(effectiveFrom), dateutil.FormatDate(cur.ScheduleVersionEffectiveFrom))
			}
			if err := tx.Model(&model.ScheduleVersionModel{}).
				Where("schedule_version_id = ?", cur.ScheduleVersionID).
				Update("schedule_version_effective_to", closeAt).Error; err != nil {
				return errs.FromStorage(err)
			}
		}

		sv := model.ScheduleVersionModel{
			ScheduleVersionOrganizationID: orgID,
			ScheduleVersionGroupID:        groupID,
			ScheduleVersionRecurrence:     rec,
			ScheduleVersionDurationHours:  req.DurationHours,
			ScheduleVersionEffectiveFrom:  effectiveFrom,
			ScheduleVersionSlots:          newSlots,
		}
		if err := tx.Create(&sv).Error; err != nil {
			return errs.FromStorage(err)
		}
		out = &sv
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// Get mengembalikan semua version milik group (dengan slot), urut
// effective_from.
func (s *Store) Get(ctx context.Context, orgID, groupID uuid.UUID) ([]model.ScheduleVersionModel, error) {
	if err := s.ensureGroup(s.DB.WithContext(ctx), orgID, groupID); err != nil {
		return nil, err
	}
	var rows []model.ScheduleVersionModel
	if err := s.DB.WithContext(ctx).
		Preload("ScheduleVersionSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedule_slot_sort_order ASC")
		}).
		Where("schedule_version_organization_id = ? AND schedule_version_group_id = ?", orgID, groupID).
		Order("schedule_version_effective_from ASC").
		Find(&rows).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	return rows, nil
}

// GetSlots mengembalikan version yang range efektifnya memotong [from, to],
// beserta slotnya.
func (s *Store) GetSlots(ctx context.Context, orgID, groupID uuid.UUID, from, to time.Time) ([]model.ScheduleVersionModel, error) {
	if to.Before(from) {
		return nil, errs.Validationf("to harus >= from")
	}
	if err := s.ensureGroup(s.DB.WithContext(ctx), orgID, groupID); err != nil {
		return nil, err
	}
	from, to = dateutil.DateOnly(from), dateutil.DateOnly(to)
	var rows []model.ScheduleVersionModel
	if err := s.DB.WithContext(ctx).
		Preload("ScheduleVersionSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedule_slot_sort_order ASC")
		}).
		Where("schedule_version_organization_id = ? AND schedule_version_group_id = ?", orgID, groupID).
		Where("schedule_version_effective_from <= ? AND (schedule_version_effective_to IS NULL OR schedule_version_effective_to >= ?)", to, from).
		Order("schedule_version_effective_from ASC").
		Find(&rows).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	return rows, nil
}

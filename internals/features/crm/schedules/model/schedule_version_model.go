// file: internals/features/crm/schedules/model/schedule_version_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Enum: Recurrence
========================= */

type Recurrence string

const (
	RecurrenceOneTime     Recurrence = "one_time"
	RecurrenceWeekly      Recurrence = "weekly"
	RecurrenceTwiceWeekly Recurrence = "twice_weekly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOneTime, RecurrenceWeekly, RecurrenceTwiceWeekly:
		return true
	}
	return false
}

// SlotCount: jumlah slot yang WAJIB dimiliki satu version.
func (r Recurrence) SlotCount() int {
	if r == RecurrenceTwiceWeekly {
		return 2
	}
	return 1
}

/* =========================
   Model: ScheduleVersionModel
========================= */

// ScheduleVersion adalah satu definisi recurrence ber-effective-date untuk
// satu group. History append-only: version yang sudah superseded tidak pernah
// dimutasi lagi (effective_to ditutup, slot dibiarkan), sehingga session yang
// sudah digenerate dari version lama tetap punya sumbernya.
type ScheduleVersionModel struct {
	ScheduleVersionID             uuid.UUID `gorm:"type:uuid;primaryKey;column:schedule_version_id" json:"schedule_version_id"`
	ScheduleVersionOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:schedule_version_organization_id" json:"schedule_version_organization_id"`
	ScheduleVersionGroupID        uuid.UUID `gorm:"type:uuid;not null;index;column:schedule_version_group_id" json:"schedule_version_group_id"`

	ScheduleVersionRecurrence    Recurrence `gorm:"type:varchar(16);not null;column:schedule_version_recurrence" json:"schedule_version_recurrence"`
	ScheduleVersionDurationHours float64    `gorm:"type:numeric(4,2);not null;column:schedule_version_duration_hours" json:"schedule_version_duration_hours"`

	ScheduleVersionEffectiveFrom time.Time  `gorm:"type:date;not null;column:schedule_version_effective_from" json:"schedule_version_effective_from"`
	ScheduleVersionEffectiveTo   *time.Time `gorm:"type:date;column:schedule_version_effective_to" json:"schedule_version_effective_to,omitempty"`

	ScheduleVersionSlots []ScheduleSlotModel `gorm:"foreignKey:ScheduleSlotVersionID;references:ScheduleVersionID;constraint:OnDelete:CASCADE" json:"schedule_version_slots,omitempty"`

	ScheduleVersionCreatedAt time.Time      `gorm:"column:schedule_version_created_at;autoCreateTime" json:"schedule_version_created_at"`
	ScheduleVersionUpdatedAt time.Time      `gorm:"column:schedule_version_updated_at;autoUpdateTime" json:"schedule_version_updated_at"`
	ScheduleVersionDeletedAt gorm.DeletedAt `gorm:"column:schedule_version_deleted_at;index" json:"-"`
}

func (ScheduleVersionModel) TableName() string { return "schedule_versions" }

func (sv *ScheduleVersionModel) BeforeCreate(tx *gorm.DB) error {
	if sv.ScheduleVersionID == uuid.Nil {
		sv.ScheduleVersionID = uuid.New()
	}
	return nil
}

// EffectiveRange: interval berlaku version, effective_to NULL = open-ended.
func (sv *ScheduleVersionModel) EffectiveRange() dateutil.DateRange {
	return dateutil.DateRange{Start: sv.ScheduleVersionEffectiveFrom, End: sv.ScheduleVersionEffectiveTo}
}

// IsCurrentOn: version berlaku pada tanggal d.
func (sv *ScheduleVersionModel) IsCurrentOn(d time.Time) bool {
	return sv.EffectiveRange().ContainsDate(d)
}

/* =========================
   Model: ScheduleSlotModel
========================= */

// ScheduleSlot: satu pasangan hari+jam milik satu version (exclusively owned,
// ikut terhapus bersama versionnya).
type ScheduleSlotModel struct {
	ScheduleSlotID        uuid.UUID `gorm:"type:uuid;primaryKey;column:schedule_slot_id" json:"schedule_slot_id"`
	ScheduleSlotVersionID uuid.UUID `gorm:"type:uuid;not null;index;column:schedule_slot_version_id" json:"schedule_slot_version_id"`

	// ISO: Monday=1 .. Sunday=7
	ScheduleSlotDayOfWeek int    `gorm:"not null;check:schedule_slot_day_of_week BETWEEN 1 AND 7;column:schedule_slot_day_of_week" json:"schedule_slot_day_of_week"`
	ScheduleSlotStartTime string `gorm:"type:varchar(5);not null;column:schedule_slot_start_time" json:"schedule_slot_start_time"` // HH:mm
	ScheduleSlotSortOrder int    `gorm:"not null;default:0;column:schedule_slot_sort_order" json:"schedule_slot_sort_order"`

	ScheduleSlotCreatedAt time.Time `gorm:"column:schedule_slot_created_at;autoCreateTime" json:"schedule_slot_created_at"`
}

func (ScheduleSlotModel) TableName() string { return "schedule_slots" }

func (s *ScheduleSlotModel) BeforeCreate(tx *gorm.DB) error {
	if s.ScheduleSlotID == uuid.Nil {
		s.ScheduleSlotID = uuid.New()
	}
	return nil
}

// file: internals/features/crm/sessions/service/generate_sessions_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	schedModel "kelasku_backend/internals/features/crm/schedules/model"
	"kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
	"kelasku_backend/internals/helpers/testutil"
)

type fixture struct {
	orgID   uuid.UUID
	groupID uuid.UUID
}

func seedGroupWithVenue(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	org := mastersModel.OrganizationModel{OrganizationName: "Bimbel Ceria", OrganizationSlug: "bimbel-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&org).Error)
	teacher := mastersModel.TeacherModel{TeacherOrganizationID: org.OrganizationID, TeacherName: "Pak Budi"}
	require.NoError(t, db.Create(&teacher).Error)
	venue := mastersModel.VenueModel{VenueOrganizationID: org.OrganizationID, VenueName: "Ruang 2"}
	require.NoError(t, db.Create(&venue).Error)
	grp := mastersModel.GroupModel{
		GroupOrganizationID: org.OrganizationID,
		GroupName:           "Fisika B",
		GroupTeacherID:      teacher.TeacherID,
		GroupVenueID:        &venue.VenueID,
		GroupIsActive:       true,
	}
	require.NoError(t, db.Create(&grp).Error)
	return fixture{orgID: org.OrganizationID, groupID: grp.GroupID}
}

func seedVersion(t *testing.T, db *gorm.DB, f fixture, rec schedModel.Recurrence, durHours float64, from string, to *string, slots ...schedModel.ScheduleSlotModel) schedModel.ScheduleVersionModel {
	t.Helper()
	effFrom, err := dateutil.ParseDate(from)
	require.NoError(t, err)
	var effTo *time.Time
	if to != nil {
		tt, err := dateutil.ParseDate(*to)
		require.NoError(t, err)
		effTo = &tt
	}
	sv := schedModel.ScheduleVersionModel{
		ScheduleVersionOrganizationID: f.orgID,
		ScheduleVersionGroupID:        f.groupID,
		ScheduleVersionRecurrence:     rec,
		ScheduleVersionDurationHours:  durHours,
		ScheduleVersionEffectiveFrom:  effFrom,
		ScheduleVersionEffectiveTo:    effTo,
		ScheduleVersionSlots:          slots,
	}
	require.NoError(t, db.Create(&sv).Error)
	return sv
}

func slot(day int, start string) schedModel.ScheduleSlotModel {
	return schedModel.ScheduleSlotModel{ScheduleSlotDayOfWeek: day, ScheduleSlotStartTime: start}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func sessionDates(t *testing.T, db *gorm.DB, f fixture) []string {
	t.Helper()
	var rows []model.ClassSessionModel
	require.NoError(t, db.
		Where("class_session_organization_id = ? AND class_session_group_id = ?", f.orgID, f.groupID).
		Order("class_session_date ASC").
		Find(&rows).Error)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, dateutil.FormatDate(r.ClassSessionDate))
	}
	return out
}

func TestGenerateWeeklyIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	// Rabu 16:00, 1.5 jam
	seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1.5, "2024-01-01", nil, slot(3, "16:00"))
	gen := NewGenerator(db)
	ctx := context.Background()

	n, err := gen.GenerateSessionsFromSchedule(ctx, f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 5, n) // 3, 10, 17, 24, 31 Januari

	assert.Equal(t,
		[]string{"2024-01-03", "2024-01-10", "2024-01-17", "2024-01-24", "2024-01-31"},
		sessionDates(t, db, f))

	// call kedua di window yang sama: nol baris baru
	n, err = gen.GenerateSessionsFromSchedule(ctx, f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Zero(t, n)

	var total int64
	require.NoError(t, db.Model(&model.ClassSessionModel{}).Count(&total).Error)
	assert.EqualValues(t, 5, total)
}

func TestGenerateSessionFields(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	sv := seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1.5, "2024-01-01", nil, slot(3, "16:00"))
	gen := NewGenerator(db)

	_, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-03"), mustDate(t, "2024-01-03"))
	require.NoError(t, err)

	var cs model.ClassSessionModel
	require.NoError(t, db.Where("class_session_group_id = ?", f.groupID).Take(&cs).Error)

	assert.Equal(t, model.SessionScheduled, cs.ClassSessionStatus)
	require.NotNil(t, cs.ClassSessionStartTime)
	require.NotNil(t, cs.ClassSessionEndTime)
	assert.Equal(t, "16:00", *cs.ClassSessionStartTime)
	assert.Equal(t, "17:30", *cs.ClassSessionEndTime)
	require.NotNil(t, cs.ClassSessionScheduleVersionID)
	assert.Equal(t, sv.ScheduleVersionID, *cs.ClassSessionScheduleVersionID)

	// snapshot assignment saat generate
	assert.Equal(t, "Pak Budi", cs.ClassSessionAssignmentSnapshot["teacher_name"])
	assert.Equal(t, "Ruang 2", cs.ClassSessionAssignmentSnapshot["venue_name"])
	assert.Equal(t, f.groupID.String(), cs.ClassSessionAssignmentSnapshot["group_id"])
}

func TestGenerateTwiceWeekly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	// Selasa & Kamis
	seedVersion(t, db, f, schedModel.RecurrenceTwiceWeekly, 1, "2024-01-01", nil, slot(2, "09:00"), slot(4, "09:00"))
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-14"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t,
		[]string{"2024-01-02", "2024-01-04", "2024-01-09", "2024-01-11"},
		sessionDates(t, db, f))
}

func TestGenerateOneTimeTakesFirstMatchOnly(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	// one_time di hari Rabu; window dua minggu punya dua Rabu
	seedVersion(t, db, f, schedModel.RecurrenceOneTime, 1, "2024-01-01", nil, slot(3, "10:00"))
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-08"), mustDate(t, "2024-01-21"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"2024-01-10"}, sessionDates(t, db, f))
}

func TestGenerateOneTimeWindowWithoutMatchingDay(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	// one_time di hari Rabu; window Kamis s/d Selasa tidak memuat Rabu —
	// tidak boleh ada session yang digeser ke hari terdekat
	seedVersion(t, db, f, schedModel.RecurrenceOneTime, 1, "2024-01-01", nil, slot(3, "10:00"))
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-11"), mustDate(t, "2024-01-16"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sessionDates(t, db, f))
}

func TestGenerateClampsToEffectiveRange(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	to := "2024-01-20"
	seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1, "2024-01-10", &to, slot(3, "16:00"))
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 2, n) // Rabu 10 & 17; 3 dan 24 di luar range efektif
	assert.Equal(t, []string{"2024-01-10", "2024-01-17"}, sessionDates(t, db, f))
}

func TestGenerateAcrossCutover(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	closeAt := "2024-01-15"
	v1 := seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1, "2024-01-01", &closeAt, slot(3, "16:00"))
	v2 := seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1, "2024-01-16", nil, slot(5, "16:00"))
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	// Rabu 3 & 10 dari v1; Jumat 19 & 26 dari v2
	assert.Equal(t, []string{"2024-01-03", "2024-01-10", "2024-01-19", "2024-01-26"}, sessionDates(t, db, f))

	var rows []model.ClassSessionModel
	require.NoError(t, db.Where("class_session_group_id = ?", f.groupID).
		Order("class_session_date ASC").Find(&rows).Error)
	assert.Equal(t, v1.ScheduleVersionID, *rows[0].ClassSessionScheduleVersionID)
	assert.Equal(t, v2.ScheduleVersionID, *rows[3].ClassSessionScheduleVersionID)
}

func TestGenerateSkipsExistingDates(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	seedVersion(t, db, f, schedModel.RecurrenceWeekly, 1, "2024-01-01", nil, slot(3, "16:00"))
	gen := NewGenerator(db)

	// session manual sudah ada di salah satu Rabu
	gid := f.groupID
	var grp mastersModel.GroupModel
	require.NoError(t, db.Where("group_id = ?", f.groupID).Take(&grp).Error)
	manual := model.ClassSessionModel{
		ClassSessionOrganizationID: f.orgID,
		ClassSessionGroupID:        &gid,
		ClassSessionTeacherID:      grp.GroupTeacherID,
		ClassSessionDate:           mustDate(t, "2024-01-10"),
	}
	require.NoError(t, db.Create(&manual).Error)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Equal(t, 4, n) // 10 Januari di-skip

	var onDate int64
	require.NoError(t, db.Model(&model.ClassSessionModel{}).
		Where("class_session_group_id = ? AND class_session_date = ?", f.groupID, mustDate(t, "2024-01-10")).
		Count(&onDate).Error)
	assert.EqualValues(t, 1, onDate)
}

func TestGenerateWindowValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	gen := NewGenerator(db)
	ctx := context.Background()

	_, err := gen.GenerateSessionsFromSchedule(ctx, f.orgID, f.groupID, mustDate(t, "2024-01-31"), mustDate(t, "2024-01-01"))
	assert.True(t, errs.IsValidation(err))

	_, err = gen.GenerateSessionsFromSchedule(ctx, f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2025-06-01"))
	assert.True(t, errs.IsValidation(err), "window lebih dari setahun ditolak")
}

func TestGenerateNoScheduleIsNoop(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	gen := NewGenerator(db)

	n, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, f.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGenerateUnknownGroup(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	gen := NewGenerator(db)

	_, err := gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, uuid.New(), mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	assert.True(t, errs.IsNotFound(err))

	// group milik tenant lain juga tidak terlihat
	other := seedGroupWithVenue(t, db)
	_, err = gen.GenerateSessionsFromSchedule(context.Background(), f.orgID, other.groupID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	assert.True(t, errs.IsNotFound(err))
}

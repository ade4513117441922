// file: internals/features/crm/attendance/service/reconciler_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/crm/attendance/dto"
	"kelasku_backend/internals/features/crm/attendance/model"
	enrollModel "kelasku_backend/internals/features/crm/enrollments/model"
	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	sessModel "kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
	"kelasku_backend/internals/helpers/testutil"
)

type fixture struct {
	orgID     uuid.UUID
	groupID   uuid.UUID
	sessionID uuid.UUID
	students  []mastersModel.StudentModel
}

// seedHeldSession: group dengan numStudents anggota aktif plus satu session
// held di 2024-01-10.
func seedHeldSession(t *testing.T, db *gorm.DB, numStudents int) fixture {
	t.Helper()
	org := mastersModel.OrganizationModel{OrganizationName: "Bimbel Ceria", OrganizationSlug: "bimbel-" + uuid.NewString()[:8]}
	require.NoError(t, db.Create(&org).Error)
	teacher := mastersModel.TeacherModel{TeacherOrganizationID: org.OrganizationID, TeacherName: "Bu Sari"}
	require.NoError(t, db.Create(&teacher).Error)
	grp := mastersModel.GroupModel{
		GroupOrganizationID: org.OrganizationID,
		GroupName:           "Biologi A",
		GroupTeacherID:      teacher.TeacherID,
		GroupIsActive:       true,
	}
	require.NoError(t, db.Create(&grp).Error)

	start, _ := dateutil.ParseDate("2024-01-01")
	students := make([]mastersModel.StudentModel, 0, numStudents)
	names := []string{"Andi", "Budi", "Citra", "Dewi", "Eka", "Fajar", "Gita", "Hana", "Indra", "Joko"}
	for i := 0; i < numStudents; i++ {
		st := mastersModel.StudentModel{StudentOrganizationID: org.OrganizationID, StudentName: names[i%len(names)]}
		require.NoError(t, db.Create(&st).Error)
		e := enrollModel.EnrollmentModel{
			EnrollmentOrganizationID: org.OrganizationID,
			EnrollmentStudentID:      st.StudentID,
			EnrollmentGroupID:        grp.GroupID,
			EnrollmentStartDate:      start,
		}
		require.NoError(t, db.Create(&e).Error)
		students = append(students, st)
	}

	gid := grp.GroupID
	date, _ := dateutil.ParseDate("2024-01-10")
	sess := sessModel.ClassSessionModel{
		ClassSessionOrganizationID: org.OrganizationID,
		ClassSessionGroupID:        &gid,
		ClassSessionTeacherID:      teacher.TeacherID,
		ClassSessionDate:           date,
		ClassSessionStatus:         sessModel.SessionHeld,
	}
	require.NoError(t, db.Create(&sess).Error)

	return fixture{orgID: org.OrganizationID, groupID: grp.GroupID, sessionID: sess.ClassSessionID, students: students}
}

func entryFor(resp *dto.SessionAttendanceResponse, studentID uuid.UUID) *dto.AttendanceEntry {
	for i := range resp.Entries {
		if resp.Entries[i].StudentID == studentID {
			return &resp.Entries[i]
		}
	}
	return nil
}

/* =========================
   Merge read
========================= */

func TestForSessionWithExpectedMerge(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 3)
	r := NewReconciler(db)
	ctx := context.Background()

	// satu dari tiga sudah ditandai
	_, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "present"},
	})
	require.NoError(t, err)

	resp, err := r.ForSessionWithExpected(ctx, f.orgID, f.sessionID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", resp.SessionDate)
	require.Len(t, resp.Entries, 3, "setiap anggota roster muncul tepat sekali")

	marked := entryFor(resp, f.students[0].StudentID)
	require.NotNil(t, marked)
	assert.True(t, marked.Expected)
	require.NotNil(t, marked.Status)
	assert.Equal(t, model.RecordPresent, *marked.Status)
	assert.NotNil(t, marked.RecordID)

	// expected tapi belum ditandai: status nil, tidak ada record difabrikasi
	unmarked := entryFor(resp, f.students[1].StudentID)
	require.NotNil(t, unmarked)
	assert.True(t, unmarked.Expected)
	assert.Nil(t, unmarked.Status)
	assert.Nil(t, unmarked.RecordID)

	var records int64
	require.NoError(t, db.Model(&model.AttendanceRecordModel{}).Count(&records).Error)
	assert.EqualValues(t, 1, records)
}

func TestForSessionWithExpectedExtraRecord(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 2)
	r := NewReconciler(db)
	ctx := context.Background()

	// student valid di org tapi di luar roster group (titipan)
	guest := mastersModel.StudentModel{StudentOrganizationID: f.orgID, StudentName: "Tamu"}
	require.NoError(t, db.Create(&guest).Error)
	_, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: guest.StudentID, Status: "late"},
	})
	require.NoError(t, err)

	resp, err := r.ForSessionWithExpected(ctx, f.orgID, f.sessionID)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)

	extra := entryFor(resp, guest.StudentID)
	require.NotNil(t, extra)
	assert.False(t, extra.Expected)
	assert.Equal(t, "Tamu", extra.StudentName)
	require.NotNil(t, extra.Status)
	assert.Equal(t, model.RecordLate, *extra.Status)
}

func TestForSessionWithExpectedUngrouped(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 2)
	r := NewReconciler(db)
	ctx := context.Background()

	// session privat tanpa group
	var teacher mastersModel.TeacherModel
	require.NoError(t, db.Where("teacher_organization_id = ?", f.orgID).Take(&teacher).Error)
	date, _ := dateutil.ParseDate("2024-01-12")
	private := sessModel.ClassSessionModel{
		ClassSessionOrganizationID: f.orgID,
		ClassSessionTeacherID:      teacher.TeacherID,
		ClassSessionDate:           date,
	}
	require.NoError(t, db.Create(&private).Error)

	_, err := r.BulkUpsert(ctx, f.orgID, private.ClassSessionID, nil, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "present"},
	})
	require.NoError(t, err)

	resp, err := r.ForSessionWithExpected(ctx, f.orgID, private.ClassSessionID)
	require.NoError(t, err)
	assert.Nil(t, resp.GroupID)
	require.Len(t, resp.Entries, 1, "tanpa group, expected = yang tercatat saja")
	assert.False(t, resp.Entries[0].Expected)
}

func TestForSessionTenantIsolation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 1)
	other := seedHeldSession(t, db, 1)
	r := NewReconciler(db)

	_, err := r.ForSessionWithExpected(context.Background(), f.orgID, other.sessionID)
	assert.True(t, errs.IsNotFound(err))
}

/* =========================
   Bulk upsert
========================= */

func TestBulkUpsertInsertThenUpdate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 2)
	r := NewReconciler(db)
	ctx := context.Background()
	marker := uuid.New()

	n, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, &marker, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "absent"},
		{StudentID: f.students[1].StudentID, Status: "present"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// re-mark salah satu: update in place, bukan baris baru
	_, err = r.BulkUpsert(ctx, f.orgID, f.sessionID, &marker, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "excused"},
	})
	require.NoError(t, err)

	var rows []model.AttendanceRecordModel
	require.NoError(t, db.Where("attendance_record_class_session_id = ?", f.sessionID).
		Order("attendance_record_student_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	byStudent := map[uuid.UUID]model.RecordStatus{}
	for _, row := range rows {
		byStudent[row.AttendanceRecordStudentID] = row.AttendanceRecordStatus
		require.NotNil(t, row.AttendanceRecordMarkedBy)
		assert.Equal(t, marker, *row.AttendanceRecordMarkedBy)
	}
	assert.Equal(t, model.RecordExcused, byStudent[f.students[0].StudentID])
	assert.Equal(t, model.RecordPresent, byStudent[f.students[1].StudentID])
}

func TestBulkUpsertAllOrNothing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 10)
	r := NewReconciler(db)
	ctx := context.Background()

	// sembilan valid + satu malformed: seluruh batch ditolak
	entries := make([]dto.UpsertEntry, 0, 10)
	for i := 0; i < 9; i++ {
		entries = append(entries, dto.UpsertEntry{StudentID: f.students[i].StudentID, Status: "present"})
	}
	entries = append(entries, dto.UpsertEntry{StudentID: f.students[9].StudentID, Status: "hadir"})

	_, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, entries)
	require.True(t, errs.IsValidation(err), "want validation, got %v", err)

	var n int64
	require.NoError(t, db.Model(&model.AttendanceRecordModel{}).Count(&n).Error)
	assert.Zero(t, n, "tidak ada record yang tertulis dari batch gagal")
}

func TestBulkUpsertValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 2)
	r := NewReconciler(db)
	ctx := context.Background()

	_, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, nil)
	assert.True(t, errs.IsValidation(err), "entries kosong")

	_, err = r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: uuid.Nil, Status: "present"},
	})
	assert.True(t, errs.IsValidation(err), "student_id kosong")

	_, err = r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "present"},
		{StudentID: f.students[0].StudentID, Status: "absent"},
	})
	assert.True(t, errs.IsValidation(err), "student duplikat dalam batch")

	_, err = r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: uuid.New(), Status: "present"},
	})
	assert.True(t, errs.IsNotFound(err), "student tidak dikenal")

	_, err = r.BulkUpsert(ctx, f.orgID, uuid.New(), nil, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "present"},
	})
	assert.True(t, errs.IsNotFound(err), "session tidak dikenal")
}

/* =========================
   Missing report
========================= */

func TestSessionsWithMissingAttendance(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 3)
	r := NewReconciler(db)
	ctx := context.Background()

	// dua dari tiga ditandai
	_, err := r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: f.students[0].StudentID, Status: "present"},
		{StudentID: f.students[1].StudentID, Status: "absent"},
	})
	require.NoError(t, err)

	rows, err := r.SessionsWithMissingAttendance(ctx, f.orgID, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, f.sessionID, row.SessionID)
	assert.Equal(t, "Biologi A", row.GroupName)
	assert.Equal(t, 3, row.ExpectedCount)
	assert.Equal(t, 2, row.RecordedCount)
	assert.Equal(t, []uuid.UUID{f.students[2].StudentID}, row.MissingStudentIDs)

	// lengkapi yang tersisa: laporan kosong
	_, err = r.BulkUpsert(ctx, f.orgID, f.sessionID, nil, []dto.UpsertEntry{
		{StudentID: f.students[2].StudentID, Status: "late"},
	})
	require.NoError(t, err)
	rows, err = r.SessionsWithMissingAttendance(ctx, f.orgID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMissingAttendanceFilters(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedHeldSession(t, db, 2)
	r := NewReconciler(db)
	ctx := context.Background()

	// session scheduled (belum held) tidak pernah masuk laporan
	var teacher mastersModel.TeacherModel
	require.NoError(t, db.Where("teacher_organization_id = ?", f.orgID).Take(&teacher).Error)
	gid := f.groupID
	date, _ := dateutil.ParseDate("2024-01-17")
	scheduled := sessModel.ClassSessionModel{
		ClassSessionOrganizationID: f.orgID,
		ClassSessionGroupID:        &gid,
		ClassSessionTeacherID:      teacher.TeacherID,
		ClassSessionDate:           date,
		ClassSessionStatus:         sessModel.SessionScheduled,
	}
	require.NoError(t, db.Create(&scheduled).Error)

	rows, err := r.SessionsWithMissingAttendance(ctx, f.orgID, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.sessionID, rows[0].SessionID)

	// filter window memotong session held (10 Januari)
	from, _ := dateutil.ParseDate("2024-01-11")
	rows, err = r.SessionsWithMissingAttendance(ctx, f.orgID, &from, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	to, _ := dateutil.ParseDate("2024-01-10")
	rows, err = r.SessionsWithMissingAttendance(ctx, f.orgID, nil, &to)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// tenant lain tidak melihat apa pun
	rows, err = r.SessionsWithMissingAttendance(ctx, uuid.New(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

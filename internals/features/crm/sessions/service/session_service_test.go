// file: internals/features/crm/sessions/service/session_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	attModel "kelasku_backend/internals/features/crm/attendance/model"
	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	"kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
	"kelasku_backend/internals/helpers/testutil"
)

func seedSession(t *testing.T, db *gorm.DB, f fixture, date string) model.ClassSessionModel {
	t.Helper()
	var grp mastersModel.GroupModel
	require.NoError(t, db.Where("group_id = ?", f.groupID).Take(&grp).Error)
	gid := f.groupID
	d, err := dateutil.ParseDate(date)
	require.NoError(t, err)
	cs := model.ClassSessionModel{
		ClassSessionOrganizationID: f.orgID,
		ClassSessionGroupID:        &gid,
		ClassSessionTeacherID:      grp.GroupTeacherID,
		ClassSessionDate:           d,
	}
	require.NoError(t, db.Create(&cs).Error)
	return cs
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	cs := seedSession(t, db, f, "2024-01-10")
	svc := NewSessionService(db)
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, f.orgID, cs.ClassSessionID, model.SessionHeld)
	require.NoError(t, err)
	assert.Equal(t, model.SessionHeld, got.ClassSessionStatus)

	// koreksi balik diperbolehkan
	got, err = svc.UpdateStatus(ctx, f.orgID, cs.ClassSessionID, model.SessionScheduled)
	require.NoError(t, err)
	assert.Equal(t, model.SessionScheduled, got.ClassSessionStatus)

	_, err = svc.UpdateStatus(ctx, f.orgID, cs.ClassSessionID, model.SessionStatus("done"))
	assert.True(t, errs.IsValidation(err))

	_, err = svc.UpdateStatus(ctx, f.orgID, uuid.New(), model.SessionHeld)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteWithAttendanceRecords(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	cs := seedSession(t, db, f, "2024-01-10")
	svc := NewSessionService(db)
	ctx := context.Background()

	// dua record menempel di session
	for i := 0; i < 2; i++ {
		rec := attModel.AttendanceRecordModel{
			AttendanceRecordOrganizationID: f.orgID,
			AttendanceRecordClassSessionID: cs.ClassSessionID,
			AttendanceRecordStudentID:      uuid.New(),
			AttendanceRecordStatus:         attModel.RecordPresent,
			AttendanceRecordMarkedAt:       time.Now().UTC(),
		}
		require.NoError(t, db.Create(&rec).Error)
	}

	// tanpa force: conflict + impact count, tidak ada yang terhapus
	err := svc.Delete(ctx, f.orgID, cs.ClassSessionID, false)
	require.True(t, errs.IsConflict(err), "want conflict, got %v", err)
	assert.Equal(t, 2, errs.ImpactOf(err))
	var sessions int64
	require.NoError(t, db.Model(&model.ClassSessionModel{}).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)

	// force: session + record hilang bersama
	require.NoError(t, svc.Delete(ctx, f.orgID, cs.ClassSessionID, true))
	require.NoError(t, db.Model(&model.ClassSessionModel{}).Count(&sessions).Error)
	assert.Zero(t, sessions)
	var records int64
	require.NoError(t, db.Model(&attModel.AttendanceRecordModel{}).Count(&records).Error)
	assert.Zero(t, records)
}

func TestDeleteWithoutRecords(t *testing.T) {
	db := testutil.OpenTestDB(t)
	f := seedGroupWithVenue(t, db)
	cs := seedSession(t, db, f, "2024-01-10")
	svc := NewSessionService(db)

	require.NoError(t, svc.Delete(context.Background(), f.orgID, cs.ClassSessionID, false))

	_, err := svc.GetInOrg(context.Background(), f.orgID, cs.ClassSessionID)
	assert.True(t, errs.IsNotFound(err))
}

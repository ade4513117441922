// file: internals/features/crm/attendance/service/reconciler_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kelasku_backend/internals/features/crm/attendance/dto"
	"kelasku_backend/internals/features/crm/attendance/model"
	enrollService "kelasku_backend/internals/features/crm/enrollments/service"
	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	sessModel "kelasku_backend/internals/features/crm/sessions/model"
	sessService "kelasku_backend/internals/features/crm/sessions/service"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Attendance Reconciler
========================= */

// Reconciler menggabungkan expected roster (Enrollment Index) dengan record
// absensi yang sudah ada. Index yang sama dipakai preview generate, jadi dua
// fitur itu tidak pernah beda pendapat soal keanggotaan.
type Reconciler struct {
	DB       *gorm.DB
	Index    *enrollService.Index
	Sessions *sessService.SessionService
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{
		DB:       db,
		Index:    enrollService.NewIndex(db),
		Sessions: sessService.NewSessionService(db),
	}
}

/* =========================
   Read: merged roster
========================= */

// ForSessionWithExpected memuat session lalu merge expected × recorded per
// student. Session tanpa group (privat/ad hoc): expected = yang tercatat
// saja. Student expected tanpa record muncul dengan status nil.
func (r *Reconciler) ForSessionWithExpected(ctx context.Context, orgID, sessionID uuid.UUID) (*dto.SessionAttendanceResponse, error) {
	sess, err := r.Sessions.GetInOrg(ctx, orgID, sessionID)
	if err != nil {
		return nil, err
	}

	var records []model.AttendanceRecordModel
	if err := r.DB.WithContext(ctx).
		Where("attendance_record_organization_id = ? AND attendance_record_class_session_id = ?", orgID, sess.ClassSessionID).
		Find(&records).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	recordByStudent := make(map[uuid.UUID]*model.AttendanceRecordModel, len(records))
	for i := range records {
		recordByStudent[records[i].AttendanceRecordStudentID] = &records[i]
	}

	entries := make([]dto.AttendanceEntry, 0, len(records))
	seen := map[uuid.UUID]bool{}

	if sess.ClassSessionGroupID != nil {
		roster, err := r.Index.ByGroupOnDate(ctx, orgID, *sess.ClassSessionGroupID, sess.ClassSessionDate)
		if err != nil {
			return nil, err
		}
		for _, member := range roster {
			entry := dto.AttendanceEntry{
				StudentID:   member.StudentID,
				StudentName: member.StudentName,
				Expected:    true,
			}
			if rec, ok := recordByStudent[member.StudentID]; ok {
				st := rec.AttendanceRecordStatus
				entry.Status = &st
				entry.MarkedAt = &rec.AttendanceRecordMarkedAt
				id := rec.AttendanceRecordID
				entry.RecordID = &id
			}
			entries = append(entries, entry)
			seen[member.StudentID] = true
		}
	}

	// Record untuk student di luar expected roster (mis. titipan lintas
	// group) tetap ditampilkan, expected=false.
	extraIDs := make([]uuid.UUID, 0)
	for sid := range recordByStudent {
		if !seen[sid] {
			extraIDs = append(extraIDs, sid)
		}
	}
	if len(extraIDs) > 0 {
		names, err := r.studentNames(ctx, orgID, extraIDs)
		if err != nil {
			return nil, err
		}
		for _, sid := range extraIDs {
			rec := recordByStudent[sid]
			st := rec.AttendanceRecordStatus
			id := rec.AttendanceRecordID
			entries = append(entries, dto.AttendanceEntry{
				StudentID:   sid,
				StudentName: names[sid],
				Expected:    false,
				Status:      &st,
				MarkedAt:    &rec.AttendanceRecordMarkedAt,
				RecordID:    &id,
			})
		}
	}

	return &dto.SessionAttendanceResponse{
		SessionID:   sess.ClassSessionID,
		GroupID:     sess.ClassSessionGroupID,
		SessionDate: dateutil.FormatDate(sess.ClassSessionDate),
		Entries:     entries,
	}, nil
}

/* =========================
   Write: bulk upsert
========================= */

// BulkUpsert menulis batch absensi untuk satu session dalam SATU transaksi:
// satu entry invalid membatalkan semuanya. Per entry: update record
// (session, student) yang ada, atau insert baru (upsert by unique key).
func (r *Reconciler) BulkUpsert(ctx context.Context, orgID, sessionID uuid.UUID, markedBy *uuid.UUID, entries []dto.UpsertEntry) (int, error) {
	if len(entries) == 0 {
		return 0, errs.Validationf("entries kosong")
	}

	sess, err := r.Sessions.GetInOrg(ctx, orgID, sessionID)
	if err != nil {
		return 0, err
	}

	// Validasi SEMUA entry sebelum menulis apa pun.
	seen := make(map[uuid.UUID]bool, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for i, e := range entries {
		if e.StudentID == uuid.Nil {
			return 0, errs.Validationf("entry #%d: student_id kosong", i+1)
		}
		if !model.RecordStatus(e.Status).Valid() {
			return 0, errs.Validationf("entry #%d: status %q tidak dikenal", i+1, e.Status)
		}
		if seen[e.StudentID] {
			return 0, errs.Validationf("entry #%d: student %s duplikat dalam batch", i+1, e.StudentID)
		}
		seen[e.StudentID] = true
		ids = append(ids, e.StudentID)
	}

	// Semua student harus milik organization ini.
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&mastersModel.StudentModel{}).
		Where("student_organization_id = ? AND student_id IN ?", orgID, ids).
		Count(&count).Error; err != nil {
		return 0, errs.FromStorage(err)
	}
	if int(count) != len(ids) {
		return 0, errs.NotFound("ada student yang tidak ditemukan")
	}

	now := time.Now().UTC()
	rows := make([]model.AttendanceRecordModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, model.AttendanceRecordModel{
			AttendanceRecordOrganizationID: orgID,
			AttendanceRecordClassSessionID: sess.ClassSessionID,
			AttendanceRecordStudentID:      e.StudentID,
			AttendanceRecordStatus:         model.RecordStatus(e.Status),
			AttendanceRecordMarkedAt:       now,
			AttendanceRecordMarkedBy:       markedBy,
		})
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_class_session_id"},
				{Name: "attendance_record_student_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_marked_at",
				"attendance_record_marked_by",
				"attendance_record_updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return 0, errs.FromStorage(err)
	}
	return len(rows), nil
}

/* =========================
   Report: missing attendance
========================= */

// SessionsWithMissingAttendance memindai session berstatus held yang punya
// group dan menandai session yang expected roster-nya belum lengkap.
// O(sessions × roster lookup) — cukup untuk skala CRM, bukan untuk
// rekonsiliasi streaming volume tinggi.
func (r *Reconciler) SessionsWithMissingAttendance(ctx context.Context, orgID uuid.UUID, from, to *time.Time) ([]dto.MissingAttendanceRow, error) {
	q := r.DB.WithContext(ctx).
		Where("class_session_organization_id = ? AND class_session_group_id IS NOT NULL AND class_session_status = ?",
			orgID, sessModel.SessionHeld)
	if from != nil {
		q = q.Where("class_session_date >= ?", dateutil.DateOnly(*from))
	}
	if to != nil {
		q = q.Where("class_session_date <= ?", dateutil.DateOnly(*to))
	}

	var sessions []sessModel.ClassSessionModel
	if err := q.Order("class_session_date ASC").Find(&sessions).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	if len(sessions) == 0 {
		return []dto.MissingAttendanceRow{}, nil
	}

	groupNames, err := r.groupNames(ctx, orgID, sessions)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MissingAttendanceRow, 0)
	for _, sess := range sessions {
		roster, err := r.Index.ByGroupOnDate(ctx, orgID, *sess.ClassSessionGroupID, sess.ClassSessionDate)
		if err != nil {
			return nil, err
		}
		if len(roster) == 0 {
			continue
		}

		var recorded []uuid.UUID
		if err := r.DB.WithContext(ctx).
			Model(&model.AttendanceRecordModel{}).
			Where("attendance_record_class_session_id = ?", sess.ClassSessionID).
			Pluck("attendance_record_student_id", &recorded).Error; err != nil {
			return nil, errs.FromStorage(err)
		}
		recordedSet := make(map[uuid.UUID]bool, len(recorded))
		for _, sid := range recorded {
			recordedSet[sid] = true
		}

		missing := make([]uuid.UUID, 0)
		for _, member := range roster {
			if !recordedSet[member.StudentID] {
				missing = append(missing, member.StudentID)
			}
		}
		if len(missing) == 0 {
			continue
		}
		out = append(out, dto.MissingAttendanceRow{
			SessionID:         sess.ClassSessionID,
			GroupID:           *sess.ClassSessionGroupID,
			GroupName:         groupNames[*sess.ClassSessionGroupID],
			SessionDate:       dateutil.FormatDate(sess.ClassSessionDate),
			ExpectedCount:     len(roster),
			RecordedCount:     len(recorded),
			MissingStudentIDs: missing,
		})
	}
	return out, nil
}

/* =========================
   Lookups
========================= */

func (r *Reconciler) studentNames(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	var students []mastersModel.StudentModel
	if err := r.DB.WithContext(ctx).
		Where("student_organization_id = ? AND student_id IN ?", orgID, ids).
		Find(&students).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	out := make(map[uuid.UUID]string, len(students))
	for _, s := range students {
		out[s.StudentID] = s.StudentName
	}
	return out, nil
}

func (r *Reconciler) groupNames(ctx context.Context, orgID uuid.UUID, sessions []sessModel.ClassSessionModel) (map[uuid.UUID]string, error) {
	idSet := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0)
	for _, s := range sessions {
		if s.ClassSessionGroupID != nil && !idSet[*s.ClassSessionGroupID] {
			idSet[*s.ClassSessionGroupID] = true
			ids = append(ids, *s.ClassSessionGroupID)
		}
	}
	var groups []mastersModel.GroupModel
	if err := r.DB.WithContext(ctx).
		Where("group_organization_id = ? AND group_id IN ?", orgID, ids).
		Find(&groups).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	out := make(map[uuid.UUID]string, len(groups))
	for _, g := range groups {
		out[g.GroupID] = g.GroupName
	}
	return out, nil
}

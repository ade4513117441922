// file: internals/features/crm/enrollments/service/enrollment_index.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/crm/enrollments/model"
	mastersModel "kelasku_backend/internals/features/crm/masters/model"
	"kelasku_backend/internals/helpers/dateutil"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Enrollment Index
========================= */

// Index menjawab satu pertanyaan: "siapa anggota group G pada tanggal D".
// Preview generate session dan rekonsiliasi absensi dua-duanya membaca dari
// sini, jadi keduanya tidak mungkin berbeda pendapat soal keanggotaan.
type Index struct {
	DB *gorm.DB
}

func NewIndex(db *gorm.DB) *Index { return &Index{DB: db} }

// RosterEntry adalah satu anggota expected roster: enrollment + data student.
type RosterEntry struct {
	EnrollmentID uuid.UUID  `json:"enrollment_id"`
	StudentID    uuid.UUID  `json:"student_id"`
	StudentName  string     `json:"student_name"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// ByGroupOnDate mengembalikan semua enrollment yang aktif pada tanggal d,
// join dengan student. Predikat aktif: start_date <= d AND
// (end_date IS NULL OR end_date >= d) — lihat EnrollmentModel.IsActiveOn.
func (ix *Index) ByGroupOnDate(ctx context.Context, orgID, groupID uuid.UUID, d time.Time) ([]RosterEntry, error) {
	d = dateutil.DateOnly(d)

	var rows []model.EnrollmentModel
	if err := ix.DB.WithContext(ctx).
		Where("enrollment_organization_id = ? AND enrollment_group_id = ?", orgID, groupID).
		Where("enrollment_start_date <= ? AND (enrollment_end_date IS NULL OR enrollment_end_date >= ?)", d, d).
		Order("enrollment_start_date ASC").
		Find(&rows).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	if len(rows) == 0 {
		return []RosterEntry{}, nil
	}

	studentIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		studentIDs = append(studentIDs, r.EnrollmentStudentID)
	}

	var students []mastersModel.StudentModel
	if err := ix.DB.WithContext(ctx).
		Where("student_organization_id = ? AND student_id IN ?", orgID, studentIDs).
		Find(&students).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	nameByID := make(map[uuid.UUID]string, len(students))
	for _, s := range students {
		nameByID[s.StudentID] = s.StudentName
	}

	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, RosterEntry{
			EnrollmentID: r.EnrollmentID,
			StudentID:    r.EnrollmentStudentID,
			StudentName:  nameByID[r.EnrollmentStudentID],
			StartDate:    r.EnrollmentStartDate,
			EndDate:      r.EnrollmentEndDate,
		})
	}
	return out, nil
}

// ActiveByGroup: predikat yang sama dievaluasi pada hari ini. Dipakai untuk
// memblokir operasi destruktif (hapus/tutup group) selama masih ada anggota.
func (ix *Index) ActiveByGroup(ctx context.Context, orgID, groupID uuid.UUID) ([]RosterEntry, error) {
	return ix.ByGroupOnDate(ctx, orgID, groupID, dateutil.Today())
}

// CountActiveByGroup menghitung anggota aktif hari ini (impact count untuk
// ConflictError).
func (ix *Index) CountActiveByGroup(ctx context.Context, orgID, groupID uuid.UUID) (int64, error) {
	today := dateutil.Today()
	var n int64
	if err := ix.DB.WithContext(ctx).
		Model(&model.EnrollmentModel{}).
		Where("enrollment_organization_id = ? AND enrollment_group_id = ?", orgID, groupID).
		Where("enrollment_start_date <= ? AND (enrollment_end_date IS NULL OR enrollment_end_date >= ?)", today, today).
		Count(&n).Error; err != nil {
		return 0, errs.FromStorage(err)
	}
	return n, nil
}

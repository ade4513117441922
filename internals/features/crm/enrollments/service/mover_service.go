// file: internals/features/crm/enrollments/service/mover_service.go
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
   Enrollment Mover
========================= */

// Mover memindahkan student antar group dalam SATU transaksi: tutup
// enrollment lama, buka enrollment baru. Dengan default end_date =
// start_date - 1 hari, student tidak pernah expected di dua group pada
// tanggal yang sama.
type Mover struct {
	DB *gorm.DB
}

func NewMover(db *gorm.DB) *Mover { return &Mover{DB: db} }

type MoveResult struct {
	ClosedEnrollment model.EnrollmentModel `json:"closed_enrollment"`
	NewEnrollment    model.EnrollmentModel `json:"new_enrollment"`
}

// MoveStudentBetweenGroups menutup enrollment aktif di fromGroup per endDate
// (default: sehari sebelum startDate) lalu membuat enrollment baru di toGroup
// mulai startDate. endDate yang disuplai caller divalidasi di boundary ini:
// harus sebelum startDate dan tidak mendahului start enrollment lama.
func (mv *Mover) MoveStudentBetweenGroups(
	ctx context.Context,
	orgID, studentID, fromGroupID, toGroupID uuid.UUID,
	startDate time.Time,
	endDate *time.Time,
) (*MoveResult, error) {
	startDate = dateutil.DateOnly(startDate)

	closeDate := startDate.AddDate(0, 0, -1)
	if endDate != nil {
		closeDate = dateutil.DateOnly(*endDate)
		if !closeDate.Before(startDate) {
			return nil, errs.Validationf("end_date (%s) harus sebelum start_date (%s)",
				dateutil.FormatDate(closeDate), dateutil.FormatDate(startDate))
		}
	}
	if fromGroupID == toGroupID {
		return nil, errs.Validationf("group asal dan tujuan tidak boleh sama")
	}

	var res MoveResult
	err := mv.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Semua lookup di-scope organization dulu; data milik tenant lain
		// tampak sebagai "tidak ditemukan".
		for _, gid := range []uuid.UUID{fromGroupID, toGroupID} {
			var g mastersModel.GroupModel
			if err := tx.Where("group_organization_id = ? AND group_id = ?", orgID, gid).
				Take(&g).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return errs.NotFound("group tidak ditemukan")
				}
				return errs.FromStorage(err)
			}
		}
		var st mastersModel.StudentModel
		if err := tx.Where("student_organization_id = ? AND student_id = ?", orgID, studentID).
			Take(&st).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotFound("student tidak ditemukan")
			}
			return errs.FromStorage(err)
		}

		// Enrollment aktif di group asal per tanggal pindah. Enrollment yang
		// sudah tertutup sebelum start_date tidak dihitung aktif — pindah yang
		// sama diulang harus gagal, bukan menanam enrollment tujuan ganda.
		var from model.EnrollmentModel
		if err := tx.
			Where("enrollment_organization_id = ? AND enrollment_group_id = ? AND enrollment_student_id = ?",
				orgID, fromGroupID, studentID).
			Where("enrollment_start_date <= ? AND (enrollment_end_date IS NULL OR enrollment_end_date >= ?)",
				startDate, startDate).
			Order("enrollment_start_date DESC").
			Take(&from).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotFound("enrollment aktif di group asal tidak ditemukan")
			}
			return errs.FromStorage(err)
		}
		if closeDate.Before(dateutil.DateOnly(from.EnrollmentStartDate)) {
			return errs.Validationf("end_date (%s) mendahului start enrollment lama (%s)",
				dateutil.FormatDate(closeDate), dateutil.FormatDate(from.EnrollmentStartDate))
		}

		from.EnrollmentEndDate = &closeDate
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_id = ?", from.EnrollmentID).
			Update("enrollment_end_date", closeDate).Error; err != nil {
			return errs.FromStorage(err)
		}

		next := model.EnrollmentModel{
			EnrollmentOrganizationID: orgID,
			EnrollmentStudentID:      studentID,
			EnrollmentGroupID:        toGroupID,
			EnrollmentStartDate:      startDate,
		}
		if err := tx.Create(&next).Error; err != nil {
			return errs.FromStorage(err)
		}

		res.ClosedEnrollment = from
		res.NewEnrollment = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

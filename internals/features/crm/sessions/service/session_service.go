// file: internals/features/crm/sessions/service/session_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/crm/sessions/model"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Session Service
========================= */

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService { return &SessionService{DB: db} }

// GetInOrg memuat session dengan hard filter organization; milik tenant lain
// = tidak ditemukan.
func (s *SessionService) GetInOrg(ctx context.Context, orgID, sessionID uuid.UUID) (*model.ClassSessionModel, error) {
	var sess model.ClassSessionModel
	if err := s.DB.WithContext(ctx).
		Where("class_session_organization_id = ? AND class_session_id = ?", orgID, sessionID).
		Take(&sess).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("session tidak ditemukan")
		}
		return nil, errs.FromStorage(err)
	}
	return &sess, nil
}

// UpdateStatus men-set status session. Transisi sengaja dibiarkan bebas
// (scheduled/held/cancelled boleh saling menggantikan) — koreksi kesalahan
// input oleh admin adalah alur yang didukung, dan tidak ada otomasi yang
// bergantung pada urutan status.
func (s *SessionService) UpdateStatus(ctx context.Context, orgID, sessionID uuid.UUID, status model.SessionStatus) (*model.ClassSessionModel, error) {
	if !status.Valid() {
		return nil, errs.Validationf("status %q tidak dikenal", status)
	}
	sess, err := s.GetInOrg(ctx, orgID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Model(&model.ClassSessionModel{}).
		Where("class_session_id = ?", sess.ClassSessionID).
		Update("class_session_status", status).Error; err != nil {
		return nil, errs.FromStorage(err)
	}
	sess.ClassSessionStatus = status
	return sess, nil
}

// Delete menghapus session. Bila sudah ada attendance record, tolak dengan
// Conflict berisi impact count kecuali force=true (ikut menghapus recordnya,
// dalam satu transaksi).
func (s *SessionService) Delete(ctx context.Context, orgID, sessionID uuid.UUID, force bool) error {
	sess, err := s.GetInOrg(ctx, orgID, sessionID)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table("attendance_records").
			Where("attendance_record_class_session_id = ?", sess.ClassSessionID).
			Count(&n).Error; err != nil {
			return errs.FromStorage(err)
		}
		if n > 0 && !force {
			return errs.Conflictf(int(n), "session punya %d attendance record", n)
		}
		if n > 0 {
			if err := tx.Exec("DELETE FROM attendance_records WHERE attendance_record_class_session_id = ?",
				sess.ClassSessionID).Error; err != nil {
				return errs.FromStorage(err)
			}
		}
		if err := tx.Where("class_session_id = ?", sess.ClassSessionID).
			Delete(&model.ClassSessionModel{}).Error; err != nil {
			return errs.FromStorage(err)
		}
		return nil
	})
}

// file: internals/features/crm/masters/service/group_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollService "kelasku_backend/internals/features/crm/enrollments/service"
	"kelasku_backend/internals/features/crm/masters/model"
	"kelasku_backend/internals/helpers/errs"
)

/* =========================
   Group Service
========================= */

type GroupService struct {
	DB    *gorm.DB
	Index *enrollService.Index
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{DB: db, Index: enrollService.NewIndex(db)}
}

// GetInOrg memuat group dengan hard filter organization.
func (s *GroupService) GetInOrg(ctx context.Context, orgID, groupID uuid.UUID) (*model.GroupModel, error) {
	var g model.GroupModel
	if err := s.DB.WithContext(ctx).
		Preload("GroupTeacher").Preload("GroupVenue").
		Where("group_organization_id = ? AND group_id = ?", orgID, groupID).
		Take(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.NotFound("group tidak ditemukan")
		}
		return nil, errs.FromStorage(err)
	}
	return &g, nil
}

// Delete menghapus group. Selama masih ada anggota aktif hari ini
// (Enrollment Index yang sama dengan expected roster), tolak dengan
// Conflict + jumlah anggota sebagai impact — group beserta enrollmentnya
// dibiarkan utuh.
func (s *GroupService) Delete(ctx context.Context, orgID, groupID uuid.UUID) error {
	g, err := s.GetInOrg(ctx, orgID, groupID)
	if err != nil {
		return err
	}
	n, err := s.Index.CountActiveByGroup(ctx, orgID, groupID)
	if err != nil {
		return err
	}
	if n > 0 {
		return errs.Conflictf(int(n), "group masih punya %d anggota aktif", n)
	}
	if err := s.DB.WithContext(ctx).
		Where("group_id = ?", g.GroupID).
		Delete(&model.GroupModel{}).Error; err != nil {
		return errs.FromStorage(err)
	}
	return nil
}

// file: internals/features/crm/masters/controller/group_controller.go
package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	svc "kelasku_backend/internals/features/crm/masters/service"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
)

type GroupController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Groups   *svc.GroupService
}

func New(db *gorm.DB, v *validator.Validate) *GroupController {
	return &GroupController{
		DB:       db,
		Validate: v,
		Groups:   svc.NewGroupService(db),
	}
}

// GET /api/a/:org_id/groups/:group_id
func (ctl *GroupController) Get(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	g, err := ctl.Groups.GetInOrg(c.UserContext(), orgID, groupID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", g)
}

// DELETE /api/a/:org_id/groups/:group_id
// Ditolak (409 + impact) selama group masih punya anggota aktif.
func (ctl *GroupController) Delete(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	if err := ctl.Groups.Delete(c.UserContext(), orgID, groupID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Group dihapus", fiber.Map{"group_id": groupID})
}

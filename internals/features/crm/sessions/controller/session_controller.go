// file: internals/features/crm/sessions/controller/session_controller.go
package controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "kelasku_backend/internals/features/crm/sessions/dto"
	svc "kelasku_backend/internals/features/crm/sessions/service"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Controller & Constructor
========================= */

type SessionController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Sessions  *svc.SessionService
	Generator *svc.Generator
}

func New(db *gorm.DB, v *validator.Validate) *SessionController {
	return &SessionController{
		DB:        db,
		Validate:  v,
		Sessions:  svc.NewSessionService(db),
		Generator: svc.NewGenerator(db),
	}
}

/* =========================
   Generate
========================= */

// POST /api/a/:org_id/groups/:group_id/sessions/generate
func (ctl *SessionController) Generate(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	var req d.GenerateSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Session.Generate] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	from, err := dateutil.ParseDate(req.From)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	to, err := dateutil.ParseDate(req.To)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	created, err := ctl.Generator.GenerateSessionsFromSchedule(c.UserContext(), orgID, groupID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Sesi digenerate", fiber.Map{"sessions_created": created})
}

/* =========================
   Detail, Patch, Delete
========================= */

// GET /api/a/:org_id/sessions/:session_id
func (ctl *SessionController) Get(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := helperAuth.ParseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "session_id invalid")
	}

	cs, err := ctl.Sessions.GetInOrg(c.UserContext(), orgID, sessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", d.FromSessionModel(*cs))
}

// PATCH /api/a/:org_id/sessions/:session_id
func (ctl *SessionController) Patch(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := helperAuth.ParseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "session_id invalid")
	}

	var req d.PatchSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	cs, err := ctl.Sessions.UpdateStatus(c.UserContext(), orgID, sessionID, req.Status)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Status sesi diperbarui", d.FromSessionModel(*cs))
}

// DELETE /api/a/:org_id/sessions/:session_id?force=true
func (ctl *SessionController) Delete(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := helperAuth.ParseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "session_id invalid")
	}

	force := strings.EqualFold(c.Query("force"), "true")
	if err := ctl.Sessions.Delete(c.UserContext(), orgID, sessionID, force); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Sesi dihapus", fiber.Map{"session_id": sessionID})
}

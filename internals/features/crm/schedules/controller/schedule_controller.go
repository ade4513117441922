// file: internals/features/crm/schedules/controller/schedule_controller.go
package controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "kelasku_backend/internals/features/crm/schedules/dto"
	svc "kelasku_backend/internals/features/crm/schedules/service"
	genSvc "kelasku_backend/internals/features/crm/sessions/service"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Controller & Constructor
========================= */

type ScheduleController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Store     *svc.Store
	Generator *genSvc.Generator
}

func New(db *gorm.DB, v *validator.Validate) *ScheduleController {
	return &ScheduleController{
		DB:        db,
		Validate:  v,
		Store:     svc.NewStore(db),
		Generator: genSvc.NewGenerator(db),
	}
}

/* =========================
   Upsert (+ optional generate)
========================= */

// PATCH /api/a/:org_id/groups/:group_id/schedule
func (ctl *ScheduleController) Upsert(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	var req d.UpsertScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Schedule.Upsert] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	sv, err := ctl.Store.Upsert(c.UserContext(), orgID, groupID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	resp := fiber.Map{"schedule_version": d.FromVersionModel(*sv)}

	// Opsional: langsung materialisasi window yang diminta.
	if req.Generate != nil {
		from, err := dateutil.ParseDate(req.Generate.From)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		to, err := dateutil.ParseDate(req.Generate.To)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		created, err := ctl.Generator.GenerateSessionsFromSchedule(c.UserContext(), orgID, groupID, from, to)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		resp["sessions_created"] = created
	}

	return helper.JsonUpdated(c, "Jadwal tersimpan", resp)
}

/* =========================
   Reads
========================= */

// GET /api/a/:org_id/groups/:group_id/schedule
func (ctl *ScheduleController) Get(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	rows, err := ctl.Store.Get(c.UserContext(), orgID, groupID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "", d.FromVersionModels(rows))
}

// GET /api/a/:org_id/groups/:group_id/schedule/slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctl *ScheduleController) GetSlots(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	fromStr := strings.TrimSpace(c.Query("from"))
	toStr := strings.TrimSpace(c.Query("to"))
	if fromStr == "" || toStr == "" {
		return helper.JsonError(c, http.StatusBadRequest, "Param from & to wajib (YYYY-MM-DD)")
	}
	from, err := dateutil.ParseDate(fromStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	to, err := dateutil.ParseDate(toStr)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	rows, err := ctl.Store.GetSlots(c.UserContext(), orgID, groupID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "", d.FromVersionModels(rows))
}

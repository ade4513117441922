// file: internals/features/crm/attendance/controller/attendance_controller.go
package controller

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "kelasku_backend/internals/features/crm/attendance/dto"
	svc "kelasku_backend/internals/features/crm/attendance/service"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Controller & Constructor
========================= */

type AttendanceController struct {
	DB         *gorm.DB
	Validate   *validator.Validate
	Reconciler *svc.Reconciler
}

func New(db *gorm.DB, v *validator.Validate) *AttendanceController {
	return &AttendanceController{
		DB:         db,
		Validate:   v,
		Reconciler: svc.NewReconciler(db),
	}
}

/* =========================
   Read (expected x recorded)
========================= */

// GET /api/a/:org_id/sessions/:session_id/attendance
func (ctl *AttendanceController) Get(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := helperAuth.ParseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "session_id invalid")
	}

	resp, err := ctl.Reconciler.ForSessionWithExpected(c.UserContext(), orgID, sessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", resp)
}

/* =========================
   Bulk upsert
========================= */

// PATCH /api/a/:org_id/sessions/:session_id/attendance
func (ctl *AttendanceController) BulkUpsert(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sessionID, err := helperAuth.ParseUUIDParam(c, "session_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "session_id invalid")
	}

	var req d.BulkUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Attendance.BulkUpsert] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	var markedBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		markedBy = &uid
	}

	n, err := ctl.Reconciler.BulkUpsert(c.UserContext(), orgID, sessionID, markedBy, req.Entries)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Presensi disimpan", fiber.Map{"records_upserted": n})
}

/* =========================
   Missing report
========================= */

// GET /api/a/:org_id/attendance/missing?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctl *AttendanceController) Missing(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var from, to *time.Time
	if q := c.Query("from"); q != "" {
		t, err := dateutil.ParseDate(q)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		from = &t
	}
	if q := c.Query("to"); q != "" {
		t, err := dateutil.ParseDate(q)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		to = &t
	}

	rows, err := ctl.Reconciler.SessionsWithMissingAttendance(c.UserContext(), orgID, from, to)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "", rows)
}

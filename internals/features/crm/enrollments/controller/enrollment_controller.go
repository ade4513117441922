// file: internals/features/crm/enrollments/controller/enrollment_controller.go
package controller

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "kelasku_backend/internals/features/crm/enrollments/dto"
	svc "kelasku_backend/internals/features/crm/enrollments/service"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
	"kelasku_backend/internals/helpers/dateutil"
)

/* =========================
   Controller & Constructor
========================= */

type EnrollmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Index    *svc.Index
	Mover    *svc.Mover
}

func New(db *gorm.DB, v *validator.Validate) *EnrollmentController {
	return &EnrollmentController{
		DB:       db,
		Validate: v,
		Index:    svc.NewIndex(db),
		Mover:    svc.NewMover(db),
	}
}

/* =========================
   Move
========================= */

// POST /api/a/:org_id/students/:student_id/enrollments/move
func (ctl *EnrollmentController) Move(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	studentID, err := helperAuth.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "student_id invalid")
	}

	var req d.MoveEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Enrollment.Move] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	startDate, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var endDate *time.Time
	if req.EndDate != nil {
		ed, err := dateutil.ParseDate(*req.EndDate)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		endDate = &ed
	}

	res, err := ctl.Mover.MoveStudentBetweenGroups(
		c.UserContext(), orgID, studentID, req.FromGroupID, req.ToGroupID, startDate, endDate,
	)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "Siswa dipindahkan", d.MoveResponse{
		ClosedEnrollment: d.FromEnrollmentModel(res.ClosedEnrollment),
		NewEnrollment:    d.FromEnrollmentModel(res.NewEnrollment),
	})
}

/* =========================
   Roster
========================= */

// GET /api/a/:org_id/groups/:group_id/enrollments/active?on=YYYY-MM-DD
func (ctl *EnrollmentController) ActiveByGroup(c *fiber.Ctx) error {
	orgID, err := helperAuth.ResolveOrganizationID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	groupID, err := helperAuth.ParseUUIDParam(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id invalid")
	}

	on := dateutil.Today()
	if q := c.Query("on"); q != "" {
		on, err = dateutil.ParseDate(q)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	rows, err := ctl.Index.ByGroupOnDate(c.UserContext(), orgID, groupID, on)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "", d.FromRosterEntries(rows))
}

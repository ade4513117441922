// file: internals/features/crm/schedules/route/admin_route.go
package routes

import (
	schedctl "kelasku_backend/internals/features/crm/schedules/controller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ScheduleAdminRoutes mendaftarkan route jadwal per-group.
func ScheduleAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	sched := schedctl.New(db, v)

	grp := admin.Group("/groups/:group_id/schedule")
	grp.Patch("/", sched.Upsert)
	grp.Get("/", sched.Get)
	grp.Get("/slots", sched.GetSlots)
}

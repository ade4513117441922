// file: internals/features/crm/attendance/route/admin_route.go
package routes

import (
	attctl "kelasku_backend/internals/features/crm/attendance/controller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AttendanceAdminRoutes mendaftarkan route presensi per-sesi + laporan.
func AttendanceAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	att := attctl.New(db, v)

	admin.Get("/sessions/:session_id/attendance", att.Get)
	admin.Patch("/sessions/:session_id/attendance", att.BulkUpsert)
	admin.Get("/attendance/missing", att.Missing)
}

// file: internals/features/crm/sessions/route/admin_route.go
package routes

import (
	sessctl "kelasku_backend/internals/features/crm/sessions/controller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SessionAdminRoutes mendaftarkan route materialisasi & mutasi sesi.
func SessionAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	sess := sessctl.New(db, v)

	admin.Post("/groups/:group_id/sessions/generate", sess.Generate)

	grp := admin.Group("/sessions/:session_id")
	grp.Get("/", sess.Get)
	grp.Patch("/", sess.Patch)
	grp.Delete("/", sess.Delete)
}

// file: internals/features/crm/masters/route/admin_route.go
package routes

import (
	groupctl "kelasku_backend/internals/features/crm/masters/controller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MasterAdminRoutes mendaftarkan route master data (group).
func MasterAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	group := groupctl.New(db, v)

	admin.Get("/groups/:group_id", group.Get)
	admin.Delete("/groups/:group_id", group.Delete)
}

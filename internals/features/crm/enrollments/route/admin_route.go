// file: internals/features/crm/enrollments/route/admin_route.go
package routes

import (
	enrollctl "kelasku_backend/internals/features/crm/enrollments/controller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollmentAdminRoutes mendaftarkan route keanggotaan group.
func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	enroll := enrollctl.New(db, v)

	admin.Post("/students/:student_id/enrollments/move", enroll.Move)
	admin.Get("/groups/:group_id/enrollments/active", enroll.ActiveByGroup)
}

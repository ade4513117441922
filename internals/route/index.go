// file: internals/route/index.go
package routes

import (
	"log"

	attRoutes "kelasku_backend/internals/features/crm/attendance/route"
	enrollRoutes "kelasku_backend/internals/features/crm/enrollments/route"
	masterRoutes "kelasku_backend/internals/features/crm/masters/route"
	schedRoutes "kelasku_backend/internals/features/crm/schedules/route"
	sessRoutes "kelasku_backend/internals/features/crm/sessions/route"

	"kelasku_backend/internals/configs"
	authMiddleware "kelasku_backend/internals/middlewares/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes me-mount seluruh route aplikasi.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	// ===================== ADMIN (per organization) =====================
	// Semua route operasional di-scope ke :org_id; AuthJWT menaruh scope
	// organisasi dari token & handler mencocokkannya dengan path.
	log.Println("[INFO] Setting up ADMIN group (Auth + org scope)...")
	admin := app.Group("/api/a/:org_id",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Master routes...")
	masterRoutes.MasterAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting Schedule routes...")
	schedRoutes.ScheduleAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting Session routes...")
	sessRoutes.SessionAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting Enrollment routes...")
	enrollRoutes.EnrollmentAdminRoutes(admin, db, v)

	log.Println("[INFO] Mounting Attendance routes...")
	attRoutes.AttendanceAdminRoutes(admin, db, v)
}

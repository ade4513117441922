// file: internals/helpers/testutil/db.go
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	attModel "kelasku_backend/internals/features/crm/attendance/model"
	enrollModel "kelasku_backend/internals/features/crm/enrollments/model"
	masterModel "kelasku_backend/internals/features/crm/masters/model"
	schedModel "kelasku_backend/internals/features/crm/schedules/model"
	sessModel "kelasku_backend/internals/features/crm/sessions/model"
)

// OpenTestDB membuka SQLite in-memory dengan semua skema termigrasi.
// MaxOpenConns=1 supaya seluruh query test melihat database yang sama.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&masterModel.OrganizationModel{},
		&masterModel.TeacherModel{},
		&masterModel.VenueModel{},
		&masterModel.StudentModel{},
		&masterModel.GroupModel{},
		&enrollModel.EnrollmentModel{},
		&schedModel.ScheduleVersionModel{},
		&schedModel.ScheduleSlotModel{},
		&sessModel.ClassSessionModel{},
		&attModel.AttendanceRecordModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

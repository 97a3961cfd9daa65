package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonova/booking-api/internal/config"
	"github.com/salonova/booking-api/internal/infra/repository"
	"github.com/salonova/booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate runs the schema migration and seeds the booking counter row.
// Shared with the test suite, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Salon{},
		&models.Admin{},
		&models.Employee{},
		&models.User{},
		&models.Schedule{},
		&models.Appointment{},
		&models.BookingCounter{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	counter := models.BookingCounter{Name: repository.ApplicationNumberCounter}
	return db.Where("name = ?", counter.Name).
		FirstOrCreate(&counter).Error
}

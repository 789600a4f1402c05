package database

import (
	"log"
	"time"

	"residence-hub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
}

// Migrate создаёт таблицы и ограничения; повторный вызов безопасен
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.Unit{},
		&models.MemberProfile{},
		&models.FamilyMember{},
		&models.Amenity{},
		&models.Reservation{},
		&models.Event{},
		&models.Visitor{},
		&models.Notice{},
		&models.Invoice{},
		&models.Message{},
		&models.AuditLog{},
	)
	if err != nil {
		return err
	}

	applyConstraints(db)
	return nil
}

// на уровне БД: end > start и никаких пересечений подтверждённых броней
var constraintDDL = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_time_order') THEN
			ALTER TABLE reservations ADD CONSTRAINT reservations_time_order CHECK (end_time > start_time);
		END IF;
	END $$`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
			ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
				EXCLUDE USING gist (amenity_id WITH =, tstzrange(start_time, end_time, '[)') WITH &&)
				WHERE (status = 'Confirmed' AND deleted_at IS NULL);
		END IF;
	END $$`,
}

func applyConstraints(db *gorm.DB) {
	for _, stmt := range constraintDDL {
		if err := db.Exec(stmt).Error; err != nil {
			// без прав на расширение остаётся только блокировка строки amenity
			log.Printf("migration warning: %v", err)
		}
	}
}

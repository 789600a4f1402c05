package database_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"residence-hub/internal/auth"
	"residence-hub/internal/booking"
	"residence-hub/internal/database"
	"residence-hub/internal/models"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createFixtures(t *testing.T, db *gorm.DB) (models.User, models.Amenity) {
	t.Helper()
	tag := uuid.New().String()[:8]
	user := models.User{
		Email:        fmt.Sprintf("test-%s@test.com", tag),
		Name:         "Test User",
		PasswordHash: "x",
		Role:         models.RoleMember,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	amenity := models.Amenity{Name: "Test amenity " + tag}
	if err := db.Create(&amenity).Error; err != nil {
		t.Fatalf("amenity: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("amenity_id = ?", amenity.ID).Delete(&models.Reservation{})
		db.Unscoped().Delete(&amenity)
		db.Unscoped().Delete(&user)
	})
	return user, amenity
}

func TestReservationStoreConflict(t *testing.T) {
	db := setup(t)
	user, amenity := createFixtures(t, db)
	svc := booking.NewService(database.NewReservationStore(db), nil, nil, time.UTC)
	id := &auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	ctx := context.Background()

	day := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	aid := fmt.Sprint(amenity.ID)

	if _, err := svc.Create(ctx, id, booking.Request{AmenityID: aid, Date: day, StartTime: "10:00", EndTime: "12:00"}); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.Create(ctx, id, booking.Request{AmenityID: aid, Date: day, StartTime: "11:00", EndTime: "13:00"})
	if !errors.Is(err, booking.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Create(ctx, id, booking.Request{AmenityID: aid, Date: day, StartTime: "12:00", EndTime: "13:00"}); err != nil {
		t.Fatalf("adjacent booking: %v", err)
	}

	list, err := svc.ListVisible(ctx, id, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(list))
	}
	if list[0].Amenity.ID != amenity.ID || !list[0].StartTime.Before(list[1].StartTime) {
		t.Errorf("unexpected order or preload: %+v", list)
	}
}

func TestReservationStoreUnknownAmenity(t *testing.T) {
	db := setup(t)
	user, _ := createFixtures(t, db)
	svc := booking.NewService(database.NewReservationStore(db), nil, nil, time.UTC)
	id := &auth.Identity{UserID: user.ID, Role: user.Role}

	_, err := svc.Create(context.Background(), id, booking.Request{
		AmenityID: "999999999", Date: "2030-01-01", StartTime: "10:00", EndTime: "11:00",
	})
	var verr *booking.ValidationError
	if !errors.As(err, &verr) || verr.Field != "amenity" {
		t.Fatalf("expected amenity ValidationError, got %v", err)
	}
}

func TestReservationStoreConcurrent(t *testing.T) {
	db := setup(t)
	user, amenity := createFixtures(t, db)
	svc := booking.NewService(database.NewReservationStore(db), nil, nil, time.UTC)
	id := &auth.Identity{UserID: user.ID, Role: user.Role}

	day := time.Now().AddDate(0, 0, 45).Format("2006-01-02")
	req := booking.Request{AmenityID: fmt.Sprint(amenity.ID), Date: day, StartTime: "18:00", EndTime: "19:00"}

	const n = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), id, req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, booking.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != n-1 {
		t.Errorf("ok=%d conflicts=%d", ok, conflicts)
	}
}

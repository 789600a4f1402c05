package database

import (
	"context"
	"errors"
	"time"

	"residence-hub/internal/booking"
	"residence-hub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// коды Postgres: exclusion_violation и unique_violation
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// колонка date сравнивается строкой, чтобы не зависеть от TZ сессии БД
const dateLayout = "2006-01-02"

type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

func (s *ReservationStore) HasConflict(ctx context.Context, slot booking.Slot) (bool, error) {
	return hasConflict(s.db.WithContext(ctx), slot)
}

func hasConflict(db *gorm.DB, slot booking.Slot) (bool, error) {
	var count int64
	err := db.Model(&models.Reservation{}).
		Where("amenity_id = ? AND date = ? AND status = ?", slot.AmenityID, slot.Date.Format(dateLayout), models.ReservationConfirmed).
		Where("start_time < ? AND end_time > ?", slot.End, slot.Start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *ReservationStore) ListConfirmed(ctx context.Context, q booking.ListQuery) ([]models.Reservation, error) {
	tx := s.db.WithContext(ctx).
		Preload("Amenity").
		Preload("User").
		Where("status = ?", models.ReservationConfirmed)
	if q.OwnerID != 0 {
		tx = tx.Where("user_id = ?", q.OwnerID)
	}
	if !q.From.IsZero() {
		tx = tx.Where("date >= ?", q.From.Format(dateLayout))
	}
	if !q.To.IsZero() {
		tx = tx.Where("date <= ?", q.To.Format(dateLayout))
	}

	var out []models.Reservation
	err := tx.Order("date asc").Order("start_time asc").Find(&out).Error
	return out, err
}

// Serialize блокирует строку amenity (SELECT ... FOR UPDATE) на время fn
func (s *ReservationStore) Serialize(ctx context.Context, amenityID uint, fn func(tx booking.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var amenity models.Amenity
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&amenity, amenityID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &booking.ValidationError{Field: "amenity", Msg: "Instalación no encontrada"}
		}
		if err != nil {
			return err
		}
		return fn(reservationTx{db: tx})
	})
	if isOverlapViolation(err) {
		return booking.ErrConflict
	}
	return err
}

type reservationTx struct {
	db *gorm.DB
}

func (t reservationTx) HasConflict(ctx context.Context, slot booking.Slot) (bool, error) {
	return hasConflict(t.db.WithContext(ctx), slot)
}

func (t reservationTx) Insert(ctx context.Context, r *models.Reservation) error {
	r.Date = calendarDay(r.Date)
	return t.db.WithContext(ctx).Create(r).Error
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
}

// calendarDay: та же календарная дата в UTC, чтобы колонка date не съезжала на сутки
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

type Reservation struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`
	User   User

	AmenityID uint `gorm:"index:idx_reservation_slot,priority:1;not null"`
	Amenity   Amenity

	// только дата, время хранится в StartTime/EndTime
	Date      time.Time         `gorm:"type:date;index:idx_reservation_slot,priority:2;not null"`
	StartTime time.Time         `gorm:"not null"`
	EndTime   time.Time         `gorm:"not null"`
	Status    ReservationStatus `gorm:"type:varchar(20);index;not null"`
}

// Overlaps: полуоткрытые интервалы [start, end), касание концами не пересечение
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

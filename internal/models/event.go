package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"type:date;index;not null"`
	StartTime   time.Time
	Type        string `gorm:"size:50;not null;default:General"`

	UserID uint
	User   User
}

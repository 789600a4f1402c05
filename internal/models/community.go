package models

import (
	"time"

	"gorm.io/gorm"
)

type VisitorStatus string

const (
	VisitorCheckIn  VisitorStatus = "CheckIn"
	VisitorCheckOut VisitorStatus = "CheckOut"
)

type Visitor struct {
	gorm.Model
	Name         string        `gorm:"size:255;not null"`
	Type         string        `gorm:"size:50;index;not null"` // Guest / Delivery / Service
	Status       VisitorStatus `gorm:"type:varchar(20);not null"`
	CheckInTime  time.Time
	CheckOutTime *time.Time
}

type Notice struct {
	gorm.Model
	Title       string `gorm:"size:255;not null"`
	Content     string `gorm:"type:text"`
	Type        string `gorm:"size:50"`
	StartDate   time.Time
	EndDate     time.Time
	BorderColor string `gorm:"size:50"`
	Status      string `gorm:"size:20"` // Approved / Pending
}

// Invoice: id строковый, как в бухгалтерии (INV-10234)
type Invoice struct {
	ID        string  `gorm:"primaryKey;size:32"`
	Amount    float64 `gorm:"type:numeric(12,2);not null"`
	Status    string  `gorm:"size:20;not null"` // Paid / Unpaid
	Category  string  `gorm:"size:50"`
	UserID    uint    `gorm:"index"`
	User      User
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	gorm.Model
	Content     string `gorm:"type:text;not null"`
	SenderID    uint   `gorm:"index;not null"`
	Sender      User
	ReceiverID  uint `gorm:"index;not null"`
	Receiver    User
	AvatarColor string `gorm:"size:50"`
}

type Building struct {
	gorm.Model
	Name  string `gorm:"size:255;uniqueIndex;not null"`
	Units []Unit
}

type Unit struct {
	gorm.Model
	BuildingID uint `gorm:"index;not null"`
	Building   Building
	Name       string `gorm:"size:50;not null"`
	Category   string `gorm:"size:50"` // Residential / Commercial
}

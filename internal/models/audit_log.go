package models

import "time"

// AuditLog: журнал действий пользователей (кто, что и над чем сделал)
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	UserID uint `gorm:"index"`
	User   User

	Entity   string `gorm:"size:50;not null"` // "reservation", "event", "visitor", "message"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "check_out", "register" и т.п.
	Details  string `gorm:"type:text"`
}

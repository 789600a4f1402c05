package events

import (
	"encoding/json"
	"fmt"
)

// routing keys на topic exchange сообщества
const (
	RKReservationCreated = "reservation.created"
	RKEventCreated       = "event.created"
	RKMessageSent        = "message.sent"
	RKVisitorCheckedIn   = "visitor.checked_in"
	RKVisitorCheckedOut  = "visitor.checked_out"
)

// Bindings для очереди уведомлений
var Bindings = []string{"reservation.*", "event.*", "message.*", "visitor.*"}

type ReservationCreated struct {
	ReservationID uint  `json:"reservation_id"`
	UserID        uint  `json:"user_id"`
	AmenityID     uint  `json:"amenity_id"`
	Start         int64 `json:"start"` // unix seconds
	End           int64 `json:"end"`
}

type EventCreated struct {
	EventID uint   `json:"event_id"`
	Title   string `json:"title"`
	Date    string `json:"date"` // YYYY-MM-DD
	UserID  uint   `json:"user_id"`
}

type MessageSent struct {
	MessageID  uint `json:"message_id"`
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
}

type VisitorChanged struct {
	VisitorID uint   `json:"visitor_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	At        int64  `json:"at"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}

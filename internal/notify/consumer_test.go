package notify

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"residence-hub/internal/events"
)

type recorder struct {
	subjects []string
	messages []string
}

func (r *recorder) Notify(subject, message string) error {
	r.subjects = append(r.subjects, subject)
	r.messages = append(r.messages, message)
	return nil
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestHandle(t *testing.T) {
	start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		key     string
		body    any
		subject string
		contain string
	}{
		{
			name:    "reservation",
			key:     events.RKReservationCreated,
			body:    events.ReservationCreated{ReservationID: 5, UserID: 2, AmenityID: 1, Start: start.Unix(), End: start.Add(time.Hour).Unix()},
			subject: "Nueva reserva",
			contain: "2024-07-01 10:00 - 11:00",
		},
		{
			name:    "event",
			key:     events.RKEventCreated,
			body:    events.EventCreated{EventID: 1, Title: "Asamblea", Date: "2024-07-10"},
			subject: "Nuevo evento",
			contain: "Asamblea (2024-07-10)",
		},
		{
			name:    "message",
			key:     events.RKMessageSent,
			body:    events.MessageSent{MessageID: 1, SenderID: 2, ReceiverID: 3},
			subject: "Nuevo mensaje",
			contain: "Usuario 2",
		},
		{
			name:    "visitor out",
			key:     events.RKVisitorCheckedOut,
			body:    events.VisitorChanged{VisitorID: 1, Name: "Ana", Type: "Guest", At: start.Unix()},
			subject: "Visitante salió",
			contain: "Ana (Guest)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := NewConsumer(Config{Location: time.UTC}, rec)
			if err := c.Handle(tt.key, mustJSON(t, tt.body)); err != nil {
				t.Fatalf("handle: %v", err)
			}
			if len(rec.subjects) != 1 || rec.subjects[0] != tt.subject {
				t.Fatalf("subjects: %v", rec.subjects)
			}
			if !strings.Contains(rec.messages[0], tt.contain) {
				t.Errorf("message %q does not contain %q", rec.messages[0], tt.contain)
			}
		})
	}
}

func TestHandleBadPayload(t *testing.T) {
	c := NewConsumer(Config{}, &recorder{})
	if err := c.Handle(events.RKReservationCreated, []byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestHandleUnknownKey(t *testing.T) {
	rec := &recorder{}
	c := NewConsumer(Config{}, rec)
	if err := c.Handle("payment.paid", []byte("{}")); err != nil {
		t.Fatalf("unknown key should be acked: %v", err)
	}
	if len(rec.subjects) != 0 {
		t.Errorf("unexpected notification: %v", rec.subjects)
	}
}

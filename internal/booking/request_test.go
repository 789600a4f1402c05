package booking

import (
	"errors"
	"testing"
	"time"
)

func TestRequestSlot(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)

	slot, err := Request{AmenityID: " 3 ", Date: "2024-07-01", StartTime: "09:30", EndTime: "11:00"}.Slot(loc)
	if err != nil {
		t.Fatalf("slot: %v", err)
	}
	if slot.AmenityID != 3 {
		t.Errorf("amenity: %d", slot.AmenityID)
	}
	if want := time.Date(2024, 7, 1, 0, 0, 0, 0, loc); !slot.Date.Equal(want) {
		t.Errorf("date: %v", slot.Date)
	}
	if want := time.Date(2024, 7, 1, 9, 30, 0, 0, loc); !slot.Start.Equal(want) {
		t.Errorf("start: %v", slot.Start)
	}
	if want := time.Date(2024, 7, 1, 16, 0, 0, 0, time.UTC); !slot.End.Equal(want) {
		t.Errorf("end: %v", slot.End)
	}
}

func TestOutcomeWrapped(t *testing.T) {
	err := &StorageError{Op: "insert", Err: ErrConflict}
	if r := Outcome(err); r.Message != "Ya existe una reserva en ese horario" {
		t.Errorf("wrapped conflict: %+v", r)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("StorageError must unwrap")
	}
}

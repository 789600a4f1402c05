package booking

import (
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Request is the booking form as submitted.
type Request struct {
	AmenityID string `form:"amenityId"`
	Date      string `form:"date"`
	StartTime string `form:"startTime"`
	EndTime   string `form:"endTime"`
}

// Slot is a validated booking window.
type Slot struct {
	AmenityID uint
	Date      time.Time // полночь в loc
	Start     time.Time
	End       time.Time
}

// Slot validates the request and combines date and time-of-day in loc.
func (r Request) Slot(loc *time.Location) (Slot, error) {
	amenity := strings.TrimSpace(r.AmenityID)
	date := strings.TrimSpace(r.Date)
	start := strings.TrimSpace(r.StartTime)
	end := strings.TrimSpace(r.EndTime)

	if amenity == "" || date == "" || start == "" || end == "" {
		return Slot{}, &ValidationError{Field: "required", Msg: "Faltan campos obligatorios"}
	}

	aid, err := strconv.ParseUint(amenity, 10, 64)
	if err != nil || aid == 0 {
		return Slot{}, &ValidationError{Field: "amenity", Msg: "Instalación no válida"}
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return Slot{}, &ValidationError{Field: "date", Msg: "Fecha no válida"}
	}

	st, err := atTime(day, start)
	if err != nil {
		return Slot{}, &ValidationError{Field: "time", Msg: "Hora de inicio no válida"}
	}
	et, err := atTime(day, end)
	if err != nil {
		return Slot{}, &ValidationError{Field: "time", Msg: "Hora de fin no válida"}
	}

	if !et.After(st) {
		return Slot{}, &ValidationError{Field: "time", Msg: "La hora de fin debe ser posterior a la de inicio"}
	}

	return Slot{AmenityID: uint(aid), Date: day, Start: st, End: et}, nil
}

func atTime(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

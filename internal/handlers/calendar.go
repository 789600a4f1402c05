package handlers

import (
	"strconv"
	"time"

	"residence-hub/internal/models"
)

type CalendarDay struct {
	Date         time.Time
	InMonth      bool
	Today        bool
	Reservations []models.Reservation
	Events       []models.Event
	Notices      []models.Notice
}

type CalendarMonth struct {
	Year  int
	Month time.Month
	Weeks [][]CalendarDay

	Prev, Next time.Time
}

// monthFromQuery: ?month=1..12&year=YYYY, по умолчанию текущий месяц
func monthFromQuery(monthStr, yearStr string, now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if m, err := strconv.Atoi(monthStr); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	if y, err := strconv.Atoi(yearStr); err == nil && y >= 1970 && y <= 9999 {
		year = y
	}
	return year, month
}

// monthBounds: первый и последний день месяца (полночь в loc)
func monthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// buildMonth раскладывает данные по неделям (неделя с понедельника)
func buildMonth(year int, month time.Month, loc *time.Location, today time.Time,
	reservations []models.Reservation, events []models.Event, notices []models.Notice) CalendarMonth {

	first, last := monthBounds(year, month, loc)

	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	cal := CalendarMonth{
		Year:  year,
		Month: month,
		Prev:  first.AddDate(0, -1, 0),
		Next:  first.AddDate(0, 1, 0),
	}

	for day := start; !day.After(last) || int(day.Weekday()) != 1; day = day.AddDate(0, 0, 1) {
		if int(day.Weekday()) == 1 {
			cal.Weeks = append(cal.Weeks, nil)
		}
		d := CalendarDay{
			Date:    day,
			InMonth: day.Month() == month,
			Today:   sameDate(day, today),
		}
		for _, r := range reservations {
			if sameDate(r.StartTime.In(loc), day) {
				d.Reservations = append(d.Reservations, r)
			}
		}
		for _, e := range events {
			if sameDate(e.Date, day) {
				d.Events = append(d.Events, e)
			}
		}
		for _, n := range notices {
			from := n.StartDate.In(loc)
			to := n.EndDate.In(loc)
			if !day.Before(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)) &&
				!day.After(to) {
				d.Notices = append(d.Notices, n)
			}
		}
		w := len(cal.Weeks) - 1
		cal.Weeks[w] = append(cal.Weeks[w], d)
	}
	return cal
}

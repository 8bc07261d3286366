// Package calendar maps hour-of-year indices to calendar dates for a fixed
// non-leap year of 24-hour days.
package calendar

import (
	"errors"
	"fmt"
)

const (
	Months       = 12
	HoursPerDay  = 24
	DaysPerYear  = 365
	HoursPerYear = DaysPerYear * HoursPerDay
)

// StandardDays is the number of days in each month of a non-leap year.
var StandardDays = [Months]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ErrInvalidDays is returned by New when a day table does not describe a
// 365-day year.
var ErrInvalidDays = errors.New("invalid days per month")

// Stamp is the calendar position of one hour-of-year index.
type Stamp struct {
	Month     int // 0-11
	Day       int // 1-based day of month
	Hour      int // 0-23, the hour starting at Hour:00
	DayOfYear int // 1-365
}

// Frame is an immutable hour-of-year calendar.
type Frame struct {
	days   [Months]int
	starts [Months + 1]int // first hour-of-year of each month, plus HoursPerYear
	stamps [HoursPerYear]Stamp
}

var standard = mustNew(StandardDays)

// Standard returns the shared non-leap calendar.
func Standard() *Frame { return standard }

// New builds a frame from a day-per-month table. The table must sum to 365
// with every month holding between 1 and 31 days.
func New(days [Months]int) (*Frame, error) {
	total := 0
	for m, d := range days {
		if d < 1 || d > 31 {
			return nil, fmt.Errorf("month %d has %d days: %w", m, d, ErrInvalidDays)
		}
		total += d
	}
	if total != DaysPerYear {
		return nil, fmt.Errorf("days sum to %d, want %d: %w", total, DaysPerYear, ErrInvalidDays)
	}

	f := &Frame{days: days}
	h, doy := 0, 0
	for m, d := range days {
		f.starts[m] = h
		for day := 1; day <= d; day++ {
			doy++
			for hour := 0; hour < HoursPerDay; hour++ {
				f.stamps[h] = Stamp{Month: m, Day: day, Hour: hour, DayOfYear: doy}
				h++
			}
		}
	}
	f.starts[Months] = h
	return f, nil
}

func mustNew(days [Months]int) *Frame {
	f, err := New(days)
	if err != nil {
		panic(err)
	}
	return f
}

// Days returns the day-per-month table.
func (f *Frame) Days() [Months]int { return f.days }

// DaysInMonth returns the number of days in month m (0-11).
func (f *Frame) DaysInMonth(m int) int { return f.days[m] }

// HoursInMonth returns the number of hours in month m (0-11).
func (f *Frame) HoursInMonth(m int) int { return f.days[m] * HoursPerDay }

// MonthStart returns the first hour-of-year index of month m (0-11).
func (f *Frame) MonthStart(m int) int { return f.starts[m] }

// At returns the calendar position of hour-of-year h.
func (f *Frame) At(h int) Stamp { return f.stamps[h] }

// HourOfYear is the inverse of At. Month is 0-based, day is 1-based.
func (f *Frame) HourOfYear(month, day, hour int) int {
	return f.starts[month] + (day-1)*HoursPerDay + hour
}

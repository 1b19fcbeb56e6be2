package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

type (
	// Date is a calendar date (midnight UTC). Entries carry no time of day.
	Date struct {
		time.Time
	}

	// Entry is one persisted record of hours worked on a date.
	// ID is assigned by storage on insert and is stable afterwards; an
	// ID of 0 marks a row that has not been persisted yet.
	Entry struct {
		ID          int64
		Date        Date
		Description string
		Hours       float64
	}
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidHours = errors.New("invalid hours")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date in ISO-8601 form, matching the stored column.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) addDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ParseHours parses a decimal hour count, rejecting non-numeric and
// negative values at the boundary before they reach storage.
func ParseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || h < 0 {
		return 0, ErrInvalidHours
	}
	return h, nil
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Hours < 0 {
		return ErrInvalidHours
	}
	return nil
}

// Equal reports whether two entries carry the same field values,
// ignoring ID. This is the field-by-field comparison reconciliation
// uses to detect updated rows.
func (e Entry) Equal(other Entry) bool {
	return e.Date.Time.Equal(other.Date.Time) &&
		e.Description == other.Description &&
		e.Hours == other.Hours
}

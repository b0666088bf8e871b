package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date with no time-of-day component.
	Date struct {
		time.Time
	}

	// Member is a registered participant of the contribution pool.
	// The ID is externally assigned and immutable once registered.
	Member struct {
		ID   string
		Name string
	}

	// Contribution is a dated cash deposit by a member. The ID is
	// assigned by the store on append.
	Contribution struct {
		ID       string
		MemberID string
		Amount   float64
		Date     Date
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrEmptyMemberID = errors.New("empty member id")
	ErrEmptyName     = errors.New("empty member name")
	ErrInvalidDate   = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO-8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// ISO returns the date formatted as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format(dateLayout)
}

// DaysUntil returns the whole number of days from d to other.
// Negative when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time) / (24 * time.Hour))
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return ErrEmptyMemberID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Contribution) Validate() error {
	if strings.TrimSpace(c.MemberID) == "" {
		return ErrEmptyMemberID
	}
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	return c.Date.Validate()
}

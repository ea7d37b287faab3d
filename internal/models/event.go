package models

import "time"

// Event represents a shared calendar event.
type Event struct {
	Base
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Participants []string  `gorm:"serializer:json" json:"participants"`
	IsAllDay     bool      `gorm:"not null;default:false" json:"is_all_day"`
}

// NormalizeAllDay expands an all-day event to cover its full calendar
// days: start is clamped to 00:00:00.000 and end to 23:59:59.999 of
// their respective days.
func (e *Event) NormalizeAllDay() {
	if !e.IsAllDay {
		return
	}
	e.StartDate = StartOfDay(e.StartDate)
	e.EndDate = EndOfDay(e.EndDate)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

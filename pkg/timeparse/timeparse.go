// Package timeparse parses the handful of literal date/time formats the chat
// flows accept. All functions are pure: malformed input yields ErrUnrecognized,
// never a panic.
package timeparse

import (
	"errors"
	"strings"
	"time"
)

// ErrUnrecognized is returned when the text matches none of the accepted
// formats.
var ErrUnrecognized = errors.New("unrecognized date/time format")

// Appointment formats, tried in order; first match wins.
var appointmentLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006 15:04:05",
}

// Birth date formats, tried in order.
var birthDateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
}

// ParseAppointmentTime interprets text as a naive local date/time in loc.
// Accepted layouts: "2006-01-02 15:04", "2006-01-02 15:04:05",
// "02.01.2006 15:04", "02.01.2006 15:04:05".
func ParseAppointmentTime(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range appointmentLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnrecognized
}

// ParseBirthDate parses "02.01.2006" or "2006-01-02" into a calendar date
// with no time component (midnight UTC).
func ParseBirthDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range birthDateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnrecognized
}

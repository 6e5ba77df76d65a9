package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// ParseUnit maps user input to a temperature unit. Besides plain C/F the
// bot has always accepted a handful of alias inputs; the returned label
// is what the confirmation message echoes back.
func ParseUnit(s string) (Unit, string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C":
		return UnitCelsius, "C", nil
	case "F":
		return UnitFahrenheit, "F", nil
	case "🦅", "FREEDOM":
		return UnitFahrenheit, "Freedom Units", nil
	case "🍁", "LOGICAL":
		return UnitCelsius, "Logical", nil
	}
	return "", "", ErrInvalidUnit
}

// ParseFormat parses the message-format argument ("embed" or "plain").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "embed":
		return FormatEmbed, nil
	case "plain":
		return FormatPlain, nil
	}
	return "", ErrInvalidFormat
}

// ParseClock12 parses a 12-hour wall-clock time ("8:00") plus an AM/PM
// marker into the 24-hour "HH:MM" form the snapshot stores.
func ParseClock12(timeStr, amPM string) (string, error) {
	v := strings.TrimSpace(timeStr) + " " + strings.ToUpper(strings.TrimSpace(amPM))
	t, err := time.Parse("3:04 PM", v)
	if err != nil {
		return "", ErrInvalidTime
	}
	return t.Format("15:04"), nil
}

// ValidateTZ checks that tz names a valid IANA location and returns its
// canonical name.
func ValidateTZ(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "", ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", ErrInvalidTimezone
	}
	return loc.String(), nil
}

func parseHHMM(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

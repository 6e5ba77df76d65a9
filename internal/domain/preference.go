package domain

// Unit is a temperature display unit.
type Unit string

const (
	UnitCelsius    Unit = "C"
	UnitFahrenheit Unit = "F"
)

// Format selects how replies are rendered.
type Format string

const (
	FormatEmbed Format = "embed"
	FormatPlain Format = "plain"
)

// Preference is one user's stored settings. The zero value means
// "nothing set": lookups for an unknown user return it as-is, and
// records are never deleted, only their fields.
type Preference struct {
	Location        string `json:"location,omitempty"`
	Unit            Unit   `json:"unit,omitempty"`
	Format          Format `json:"format,omitempty"`
	DailyUpdateTime string `json:"daily_update_time,omitempty"` // 24-hour "HH:MM"
	Timezone        string `json:"timezone,omitempty"`          // IANA name
}

// EffectiveUnit returns the stored unit, defaulting to Celsius.
func (p Preference) EffectiveUnit() Unit {
	if p.Unit == UnitFahrenheit {
		return UnitFahrenheit
	}
	return UnitCelsius
}

// EffectiveFormat returns the stored format, defaulting to embed.
func (p Preference) EffectiveFormat() Format {
	if p.Format == FormatPlain {
		return FormatPlain
	}
	return FormatEmbed
}

// Schedule returns the daily-update hour/minute and timezone when the
// record carries a complete schedule. A delivery time without a timezone
// (or the reverse) is meaningless and reported as no schedule.
func (p Preference) Schedule() (hour, minute int, tz string, ok bool) {
	if p.DailyUpdateTime == "" || p.Timezone == "" {
		return 0, 0, "", false
	}
	hour, minute, err := parseHHMM(p.DailyUpdateTime)
	if err != nil {
		return 0, 0, "", false
	}
	return hour, minute, p.Timezone, true
}

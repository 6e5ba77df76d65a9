package weather

import "time"

// Temperatures in these result types are Kelvin, the canonical unit;
// conversion to the user's display unit happens once, at render time.

// Current is normalized current conditions for a location.
type Current struct {
	Location    string
	Condition   string // e.g. "Clear"
	Description string // e.g. "clear sky"
	TempK       float64
	HumidityPct int
	WindSpeedMS float64
	WindDeg     int
	Sunrise     time.Time // UTC
	Sunset      time.Time // UTC
	TZOffsetSec int       // location's shift from UTC
}

// ForecastSlot is one 3-hour forecast entry.
type ForecastSlot struct {
	Time        time.Time // UTC
	TempK       float64
	Description string
}

// ForecastDay is one entry of the daily forecast.
type ForecastDay struct {
	Date        time.Time // UTC, midnight of the forecast day
	DayTempK    float64
	MinTempK    float64
	MaxTempK    float64
	Description string
}

// Alert is an active weather alert.
type Alert struct {
	Event       string
	Description string
	Start       time.Time // UTC
	End         time.Time // UTC
}

// AirQuality is the composite air-quality result; concentrations are μg/m³.
type AirQuality struct {
	Index int // composite index, 1 (good) .. 5 (very poor)
	SO2   float64
	NO2   float64
	PM10  float64
	PM25  float64
	O3    float64
	CO    float64
}

package owm

import "fmt"

// StatusError reports a non-2xx provider response. Status is the only
// error signal OpenWeatherMap gives us that we consume.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweathermap: unexpected status %d", e.Code)
}

// CurrentWeather is the subset of the current-conditions payload the bot
// consumes. Temperatures are Kelvin, the provider default.
type CurrentWeather struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Sunrise int64 `json:"sunrise"` // epoch seconds, UTC
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
	Timezone int     `json:"timezone"` // shift from UTC, seconds
	Name     string  `json:"name"`
	Alerts   []Alert `json:"alerts"`
}

// Alert is an active weather alert as embedded in a conditions payload.
type Alert struct {
	Event       string `json:"event"`
	Description string `json:"description"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
}

// GeoResult is one geocoding candidate for a free-text location.
type GeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// Forecast is the 5-day/3-hour forecast payload.
type Forecast struct {
	List []ForecastEntry `json:"list"`
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// DailyForecast is the daily ("16 day") forecast payload.
type DailyForecast struct {
	List []DailyForecastEntry `json:"list"`
}

// DailyForecastEntry is one forecast day.
type DailyForecastEntry struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// AirPollution is the air-pollution payload; concentrations are μg/m³.
type AirPollution struct {
	List []struct {
		Components PollutantConcentrations `json:"components"`
	} `json:"list"`
}

// PollutantConcentrations holds the pollutant readings the bot grades.
type PollutantConcentrations struct {
	SO2  float64 `json:"so2"`
	NO2  float64 `json:"no2"`
	PM10 float64 `json:"pm10"`
	PM25 float64 `json:"pm2_5"`
	O3   float64 `json:"o3"`
	CO   float64 `json:"co"`
}

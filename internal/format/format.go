package format

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/LRGuess/weatherbot/internal/domain"
	"github.com/LRGuess/weatherbot/internal/weather"
)

// Reply is a rendered outbound message, ready to send. ParseMode is set
// when the text carries HTML markup (the embed rendering).
type Reply struct {
	Text      string
	ParseMode string // "" or "HTML"
}

// Message renders a titled message in the user's preferred format. An
// embed becomes a bold-title HTML message; plain format is the body
// alone.
func Message(f domain.Format, title, body string) Reply {
	if f == domain.FormatPlain {
		return Reply{Text: body}
	}
	return Reply{
		Text:      "<b>" + html.EscapeString(title) + "</b>\n" + html.EscapeString(body),
		ParseMode: "HTML",
	}
}

// Error renders a coded error reply: plain "Error: NNN - msg", embed
// with an "Error: NNN" title.
func Error(f domain.Format, code int, msg string) Reply {
	if f == domain.FormatPlain {
		return Reply{Text: fmt.Sprintf("Error: %d - %s", code, msg)}
	}
	return Message(f, fmt.Sprintf("Error: %d", code), msg)
}

func unitSuffix(u domain.Unit) string {
	if u == domain.UnitFahrenheit {
		return "F"
	}
	return "C"
}

// Current renders current conditions.
func Current(f domain.Format, loc string, cur *weather.Current, u domain.Unit) Reply {
	body := fmt.Sprintf("The weather in %s is %s (%s) with a temperature of %.2f°%s.",
		loc, cur.Condition, cur.Description, weather.InUnit(cur.TempK, u), unitSuffix(u))
	return Message(f, "Weather in "+loc, body)
}

// DailyUpdate renders the scheduled direct message. It is always plain
// text, whatever the user's command-reply format.
func DailyUpdate(loc string, cur *weather.Current, u domain.Unit) Reply {
	return Reply{Text: fmt.Sprintf("Daily weather update for %s: %s (%s) with a temperature of %.2f°%s.",
		loc, cur.Condition, cur.Description, weather.InUnit(cur.TempK, u), unitSuffix(u))}
}

// Wind renders wind speed and direction.
func Wind(f domain.Format, loc string, cur *weather.Current) Reply {
	body := fmt.Sprintf("The wind in %s is blowing at %g m/s in the direction of %d°.",
		loc, cur.WindSpeedMS, cur.WindDeg)
	return Message(f, "Wind in "+loc, body)
}

// Humidity renders relative humidity.
func Humidity(f domain.Format, loc string, cur *weather.Current) Reply {
	body := fmt.Sprintf("The humidity in %s is %d%%.", loc, cur.HumidityPct)
	return Message(f, "Humidity in "+loc, body)
}

// SunTimes renders sunrise/sunset in the location's local time, using
// the provider's UTC offset.
func SunTimes(f domain.Format, loc string, cur *weather.Current) Reply {
	zone := time.FixedZone("", cur.TZOffsetSec)
	sunrise := cur.Sunrise.In(zone).Format("2006-01-02 15:04:05")
	sunset := cur.Sunset.In(zone).Format("2006-01-02 15:04:05")
	body := fmt.Sprintf("The sunrise in %s is at %s, and the sunset is at %s (local time).",
		loc, sunrise, sunset)
	return Message(f, "Sun times in "+loc, body)
}

// Forecast renders the 3-hourly forecast grouped by date.
func Forecast(f domain.Format, loc string, slots []weather.ForecastSlot, u domain.Unit) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s:\n", loc)

	lastDate := ""
	for _, s := range slots {
		date := s.Time.Format("2006-01-02")
		if date != lastDate {
			fmt.Fprintf(&b, "\n%s\n", date)
			lastDate = date
		}
		fmt.Fprintf(&b, "%s: Temp: %.2f°%s, Weather: %s\n",
			s.Time.Format("15:04"), weather.InUnit(s.TempK, u), unitSuffix(u), s.Description)
	}
	return Message(f, "Forecast for "+loc, strings.TrimRight(b.String(), "\n"))
}

// DailyForecast renders the 16-day forecast, one line per day.
func DailyForecast(f domain.Format, loc string, days []weather.ForecastDay, u domain.Unit) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "16-day weather forecast for %s:\n", loc)
	for _, d := range days {
		fmt.Fprintf(&b, "%s: Min: %.2f°%s, Max: %.2f°%s, Weather: %s\n",
			d.Date.Format("2006-01-02"),
			weather.InUnit(d.MinTempK, u), unitSuffix(u),
			weather.InUnit(d.MaxTempK, u), unitSuffix(u),
			d.Description)
	}
	return Message(f, "16-day forecast for "+loc, strings.TrimRight(b.String(), "\n"))
}

// AirQuality renders the composite index; details appends per-pollutant
// concentrations.
func AirQuality(f domain.Format, loc string, aq *weather.AirQuality, details bool) Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "Air Quality Index: %d | %s", aq.Index, weather.QualitativeName(aq.Index))
	if details {
		fmt.Fprintf(&b, "\n\nSO2: %g μg/m³\nNO2: %g μg/m³\nPM10: %g μg/m³\nPM2.5: %g μg/m³\nO3: %g μg/m³\nCO: %g μg/m³",
			aq.SO2, aq.NO2, aq.PM10, aq.PM25, aq.O3, aq.CO)
	}
	return Message(f, "Air Quality in "+loc, b.String())
}

// Alerts renders active alerts, or a distinct no-alerts reply when the
// list is empty.
func Alerts(f domain.Format, loc string, alerts []weather.Alert) Reply {
	if len(alerts) == 0 {
		return Message(f, "No Alerts in "+loc, fmt.Sprintf("No weather alerts for %s.", loc))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weather alerts for %s:\n", loc)
	for _, a := range alerts {
		fmt.Fprintf(&b, "%s: %s\nStart Time: %s UTC\nEnd Time: %s UTC\n\n",
			a.Event, a.Description,
			a.Start.Format("2006-01-02 15:04:05"),
			a.End.Format("2006-01-02 15:04:05"))
	}
	return Message(f, "Alerts in "+loc, strings.TrimRight(b.String(), "\n"))
}

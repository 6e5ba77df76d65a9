package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LRGuess/weatherbot/internal/owm"
)

// Provider is the slice of the OpenWeatherMap client the facade consumes.
type Provider interface {
	Current(ctx context.Context, location string) (*owm.CurrentWeather, error)
	Geocode(ctx context.Context, location string) ([]owm.GeoResult, error)
	Forecast(ctx context.Context, lat, lon float64) (*owm.Forecast, error)
	DailyForecast(ctx context.Context, lat, lon float64, days int) (*owm.DailyForecast, error)
	AirPollution(ctx context.Context, lat, lon float64) (*owm.AirPollution, error)
}

// Service is the weather query facade: it owns the geocoding step for
// coordinate-keyed metrics and normalizes provider payloads. It holds no
// cache; every call is a fresh provider request, so replies are never
// stale relative to the live provider.
type Service struct {
	provider Provider
}

func NewService(p Provider) *Service {
	return &Service{provider: p}
}

// Current fetches and normalizes current conditions for a free-text
// location.
func (s *Service) Current(ctx context.Context, location string) (*Current, error) {
	w, err := s.provider.Current(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: current conditions for %q: %v", ErrProviderUnavailable, location, err)
	}
	if len(w.Weather) == 0 {
		return nil, fmt.Errorf("%w: empty conditions payload for %q", ErrProviderUnavailable, location)
	}

	return &Current{
		Location:    location,
		Condition:   w.Weather[0].Main,
		Description: w.Weather[0].Description,
		TempK:       w.Main.Temp,
		HumidityPct: w.Main.Humidity,
		WindSpeedMS: w.Wind.Speed,
		WindDeg:     w.Wind.Deg,
		Sunrise:     time.Unix(w.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(w.Sys.Sunset, 0).UTC(),
		TZOffsetSec: w.Timezone,
	}, nil
}

// Alerts returns active alerts for a location. An empty list is a valid
// result, distinct from a fetch failure.
func (s *Service) Alerts(ctx context.Context, location string) ([]Alert, error) {
	w, err := s.provider.Current(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: alerts for %q: %v", ErrProviderUnavailable, location, err)
	}

	alerts := make([]Alert, 0, len(w.Alerts))
	for _, a := range w.Alerts {
		alerts = append(alerts, Alert{
			Event:       a.Event,
			Description: a.Description,
			Start:       time.Unix(a.Start, 0).UTC(),
			End:         time.Unix(a.End, 0).UTC(),
		})
	}
	return alerts, nil
}

// Forecast geocodes the location and fetches the 5-day/3-hour forecast.
func (s *Service) Forecast(ctx context.Context, location string) ([]ForecastSlot, error) {
	lat, lon, err := s.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	f, err := s.provider.Forecast(ctx, lat, lon)
	if err != nil || len(f.List) == 0 {
		return nil, fmt.Errorf("%w: forecast for %q: %v", ErrProviderUnavailable, location, err)
	}

	slots := make([]ForecastSlot, 0, len(f.List))
	for _, e := range f.List {
		slot := ForecastSlot{Time: time.Unix(e.Dt, 0).UTC(), TempK: e.Main.Temp}
		if len(e.Weather) > 0 {
			slot.Description = e.Weather[0].Description
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// DailyForecast geocodes the location and fetches the 16-day forecast.
func (s *Service) DailyForecast(ctx context.Context, location string) ([]ForecastDay, error) {
	lat, lon, err := s.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	f, err := s.provider.DailyForecast(ctx, lat, lon, 16)
	if err != nil || len(f.List) == 0 {
		return nil, fmt.Errorf("%w: daily forecast for %q: %v", ErrProviderUnavailable, location, err)
	}

	days := make([]ForecastDay, 0, len(f.List))
	for _, e := range f.List {
		day := ForecastDay{
			Date:     time.Unix(e.Dt, 0).UTC().Truncate(24 * time.Hour),
			DayTempK: e.Temp.Day,
			MinTempK: e.Temp.Min,
			MaxTempK: e.Temp.Max,
		}
		if len(e.Weather) > 0 {
			day.Description = e.Weather[0].Description
		}
		days = append(days, day)
	}
	return days, nil
}

// AirQuality geocodes the location, fetches pollutant concentrations and
// grades them into the composite index.
func (s *Service) AirQuality(ctx context.Context, location string) (*AirQuality, error) {
	lat, lon, err := s.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	ap, err := s.provider.AirPollution(ctx, lat, lon)
	if err != nil || len(ap.List) == 0 {
		return nil, fmt.Errorf("%w: air quality for %q: %v", ErrProviderUnavailable, location, err)
	}

	c := ap.List[0].Components
	aq := &AirQuality{
		SO2:  c.SO2,
		NO2:  c.NO2,
		PM10: c.PM10,
		PM25: c.PM25,
		O3:   c.O3,
		CO:   c.CO,
	}
	aq.Index = CompositeIndex(*aq)
	return aq, nil
}

// geocode resolves the location text to coordinates. Zero candidates or
// a non-success status both mean the location text is the problem; other
// failures are the provider's.
func (s *Service) geocode(ctx context.Context, location string) (lat, lon float64, err error) {
	res, err := s.provider.Geocode(ctx, location)
	if err != nil {
		var se *owm.StatusError
		if errors.As(err, &se) {
			return 0, 0, fmt.Errorf("%w: %q (status %d)", ErrLocationNotFound, location, se.Code)
		}
		return 0, 0, fmt.Errorf("%w: geocoding %q: %v", ErrProviderUnavailable, location, err)
	}
	if len(res) == 0 {
		return 0, 0, fmt.Errorf("%w: %q (no geocoding results)", ErrLocationNotFound, location)
	}
	return res[0].Lat, res[0].Lon, nil
}

package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://api.openweathermap.org"

// BackoffConfig controls retry behaviour for transient provider errors.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Client is a thin OpenWeatherMap HTTP client. Transient failures
// (network errors, 429, 5xx) are retried with exponential backoff behind
// a circuit breaker; other non-2xx statuses come back as *StatusError
// without retry.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the given HTTP client (which carries
// whatever timeout policy the caller wants).
func NewClient(apiKey string, httpc *http.Client) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   httpc,
		backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// Current fetches current conditions for a free-text location.
func (c *Client) Current(ctx context.Context, location string) (*CurrentWeather, error) {
	q := url.Values{}
	q.Set("q", location)

	var out CurrentWeather
	if err := c.get(ctx, "/data/2.5/weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Geocode resolves a free-text location to coordinate candidates. An
// empty list with a 200 status is a valid "nothing matched" result.
func (c *Client) Geocode(ctx context.Context, location string) ([]GeoResult, error) {
	q := url.Values{}
	q.Set("q", location)

	var out []GeoResult
	if err := c.get(ctx, "/geo/1.0/direct", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Forecast fetches the 5-day/3-hour forecast for coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	var out Forecast
	if err := c.get(ctx, "/data/2.5/forecast", coordValues(lat, lon), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyForecast fetches up to days daily forecast entries for coordinates.
func (c *Client) DailyForecast(ctx context.Context, lat, lon float64, days int) (*DailyForecast, error) {
	q := coordValues(lat, lon)
	q.Set("cnt", strconv.Itoa(days))

	var out DailyForecast
	if err := c.get(ctx, "/data/2.5/forecast/daily", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AirPollution fetches current pollutant concentrations for coordinates.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (*AirPollution, error) {
	var out AirPollution
	if err := c.get(ctx, "/data/2.5/air_pollution", coordValues(lat, lon), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func coordValues(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return q
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
)

// get issues the request with retries, backoff and the circuit breaker,
// then decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return errors.New("openweathermap api key is not configured")
	}
	q.Set("appid", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	var attempt int
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			resp, execErr := c.httpc.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			// 429 and 5xx are transient; anything else non-2xx is final.
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			return resp, nil
		})

		if err == nil {
			resp := result.(*http.Response)
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return &StatusError{Code: resp.StatusCode}
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("openweathermap: decode response: %w", err)
			}
			return nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("openweathermap: circuit open: %w", err)
		}
		if attempt >= c.backoff.MaxRetries {
			return fmt.Errorf("openweathermap: %w", err)
		}

		delay := c.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.MaxInterval > 0 && delay > c.backoff.MaxInterval {
			delay = c.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}

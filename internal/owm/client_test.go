package owm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.Client())
	c.baseURL = srv.URL
	c.backoff.InitialInterval = time.Millisecond
	c.backoff.MaxInterval = 5 * time.Millisecond
	return c
}

func TestCurrentParsesPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q", got)
		}
		w.Write([]byte(`{
			"weather": [{"main": "Clear", "description": "clear sky"}],
			"main": {"temp": 293.15, "humidity": 40},
			"wind": {"speed": 3.6, "deg": 250},
			"sys": {"sunrise": 1700000000, "sunset": 1700040000},
			"timezone": 3600,
			"name": "Paris"
		}`))
	}))

	cur, err := c.Current(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(cur.Weather) != 1 || cur.Weather[0].Main != "Clear" {
		t.Fatalf("weather = %+v", cur.Weather)
	}
	if cur.Main.Temp != 293.15 || cur.Main.Humidity != 40 {
		t.Fatalf("main = %+v", cur.Main)
	}
	if cur.Wind.Speed != 3.6 || cur.Wind.Deg != 250 {
		t.Fatalf("wind = %+v", cur.Wind)
	}
	if cur.Timezone != 3600 || cur.Sys.Sunrise != 1700000000 {
		t.Fatalf("timezone/sys = %d %+v", cur.Timezone, cur.Sys)
	}
}

func TestNon200IsStatusError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))

	_, err := c.Current(context.Background(), "Zzznotreal")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("err = %v, want StatusError 404", err)
	}
}

func TestGeocodeEmptyListIsNotAnError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/direct" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[]`))
	}))

	res, err := c.Geocode(context.Background(), "Zzznotreal")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected empty result list, got %+v", res)
	}
}

func TestRetriesTransientServerError(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"name":"Calgary","lat":51.05,"lon":-114.07,"country":"CA"}]`))
	}))

	res, err := c.Geocode(context.Background(), "Calgary")
	if err != nil {
		t.Fatalf("Geocode after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if len(res) != 1 || res[0].Lat != 51.05 {
		t.Fatalf("result = %+v", res)
	}
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))

	_, err := c.Current(context.Background(), "Paris")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (4xx must not be retried)", calls)
	}
}

func TestDailyForecastQuery(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast/daily" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("cnt"); got != "16" {
			t.Errorf("cnt = %q", got)
		}
		w.Write([]byte(`{"list":[{"dt":1700000000,"temp":{"day":280.5,"min":275.0,"max":282.0},"weather":[{"description":"light rain"}]}]}`))
	}))

	f, err := c.DailyForecast(context.Background(), 51.05, -114.07, 16)
	if err != nil {
		t.Fatalf("DailyForecast: %v", err)
	}
	if len(f.List) != 1 || f.List[0].Temp.Day != 280.5 {
		t.Fatalf("list = %+v", f.List)
	}
}

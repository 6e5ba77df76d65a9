package notifier

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"go.uber.org/zap"

	"github.com/LRGuess/weatherbot/internal/domain"
	"github.com/LRGuess/weatherbot/internal/format"
	"github.com/LRGuess/weatherbot/internal/store"
	"github.com/LRGuess/weatherbot/internal/weather"
)

type stubWeather struct {
	calls int
	err   error
}

func (s *stubWeather) Current(context.Context, string) (*weather.Current, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &weather.Current{
		Condition:   "Clear",
		Description: "clear sky",
		TempK:       293.15,
	}, nil
}

type recordingSender struct {
	sent []string // user IDs in delivery order
	err  error
}

func (r *recordingSender) SendDirect(userID string, _ format.Reply) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, userID)
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.Open(filepath.Join(t.TempDir(), "user_data.json"), zap.NewNop())
}

func scheduleUser(t *testing.T, s *store.Store, userID string, p domain.Preference) {
	t.Helper()
	if err := s.Set(userID, func(dst *domain.Preference) { *dst = p }); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestTickDeliversAtScheduledLocalMinute(t *testing.T) {
	prefs := newTestStore(t)
	// Etc/GMT+4 is UTC-4, so 09:00 local is 13:00 UTC.
	scheduleUser(t, prefs, "42", domain.Preference{
		Location:        "Paris",
		DailyUpdateTime: "09:00",
		Timezone:        "Etc/GMT+4",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 13, 0, 10, 0, time.UTC))
	w := &stubWeather{}
	sender := &recordingSender{}
	n := New(prefs, w, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())

	if len(sender.sent) != 1 || sender.sent[0] != "42" {
		t.Fatalf("sent = %v, want one delivery to user 42", sender.sent)
	}
}

func TestTickDedupesWithinMinute(t *testing.T) {
	prefs := newTestStore(t)
	scheduleUser(t, prefs, "42", domain.Preference{
		Location:        "Paris",
		DailyUpdateTime: "09:00",
		Timezone:        "Etc/GMT+4",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 13, 0, 10, 0, time.UTC))
	sender := &recordingSender{}
	n := New(prefs, &stubWeather{}, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())
	clk.Increment(45 * time.Second) // still within 13:00
	n.tick(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %v, want exactly one delivery within the minute", sender.sent)
	}
}

func TestTickClearsDedupeOnMinuteAdvance(t *testing.T) {
	prefs := newTestStore(t)
	scheduleUser(t, prefs, "42", domain.Preference{
		Location:        "Paris",
		DailyUpdateTime: "09:00",
		Timezone:        "Etc/GMT+4",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 13, 0, 50, 0, time.UTC))
	sender := &recordingSender{}
	n := New(prefs, &stubWeather{}, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())
	if len(n.sent) != 1 {
		t.Fatalf("sent set = %v, want user recorded", n.sent)
	}

	clk.Increment(45 * time.Second) // 13:01:35
	n.tick(context.Background())

	if len(n.sent) != 0 {
		t.Fatalf("sent set = %v, want cleared after minute advance", n.sent)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent = %v, schedule no longer matches at 13:01", sender.sent)
	}
}

func TestTickIgnoresIncompleteSchedule(t *testing.T) {
	prefs := newTestStore(t)
	// Time set but no timezone: never fires, whatever the clock says.
	scheduleUser(t, prefs, "42", domain.Preference{
		Location:        "Paris",
		DailyUpdateTime: "09:00",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 9, 0, 10, 0, time.UTC))
	sender := &recordingSender{}
	n := New(prefs, &stubWeather{}, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())

	if len(sender.sent) != 0 {
		t.Fatalf("sent = %v, incomplete schedule must not fire", sender.sent)
	}
}

func TestTickSkipsUserWithoutLocation(t *testing.T) {
	prefs := newTestStore(t)
	scheduleUser(t, prefs, "42", domain.Preference{
		DailyUpdateTime: "09:00",
		Timezone:        "Etc/GMT+4",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 13, 0, 10, 0, time.UTC))
	w := &stubWeather{}
	sender := &recordingSender{}
	n := New(prefs, w, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())

	if w.calls != 0 || len(sender.sent) != 0 {
		t.Fatalf("calls=%d sent=%v, user without location must be skipped", w.calls, sender.sent)
	}
}

func TestTickRetriesFailedDeliveryWithinMinute(t *testing.T) {
	prefs := newTestStore(t)
	scheduleUser(t, prefs, "42", domain.Preference{
		Location:        "Paris",
		DailyUpdateTime: "09:00",
		Timezone:        "Etc/GMT+4",
	})

	clk := fakeclock.NewFakeClock(time.Date(2026, 6, 1, 13, 0, 5, 0, time.UTC))
	w := &stubWeather{err: errors.New("upstream down")}
	sender := &recordingSender{}
	n := New(prefs, w, sender, clk, zap.NewNop(), 45*time.Second)

	n.tick(context.Background())
	if len(n.sent) != 0 {
		t.Fatalf("sent set = %v, failed delivery must not be marked sent", n.sent)
	}

	// Provider recovers; a later tick in the same minute retries.
	w.err = nil
	clk.Increment(45 * time.Second)
	n.tick(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %v, want retry to deliver", sender.sent)
	}
	if w.calls != 2 {
		t.Fatalf("calls = %d, want fetch attempted on both ticks", w.calls)
	}
}

package notifier

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"go.uber.org/zap"

	"github.com/LRGuess/weatherbot/internal/domain"
	"github.com/LRGuess/weatherbot/internal/format"
	"github.com/LRGuess/weatherbot/internal/store"
	"github.com/LRGuess/weatherbot/internal/weather"
)

// Sender is the minimal interface the notifier needs to deliver a daily
// update. telegram.Router implements it (method: SendDirect).
type Sender interface {
	SendDirect(userID string, rep format.Reply) error
}

// CurrentWeather is the slice of the weather service the notifier uses.
type CurrentWeather interface {
	Current(ctx context.Context, location string) (*weather.Current, error)
}

// Notifier periodically scans the preference store and delivers daily
// weather updates. The tick interval is shorter than a minute, so every
// wall-clock minute is observed at least once; a per-minute dedupe set
// keeps a user from receiving the same update twice within one minute.
type Notifier struct {
	prefs    *store.Store
	weather  CurrentWeather
	sender   Sender
	clock    clock.Clock
	log      *zap.Logger
	interval time.Duration

	sent       map[string]struct{}
	lastMinute time.Time
}

func New(prefs *store.Store, w CurrentWeather, sender Sender, clk clock.Clock, log *zap.Logger, interval time.Duration) *Notifier {
	return &Notifier{
		prefs:    prefs,
		weather:  w,
		sender:   sender,
		clock:    clk,
		log:      log,
		interval: interval,
		sent:     make(map[string]struct{}),
	}
}

// Run starts the loop until ctx is canceled.
func (n *Notifier) Run(ctx context.Context) {
	ticker := n.clock.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.log.Info("notifier stopping")
			return
		case <-ticker.C():
			n.tick(ctx)
		}
	}
}

// tick performs one delivery cycle: reset the dedupe set when the minute
// advanced, then deliver to every user whose scheduled local time falls
// in the current minute.
func (n *Notifier) tick(ctx context.Context) {
	now := n.clock.Now().UTC()

	minute := now.Truncate(time.Minute)
	if !minute.Equal(n.lastMinute) {
		n.sent = make(map[string]struct{})
		n.lastMinute = minute
	}

	for userID, pref := range n.prefs.All() {
		if _, done := n.sent[userID]; done {
			continue
		}
		if !n.dueNow(userID, pref, now) {
			continue
		}
		if pref.Location == "" {
			n.log.Warn("daily update scheduled but no location saved", zap.String("user_id", userID))
			continue
		}
		if n.deliver(ctx, userID, pref) {
			n.sent[userID] = struct{}{}
		}
	}
}

// dueNow reports whether the user's scheduled wall-clock time, read in
// their own timezone, lands in the current UTC minute.
func (n *Notifier) dueNow(userID string, pref domain.Preference, now time.Time) bool {
	hour, minute, tz, ok := pref.Schedule()
	if !ok {
		return false
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		n.log.Warn("stored timezone no longer loads",
			zap.String("user_id", userID), zap.String("tz", tz))
		return false
	}

	local := now.In(loc)
	due := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc).UTC()
	return due.Hour() == now.Hour() && due.Minute() == now.Minute()
}

// deliver fetches, renders and sends one update. It reports success;
// a failed delivery is not marked sent, so the next tick inside the
// minute retries it.
func (n *Notifier) deliver(ctx context.Context, userID string, pref domain.Preference) bool {
	cur, err := n.weather.Current(ctx, pref.Location)
	if err != nil {
		n.log.Error("daily update fetch failed",
			zap.String("user_id", userID),
			zap.String("location", pref.Location),
			zap.Error(err))
		return false
	}

	rep := format.DailyUpdate(pref.Location, cur, pref.EffectiveUnit())
	if err := n.sender.SendDirect(userID, rep); err != nil {
		n.log.Error("daily update send failed",
			zap.String("user_id", userID), zap.Error(err))
		return false
	}

	n.log.Info("daily update delivered",
		zap.String("user_id", userID), zap.String("location", pref.Location))
	return true
}

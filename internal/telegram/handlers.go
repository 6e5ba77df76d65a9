package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/LRGuess/weatherbot/internal/domain"
	"github.com/LRGuess/weatherbot/internal/format"
	"github.com/LRGuess/weatherbot/internal/store"
	"github.com/LRGuess/weatherbot/internal/weather"
)

// resolveLocation picks the location a metric command operates on: an
// explicit argument wins, otherwise the saved preference.
func resolveLocation(args string, pref domain.Preference) (string, error) {
	if loc := strings.TrimSpace(args); loc != "" {
		return loc, nil
	}
	if pref.Location != "" {
		return pref.Location, nil
	}
	return "", weather.ErrMissingLocation
}

// parseAirQualityArgs splits an optional trailing "details" flag off the
// location argument.
func parseAirQualityArgs(args string) (location string, details bool) {
	fields := strings.Fields(args)
	if n := len(fields); n > 0 && strings.EqualFold(fields[n-1], "details") {
		details = true
		fields = fields[:n-1]
	}
	return strings.Join(fields, " "), details
}

// metric runs the shared fetch-and-reply flow for every read-only
// weather command. Each command differs only in its fetch closure, its
// provider-failure error code and the noun the failure message names.
func (r *Router) metric(ctx context.Context, chatID int64, userID, args string, code int, noun string,
	fetch func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error)) {

	pref := r.prefs.Get(userID)
	f := pref.EffectiveFormat()

	loc, err := resolveLocation(args, pref)
	if err != nil {
		r.reply(chatID, format.Error(f, 201, "No location set. Save one with /setlocation or pass it with the command."))
		return
	}

	rep, err := fetch(ctx, loc, pref)
	switch {
	case err == nil:
		r.reply(chatID, rep)
	case errors.Is(err, weather.ErrLocationNotFound):
		r.reply(chatID, format.Error(f, 202, fmt.Sprintf("Could not find the location %q.", loc)))
	default:
		r.log.Error("fetch failed",
			zap.String("what", noun),
			zap.String("location", loc),
			zap.Error(err))
		r.reply(chatID, format.Error(f, code, fmt.Sprintf("Could not fetch %s for %s. Please try again later.", noun, loc)))
	}
}

// --- Weather commands ---

func (r *Router) handleWeather(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 101, "the weather",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			cur, err := r.weather.Current(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.Current(pref.EffectiveFormat(), loc, cur, pref.EffectiveUnit()), nil
		})
}

func (r *Router) handleForecast(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 102, "the weather forecast",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			slots, err := r.weather.Forecast(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.Forecast(pref.EffectiveFormat(), loc, slots, pref.EffectiveUnit()), nil
		})
}

func (r *Router) handleForecast16(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 103, "the 16-day weather forecast",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			days, err := r.weather.DailyForecast(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.DailyForecast(pref.EffectiveFormat(), loc, days, pref.EffectiveUnit()), nil
		})
}

func (r *Router) handleAirQuality(ctx context.Context, chatID int64, userID, args string) {
	loc, details := parseAirQualityArgs(args)
	r.metric(ctx, chatID, userID, loc, 104, "the air quality",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			aq, err := r.weather.AirQuality(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.AirQuality(pref.EffectiveFormat(), loc, aq, details), nil
		})
}

func (r *Router) handleWind(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 105, "the wind information",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			cur, err := r.weather.Current(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.Wind(pref.EffectiveFormat(), loc, cur), nil
		})
}

func (r *Router) handleHumidity(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 106, "the humidity information",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			cur, err := r.weather.Current(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.Humidity(pref.EffectiveFormat(), loc, cur), nil
		})
}

func (r *Router) handleSunTimes(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 107, "the sunrise and sunset times",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			cur, err := r.weather.Current(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.SunTimes(pref.EffectiveFormat(), loc, cur), nil
		})
}

func (r *Router) handleAlerts(ctx context.Context, chatID int64, userID, args string) {
	r.metric(ctx, chatID, userID, args, 108, "the weather alerts",
		func(ctx context.Context, loc string, pref domain.Preference) (format.Reply, error) {
			alerts, err := r.weather.Alerts(ctx, loc)
			if err != nil {
				return format.Reply{}, err
			}
			return format.Alerts(pref.EffectiveFormat(), loc, alerts), nil
		})
}

// --- Preference commands ---

func (r *Router) handleSetLocation(chatID int64, userID, args string) {
	pref := r.prefs.Get(userID)
	f := pref.EffectiveFormat()

	loc := strings.TrimSpace(args)
	if loc == "" {
		r.sendText(chatID, "Usage: /setlocation <location>, e.g. /setlocation Calgary")
		return
	}

	if err := r.prefs.Set(userID, func(p *domain.Preference) { p.Location = loc }); err != nil {
		r.log.Error("set location failed", zap.Error(err))
		r.reply(chatID, format.Error(f, 302, "Could not save your location. Please try again later."))
		return
	}
	r.reply(chatID, format.Message(f, "Location saved", fmt.Sprintf("Your location is now set to %s.", loc)))
}

func (r *Router) handleSetUnit(chatID int64, userID, args string) {
	pref := r.prefs.Get(userID)
	f := pref.EffectiveFormat()

	unit, label, err := domain.ParseUnit(args)
	if err != nil {
		r.reply(chatID, format.Error(f, 205, "Invalid unit. Use C or F."))
		return
	}

	if err := r.prefs.Set(userID, func(p *domain.Preference) { p.Unit = unit }); err != nil {
		r.log.Error("set unit failed", zap.Error(err))
		r.reply(chatID, format.Error(f, 302, "Could not save your unit. Please try again later."))
		return
	}
	r.reply(chatID, format.Message(f, "Unit saved", fmt.Sprintf("Your preferred unit is now set to %s.", label)))
}

func (r *Router) handleSetFormat(chatID int64, userID, args string) {
	pref := r.prefs.Get(userID)

	newFormat, err := domain.ParseFormat(args)
	if err != nil {
		r.reply(chatID, format.Error(pref.EffectiveFormat(), 206, "Invalid format. Use embed or plain."))
		return
	}

	if err := r.prefs.Set(userID, func(p *domain.Preference) { p.Format = newFormat }); err != nil {
		r.log.Error("set format failed", zap.Error(err))
		r.reply(chatID, format.Error(pref.EffectiveFormat(), 302, "Could not save your format. Please try again later."))
		return
	}
	// Confirm in the format just chosen, so the user sees it in effect.
	r.reply(chatID, format.Message(newFormat, "Format saved", fmt.Sprintf("Your reply format is now set to %s.", newFormat)))
}

func (r *Router) handleDailyUpdate(chatID int64, userID, args string) {
	pref := r.prefs.Get(userID)
	f := pref.EffectiveFormat()

	fields := strings.Fields(args)
	if len(fields) != 3 {
		r.sendText(chatID, "Usage: /dailyupdate <H:MM> <AM|PM> <timezone>, e.g. /dailyupdate 8:00 AM America/Edmonton")
		return
	}

	hhmm, err := domain.ParseClock12(fields[0], fields[1])
	if err != nil {
		r.reply(chatID, format.Error(f, 203, "Invalid time. Use a 12-hour time like 8:00 followed by AM or PM."))
		return
	}

	tz, err := domain.ValidateTZ(fields[2])
	if err != nil {
		r.reply(chatID, format.Error(f, 204, "Invalid timezone. Use an IANA name like America/Edmonton."))
		return
	}

	err = r.prefs.Set(userID, func(p *domain.Preference) {
		p.DailyUpdateTime = hhmm
		p.Timezone = tz
	})
	if err != nil {
		r.log.Error("set daily update failed", zap.Error(err))
		r.reply(chatID, format.Error(f, 302, "Could not save your daily update. Please try again later."))
		return
	}

	body := fmt.Sprintf("Daily weather updates are scheduled for %s (%s).", hhmm, tz)
	if pref.Location == "" {
		body += " You have no location saved yet; set one with /setlocation or the update cannot be delivered."
	}
	r.reply(chatID, format.Message(f, "Daily update scheduled", body))
}

func (r *Router) handleDisableUpdates(chatID int64, userID string) {
	pref := r.prefs.Get(userID)
	f := pref.EffectiveFormat()

	// A half-set schedule (hand-edited snapshot) still gets cleared;
	// only a record with neither field is a no-op.
	if pref.DailyUpdateTime == "" && pref.Timezone == "" {
		r.reply(chatID, format.Error(f, 301, "You have no daily update scheduled."))
		return
	}

	err := r.prefs.Set(userID, func(p *domain.Preference) {
		p.DailyUpdateTime = ""
		p.Timezone = ""
	})
	if err != nil {
		r.log.Error("disable updates failed", zap.Error(err))
		r.reply(chatID, format.Error(f, 302, "Could not update your settings. Please try again later."))
		return
	}
	r.reply(chatID, format.Message(f, "Daily update disabled", "Daily weather updates are now disabled."))
}

// --- Admin commands ---

// handleUpdateBot re-reads the preference snapshot from disk, picking up
// out-of-band edits without a restart.
func (r *Router) handleUpdateBot(chatID, fromID int64) {
	if r.adminID == 0 || fromID != r.adminID {
		r.sendText(chatID, "Error: 403 - You are not authorized to use this command.")
		return
	}

	err := r.prefs.Reload()
	switch {
	case err == nil:
		r.sendText(chatID, "User data reloaded from disk.")
	case errors.Is(err, store.ErrSnapshotMissing):
		r.sendText(chatID, "Error: 302 - No user data file found on disk; kept the current data.")
	case errors.Is(err, store.ErrSnapshotCorrupt):
		r.log.Warn("snapshot reload failed", zap.Error(err))
		r.sendText(chatID, "Error: 303 - User data file is corrupt; starting from an empty data set.")
	default:
		r.log.Warn("snapshot reload failed", zap.Error(err))
		r.sendText(chatID, "Error: 302 - Could not read the user data file; kept the current data.")
	}
}

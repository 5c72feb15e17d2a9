package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hidaya-tech/mizan/internal/model"
)

// LockGracePeriod is how long after a window's end submissions stay open.
// Locked and Past are kept as separate fields so a nonzero grace period is
// a config change, not a schema change.
const LockGracePeriod = 0 * time.Minute

// Window is one derived attendance window on one day. Never persisted;
// recomputed against the caller's reference instant on every evaluation.
type Window struct {
	Session Session
	Start   time.Time
	End     time.Time
	Active  bool
	Past    bool
	Locked  bool
}

// parseClock anchors an "HH:MM" wall-clock string to a "YYYY-MM-DD" date
// in the Faisalabad zone.
func parseClock(date, clock string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", date, err)
	}
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("bad clock %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock %q: %w", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock %q: %w", clock, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("clock %q out of range", clock)
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

func makeWindow(s Session, start, end, now time.Time) Window {
	past := now.After(end)
	return Window{
		Session: s,
		Start:   start,
		End:     end,
		Active:  !now.Before(start) && !now.After(end),
		Past:    past,
		Locked:  now.After(end.Add(LockGracePeriod)),
	}
}

// Windows derives the three session windows of one timing row, classified
// against now:
//
//	fajr      [fajr_start, sunrise]
//	zoharain  [dhuhr_start, maghrib_start]    (Dhuhr + Asr combined)
//	magribain [maghrib_start, isha_end]       (Maghrib + Isha combined)
//
// An isha_end at or before maghrib_start denotes a past-midnight end and is
// pushed forward exactly 24h so the window spans into the next day. A
// malformed row returns an error; callers treat the day as unavailable
// (every session locked) rather than crashing.
func Windows(timing model.PrayerTiming, now time.Time) (map[Session]Window, error) {
	fajrStart, err := parseClock(timing.Date, timing.FajrStart)
	if err != nil {
		return nil, err
	}
	fajrEnd, err := parseClock(timing.Date, timing.Sunrise)
	if err != nil {
		return nil, err
	}
	zoharainStart, err := parseClock(timing.Date, timing.DhuhrStart)
	if err != nil {
		return nil, err
	}
	magribainStart, err := parseClock(timing.Date, timing.MaghribStart)
	if err != nil {
		return nil, err
	}
	magribainEnd, err := parseClock(timing.Date, timing.IshaEnd)
	if err != nil {
		return nil, err
	}
	if !magribainEnd.After(magribainStart) {
		magribainEnd = magribainEnd.Add(24 * time.Hour)
	}

	return map[Session]Window{
		SessionFajr:      makeWindow(SessionFajr, fajrStart, fajrEnd, now),
		SessionZoharain:  makeWindow(SessionZoharain, zoharainStart, magribainStart, now),
		SessionMagribain: makeWindow(SessionMagribain, magribainStart, magribainEnd, now),
	}, nil
}

package prayer

import "time"

// TrackingConfig carries the disqualification tunables. Both values have
// changed between revisions of the program, so call sites take them as
// parameters instead of reading package literals.
type TrackingConfig struct {
	// WindowDays is the inclusive length of the sliding window, in
	// calendar days.
	WindowDays int
	// MissThreshold disqualifies once this many misses land inside any
	// single window.
	MissThreshold int
}

// DefaultTrackingConfig is the current rule: 5 misses within any rolling
// 7-day span.
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{WindowDays: 7, MissThreshold: 5}
}

// Disqualified slides a WindowDays-day window anchored at every distinct
// date in allDates and reports whether any window contains at least
// MissThreshold entries of missedDates. missedDates holds one entry per
// missed session, so dates repeat; the scan short-circuits on the first
// qualifying window.
//
// Tracking starts at the user's first login: callers restrict missedDates
// with MissedDates(..., since) before handing it in, and a user with no
// recorded login is never disqualified.
func Disqualified(missedDates, allDates []string, cfg TrackingConfig) bool {
	if cfg.MissThreshold <= 0 || len(missedDates) < cfg.MissThreshold {
		return false
	}
	for _, anchor := range allDates {
		start, err := time.ParseInLocation(DateLayout, anchor, Location)
		if err != nil {
			continue
		}
		end := DateKey(start.AddDate(0, 0, cfg.WindowDays-1))

		count := 0
		for _, d := range missedDates {
			if d >= anchor && d <= end {
				count++
				if count >= cfg.MissThreshold {
					return true
				}
			}
		}
	}
	return false
}

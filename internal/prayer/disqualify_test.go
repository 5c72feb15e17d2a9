package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dateRange(t *testing.T, start string, days int) []string {
	t.Helper()
	first := at(t, start, "00:00")
	out := make([]string, days)
	for i := range out {
		out[i] = DateKey(first.AddDate(0, 0, i))
	}
	return out
}

func TestDisqualifiedFiveMissesInSevenDays(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 20)
	missed := []string{"2026-02-06", "2026-02-07", "2026-02-08", "2026-02-10", "2026-02-12"}

	assert.True(t, Disqualified(missed, allDates, DefaultTrackingConfig()))
}

func TestNotDisqualifiedWhenMissesSpreadOut(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 25)
	// Five misses across 15 days; no 7-day window holds all five.
	missed := []string{"2026-02-05", "2026-02-08", "2026-02-12", "2026-02-16", "2026-02-19"}

	assert.False(t, Disqualified(missed, allDates, DefaultTrackingConfig()))
}

func TestDisqualifiedRepeatedDatesCount(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 10)
	// Three sessions missed on one day plus two the next: five in one window.
	missed := []string{"2026-02-06", "2026-02-06", "2026-02-06", "2026-02-07", "2026-02-07"}

	assert.True(t, Disqualified(missed, allDates, DefaultTrackingConfig()))
}

func TestDisqualifiedWindowIsInclusive(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 15)
	// Anchor 2026-02-05 spans through 2026-02-11 inclusive.
	missed := []string{"2026-02-05", "2026-02-08", "2026-02-09", "2026-02-10", "2026-02-11"}
	assert.True(t, Disqualified(missed, allDates, DefaultTrackingConfig()))

	// Push one miss a day past the window edge.
	missed[4] = "2026-02-12"
	missed[0] = "2026-02-06"
	// 02-06..02-12 is itself a 7-day span anchored at 02-06, still true.
	assert.True(t, Disqualified(missed, allDates, DefaultTrackingConfig()))
}

func TestDisqualifiedRespectsThresholdParameter(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 10)
	missed := []string{"2026-02-06", "2026-02-07", "2026-02-08"}

	cfg := TrackingConfig{WindowDays: 7, MissThreshold: 3}
	assert.True(t, Disqualified(missed, allDates, cfg))

	cfg.MissThreshold = 4
	assert.False(t, Disqualified(missed, allDates, cfg))
}

func TestDisqualifiedShortWindow(t *testing.T) {
	allDates := dateRange(t, "2026-02-05", 10)
	missed := []string{"2026-02-06", "2026-02-08"}

	cfg := TrackingConfig{WindowDays: 2, MissThreshold: 2}
	assert.False(t, Disqualified(missed, allDates, cfg))

	cfg.WindowDays = 3
	assert.True(t, Disqualified(missed, allDates, cfg))
}

func TestDisqualifiedEmptyInputs(t *testing.T) {
	assert.False(t, Disqualified(nil, nil, DefaultTrackingConfig()))
	assert.False(t, Disqualified([]string{"2026-02-06"}, nil, DefaultTrackingConfig()))
}

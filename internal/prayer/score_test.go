package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentageClamped(t *testing.T) {
	start := time.Date(2026, 2, 20, 5, 15, 0, 0, Location)
	end := start.Add(75 * time.Minute)

	assert.Equal(t, 0.0, Percentage(start.Add(-time.Hour), start, end))
	assert.Equal(t, 100.0, Percentage(end.Add(time.Hour), start, end))
	assert.InDelta(t, 60.0, Percentage(start.Add(45*time.Minute), start, end), 0.01)
}

func TestPercentageZeroLengthWindow(t *testing.T) {
	start := time.Date(2026, 2, 20, 5, 15, 0, 0, Location)
	assert.Equal(t, 100.0, Percentage(start, start, start))
	assert.Equal(t, 100.0, Percentage(start, start, start.Add(-time.Minute)))
}

func TestTierBoundariesInclusive(t *testing.T) {
	assert.Equal(t, TierEarly, TierFor(0))
	assert.Equal(t, TierEarly, TierFor(33.33))
	assert.Equal(t, TierMiddle, TierFor(33.34))
	assert.Equal(t, TierMiddle, TierFor(66.66))
	assert.Equal(t, TierLate, TierFor(66.67))
	assert.Equal(t, TierLate, TierFor(100))
}

func TestNamazPoints(t *testing.T) {
	assert.Equal(t, 3.0, NamazPoints(TierEarly))
	assert.Equal(t, 2.0, NamazPoints(TierMiddle))
	assert.Equal(t, 1.0, NamazPoints(TierLate))
}

func TestFeedbackPerTier(t *testing.T) {
	for _, tier := range []Tier{TierEarly, TierMiddle, TierLate} {
		fb := FeedbackFor(tier)
		assert.NotEmpty(t, fb.Title)
		assert.NotEmpty(t, fb.TitleUrdu)
		assert.NotEmpty(t, fb.Message)
	}
	assert.Equal(t, "Awal Waqt!", FeedbackFor(TierEarly).Title)
}

func TestSessionNameFallback(t *testing.T) {
	assert.Equal(t, "Fajr", SessionFajr.Name())
	assert.Equal(t, "test", Session("test").Name())
	assert.False(t, Session("test").Known())
	assert.True(t, SessionMagribain.Known())
}

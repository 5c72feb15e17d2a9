package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyUsesFixedOffset(t *testing.T) {
	// 20:30 UTC is 01:30 the next day in Faisalabad.
	utc := time.Date(2026, 2, 20, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-21", DateKey(utc))

	utc = time.Date(2026, 2, 20, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-20", DateKey(utc))
}

func TestLocationOffset(t *testing.T) {
	_, offset := time.Now().In(Location).Zone()
	assert.Equal(t, 5*60*60, offset)
}

func TestNowIsInLocation(t *testing.T) {
	zone, _ := Now().Zone()
	assert.Equal(t, "Asia/Karachi", zone)
}

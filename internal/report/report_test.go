package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidaya-tech/mizan/internal/model"
)

func strPtr(s string) *string   { return &s }
func pctPtr(v float64) *float64 { return &v }

func sampleUsers() []model.User {
	return []model.User{
		{ID: 1, DisplayName: strPtr("Ahmed"), FatherName: strPtr("Bashir")},
		{ID: 2, DisplayName: strPtr("Bilal")},
	}
}

func TestLeaderboardTotals(t *testing.T) {
	// 2 early namaz, 1 middle namaz, 3 dua marks, 1 qaza = 2*3 + 2 + 3 + 0.5 = 11.5
	attendance := []model.PrayerAttendance{
		{UserID: 1, Date: "2026-02-18", SessionType: "fajr", NamazMarked: true, DuaMarked: true, TimePercentage: pctPtr(10)},
		{UserID: 1, Date: "2026-02-18", SessionType: "zoharain", NamazMarked: true, DuaMarked: true, TimePercentage: pctPtr(33.33)},
		{UserID: 1, Date: "2026-02-18", SessionType: "magribain", NamazMarked: true, DuaMarked: true, TimePercentage: pctPtr(50)},
	}
	qaza := []model.QazaRecord{{UserID: 1, Date: "2026-02-17", SessionType: "fajr", Reason: "travel"}}

	rows, details := BuildLeaderboard(sampleUsers(), attendance, qaza)
	require.Len(t, rows, 2)
	assert.Empty(t, details)

	top := rows[0]
	assert.Equal(t, "Ahmed", top.DisplayName)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 2, top.EarlyCount)
	assert.Equal(t, 6.0, top.EarlyPts)
	assert.Equal(t, 1, top.MiddleCount)
	assert.Equal(t, 3, top.DuaCount)
	assert.Equal(t, 1, top.QazaCount)
	assert.Equal(t, 11.5, top.TotalPts)
}

func TestLeaderboardMissingPercentageDefaultsToMiddle(t *testing.T) {
	attendance := []model.PrayerAttendance{
		{UserID: 1, Date: "2026-02-18", SessionType: "fajr", NamazMarked: true},
	}
	rows, _ := BuildLeaderboard(sampleUsers(), attendance, nil)
	assert.Equal(t, 1, rows[0].MiddleCount)
	assert.Equal(t, 2.0, rows[0].TotalPts)
}

func TestLeaderboardTieBreakByName(t *testing.T) {
	rows, _ := BuildLeaderboard(sampleUsers(), nil, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ahmed", rows[0].DisplayName)
	assert.Equal(t, "Bilal", rows[1].DisplayName)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestLeaderboardDetailsAndBlankTexts(t *testing.T) {
	attendance := []model.PrayerAttendance{
		{UserID: 2, Date: "2026-02-18", SessionType: "fajr", ExtraZiker: strPtr("  Tasbih  "), GoodDeed: strPtr("   ")},
		{UserID: 2, Date: "2026-02-17", SessionType: "fajr", GoodDeed: strPtr("helped a neighbour")},
	}
	rows, details := BuildLeaderboard(sampleUsers(), attendance, nil)

	var bilal UserStats
	for _, r := range rows {
		if r.UserID == 2 {
			bilal = r
		}
	}
	assert.Equal(t, 1, bilal.DhikrCount)
	assert.Equal(t, 1, bilal.DeedCount)
	assert.Equal(t, 1.0, bilal.TotalPts)

	require.Len(t, details, 2)
	assert.Equal(t, "2026-02-17", details[0].Date, "details sorted by name then date")
	assert.Equal(t, "Tasbih", details[1].Text, "texts are trimmed")
}

func TestLeaderboardIgnoresUnknownUsers(t *testing.T) {
	attendance := []model.PrayerAttendance{
		{UserID: 99, Date: "2026-02-18", SessionType: "fajr", NamazMarked: true, TimePercentage: pctPtr(10)},
	}
	rows, _ := BuildLeaderboard(sampleUsers(), attendance, nil)
	for _, r := range rows {
		assert.Zero(t, r.TotalPts)
	}
}

func TestWriteCSVEscaping(t *testing.T) {
	users := []model.User{{ID: 1, DisplayName: strPtr(`Ahmed "AJ", Jr`), FatherName: strPtr("Bashir")}}
	attendance := []model.PrayerAttendance{
		{UserID: 1, Date: "2026-02-18", SessionType: "fajr", NamazMarked: true, TimePercentage: pctPtr(10),
			GoodDeed: strPtr("fed cats, twice")},
	}
	rows, details := BuildLeaderboard(users, attendance, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, details))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Rank,Student Name,Father Name,"))
	assert.Contains(t, out, `"Ahmed ""AJ"", Jr"`)
	assert.Contains(t, out, `"fed cats, twice"`)
	assert.Contains(t, out, "--- EXTRA DHIKR & GOOD DEEDS DETAIL ---")
	assert.Contains(t, out, "3.5") // 3 early + 0.5 good deed
}

func TestWriteCSVNoDetailSectionWhenEmpty(t *testing.T) {
	rows, details := BuildLeaderboard(sampleUsers(), nil, nil)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, details))
	assert.NotContains(t, buf.String(), "DETAIL")
}

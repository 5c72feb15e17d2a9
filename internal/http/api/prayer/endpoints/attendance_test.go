package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestUser registers a user in the store with a first login stamped at
// the given instant, and returns the stored row.
func newTestUser(t *testing.T, store *db.MemStore, email string, firstLogin time.Time) *model.User {
	t.Helper()
	name := "Test User"
	id, err := store.CreateUser(email, "x", "user", &name, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, store.MarkFirstLogin(id, firstLogin))
	user, err := store.GetUserByID(id)
	require.NoError(t, err)
	return user
}

// newPrayerRouter mounts the student prayer routes. A nil user mounts them
// without an authenticated identity.
func newPrayerRouter(store db.Store, user *model.User, cfg prayer.TrackingConfig) *gin.Engine {
	r := gin.New()
	g := r.Group("/")
	if user != nil {
		g.Use(func(c *gin.Context) {
			c.Set("currentUser", user)
			c.Next()
		})
	}
	RegisterTimingRoutes(g, store)
	RegisterSessionRoutes(g, store)
	RegisterAttendanceRoutes(g, store)
	RegisterTrackingRoutes(g, store, cfg)
	return r
}

// allDayTiming keeps fajr and zoharain open the whole day and does not
// open magribain until the last minute of it.
func allDayTiming(now time.Time) model.PrayerTiming {
	return model.PrayerTiming{
		Date:         prayer.DateKey(now),
		DayName:      now.Weekday().String(),
		FajrStart:    "00:00",
		Sunrise:      "23:59",
		DhuhrStart:   "00:00",
		AsrEnd:       "23:00",
		MaghribStart: "23:58",
		IshaEnd:      "23:59",
	}
}

// lockedMagribainTiming ends magribain right after midnight so the window
// is already locked.
func lockedMagribainTiming(now time.Time) model.PrayerTiming {
	timing := allDayTiming(now)
	timing.MaghribStart = "00:00"
	timing.IshaEnd = "00:01"
	return timing
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitAttendanceUnauthorized(t *testing.T) {
	store := db.NewMemStore()
	r := newPrayerRouter(store, nil, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "fajr", "namaz_marked": true})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitAttendanceRequiresNamaz(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "fajr", "namaz_marked": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "namaz is required")
}

func TestSubmitAttendanceNoTiming(t *testing.T) {
	store := db.NewMemStore()
	user := newTestUser(t, store, "student@example.com", prayer.Now())
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "fajr", "namaz_marked": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no timing available")
}

func TestSubmitAttendanceUnknownSession(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "asr", "namaz_marked": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown session type")
}

func TestSubmitAttendanceLockedWindow(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(lockedMagribainTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "magribain", "namaz_marked": true})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "window closed")
}

func TestSubmitAttendanceWindowNotOpen(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "magribain", "namaz_marked": true})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "window not open yet")
}

func TestSubmitAttendance(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{
		"session_type": "fajr",
		"namaz_marked": true,
		"dua_marked":   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp submitAttendanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fajr", resp.Record.SessionType)
	assert.Equal(t, model.StatusAda, resp.Record.Status)
	assert.True(t, resp.Record.NamazMarked)
	assert.True(t, resp.Record.DuaMarked)
	require.NotNil(t, resp.Record.TimePercentage)
	assert.GreaterOrEqual(t, *resp.Record.TimePercentage, 0.0)
	assert.LessOrEqual(t, *resp.Record.TimePercentage, 100.0)
	assert.NotEmpty(t, resp.Tier)
	assert.NotEmpty(t, resp.Feedback.Message)

	stored, err := store.GetAttendance(user.ID, prayer.DateKey(now), "fajr")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAda, stored.Status)
}

func TestSubmitAttendanceUpsertsInPlace(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "fajr", "namaz_marked": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/attendance", gin.H{
		"session_type": "fajr",
		"namaz_marked": true,
		"quran_marked": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	rows, err := store.ListAttendanceForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].QuranMarked)
}

func TestTodayAttendance(t *testing.T) {
	store := db.NewMemStore()
	now := prayer.Now()
	_, err := store.UpsertTiming(allDayTiming(now))
	require.NoError(t, err)
	user := newTestUser(t, store, "student@example.com", now)
	r := newPrayerRouter(store, user, prayer.DefaultTrackingConfig())

	w := doJSON(r, http.MethodGet, "/attendance/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []attendanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Empty(t, rows)

	doJSON(r, http.MethodPost, "/attendance", gin.H{"session_type": "fajr", "namaz_marked": true})

	w = doJSON(r, http.MethodGet, "/attendance/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "fajr", rows[0].SessionType)
}

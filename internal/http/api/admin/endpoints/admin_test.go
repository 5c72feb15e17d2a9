package endpoints

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
	"github.com/hidaya-tech/mizan/internal/report"
	"github.com/hidaya-tech/mizan/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAdminUser(t *testing.T, store *db.MemStore) *model.User {
	t.Helper()
	name := "Admin"
	id, err := store.CreateUser("admin@example.com", "x", "admin", &name, nil, nil, nil)
	require.NoError(t, err)
	user, err := store.GetUserByID(id)
	require.NoError(t, err)
	return user
}

func newAdminRouter(store db.Store, user *model.User, archive storage.Storage) *gin.Engine {
	r := gin.New()
	g := r.Group("/")
	g.Use(func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	})
	g.Use(middleware.AdminRequired())
	RegisterUserRoutes(g, store)
	RegisterTimingRoutes(g, store)
	RegisterStatsRoutes(g, store)
	RegisterReportRoutes(g, store, archive)
	return r
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

func TestAdminRoutesRejectRegularUser(t *testing.T) {
	store := db.NewMemStore()
	name := "Student"
	id, err := store.CreateUser("student@example.com", "x", "user", &name, nil, nil, nil)
	require.NoError(t, err)
	user, err := store.GetUserByID(id)
	require.NoError(t, err)
	r := newAdminRouter(store, user, storage.NewLocalStorage(t.TempDir()))

	w := doJSON(r, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateAndListUsers(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	r := newAdminRouter(store, admin, storage.NewLocalStorage(t.TempDir()))

	w := doJSON(r, http.MethodPost, "/users", gin.H{
		"email":        "ahmed@example.com",
		"password":     "password123",
		"display_name": "Ahmed",
		"father_name":  "Raza",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate email
	w = doJSON(r, http.MethodPost, "/users", gin.H{
		"email":        "ahmed@example.com",
		"password":     "password123",
		"display_name": "Ahmed",
		"father_name":  "Raza",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// father name is required on the admin surface
	w = doJSON(r, http.MethodPost, "/users", gin.H{
		"email":        "bilal@example.com",
		"password":     "password123",
		"display_name": "Bilal",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "ahmed@example.com", users[1].Email)
}

func TestDeleteUser(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	r := newAdminRouter(store, admin, storage.NewLocalStorage(t.TempDir()))

	name := "Ahmed"
	id, err := store.CreateUser("ahmed@example.com", "x", "user", &name, nil, nil, nil)
	require.NoError(t, err)

	// self-deletion is blocked
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", admin.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = store.GetUserByID(id)
	assert.Error(t, err)
}

func TestUpsertTimingValidation(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	r := newAdminRouter(store, admin, storage.NewLocalStorage(t.TempDir()))

	valid := gin.H{
		"date":          "2026-02-20",
		"day_name":      "Friday",
		"fajr_start":    "05:15",
		"sunrise":       "06:30",
		"dhuhr_start":   "12:30",
		"asr_end":       "16:45",
		"maghrib_start": "18:15",
		"isha_end":      "19:45",
	}

	w := doJSON(r, http.MethodPost, "/timings", valid)
	require.Equal(t, http.StatusOK, w.Code)

	bad := gin.H{}
	for k, v := range valid {
		bad[k] = v
	}
	bad["date"] = "20-02-2026"
	w = doJSON(r, http.MethodPost, "/timings", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	bad["date"] = "2026-02-21"
	bad["fajr_start"] = "25:99"
	w = doJSON(r, http.MethodPost, "/timings", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/timings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []model.PrayerTiming
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-02-20", rows[0].Date)
}

func TestDeleteTiming(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	r := newAdminRouter(store, admin, storage.NewLocalStorage(t.TempDir()))

	_, err := store.UpsertTiming(model.PrayerTiming{
		Date:         "2026-02-20",
		FajrStart:    "05:15",
		Sunrise:      "06:30",
		DhuhrStart:   "12:30",
		AsrEnd:       "16:45",
		MaghribStart: "18:15",
		IshaEnd:      "19:45",
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/timings/2026-02-20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = store.GetTimingByDate("2026-02-20")
	assert.Error(t, err)
}

func TestLeaderboardStats(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	r := newAdminRouter(store, admin, storage.NewLocalStorage(t.TempDir()))

	name := "Ahmed"
	id, err := store.CreateUser("ahmed@example.com", "x", "user", &name, nil, nil, nil)
	require.NoError(t, err)
	pct := 20.0
	_, err = store.UpsertAttendance(model.PrayerAttendance{
		UserID:         id,
		Date:           "2026-02-20",
		SessionType:    "fajr",
		NamazMarked:    true,
		DuaMarked:      true,
		TimePercentage: &pct,
		MarkedAt:       prayer.Now(),
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Leaderboard []report.UserStats `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Leaderboard)
	// early namaz plus dua
	assert.Equal(t, "Ahmed", resp.Leaderboard[0].DisplayName)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
	assert.Equal(t, prayer.PointsEarly+prayer.PointsDua, resp.Leaderboard[0].TotalPts)
}

func TestDownloadCSVArchivesCopy(t *testing.T) {
	store := db.NewMemStore()
	admin := newAdminUser(t, store)
	reportDir := t.TempDir()
	r := newAdminRouter(store, admin, storage.NewLocalStorage(reportDir))

	name := "Ahmed"
	id, err := store.CreateUser("ahmed@example.com", "x", "user", &name, nil, nil, nil)
	require.NoError(t, err)
	pct := 90.0
	_, err = store.UpsertAttendance(model.PrayerAttendance{
		UserID:         id,
		Date:           "2026-02-20",
		SessionType:    "fajr",
		NamazMarked:    true,
		TimePercentage: &pct,
		MarkedAt:       prayer.Now(),
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/reports/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Rank")
	assert.Contains(t, w.Body.String(), "Ahmed")

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	archived, err := os.ReadFile(filepath.Join(reportDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, w.Body.Bytes(), archived)
}

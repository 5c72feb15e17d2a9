package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

type submitAttendanceRequest struct {
	SessionType string  `json:"session_type" binding:"required"`
	NamazMarked bool    `json:"namaz_marked"`
	DuaMarked   bool    `json:"dua_marked"`
	QuranMarked bool    `json:"quran_marked"`
	ExtraZiker  *string `json:"extra_ziker"`
	GoodDeed    *string `json:"good_deed"`
}

type attendanceResponse struct {
	Date           string   `json:"date"`
	SessionType    string   `json:"session_type"`
	NamazMarked    bool     `json:"namaz_marked"`
	DuaMarked      bool     `json:"dua_marked"`
	QuranMarked    bool     `json:"quran_marked"`
	ExtraZiker     *string  `json:"extra_ziker"`
	GoodDeed       *string  `json:"good_deed"`
	TimePercentage *float64 `json:"time_percentage"`
	Status         string   `json:"status"`
	MarkedAt       string   `json:"marked_at"`
}

type submitAttendanceResponse struct {
	Record   attendanceResponse `json:"record"`
	Tier     string             `json:"tier"`
	Feedback prayer.Feedback    `json:"feedback"`
}

func toAttendanceResponse(a model.PrayerAttendance) attendanceResponse {
	return attendanceResponse{
		Date:           a.Date,
		SessionType:    a.SessionType,
		NamazMarked:    a.NamazMarked,
		DuaMarked:      a.DuaMarked,
		QuranMarked:    a.QuranMarked,
		ExtraZiker:     a.ExtraZiker,
		GoodDeed:       a.GoodDeed,
		TimePercentage: a.TimePercentage,
		Status:         a.Status,
		MarkedAt:       a.MarkedAt.Format(time.RFC3339),
	}
}

type AttendanceController struct {
	store db.Store
}

func NewAttendanceController(store db.Store) *AttendanceController {
	return &AttendanceController{store: store}
}

func RegisterAttendanceRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewAttendanceController(store)

	r.POST("/attendance", ctl.submitAttendance)
	r.GET("/attendance/today", ctl.todayAttendance)
	r.GET("/attendance", ctl.listAttendance)
}

// POST /api/prayer/attendance
//
// Rejections are ordered so the client can show a precise reason: missing
// namaz checkbox (400), no timing data (404), window not open or already
// locked (409). The elapsed percentage is computed server-side at this
// instant and frozen on the stored row.
func (a *AttendanceController) submitAttendance(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req submitAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.NamazMarked {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "namaz is required"})
		return
	}

	now := prayer.Now()
	today := prayer.DateKey(now)

	timing, err := a.store.GetTimingByDate(today)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "no timing available"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load timing"})
		return
	}

	windows, err := prayer.Windows(*timing, now)
	if err != nil {
		// bad reference row: fail closed, the whole day is unavailable
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no timing available"})
		return
	}
	window, ok := windows[prayer.Session(req.SessionType)]
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown session type"})
		return
	}
	if window.Locked {
		ctx.JSON(http.StatusConflict, gin.H{"error": "window closed"})
		return
	}
	if !window.Active {
		ctx.JSON(http.StatusConflict, gin.H{"error": "window not open yet"})
		return
	}

	pct := prayer.Percentage(now, window.Start, window.End)
	record, err := a.store.UpsertAttendance(model.PrayerAttendance{
		UserID:         user.ID,
		Date:           today,
		SessionType:    req.SessionType,
		NamazMarked:    req.NamazMarked,
		DuaMarked:      req.DuaMarked,
		QuranMarked:    req.QuranMarked,
		ExtraZiker:     req.ExtraZiker,
		GoodDeed:       req.GoodDeed,
		TimePercentage: &pct,
		MarkedAt:       now,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not save attendance"})
		return
	}

	tier := prayer.TierFor(pct)
	ctx.JSON(http.StatusOK, submitAttendanceResponse{
		Record:   toAttendanceResponse(record),
		Tier:     string(tier),
		Feedback: prayer.FeedbackFor(tier),
	})
}

// GET /api/prayer/attendance/today
func (a *AttendanceController) todayAttendance(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rows, err := a.store.ListAttendanceForDate(user.ID, prayer.TodayKey())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list attendance"})
		return
	}
	out := make([]attendanceResponse, len(rows))
	for i, r := range rows {
		out[i] = toAttendanceResponse(r)
	}
	ctx.JSON(http.StatusOK, out)
}

// GET /api/prayer/attendance
func (a *AttendanceController) listAttendance(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rows, err := a.store.ListAttendanceForUser(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list attendance"})
		return
	}
	out := make([]attendanceResponse, len(rows))
	for i, r := range rows {
		out[i] = toAttendanceResponse(r)
	}
	ctx.JSON(http.StatusOK, out)
}

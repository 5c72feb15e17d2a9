package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

// upsertTimingRequest is the external data-entry contract: one day's clock
// marks as local "HH:MM" strings.
type upsertTimingRequest struct {
	Date         string `json:"date" binding:"required"`
	DayName      string `json:"day_name"`
	FajrStart    string `json:"fajr_start" binding:"required"`
	Sunrise      string `json:"sunrise" binding:"required"`
	DhuhrStart   string `json:"dhuhr_start" binding:"required"`
	AsrEnd       string `json:"asr_end"`
	MaghribStart string `json:"maghrib_start" binding:"required"`
	IshaEnd      string `json:"isha_end" binding:"required"`
}

type TimingAdminController struct {
	store db.Store
}

func NewTimingAdminController(store db.Store) *TimingAdminController {
	return &TimingAdminController{store: store}
}

func RegisterTimingRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewTimingAdminController(store)

	r.GET("/timings", ctl.listTimings)
	r.POST("/timings", ctl.upsertTiming)
	r.DELETE("/timings/:date", ctl.deleteTiming)
}

func (t *TimingAdminController) listTimings(ctx *gin.Context) {
	all, err := t.store.ListTimings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list timings"})
		return
	}
	ctx.JSON(http.StatusOK, all)
}

func (t *TimingAdminController) upsertTiming(ctx *gin.Context) {
	var req upsertTimingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.ParseInLocation(prayer.DateLayout, req.Date, prayer.Location); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	row := model.PrayerTiming{
		Date:         req.Date,
		DayName:      req.DayName,
		FajrStart:    req.FajrStart,
		Sunrise:      req.Sunrise,
		DhuhrStart:   req.DhuhrStart,
		AsrEnd:       req.AsrEnd,
		MaghribStart: req.MaghribStart,
		IshaEnd:      req.IshaEnd,
	}
	// reject rows the window calculator would have to fail closed on
	if _, err := prayer.Windows(row, prayer.Now()); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := t.store.UpsertTiming(row)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not save timing"})
		return
	}
	ctx.JSON(http.StatusOK, saved)
}

func (t *TimingAdminController) deleteTiming(ctx *gin.Context) {
	date := ctx.Param("date")
	if err := t.store.DeleteTiming(date); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete timing"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

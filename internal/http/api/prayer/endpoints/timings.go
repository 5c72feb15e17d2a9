package endpoints

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

type timingResponse struct {
	Date         string `json:"date"`
	DayName      string `json:"day_name"`
	FajrStart    string `json:"fajr_start"`
	Sunrise      string `json:"sunrise"`
	DhuhrStart   string `json:"dhuhr_start"`
	AsrEnd       string `json:"asr_end"`
	MaghribStart string `json:"maghrib_start"`
	IshaEnd      string `json:"isha_end"`
}

func toTimingResponse(t model.PrayerTiming) timingResponse {
	return timingResponse{
		Date:         t.Date,
		DayName:      t.DayName,
		FajrStart:    t.FajrStart,
		Sunrise:      t.Sunrise,
		DhuhrStart:   t.DhuhrStart,
		AsrEnd:       t.AsrEnd,
		MaghribStart: t.MaghribStart,
		IshaEnd:      t.IshaEnd,
	}
}

type TimingController struct {
	store db.Store
}

func NewTimingController(store db.Store) *TimingController {
	return &TimingController{store: store}
}

func RegisterTimingRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewTimingController(store)

	r.GET("/timings", ctl.listTimings)
	r.GET("/timings/today", ctl.todayTiming)
}

func (t *TimingController) listTimings(ctx *gin.Context) {
	all, err := t.store.ListTimings()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list timings"})
		return
	}
	out := make([]timingResponse, len(all))
	for i, row := range all {
		out[i] = toTimingResponse(row)
	}
	ctx.JSON(http.StatusOK, out)
}

func (t *TimingController) todayTiming(ctx *gin.Context) {
	today := prayer.TodayKey()
	timing, err := t.store.GetTimingByDate(today)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "no timing available", "date": today})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load timing"})
		return
	}
	ctx.JSON(http.StatusOK, toTimingResponse(*timing))
}

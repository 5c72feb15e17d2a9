package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
	"github.com/hidaya-tech/mizan/internal/redis"
)

type TrackingController struct {
	store db.Store
	cfg   prayer.TrackingConfig
}

func NewTrackingController(store db.Store, cfg prayer.TrackingConfig) *TrackingController {
	return &TrackingController{store: store, cfg: cfg}
}

func RegisterTrackingRoutes(r gin.IRoutes, store db.Store, cfg prayer.TrackingConfig) {
	ctl := NewTrackingController(store, cfg)

	r.GET("/missed", ctl.listMissed)
	r.GET("/qaza", ctl.listQaza)
	r.POST("/qaza", ctl.createQaza)
	r.GET("/status", ctl.trackingStatus)
}

// missedForUser evaluates the user's missed sessions from their first login
// through now. Users who never logged in have no tracking range and thus no
// misses. Qaza'd sessions are excused everywhere: the same set feeds both
// the excuse picker and the disqualification scan.
func (t *TrackingController) missedForUser(user *model.User, now time.Time) (map[string][]prayer.MissedSession, []string, error) {
	if user.FirstLoginAt == nil {
		return map[string][]prayer.MissedSession{}, nil, nil
	}
	from := prayer.DateKey(*user.FirstLoginAt)
	today := prayer.DateKey(now)

	timings, err := t.store.ListTimingsBetween(from, today)
	if err != nil {
		return nil, nil, err
	}
	attendance, err := t.store.ListAttendanceBetween(user.ID, from, today)
	if err != nil {
		return nil, nil, err
	}
	qaza, err := t.store.ListQazaBetween(user.ID, from, today)
	if err != nil {
		return nil, nil, err
	}

	allDates := make([]string, len(timings))
	for i, row := range timings {
		allDates[i] = row.Date
	}
	return prayer.MissedSessions(timings, attendance, qaza, now), allDates, nil
}

// GET /api/prayer/missed
func (t *TrackingController) listMissed(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	missed, _, err := t.missedForUser(user, prayer.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve missed sessions"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"missed": missed})
}

type qazaResponse struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	SessionType string `json:"session_type"`
	Reason      string `json:"reason"`
	MarkedAt    string `json:"marked_at"`
}

// GET /api/prayer/qaza
func (t *TrackingController) listQaza(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	rows, err := t.store.ListQazaForUser(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list qaza records"})
		return
	}
	out := make([]qazaResponse, len(rows))
	for i, q := range rows {
		out[i] = qazaResponse{
			ID:          q.ID,
			Date:        q.Date,
			SessionType: q.SessionType,
			Reason:      q.Reason,
			MarkedAt:    q.MarkedAt.Format(time.RFC3339),
		}
	}
	ctx.JSON(http.StatusOK, out)
}

type createQazaRequest struct {
	Date        string `json:"date" binding:"required"`
	SessionType string `json:"session_type" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// POST /api/prayer/qaza
//
// Only an actually-missed session can be excused; the picker on the client
// offers the same set this check enforces.
func (t *TrackingController) createQaza(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createQazaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	missed, _, err := t.missedForUser(user, prayer.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve missed sessions"})
		return
	}
	found := false
	for _, m := range missed[req.Date] {
		if m.SessionType == req.SessionType {
			found = true
			break
		}
	}
	if !found {
		ctx.JSON(http.StatusConflict, gin.H{"error": "session is not missed"})
		return
	}

	record, err := t.store.CreateQaza(model.QazaRecord{
		UserID:      user.ID,
		Date:        req.Date,
		SessionType: req.SessionType,
		Reason:      req.Reason,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not save qaza record"})
		return
	}

	// the excused session changes the disqualification input
	redis.Delete(ctx.Request.Context(), redis.DisqualificationKey(user.ID))

	ctx.JSON(http.StatusCreated, qazaResponse{
		ID:          record.ID,
		Date:        record.Date,
		SessionType: record.SessionType,
		Reason:      record.Reason,
		MarkedAt:    record.MarkedAt.Format(time.RFC3339),
	})
}

type trackingStatusResponse struct {
	Disqualified  bool `json:"disqualified"`
	WindowDays    int  `json:"window_days"`
	MissThreshold int  `json:"miss_threshold"`
}

// GET /api/prayer/status
//
// Clients poll this on a 60-second tick; the verdict is cached in redis for
// the same interval.
func (t *TrackingController) trackingStatus(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resp := trackingStatusResponse{
		WindowDays:    t.cfg.WindowDays,
		MissThreshold: t.cfg.MissThreshold,
	}

	cacheKey := redis.DisqualificationKey(user.ID)
	if cached, ok := redis.Get(ctx.Request.Context(), cacheKey); ok {
		resp.Disqualified = cached == "true"
		ctx.JSON(http.StatusOK, resp)
		return
	}

	now := prayer.Now()
	missed, allDates, err := t.missedForUser(user, now)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not evaluate tracking status"})
		return
	}

	var since string
	if user.FirstLoginAt != nil {
		since = prayer.DateKey(*user.FirstLoginAt)
	}
	resp.Disqualified = prayer.Disqualified(prayer.MissedDates(missed, since), allDates, t.cfg)

	redis.Set(ctx.Request.Context(), cacheKey, strconv.FormatBool(resp.Disqualified), redis.StatusTTL)
	if resp.Disqualified {
		log.Info().Int("user_id", user.ID).Msg("user is disqualified")
	}
	ctx.JSON(http.StatusOK, resp)
}

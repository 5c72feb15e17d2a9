package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

type sessionResponse struct {
	Session        string   `json:"session"`
	Name           string   `json:"name"`
	NameUrdu       string   `json:"name_urdu"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	Active         bool     `json:"active"`
	Past           bool     `json:"past"`
	Locked         bool     `json:"locked"`
	Marked         bool     `json:"marked"`
	TimePercentage *float64 `json:"time_percentage,omitempty"`
	RemainingSecs  int64    `json:"remaining_seconds"`
}

type sessionsResponse struct {
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Available bool              `json:"available"`
	Message   string            `json:"message,omitempty"`
	Sessions  []sessionResponse `json:"sessions,omitempty"`
}

type SessionController struct {
	store db.Store
}

func NewSessionController(store db.Store) *SessionController {
	return &SessionController{store: store}
}

func RegisterSessionRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewSessionController(store)

	r.GET("/sessions", ctl.todaySessions)
}

// GET /api/prayer/sessions
//
// Clients poll this every second for the countdown display, so it must stay
// a cheap pure recomputation. A day with no (or malformed) timing data
// reports available=false and every session is implicitly locked.
func (s *SessionController) todaySessions(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := prayer.Now()
	resp := sessionsResponse{
		Date: prayer.DateKey(now),
		Time: now.Format("15:04:05"),
	}

	timing, err := s.store.GetTimingByDate(resp.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			resp.Message = "no timing available"
			ctx.JSON(http.StatusOK, resp)
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load timing"})
		return
	}

	windows, err := prayer.Windows(*timing, now)
	if err != nil {
		log.Warn().Err(err).Str("date", resp.Date).Msg("malformed timing row, failing closed")
		resp.Message = "no timing available"
		ctx.JSON(http.StatusOK, resp)
		return
	}

	attendance, err := s.store.ListAttendanceForDate(user.ID, resp.Date)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load attendance"})
		return
	}
	marked := make(map[string]*float64, len(attendance))
	for _, a := range attendance {
		marked[a.SessionType] = a.TimePercentage
	}

	resp.Available = true
	for _, session := range prayer.Sessions {
		w := windows[session]
		sr := sessionResponse{
			Session:  string(session),
			Name:     session.Name(),
			NameUrdu: session.NameUrdu(),
			Start:    w.Start.Format("15:04"),
			End:      w.End.Format("15:04"),
			Active:   w.Active,
			Past:     w.Past,
			Locked:   w.Locked,
		}
		if pct, ok := marked[string(session)]; ok {
			sr.Marked = true
			sr.TimePercentage = pct
		}
		if w.Active {
			sr.RemainingSecs = int64(w.End.Sub(now) / time.Second)
		}
		resp.Sessions = append(resp.Sessions, sr)
	}
	ctx.JSON(http.StatusOK, resp)
}

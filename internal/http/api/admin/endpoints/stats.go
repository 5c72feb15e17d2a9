package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/redis"
	"github.com/hidaya-tech/mizan/internal/report"
)

type StatsController struct {
	store db.Store
}

func NewStatsController(store db.Store) *StatsController {
	return &StatsController{store: store}
}

func RegisterStatsRoutes(r gin.IRoutes, store db.Store) {
	ctl := NewStatsController(store)

	r.GET("/stats", ctl.leaderboard)
}

// GET /api/admin/stats
//
// The ranked leaderboard over every user's attendance and qaza records,
// cached for the dashboard's refresh interval.
func (s *StatsController) leaderboard(ctx *gin.Context) {
	if cached, ok := redis.Get(ctx.Request.Context(), redis.LeaderboardKey); ok {
		ctx.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	rows, _, err := s.buildLeaderboard()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not build leaderboard"})
		return
	}

	body, err := json.Marshal(gin.H{"leaderboard": rows})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode leaderboard"})
		return
	}
	redis.Set(ctx.Request.Context(), redis.LeaderboardKey, string(body), redis.LeaderboardTTL)
	ctx.Data(http.StatusOK, "application/json", body)
}

func (s *StatsController) buildLeaderboard() ([]report.UserStats, []report.DetailEntry, error) {
	users, err := s.store.ListUsers()
	if err != nil {
		return nil, nil, err
	}
	attendance, err := s.store.ListAllAttendance()
	if err != nil {
		return nil, nil, err
	}
	qaza, err := s.store.ListAllQaza()
	if err != nil {
		return nil, nil, err
	}

	rows, details := report.BuildLeaderboard(users, attendance, qaza)
	log.Debug().Int("users", len(rows)).Int("details", len(details)).Msg("leaderboard built")
	return rows, details, nil
}

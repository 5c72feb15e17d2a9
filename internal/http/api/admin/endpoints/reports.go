package endpoints

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/db"
	"github.com/hidaya-tech/mizan/internal/prayer"
	"github.com/hidaya-tech/mizan/internal/report"
	"github.com/hidaya-tech/mizan/internal/storage"
)

type ReportController struct {
	store   db.Store
	archive storage.Storage
}

func NewReportController(store db.Store, archive storage.Storage) *ReportController {
	return &ReportController{store: store, archive: archive}
}

func RegisterReportRoutes(r gin.IRoutes, store db.Store, archive storage.Storage) {
	ctl := NewReportController(store, archive)

	r.GET("/reports/csv", ctl.downloadCSV)
}

// GET /api/admin/reports/csv
//
// Streams the ranked leaderboard CSV and archives a copy. An archive
// failure is logged but does not block the download.
func (r *ReportController) downloadCSV(ctx *gin.Context) {
	stats := NewStatsController(r.store)
	rows, details, err := stats.buildLeaderboard()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rows, details); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render report"})
		return
	}

	filename := fmt.Sprintf("ramadan_report_%s.csv", prayer.TodayKey())
	if location, err := r.archive.SaveReport(filename, buf.Bytes()); err != nil {
		log.Warn().Err(err).Msg("could not archive report")
	} else {
		log.Info().Str("location", location).Msg("report archived")
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

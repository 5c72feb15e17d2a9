package report

import (
	"sort"
	"strings"

	"github.com/hidaya-tech/mizan/internal/model"
	"github.com/hidaya-tech/mizan/internal/prayer"
)

// UserStats is one leaderboard row: per-category counts and points for a
// single user plus the grand total.
type UserStats struct {
	UserID      int     `json:"user_id"`
	DisplayName string  `json:"display_name"`
	FatherName  string  `json:"father_name"`
	Rank        int     `json:"rank"`
	EarlyCount  int     `json:"early_count"`
	EarlyPts    float64 `json:"early_points"`
	MiddleCount int     `json:"middle_count"`
	MiddlePts   float64 `json:"middle_points"`
	LateCount   int     `json:"late_count"`
	LatePts     float64 `json:"late_points"`
	DuaCount    int     `json:"dua_count"`
	DuaPts      float64 `json:"dua_points"`
	QuranCount  int     `json:"quran_count"`
	QuranPts    float64 `json:"quran_points"`
	DhikrCount  int     `json:"dhikr_count"`
	DhikrPts    float64 `json:"dhikr_points"`
	DeedCount   int     `json:"good_deed_count"`
	DeedPts     float64 `json:"good_deed_points"`
	QazaCount   int     `json:"qaza_count"`
	QazaPts     float64 `json:"qaza_points"`
	TotalPts    float64 `json:"total_points"`
}

// DetailEntry is one non-empty extra-dhikr or good-deed text, listed in the
// CSV detail section.
type DetailEntry struct {
	StudentName string `json:"student_name"`
	Date        string `json:"date"`
	Session     string `json:"session"`
	Type        string `json:"type"`
	Text        string `json:"text"`
}

// BuildLeaderboard sums every user's weighted points across all attendance
// and qaza rows. The stored time percentage decides the namaz tier; rows
// persisted without one fall back to the middle of the window. Output is
// ranked by total points descending with display name as the deterministic
// tie-break, and details are sorted by name then date.
func BuildLeaderboard(
	users []model.User,
	attendance []model.PrayerAttendance,
	qaza []model.QazaRecord,
) ([]UserStats, []DetailEntry) {
	byUser := make(map[int]*UserStats, len(users))
	for _, u := range users {
		s := &UserStats{UserID: u.ID, DisplayName: "Unknown"}
		if u.DisplayName != nil && *u.DisplayName != "" {
			s.DisplayName = *u.DisplayName
		}
		if u.FatherName != nil {
			s.FatherName = *u.FatherName
		}
		byUser[u.ID] = s
	}

	var details []DetailEntry
	for _, a := range attendance {
		s, ok := byUser[a.UserID]
		if !ok {
			continue
		}
		if a.NamazMarked {
			pct := prayer.DefaultPercentage
			if a.TimePercentage != nil {
				pct = *a.TimePercentage
			}
			switch prayer.TierFor(pct) {
			case prayer.TierEarly:
				s.EarlyCount++
				s.EarlyPts += prayer.PointsEarly
			case prayer.TierMiddle:
				s.MiddleCount++
				s.MiddlePts += prayer.PointsMiddle
			default:
				s.LateCount++
				s.LatePts += prayer.PointsLate
			}
		}
		if a.DuaMarked {
			s.DuaCount++
			s.DuaPts += prayer.PointsDua
		}
		if a.QuranMarked {
			s.QuranCount++
			s.QuranPts += prayer.PointsQuran
		}
		if text := trimmedText(a.ExtraZiker); text != "" {
			s.DhikrCount++
			s.DhikrPts += prayer.PointsDhikr
			details = append(details, DetailEntry{
				StudentName: s.DisplayName,
				Date:        a.Date,
				Session:     a.SessionType,
				Type:        "Extra Dhikr",
				Text:        text,
			})
		}
		if text := trimmedText(a.GoodDeed); text != "" {
			s.DeedCount++
			s.DeedPts += prayer.PointsGoodDeed
			details = append(details, DetailEntry{
				StudentName: s.DisplayName,
				Date:        a.Date,
				Session:     a.SessionType,
				Type:        "Good Deed",
				Text:        text,
			})
		}
	}

	for _, q := range qaza {
		if s, ok := byUser[q.UserID]; ok {
			s.QazaCount++
			s.QazaPts += prayer.PointsQaza
		}
	}

	rows := make([]UserStats, 0, len(byUser))
	for _, s := range byUser {
		s.TotalPts = s.EarlyPts + s.MiddlePts + s.LatePts +
			s.DuaPts + s.QuranPts + s.DhikrPts + s.DeedPts + s.QazaPts
		rows = append(rows, *s)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPts != rows[j].TotalPts {
			return rows[i].TotalPts > rows[j].TotalPts
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	sort.Slice(details, func(i, j int) bool {
		if details[i].StudentName != details[j].StudentName {
			return details[i].StudentName < details[j].StudentName
		}
		return details[i].Date < details[j].Date
	})

	return rows, details
}

func trimmedText(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

package prayer

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/model"
)

// MissedSession describes one session that passed unmarked.
type MissedSession struct {
	Date        string `json:"date"`
	SessionType string `json:"session_type"`
	Name        string `json:"name"`
	NameUrdu    string `json:"name_urdu"`
}

func markKey(date, session string) string {
	return date + "|" + session
}

// MissedSessions diffs a date range of timing rows against a user's
// attendance and qaza records and returns the sessions that definitively
// ended without being marked or excused, keyed by date.
//
// Days strictly before today count every unmarked session; today counts
// only windows whose Past flag is set — a session still open today is not
// due, not missed. Timing rows dated after today are ignored. A malformed
// timing row is skipped (fail closed: it derives no windows, so it can
// never produce a miss).
//
// qaza may be nil for call sites that do not excuse anything.
func MissedSessions(
	timings []model.PrayerTiming,
	attendance []model.PrayerAttendance,
	qaza []model.QazaRecord,
	now time.Time,
) map[string][]MissedSession {
	today := DateKey(now)

	resolved := make(map[string]struct{}, len(attendance)+len(qaza))
	for _, a := range attendance {
		resolved[markKey(a.Date, a.SessionType)] = struct{}{}
	}
	for _, q := range qaza {
		resolved[markKey(q.Date, q.SessionType)] = struct{}{}
	}

	missed := make(map[string][]MissedSession)
	for _, timing := range timings {
		if timing.Date > today {
			continue
		}
		windows, err := Windows(timing, now)
		if err != nil {
			log.Warn().Err(err).Str("date", timing.Date).Msg("skipping malformed timing row")
			continue
		}
		for _, s := range Sessions {
			w := windows[s]
			if timing.Date == today && !w.Past {
				continue
			}
			if _, ok := resolved[markKey(timing.Date, string(s))]; ok {
				continue
			}
			missed[timing.Date] = append(missed[timing.Date], MissedSession{
				Date:        timing.Date,
				SessionType: string(s),
				Name:        s.Name(),
				NameUrdu:    s.NameUrdu(),
			})
		}
	}
	return missed
}

// MissedDates flattens a missed-session map into one date entry per missed
// session (dates repeat), keeping only dates at or after since. An empty
// since keeps everything. The result feeds the disqualification scan.
func MissedDates(byDate map[string][]MissedSession, since string) []string {
	var out []string
	for date, sessions := range byDate {
		if since != "" && date < since {
			continue
		}
		for range sessions {
			out = append(out, date)
		}
	}
	return out
}

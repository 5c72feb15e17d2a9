package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/model"
)

const attendanceColumns = `id, user_id, date, session_type, namaz_marked, dua_marked, quran_marked, extra_ziker, good_deed, time_percentage, status, marked_at, created_at, updated_at`

// inserts or overwrites the attendance row for (user_id, date, session_type).
// The composite unique key makes concurrent submissions last-write-wins;
// the second writer is never rejected. status is forced to "ada" and
// marked_at to the submission instant on every write.
func (s *pgStore) UpsertAttendance(a model.PrayerAttendance) (model.PrayerAttendance, error) {
	var out model.PrayerAttendance
	query := `
	INSERT INTO prayer_attendance
	(user_id, date, session_type, namaz_marked, dua_marked, quran_marked, extra_ziker, good_deed, time_percentage, status, marked_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'ada', $10, now(), now())
	ON CONFLICT (user_id, date, session_type) DO UPDATE SET
	namaz_marked = EXCLUDED.namaz_marked,
	dua_marked = EXCLUDED.dua_marked,
	quran_marked = EXCLUDED.quran_marked,
	extra_ziker = EXCLUDED.extra_ziker,
	good_deed = EXCLUDED.good_deed,
	time_percentage = EXCLUDED.time_percentage,
	status = 'ada',
	marked_at = EXCLUDED.marked_at,
	updated_at = now()
	RETURNING ` + attendanceColumns + `;`
	err := s.db.Get(&out, query,
		a.UserID, a.Date, a.SessionType,
		a.NamazMarked, a.DuaMarked, a.QuranMarked,
		a.ExtraZiker, a.GoodDeed, a.TimePercentage, a.MarkedAt)
	if err != nil {
		log.Error().Err(err).
			Int("user_id", a.UserID).
			Str("date", a.Date).
			Str("session", a.SessionType).
			Msg("UpsertAttendance failed")
		return model.PrayerAttendance{}, err
	}
	return out, nil
}

// fetches one attendance row. returns nil, sql.ErrNoRows if the session has
// not been marked.
func (s *pgStore) GetAttendance(userID int, date, sessionType string) (*model.PrayerAttendance, error) {
	var a model.PrayerAttendance
	err := s.db.Get(&a, `
	SELECT `+attendanceColumns+`
	  FROM prayer_attendance
	 WHERE user_id = $1 AND date = $2 AND session_type = $3;`, userID, date, sessionType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("GetAttendance failed")
		return nil, err
	}
	return &a, nil
}

func (s *pgStore) ListAttendanceForDate(userID int, date string) ([]model.PrayerAttendance, error) {
	var out []model.PrayerAttendance
	err := s.db.Select(&out, `
	SELECT `+attendanceColumns+`
	  FROM prayer_attendance
	 WHERE user_id = $1 AND date = $2
	 ORDER BY session_type;`, userID, date)
	if err != nil {
		log.Error().Err(err).Msg("ListAttendanceForDate failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListAttendanceForUser(userID int) ([]model.PrayerAttendance, error) {
	var out []model.PrayerAttendance
	err := s.db.Select(&out, `
	SELECT `+attendanceColumns+`
	  FROM prayer_attendance
	 WHERE user_id = $1
	 ORDER BY date DESC, session_type;`, userID)
	if err != nil {
		log.Error().Err(err).Msg("ListAttendanceForUser failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListAttendanceBetween(userID int, from, to string) ([]model.PrayerAttendance, error) {
	var out []model.PrayerAttendance
	err := s.db.Select(&out, `
	SELECT `+attendanceColumns+`
	  FROM prayer_attendance
	 WHERE user_id = $1 AND date >= $2 AND date <= $3
	 ORDER BY date, session_type;`, userID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("ListAttendanceBetween failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListAllAttendance() ([]model.PrayerAttendance, error) {
	var out []model.PrayerAttendance
	err := s.db.Select(&out, `SELECT `+attendanceColumns+` FROM prayer_attendance ORDER BY date, user_id;`)
	if err != nil {
		log.Error().Err(err).Msg("ListAllAttendance failed")
		return nil, err
	}
	return out, nil
}

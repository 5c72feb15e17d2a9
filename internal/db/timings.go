package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/model"
)

const timingColumns = `id, date, day_name, fajr_start, sunrise, dhuhr_start, asr_end, maghrib_start, isha_end, created_at`

// inserts or replaces the timing row for a date. Timing rows are reference
// data keyed by date, so the data-entry process may re-submit corrections.
func (s *pgStore) UpsertTiming(t model.PrayerTiming) (model.PrayerTiming, error) {
	var out model.PrayerTiming
	query := `
	INSERT INTO prayer_timings (date, day_name, fajr_start, sunrise, dhuhr_start, asr_end, maghrib_start, isha_end, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (date) DO UPDATE SET
	day_name = EXCLUDED.day_name,
	fajr_start = EXCLUDED.fajr_start,
	sunrise = EXCLUDED.sunrise,
	dhuhr_start = EXCLUDED.dhuhr_start,
	asr_end = EXCLUDED.asr_end,
	maghrib_start = EXCLUDED.maghrib_start,
	isha_end = EXCLUDED.isha_end
	RETURNING ` + timingColumns + `;`
	err := s.db.Get(&out, query, t.Date, t.DayName, t.FajrStart, t.Sunrise, t.DhuhrStart, t.AsrEnd, t.MaghribStart, t.IshaEnd)
	if err != nil {
		log.Error().Err(err).Str("date", t.Date).Msg("UpsertTiming failed")
		return model.PrayerTiming{}, err
	}
	return out, nil
}

// fetches the timing row for a date. returns nil, sql.ErrNoRows when the day
// has no reference data; callers treat that day as unavailable.
func (s *pgStore) GetTimingByDate(date string) (*model.PrayerTiming, error) {
	var t model.PrayerTiming
	err := s.db.Get(&t, `SELECT `+timingColumns+` FROM prayer_timings WHERE date = $1;`, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("date", date).Msg("GetTimingByDate failed")
		return nil, err
	}
	return &t, nil
}

func (s *pgStore) ListTimings() ([]model.PrayerTiming, error) {
	var out []model.PrayerTiming
	err := s.db.Select(&out, `SELECT `+timingColumns+` FROM prayer_timings ORDER BY date;`)
	if err != nil {
		log.Error().Err(err).Msg("ListTimings failed")
		return nil, err
	}
	return out, nil
}

// lists timing rows with from <= date <= to, ordered by date ascending.
func (s *pgStore) ListTimingsBetween(from, to string) ([]model.PrayerTiming, error) {
	var out []model.PrayerTiming
	err := s.db.Select(&out, `
	SELECT `+timingColumns+`
	  FROM prayer_timings
	 WHERE date >= $1 AND date <= $2
	 ORDER BY date;`, from, to)
	if err != nil {
		log.Error().Err(err).Msg("ListTimingsBetween failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteTiming(date string) error {
	_, err := s.db.Exec(`DELETE FROM prayer_timings WHERE date = $1;`, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("DeleteTiming failed")
	}
	return err
}

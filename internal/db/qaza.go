package db

import (
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/model"
)

const qazaColumns = `id, user_id, date, session_type, reason, marked_at, created_at`

func (s *pgStore) CreateQaza(q model.QazaRecord) (model.QazaRecord, error) {
	var out model.QazaRecord
	query := `
	INSERT INTO qaza_records (user_id, date, session_type, reason, marked_at, created_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING ` + qazaColumns + `;`
	err := s.db.Get(&out, query, q.UserID, q.Date, q.SessionType, q.Reason)
	if err != nil {
		log.Error().Err(err).
			Int("user_id", q.UserID).
			Str("date", q.Date).
			Str("session", q.SessionType).
			Msg("CreateQaza failed")
		return model.QazaRecord{}, err
	}
	return out, nil
}

func (s *pgStore) ListQazaForUser(userID int) ([]model.QazaRecord, error) {
	var out []model.QazaRecord
	err := s.db.Select(&out, `
	SELECT `+qazaColumns+`
	  FROM qaza_records
	 WHERE user_id = $1
	 ORDER BY marked_at DESC;`, userID)
	if err != nil {
		log.Error().Err(err).Msg("ListQazaForUser failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListQazaBetween(userID int, from, to string) ([]model.QazaRecord, error) {
	var out []model.QazaRecord
	err := s.db.Select(&out, `
	SELECT `+qazaColumns+`
	  FROM qaza_records
	 WHERE user_id = $1 AND date >= $2 AND date <= $3
	 ORDER BY date;`, userID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("ListQazaBetween failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) ListAllQaza() ([]model.QazaRecord, error) {
	var out []model.QazaRecord
	err := s.db.Select(&out, `SELECT `+qazaColumns+` FROM qaza_records ORDER BY date, user_id;`)
	if err != nil {
		log.Error().Err(err).Msg("ListAllQaza failed")
		return nil, err
	}
	return out, nil
}

package model

import "time"

// QazaRecord is a voluntary excuse entry for a missed (date, session) pair.
// Once recorded, the session no longer counts as missed.
type QazaRecord struct {
	ID          int       `db:"id"`
	UserID      int       `db:"user_id"`
	Date        string    `db:"date"`
	SessionType string    `db:"session_type"`
	Reason      string    `db:"reason"`
	MarkedAt    time.Time `db:"marked_at"`
	CreatedAt   time.Time `db:"created_at"`
}

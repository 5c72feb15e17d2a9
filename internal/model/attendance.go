package model

import "time"

// Attendance statuses.
const (
	StatusPending = "pending"
	StatusAda     = "ada"
	StatusKaza    = "kaza"
)

// PrayerAttendance is one user's completion record for a (date, session)
// pair. At most one row exists per (user_id, date, session_type); repeat
// submissions upsert in place. TimePercentage is captured once at submission
// and never recomputed.
type PrayerAttendance struct {
	ID             int       `db:"id"`
	UserID         int       `db:"user_id"`
	Date           string    `db:"date"`
	SessionType    string    `db:"session_type"`
	NamazMarked    bool      `db:"namaz_marked"`
	DuaMarked      bool      `db:"dua_marked"`
	QuranMarked    bool      `db:"quran_marked"`
	ExtraZiker     *string   `db:"extra_ziker"`
	GoodDeed       *string   `db:"good_deed"`
	TimePercentage *float64  `db:"time_percentage"`
	Status         string    `db:"status"`
	MarkedAt       time.Time `db:"marked_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

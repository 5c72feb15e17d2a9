// exposes a Store interface that is passed to API controllers
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hidaya-tech/mizan/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword, role string, displayName, fatherName, cnic, address *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	ListUsers() ([]model.User, error)
	UpdateUserProfile(id int, displayName, fatherName, cnic, address *string) error
	DeleteUser(id int) error
	MarkFirstLogin(id int, at time.Time) error

	// prayer timing functions
	UpsertTiming(t model.PrayerTiming) (model.PrayerTiming, error)
	GetTimingByDate(date string) (*model.PrayerTiming, error)
	ListTimings() ([]model.PrayerTiming, error)
	ListTimingsBetween(from, to string) ([]model.PrayerTiming, error)
	DeleteTiming(date string) error

	// attendance functions
	UpsertAttendance(a model.PrayerAttendance) (model.PrayerAttendance, error)
	GetAttendance(userID int, date, sessionType string) (*model.PrayerAttendance, error)
	ListAttendanceForDate(userID int, date string) ([]model.PrayerAttendance, error)
	ListAttendanceForUser(userID int) ([]model.PrayerAttendance, error)
	ListAttendanceBetween(userID int, from, to string) ([]model.PrayerAttendance, error)
	ListAllAttendance() ([]model.PrayerAttendance, error)

	// qaza functions
	CreateQaza(q model.QazaRecord) (model.QazaRecord, error)
	ListQazaForUser(userID int) ([]model.QazaRecord, error)
	ListQazaBetween(userID int, from, to string) ([]model.QazaRecord, error)
	ListAllQaza() ([]model.QazaRecord, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(conn *sqlx.DB) Store {
	return &pgStore{db: conn}
}

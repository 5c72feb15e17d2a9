package model

import "time"

// PrayerTiming is one day's clock marks for the fixed location.
// Times are local wall-clock "HH:MM" strings on Date ("YYYY-MM-DD").
// Reference data only: written by the admin data-entry endpoints,
// never by the attendance engine.
type PrayerTiming struct {
	ID           int       `db:"id"`
	Date         string    `db:"date"`
	DayName      string    `db:"day_name"`
	FajrStart    string    `db:"fajr_start"`
	Sunrise      string    `db:"sunrise"`
	DhuhrStart   string    `db:"dhuhr_start"`
	AsrEnd       string    `db:"asr_end"`
	MaghribStart string    `db:"maghrib_start"`
	IshaEnd      string    `db:"isha_end"`
	CreatedAt    time.Time `db:"created_at"`
}

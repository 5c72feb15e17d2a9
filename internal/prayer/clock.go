package prayer

import "time"

// Faisalabad runs on a fixed UTC+5 offset year-round; Pakistan does not
// observe daylight saving, so time.FixedZone is correct and keeps the
// binary free of tzdata.
var Location = time.FixedZone("Asia/Karachi", 5*60*60)

// DateLayout is the canonical calendar-date key used across timing,
// attendance and qaza rows.
const DateLayout = "2006-01-02"

// Now returns the current instant in Faisalabad local time.
func Now() time.Time {
	return time.Now().In(Location)
}

// DateKey formats an instant as its Faisalabad calendar date.
func DateKey(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// TodayKey is DateKey(Now()).
func TodayKey() string {
	return DateKey(Now())
}

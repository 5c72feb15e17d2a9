package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeaders = []string{
	"Rank", "Student Name", "Father Name",
	"Early Namaz (Count)", "Early Namaz (Pts)",
	"Middle Namaz (Count)", "Middle Namaz (Pts)",
	"Late Namaz (Count)", "Late Namaz (Pts)",
	"Dua (Count)", "Dua (Pts)",
	"Quran (Count)", "Quran (Pts)",
	"Extra Dhikr (Count)", "Extra Dhikr (Pts)",
	"Good Deeds (Count)", "Good Deeds (Pts)",
	"Qaza (Count)", "Qaza (Pts)",
	"Total Points",
}

// WriteCSV renders the leaderboard followed by the dhikr/good-deed detail
// section. encoding/csv handles quoting of commas, quotes and newlines.
func WriteCSV(w io.Writer, rows []UserStats, details []DetailEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range rows {
		record := []string{
			strconv.Itoa(s.Rank), s.DisplayName, s.FatherName,
			strconv.Itoa(s.EarlyCount), points(s.EarlyPts),
			strconv.Itoa(s.MiddleCount), points(s.MiddlePts),
			strconv.Itoa(s.LateCount), points(s.LatePts),
			strconv.Itoa(s.DuaCount), points(s.DuaPts),
			strconv.Itoa(s.QuranCount), points(s.QuranPts),
			strconv.Itoa(s.DhikrCount), points(s.DhikrPts),
			strconv.Itoa(s.DeedCount), points(s.DeedPts),
			strconv.Itoa(s.QazaCount), points(s.QazaPts),
			points(s.TotalPts),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if len(details) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, "\n\n--- EXTRA DHIKR & GOOD DEEDS DETAIL ---\n"); err != nil {
		return err
	}
	cw = csv.NewWriter(w)
	if err := cw.Write([]string{"Student Name", "Date", "Session", "Type", "Text"}); err != nil {
		return err
	}
	for _, d := range details {
		if err := cw.Write([]string{d.StudentName, d.Date, d.Session, d.Type, d.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// points renders a point total without trailing zeros (3, 0.5, 11.5).
func points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

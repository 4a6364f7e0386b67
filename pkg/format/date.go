package format

import (
	"fmt"
	"time"
)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate renders "05 Maret 2025". The zero time renders as an empty string.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// MonthYear renders "Maret 2025", used for grouping in summaries.
func MonthYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

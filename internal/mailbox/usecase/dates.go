package usecase

import "time"

// Accepted layouts for upstream date strings. The dataset mixes ISO
// timestamps with date-only values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// FormatDate turns a raw upstream date string into the display form:
// today -> clock time, yesterday -> "Yesterday", anything older ->
// short month/day. Missing input is "Unknown", unparseable input is
// "Invalid date". Day comparison is calendar-day equality in the local
// zone, not an elapsed-time threshold.
func FormatDate(raw string, now time.Time) string {
	if raw == "" {
		return "Unknown"
	}

	parsed, err := parseDate(raw)
	if err != nil {
		return "Invalid date"
	}

	parsed = parsed.In(now.Location())
	if sameDay(parsed, now) {
		return parsed.Format("15:04")
	}
	if sameDay(parsed, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return parsed.Format("Jan 2")
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

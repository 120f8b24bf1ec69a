package ir

import "time"

// DateLayout is the textual form of dates in plist documents.
const DateLayout = "2006-01-02T15:04:05Z"

var (
	minDate = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

// DateInRange reports whether t has a four digit year and so can be
// written in DateLayout.
func DateInRange(t time.Time) bool {
	return !t.Before(minDate) && !t.After(maxDate)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

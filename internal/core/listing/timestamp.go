package listing

import "time"

// TimeLayout is day, abbreviated month and 24-hour clock, e.g. "05 Mar 14:22"
const TimeLayout = "02 Jan 15:04"

// FormatTimestamp renders t in loc using TimeLayout. A nil loc means local time.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

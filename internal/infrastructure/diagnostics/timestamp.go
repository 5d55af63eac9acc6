package diagnostics

import (
	"strconv"
	"time"
)

// FormatTimestamp renders t in UTC as Y-M-D h:m:s.ms. Fields are not zero
// padded.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	buf := make([]byte, 0, 24)
	buf = strconv.AppendInt(buf, int64(t.Year()), 10)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, int64(t.Month()), 10)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, int64(t.Day()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(t.Hour()), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(t.Minute()), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(t.Second()), 10)
	buf = append(buf, '.')
	buf = strconv.AppendInt(buf, int64(t.Nanosecond()/int(time.Millisecond)), 10)
	return string(buf)
}

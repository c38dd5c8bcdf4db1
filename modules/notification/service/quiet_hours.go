package service

import (
	"strconv"
	"strings"
	"time"
)

func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hh, err1 := strconv.Atoi(h)
	mm, err2 := strconv.Atoi(m)
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// InQuietHours reports whether t falls in [start, end) local time. The window may
// wrap midnight and start == end covers the whole day.
func InQuietHours(start, end string, enabled bool, t time.Time, loc *time.Location) bool {
	if !enabled {
		return false
	}
	from, ok1 := parseClock(start)
	to, ok2 := parseClock(end)
	if !ok1 || !ok2 {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	now := local.Hour()*60 + local.Minute()

	switch {
	case from == to:
		return true
	case from < to:
		return now >= from && now < to
	default:
		return now >= from || now < to
	}
}

package xmlmap

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Canonical layouts for the fixed-format write side. The trailing Z is
// literal; all rendering is UTC with zero-padded milliseconds.
const (
	dateLayout = "2006-01-02T15:04:05.000Z"
	timeLayout = "15:04:05.000Z"
)

// FormatBool renders a boolean as its canonical text encoding.
func FormatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// ParseBool decodes a canonical boolean text. It accepts "true" and "false"
// in any case, and "1"/"0"; anything else is a ValueError.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ValueError{Value: s, Reason: "not a boolean"}
}

// FormatDate renders epoch seconds as a canonical UTC date-time string.
func FormatDate(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(dateLayout)
}

// FormatTime renders epoch seconds as a canonical UTC time-of-day string,
// discarding the date component.
func FormatTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(timeLayout)
}

// ParseEpoch decodes a date or time value into epoch seconds. A numeric
// string passes through as epoch seconds directly. A bare time of day maps
// to seconds since midnight. Anything else goes through a general calendar
// date parser; input it cannot make sense of is a ValueError.
func ParseEpoch(s string) (int64, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int64(f), nil
	}
	for _, layout := range []string{timeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return int64(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return 0, &ValueError{Value: s, Reason: "not an epoch number or a parseable date"}
	}
	return t.Unix(), nil
}

package ufdr

import (
	"strconv"
	"strings"
	"time"

	"github.com/ufdrinsight/ufdrinsight/pkg/util"
)

// timestampLayouts is the ordered set of accepted calendar formats. Order
// matters: day-first slash dates are tried before month-first ones.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
}

// minEpochSeconds guards the numeric fallback: plain small numbers (ids,
// sequence counters) must not be mistaken for epoch timestamps.
const minEpochSeconds = 1e9

// ParseTimestamp normalizes a raw extracted value into a calendar instant.
// It tries each known layout in order, then falls back to interpreting the
// value as Unix epoch seconds. The second return is false when no
// interpretation applies; callers decide whether to drop or count the record.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	// Pure digit strings can never match a calendar layout, so skip
	// straight to the epoch interpretation for them.
	if !util.IsNumeric(s) {
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > minEpochSeconds {
		sec := int64(f)
		nsec := int64((f - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec), true
	}
	return time.Time{}, false
}

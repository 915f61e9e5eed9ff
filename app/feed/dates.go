package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseTime normalizes the timestamps Reuters hands back in whatever shape
// the given endpoint uses: ISO-8601 strings, RFC-2822-like strings, or
// numeric epoch values (seconds or milliseconds). JSON decoding leaves
// numbers as float64, so the input is typed as any.
func ParseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("empty timestamp")
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, fmt.Errorf("empty timestamp")
		}
		// dateparse reads bare integers as layout strings, so epoch
		// values need to be picked off first
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromEpoch(n), nil
		}
		parsed, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
		}
		return parsed.UTC(), nil
	case float64:
		return fromEpoch(int64(t)), nil
	case int64:
		return fromEpoch(t), nil
	case int:
		return fromEpoch(int64(t)), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func fromEpoch(n int64) time.Time {
	// values this large can only be millisecond epochs
	if n > 1e12 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seconds is a duration stored with second-level resolution, the unit the spec's `duration`
// key is materialized in ("duration string; parsed into seconds").
type Seconds int64

// String renders the canonical "hh:mm:ss" form used by the results document (spec §6).
func (s Seconds) String() string {
	neg := ""
	n := int64(s)
	if n < 0 {
		neg = "-"
		n = -n
	}
	h := n / 3600
	m := (n % 3600) / 60
	sec := n % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", neg, h, m, sec)
}

// ParseDuration accepts either the canonical "hh:mm:ss" form or a Go-style duration string
// (e.g. "90s", "5m"), returning seconds. fmf test durations are commonly written as bare Go
// duration strings ("5m"); results documents use "hh:mm:ss" on the wire.
func ParseDuration(s string) (Seconds, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if strings.Count(s, ":") == 2 {
		return parseHHMMSS(s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return Seconds(d.Round(time.Second) / time.Second), nil
}

func parseHHMMSS(s string) (Seconds, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid duration %q: expected hh:mm:ss", s)
	}

	var nums [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		nums[i] = n
	}

	total := nums[0]*3600 + nums[1]*60 + nums[2]
	if neg {
		total = -total
	}
	return Seconds(total), nil
}

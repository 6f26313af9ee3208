package format

import (
	"strconv"
	"strings"
)

type ageUnit struct {
	seconds int64
	suffix  string
}

var ageUnits = []ageUnit{
	{365 * 24 * 3600, "y"},
	{7 * 24 * 3600, "w"},
	{24 * 3600, "d"},
	{3600, "h"},
	{60, "m"},
	{1, "s"},
}

// Age renders a duration in seconds as its two most significant units,
// e.g. "1w 6d" or "2m". Zero or negative ages render as "?".
func Age(seconds int64) string {
	if seconds <= 0 {
		return "?"
	}

	parts := make([]string, 0, 2)
	rem := seconds
	for _, u := range ageUnits {
		if len(parts) == 2 || rem == 0 {
			break
		}
		if rem < u.seconds {
			continue
		}
		n := rem / u.seconds
		rem -= n * u.seconds
		parts = append(parts, strconv.FormatInt(n, 10)+u.suffix)
	}
	return strings.Join(parts, " ")
}

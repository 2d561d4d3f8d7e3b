package youtube

import (
	"regexp"
	"strconv"
)

// iso8601Duration matches the YouTube contentDetails duration form, e.g. PT4M13S.
var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 duration like "PT1H4M13S" to seconds.
// Unparseable input yields 0.
func ParseDuration(s string) int {
	m := iso8601Duration.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	return hours*3600 + minutes*60 + seconds
}

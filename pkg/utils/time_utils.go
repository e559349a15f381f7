// utils/timeutil.go
package utils

import "time"

// India time location (IST, +05:30)
var inLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

// Use explicit "seconds" variant for DB storage
func NowUnixSeconds() int64 { return time.Now().Unix() }

// Convert an epoch value in seconds to IST.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsIN(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(inLoc)
}

// UnixSecondsOlderThan reports whether the epoch value t lies further in
// the past than the given age. A zero t is treated as infinitely old.
func UnixSecondsOlderThan(t int64, age time.Duration) bool {
	if t <= 0 {
		return true
	}
	return time.Since(time.Unix(t, 0)) > age
}

func FormatRFC3339IN(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(inLoc).Format(time.RFC3339)
}

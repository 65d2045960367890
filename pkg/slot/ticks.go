package slot

import "time"

const (
	ticksPerSecond = 10_000_000
	// epochOffset is the number of seconds from 0001-01-01 to 1970-01-01.
	epochOffset = 62_135_596_800
)

// LastWriteTime converts .NET ticks to a UTC time. Zero ticks means the
// slot was never written and yields the zero time.
func LastWriteTime(ticks int64) time.Time {
	if ticks == 0 {
		return time.Time{}
	}
	sec := ticks/ticksPerSecond - epochOffset
	nsec := (ticks % ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}

// Ticks is the inverse of LastWriteTime.
func Ticks(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return (t.Unix()+epochOffset)*ticksPerSecond + int64(t.Nanosecond()/100)
}

// FormatLastWrite renders ticks for display.
func FormatLastWrite(ticks int64) string {
	if ticks == 0 {
		return "(never)"
	}
	return LastWriteTime(ticks).Format(time.DateTime)
}

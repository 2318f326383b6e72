package clock

import "time"

// Clock abstracts time so ledger ids, review dates and derived wager status
// stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Millis returns the clock's current time as epoch milliseconds, the unit
// used for draft and wager ids.
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}

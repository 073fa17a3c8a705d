package streak

import "time"

// DateLayout is the calendar day key format. Keys in this format order
// lexicographically, so plain string comparison is date comparison.
const DateLayout = "2006-01-02"

// Clock supplies the current local calendar day. Injected everywhere instead
// of ambient time.Now reads so the engine stays deterministic under test.
type Clock interface {
	Today() string
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Loc: loc}
}

func (c SystemClock) Today() string {
	return time.Now().In(c.Loc).Format(DateLayout)
}

// FixedClock always reports the same day. Test helper.
type FixedClock string

func (c FixedClock) Today() string { return string(c) }

// ValidKey reports whether s parses as a YYYY-MM-DD day key.
func ValidKey(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// PrevDay returns the day key one calendar day before key.
// Returns an empty string if key is malformed.
func PrevDay(key string) string {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

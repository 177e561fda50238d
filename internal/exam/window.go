package exam

import (
	"fmt"
	"time"
)

// Window is the clock-hour range during which finalization is accepted.
// StartHour is inclusive, EndHour exclusive (10–18 means 10:00:00 up to
// 17:59:59 local time).
type Window struct {
	StartHour int
	EndHour   int
}

// Allows reports whether t falls inside the window.
func (w Window) Allows(t time.Time) bool {
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

func (w Window) String() string {
	return fmt.Sprintf("%02d:00–%02d:00", w.StartHour, w.EndHour)
}

// OutsideWindowError is the local rejection of a submission attempted
// outside the allowed window. No remote call was made and the session
// was not finalized.
type OutsideWindowError struct {
	Window Window
	Locked bool
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("test submissions are only allowed between %s", e.Window)
}

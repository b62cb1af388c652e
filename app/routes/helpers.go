package routes

import "time"

// clock is one reading of the current-time page.
type clock struct {
	RFC3339 string `json:"rfc3339"`
	Display string `json:"display"`
}

func newClock(t time.Time) clock {
	return clock{
		RFC3339: t.Format(time.RFC3339),
		Display: t.Format("15:04:05"),
	}
}

package holiday

import "time"

// Holiday is a public holiday from the national calendar.
type Holiday struct {
	Date time.Time
	Name string
}

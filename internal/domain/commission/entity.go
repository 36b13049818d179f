package commission

import "time"

// DefaultPercentage is stored on the first read when no settings exist.
const DefaultPercentage = 10.0

// Settings is the singleton commission record.
type Settings struct {
	Percentage float64
	UpdatedAt  time.Time
}

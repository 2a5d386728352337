package domain

// Default values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultBufferMinutes       = 0
)

// Business validation constants
const (
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 720 // 12 hours
	MaxBufferMinutes       = 240
	MinIntervalMinutes     = 5
	MaxIntervalMinutes     = 240
	MaxDateRangeDays       = 31
	MaxResourcesPerRequest = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

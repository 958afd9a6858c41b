package model

import "time"

// Setting is one key-value row of application settings.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

package model

import "time"

// WindowKind identifies one of the three quota granularities.
type WindowKind string

const (
	WindowMinute WindowKind = "minute"
	WindowDay    WindowKind = "day"
	WindowMonth  WindowKind = "month"
)

// WindowKinds lists the kinds in checking order, tightest first.
func WindowKinds() []WindowKind {
	return []WindowKind{WindowMinute, WindowDay, WindowMonth}
}

// Valid reports whether k is one of the known window kinds.
func (k WindowKind) Valid() bool {
	switch k {
	case WindowMinute, WindowDay, WindowMonth:
		return true
	}
	return false
}

// UsageCounter is one row of the usage ledger: the number of admitted
// requests for a credential within a single window.
type UsageCounter struct {
	ID           int64
	CredentialID int64
	Kind         WindowKind
	WindowStart  time.Time
	Count        int64
	UpdatedAt    time.Time
}

package domain

import "time"

// ScanLogCapacity bounds Project.ScanEvents.
const ScanLogCapacity = 100

type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
	DeviceBot     Device = "bot"
	DeviceUnknown Device = "unknown"
)

// ScanEvent is one pass through /track.
type ScanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    Device    `json:"device"`
	IP        string    `json:"ip"`
	Location  *Location `json:"location,omitempty"`
}

// Location is best effort and absent when the lookup failed or was skipped.
type Location struct {
	City    string  `json:"city,omitempty"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// AppendScanEvent returns a new slice with ev appended, trimmed from the
// front to ScanLogCapacity. events is never modified.
func AppendScanEvent(events []ScanEvent, ev ScanEvent) []ScanEvent {
	start := 0
	if n := len(events) + 1; n > ScanLogCapacity {
		start = n - ScanLogCapacity
	}

	out := make([]ScanEvent, 0, min(len(events)+1, ScanLogCapacity))
	out = append(out, events[start:]...)
	return append(out, ev)
}

package entity

import (
	"time"
)

// AvailabilityWindow marks a worker/location time slot as reserved. Rows are
// created at assignment time and never mutated. No two non-available windows
// for the same worker or the same location may overlap.
type AvailabilityWindow struct {
	ID          uint      `json:"id"`
	WorkerID    uint      `json:"workerId"`
	LocationID  uint      `json:"locationId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TimeWindow is a caller-supplied interval, interpreted in the configured
// civil-time offset before comparison and storage.
type TimeWindow struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

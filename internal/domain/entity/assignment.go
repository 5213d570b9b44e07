package entity

import (
	"time"
)

// AssignmentStatus is the lifecycle state of a patrol assignment.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// Priority of a patrol assignment.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Assignment is the planned work order for a worker across one or more
// locations over a time window.
type Assignment struct {
	ID                       uint             `json:"id"`
	WorkerID                 uint             `json:"workerId"`
	AssignedBy               uint             `json:"assignedBy"`
	ShiftName                string           `json:"shiftName"`
	StartDate                time.Time        `json:"startDate"`
	EndDate                  time.Time        `json:"endDate"`
	ExpectedStartTime        time.Time        `json:"expectedStartTime"`
	ExpectedEndTime          time.Time        `json:"expectedEndTime"`
	EstimatedDurationMinutes int              `json:"estimatedDurationMinutes"`
	Priority                 Priority         `json:"priority"`
	Status                   AssignmentStatus `json:"status"`
	Instructions             string           `json:"instructions"`
	CreatedAt                time.Time        `json:"createdAt"`
	UpdatedAt                time.Time        `json:"updatedAt"`

	Locations []AssignmentLocation `json:"locations,omitempty"`
	Sessions  []PatrolSession      `json:"sessions,omitempty"`
}

// AssignmentLocation links an assignment to one location of the catalog,
// optionally with the checkpoints the worker is expected to visit there.
type AssignmentLocation struct {
	ID                      uint   `json:"id"`
	AssignmentID            uint   `json:"assignmentId"`
	LocationID              uint   `json:"locationId"`
	IsMandatory             bool   `json:"isMandatory"`
	ExpectedDurationMinutes int    `json:"expectedDurationMinutes"`
	SpecialInstructions     string `json:"specialInstructions"`

	Location    *Location    `json:"location,omitempty"`
	Checkpoints []Checkpoint `json:"checkpoints,omitempty"`
}

// Location is a catalog row owned by the location service; the core only
// reads it for projections.
type Location struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Checkpoint is a catalog row owned by the location service.
type Checkpoint struct {
	ID         uint    `json:"id"`
	LocationID uint    `json:"locationId"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

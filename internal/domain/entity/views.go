package entity

import (
	"time"
)

// AssignmentView is the flattened projection returned to workers and admins,
// matching the shape produced by the assignment listing endpoints.
type AssignmentView struct {
	AssignmentID             uint                     `json:"assignmentId"`
	ShiftName                string                   `json:"shiftName"`
	StartDate                time.Time                `json:"startDate"`
	EndDate                  time.Time                `json:"endDate"`
	ExpectedStartTime        time.Time                `json:"expectedStartTime"`
	ExpectedEndTime          time.Time                `json:"expectedEndTime"`
	EstimatedDurationMinutes int                      `json:"estimatedDurationMinutes"`
	Priority                 Priority                 `json:"priority"`
	Status                   AssignmentStatus         `json:"status"`
	Instructions             string                   `json:"instructions"`
	CreatedAt                time.Time                `json:"createdAt"`
	Locations                []AssignmentLocationView `json:"locations"`
}

// PatrolView extends AssignmentView with the latest session and its
// checkpoint visit history.
type PatrolView struct {
	AssignmentView
	SessionID                 *uint                 `json:"sessionId,omitempty"`
	SessionDate               *time.Time            `json:"sessionDate,omitempty"`
	StartedAt                 *time.Time            `json:"startedAt,omitempty"`
	ProgressPercentage        *int                  `json:"progressPercentage,omitempty"`
	CompletedCheckpointsCount *int                  `json:"completedCheckpointsCount,omitempty"`
	CheckpointVisits          []CheckpointVisitView `json:"checkpointVisits"`
}

// AssignmentLocationView carries location detail with its checkpoints.
type AssignmentLocationView struct {
	AssignmentLocationID    uint             `json:"assignmentLocationId"`
	LocationID              uint             `json:"locationId"`
	Name                    string           `json:"name"`
	Latitude                float64          `json:"latitude"`
	Longitude               float64          `json:"longitude"`
	IsMandatory             bool             `json:"isMandatory"`
	ExpectedDurationMinutes int              `json:"expectedDurationMinutes"`
	SpecialInstructions     string           `json:"specialInstructions"`
	Checkpoints             []CheckpointView `json:"checkpoints"`
}

// CheckpointView is the catalog detail of one checkpoint.
type CheckpointView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CheckpointVisitView is one visit joined with its checkpoint detail.
type CheckpointVisitView struct {
	CheckpointID uint        `json:"checkpointId"`
	Name         string      `json:"name"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	Status       VisitStatus `json:"status"`
}

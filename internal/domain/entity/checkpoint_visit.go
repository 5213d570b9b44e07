package entity

import (
	"time"
)

// VisitStatus is the state of a single checkpoint visit. A visit is a
// 2-state machine: arrived -> completed.
type VisitStatus string

const (
	VisitArrived   VisitStatus = "arrived"
	VisitCompleted VisitStatus = "completed"
)

// GeofenceStatus is supplied by the caller, never computed here.
type GeofenceStatus string

const (
	GeofenceInside  GeofenceStatus = "inside"
	GeofenceOutside GeofenceStatus = "outside"
)

// CheckpointVisit is one arrival-to-departure record at a checkpoint within
// a session. A worker may revisit the same checkpoint, producing multiple
// visit rows.
type CheckpointVisit struct {
	ID                   uint           `json:"id"`
	SessionID            uint           `json:"sessionId"`
	AssignmentLocationID uint           `json:"assignmentLocationId"`
	CheckpointID         uint           `json:"checkpointId"`
	ArrivedAt            time.Time      `json:"arrivedAt"`
	DepartedAt           *time.Time     `json:"departedAt,omitempty"`
	Status               VisitStatus    `json:"status"`
	GeofenceStatus       GeofenceStatus `json:"geofenceStatus"`
	DurationMinutes      *int           `json:"durationMinutes,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`

	Checkpoint *Checkpoint `json:"checkpoint,omitempty"`
}

package entity

import (
	"time"
)

// SessionStatus is the lifecycle state of a patrol session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	// SessionPaused is a reserved state: no operation currently transitions
	// into or out of it.
	SessionPaused    SessionStatus = "paused"
	SessionAbandoned SessionStatus = "abandoned"
	SessionCompleted SessionStatus = "completed"
)

// PatrolSession is one continuous execution attempt of an assignment.
// Restarting an abandoned patrol reuses the same session row.
type PatrolSession struct {
	ID                        uint          `json:"id"`
	AssignmentID              uint          `json:"assignmentId"`
	WorkerID                  uint          `json:"workerId"`
	SessionDate               time.Time     `json:"sessionDate"`
	StartedAt                 time.Time     `json:"startedAt"`
	EndedAt                   *time.Time    `json:"endedAt,omitempty"`
	Status                    SessionStatus `json:"status"`
	ProgressPercentage        int           `json:"progressPercentage"`
	CompletedCheckpointsCount int           `json:"completedCheckpointsCount"`
	EndLatitude               *float64      `json:"endLatitude,omitempty"`
	EndLongitude              *float64      `json:"endLongitude,omitempty"`
	TotalDurationMinutes      *int          `json:"totalDurationMinutes,omitempty"`
	CreatedAt                 time.Time     `json:"createdAt"`
	UpdatedAt                 time.Time     `json:"updatedAt"`

	Visits []CheckpointVisit `json:"visits,omitempty"`
}

package usecase

import (
	"patroltrack-service/internal/domain/entity"
)

// buildAssignmentView flattens an assignment with its location and
// checkpoint detail into the listing projection.
func buildAssignmentView(assignment entity.Assignment) entity.AssignmentView {
	view := entity.AssignmentView{
		AssignmentID:             assignment.ID,
		ShiftName:                assignment.ShiftName,
		StartDate:                assignment.StartDate,
		EndDate:                  assignment.EndDate,
		ExpectedStartTime:        assignment.ExpectedStartTime,
		ExpectedEndTime:          assignment.ExpectedEndTime,
		EstimatedDurationMinutes: assignment.EstimatedDurationMinutes,
		Priority:                 assignment.Priority,
		Status:                   assignment.Status,
		Instructions:             assignment.Instructions,
		CreatedAt:                assignment.CreatedAt,
		Locations:                []entity.AssignmentLocationView{},
	}

	for _, loc := range assignment.Locations {
		locView := entity.AssignmentLocationView{
			AssignmentLocationID:    loc.ID,
			LocationID:              loc.LocationID,
			IsMandatory:             loc.IsMandatory,
			ExpectedDurationMinutes: loc.ExpectedDurationMinutes,
			SpecialInstructions:     loc.SpecialInstructions,
			Checkpoints:             []entity.CheckpointView{},
		}
		if loc.Location != nil {
			locView.Name = loc.Location.Name
			locView.Latitude = loc.Location.Latitude
			locView.Longitude = loc.Location.Longitude
		}
		for _, cp := range loc.Checkpoints {
			locView.Checkpoints = append(locView.Checkpoints, entity.CheckpointView{
				ID:        cp.ID,
				Name:      cp.Name,
				Latitude:  cp.Latitude,
				Longitude: cp.Longitude,
			})
		}
		view.Locations = append(view.Locations, locView)
	}
	return view
}

// buildPatrolView extends the assignment projection with the latest session
// and its checkpoint visit history.
func buildPatrolView(assignment entity.Assignment) entity.PatrolView {
	view := entity.PatrolView{
		AssignmentView:   buildAssignmentView(assignment),
		CheckpointVisits: []entity.CheckpointVisitView{},
	}

	if len(assignment.Sessions) == 0 {
		return view
	}

	// Sessions are preloaded latest first.
	session := assignment.Sessions[0]
	view.SessionID = &session.ID
	view.SessionDate = &session.SessionDate
	view.StartedAt = &session.StartedAt
	view.ProgressPercentage = &session.ProgressPercentage
	view.CompletedCheckpointsCount = &session.CompletedCheckpointsCount

	for _, visit := range session.Visits {
		visitView := entity.CheckpointVisitView{
			CheckpointID: visit.CheckpointID,
			Status:       visit.Status,
		}
		if visit.Checkpoint != nil {
			visitView.Name = visit.Checkpoint.Name
			visitView.Latitude = visit.Checkpoint.Latitude
			visitView.Longitude = visit.Checkpoint.Longitude
		}
		view.CheckpointVisits = append(view.CheckpointVisits, visitView)
	}
	return view
}

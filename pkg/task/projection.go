package task

import (
	"time"

	"github.com/gatherly/event-manager/pkg/model"
)

// Projection is the task view returned to callers and published to the
// event's room, with the assignee reduced to name and email.
// swagger:model
type Projection struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Deadline         time.Time          `json:"deadline"`
	Status           string             `json:"status"`
	EventID          uint               `json:"eventId"`
	AssignedAttendee AttendeeProjection `json:"assignedAttendee"`
}

type AttendeeProjection struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func project(task *model.Task) *Projection {
	projection := &Projection{
		ID:       task.ID,
		Name:     task.Name,
		Deadline: task.Deadline,
		Status:   task.Status,
		EventID:  task.EventID,
	}

	if task.AssignedAttendee != nil {
		projection.AssignedAttendee = AttendeeProjection{
			ID:    task.AssignedAttendee.ID,
			Name:  task.AssignedAttendee.Name,
			Email: task.AssignedAttendee.Email,
		}
	}

	return projection
}

package event

import (
	"time"

	"github.com/gatherly/event-manager/pkg/model"
)

// Projection is the event view returned to callers, with each attendee
// reduced to id, name and email.
// swagger:model
type Projection struct {
	ID           uint                 `json:"id"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Date         time.Time            `json:"date"`
	Location     string               `json:"location"`
	CreatedByID  uint                 `json:"createdById"`
	Attendees    []AttendeeProjection `json:"attendees"`
	Illustration string               `json:"illustration"`
	Category     string               `json:"category,omitempty"`
	Tags         []string             `json:"tags"`
}

type AttendeeProjection struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func project(event *model.Event) *Projection {
	attendees := make([]AttendeeProjection, len(event.Attendees))
	for i, attendee := range event.Attendees {
		attendees[i] = AttendeeProjection{
			ID:    attendee.ID,
			Name:  attendee.Name,
			Email: attendee.Email,
		}
	}

	return &Projection{
		ID:           event.ID,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
		Name:         event.Name,
		Description:  event.Description,
		Date:         event.Date,
		Location:     event.Location,
		CreatedByID:  event.CreatedByID,
		Attendees:    attendees,
		Illustration: event.Illustration,
		Category:     event.Category,
		Tags:         event.Tags,
	}
}

func projectAll(events []*model.Event) []*Projection {
	projections := make([]*Projection, len(events))
	for i, event := range events {
		projections[i] = project(event)
	}
	return projections
}

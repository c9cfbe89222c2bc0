package model

import "time"

// Event domain object defining an event
// swagger:model
type Event struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	CreatedByID  uint      `json:"createdById"`
	CreatedBy    *User     `json:"-"`
	Attendees    []User    `gorm:"many2many:event_attendees;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"attendees"`
	Illustration string    `gorm:"default:conference" json:"illustration"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
}

// IsCompleted reports whether the event lies in the past. Completed events are
// mutation locked, no field, attendee or task of a completed event may change.
func (e *Event) IsCompleted(now time.Time) bool {
	return e.Date.Before(now)
}

func (e *Event) HasAttendee(userID uint) bool {
	for _, attendee := range e.Attendees {
		if attendee.ID == userID {
			return true
		}
	}
	return false
}

package model

import "time"

const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

// Task domain object defining a task belonging to an event
// swagger:model
type Task struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Name               string    `json:"name"`
	Deadline           time.Time `json:"deadline"`
	Status             string    `gorm:"default:Pending" json:"status"`
	EventID            uint      `gorm:"index" json:"eventId"`
	AssignedAttendeeID uint      `json:"assignedAttendeeId"`
	AssignedAttendee   *User     `json:"assignedAttendee,omitempty"`
}

func (t *Task) IsAssignedTo(userID uint) bool {
	return t.AssignedAttendeeID == userID
}

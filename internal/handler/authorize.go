package handler

import (
	"github.com/gatherly/event-manager/pkg/model"
)

// Authorization policy for events and tasks, evaluated once per operation.
// Administrators may mutate anything; regular users only read events they
// attend and only touch tasks assigned to them. The completed event lock is a
// separate temporal check, see [model.Event.IsCompleted].

func CanReadEvent(user *model.User, event *model.Event) bool {
	return user.IsAdministrator() || event.HasAttendee(user.ID)
}

func CanMutateEvent(user *model.User) bool {
	return user.IsAdministrator()
}

func CanCreateTask(user *model.User) bool {
	return user.IsAdministrator()
}

func CanUpdateTask(user *model.User, task *model.Task) bool {
	return user.IsAdministrator() || task.IsAssignedTo(user.ID)
}

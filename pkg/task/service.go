package task

import (
	"math"
	"time"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gatherly/event-manager/pkg/realtime"
)

func NewService(taskRepository taskRepository, userService userService, notifier notifier) *Service {
	return &Service{
		repository:  taskRepository,
		userService: userService,
		notifier:    notifier,
	}
}

type taskRepository interface {
	create(task *model.Task) error
	save(task *model.Task) error
	findById(id uint) (*model.Task, error)
	findAllByEvent(eventID uint) ([]*model.Task, error)
	findAllByEventAndAssignee(eventID uint, userID uint) ([]*model.Task, error)
	countByEvent(eventID uint) (int64, error)
	countByEventAndStatus(eventID uint, status string) (int64, error)
	findEventById(id uint) (*model.Event, error)
}

type userService interface {
	FindById(id uint) (*model.User, error)
}

type notifier interface {
	Publish(roomID uint, event realtime.Event)
}

type Service struct {
	repository  taskRepository
	userService userService
	notifier    notifier
}

type CreateTask struct {
	Name               string
	Deadline           time.Time
	EventID            uint
	AssignedAttendeeID uint
}

// Create stores a new pending task and announces it to the event's room. The
// room is only notified once the task is durably stored.
func (s *Service) Create(create CreateTask, actor *model.User) (*Projection, error) {
	event, err := s.repository.findEventById(create.EventID)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewNotFound("event not found")
		}
		return nil, err
	}

	if event.IsCompleted(time.Now()) {
		return nil, errdef.NewForbidden("cannot add tasks to a completed event")
	}

	if !handler.CanCreateTask(actor) {
		return nil, errdef.NewForbidden("user not authorized to create tasks")
	}

	assignee, err := s.userService.FindById(create.AssignedAttendeeID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		Name:               create.Name,
		Deadline:           create.Deadline,
		Status:             model.TaskStatusPending,
		EventID:            create.EventID,
		AssignedAttendeeID: assignee.ID,
		AssignedAttendee:   assignee,
	}

	err = s.repository.create(task)
	if err != nil {
		return nil, err
	}

	projection := project(task)
	s.notifier.Publish(task.EventID, realtime.Event{Type: "task-created", Payload: projection})

	return projection, nil
}

// FindAllByEvent returns every task of the event for administrators and only
// the tasks assigned to the actor for regular users.
func (s *Service) FindAllByEvent(eventID uint, actor *model.User) ([]*Projection, error) {
	var tasks []*model.Task
	var err error

	if actor.IsAdministrator() {
		tasks, err = s.repository.findAllByEvent(eventID)
	} else {
		tasks, err = s.repository.findAllByEventAndAssignee(eventID, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	projections := make([]*Projection, len(tasks))
	for i, task := range tasks {
		projections[i] = project(task)
	}
	return projections, nil
}

// UpdateStatus transitions the task between Pending and Completed and
// announces the change to the event's room.
//
// Two concurrent updates of the same task are a last-write-wins race. The
// storage layer applies each write atomically so the row never corrupts, the
// later commit simply overwrites the earlier one.
func (s *Service) UpdateStatus(id uint, status string, actor *model.User) (*Projection, error) {
	if status != model.TaskStatusPending && status != model.TaskStatusCompleted {
		return nil, errdef.NewBadRequest("invalid status provided")
	}

	task, err := s.repository.findById(id)
	if err != nil {
		return nil, err
	}

	event, err := s.repository.findEventById(task.EventID)
	if err != nil {
		return nil, err
	}

	if event.IsCompleted(time.Now()) {
		return nil, errdef.NewForbidden("cannot update tasks for a completed event")
	}

	if !handler.CanUpdateTask(actor, task) {
		return nil, errdef.NewForbidden("user not authorized")
	}

	task.Status = status
	err = s.repository.save(task)
	if err != nil {
		return nil, err
	}

	projection := project(task)
	s.notifier.Publish(task.EventID, realtime.Event{Type: "task-updated", Payload: projection})

	return projection, nil
}

// Progress returns the percentage of the event's tasks that are completed,
// rounded to the nearest integer. An event without tasks is at 0.
func (s *Service) Progress(eventID uint) (int, error) {
	total, err := s.repository.countByEvent(eventID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	completed, err := s.repository.countByEventAndStatus(eventID, model.TaskStatusCompleted)
	if err != nil {
		return 0, err
	}

	return int(math.Round(float64(completed) / float64(total) * 100)), nil
}

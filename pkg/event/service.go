package event

import (
	"time"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
)

func NewService(eventRepository eventRepository, userService userService) *Service {
	return &Service{
		repository:  eventRepository,
		userService: userService,
	}
}

type eventRepository interface {
	create(event *model.Event) error
	save(event *model.Event) error
	findAll() ([]*model.Event, error)
	findAllByAttendee(userID uint) ([]*model.Event, error)
	findById(id uint) (*model.Event, error)
	delete(event *model.Event) error
	addAttendee(event *model.Event, user *model.User) error
	removeAttendee(event *model.Event, user *model.User) error
}

type userService interface {
	FindById(id uint) (*model.User, error)
}

type Service struct {
	repository  eventRepository
	userService userService
}

// CreateEvent describes a new event. All fields but Category and Tags are
// required, enforced by the handler's binding.
type CreateEvent struct {
	Name         string
	Description  string
	Date         time.Time
	Location     string
	Illustration string
	Category     string
	Tags         []string
}

// Create stores a new event with the creator as its first attendee.
func (s *Service) Create(create CreateEvent, creator *model.User) (*model.Event, error) {
	if !handler.CanMutateEvent(creator) {
		return nil, errdef.NewUnauthorized("user not authorized")
	}

	event := &model.Event{
		Name:         create.Name,
		Description:  create.Description,
		Date:         create.Date,
		Location:     create.Location,
		CreatedByID:  creator.ID,
		Attendees:    []model.User{*creator},
		Illustration: create.Illustration,
		Category:     create.Category,
		Tags:         create.Tags,
	}

	err := s.repository.create(event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// FindAll returns every event for administrators and only attended events for
// regular users.
func (s *Service) FindAll(actor *model.User) ([]*model.Event, error) {
	if actor.IsAdministrator() {
		return s.repository.findAll()
	}
	return s.repository.findAllByAttendee(actor.ID)
}

func (s *Service) FindById(id uint, actor *model.User) (*model.Event, error) {
	event, err := s.repository.findById(id)
	if err != nil {
		return nil, err
	}

	if !handler.CanReadEvent(actor, event) {
		return nil, errdef.NewUnauthorized("user not authorized")
	}

	return event, nil
}

// UpdateEvent carries the mutable event fields. Zero valued fields are left
// untouched.
type UpdateEvent struct {
	Name         string
	Description  string
	Date         time.Time
	Location     string
	Illustration string
	Category     string
	Tags         []string
}

func (s *Service) Update(id uint, update UpdateEvent, actor *model.User) (*model.Event, error) {
	event, err := s.guardMutation(id, actor)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		event.Name = update.Name
	}
	if update.Description != "" {
		event.Description = update.Description
	}
	if !update.Date.IsZero() {
		event.Date = update.Date
	}
	if update.Location != "" {
		event.Location = update.Location
	}
	if update.Illustration != "" {
		event.Illustration = update.Illustration
	}
	if update.Category != "" {
		event.Category = update.Category
	}
	if update.Tags != nil {
		event.Tags = update.Tags
	}

	err = s.repository.save(event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) Delete(id uint, actor *model.User) error {
	event, err := s.guardMutation(id, actor)
	if err != nil {
		return err
	}

	return s.repository.delete(event)
}

func (s *Service) AddAttendee(id uint, userID uint, actor *model.User) (*model.Event, error) {
	event, err := s.guardMutation(id, actor)
	if err != nil {
		return nil, err
	}

	user, err := s.userService.FindById(userID)
	if err != nil {
		return nil, err
	}

	if event.HasAttendee(user.ID) {
		return nil, errdef.NewConflict("attendee already added")
	}

	err = s.repository.addAttendee(event, user)
	if err != nil {
		return nil, err
	}

	return s.repository.findById(id)
}

// RemoveAttendee is idempotent. The user is not looked up first, removing an
// absent attendee or an id no user has is a no-op.
func (s *Service) RemoveAttendee(id uint, userID uint, actor *model.User) (*model.Event, error) {
	event, err := s.guardMutation(id, actor)
	if err != nil {
		return nil, err
	}

	err = s.repository.removeAttendee(event, &model.User{ID: userID})
	if err != nil {
		return nil, err
	}

	return s.repository.findById(id)
}

// guardMutation loads the event and applies the mutation policy. The
// completed event lock is checked before the role so a past event reports
// "event completed" to administrators and regular users alike.
func (s *Service) guardMutation(id uint, actor *model.User) (*model.Event, error) {
	event, err := s.repository.findById(id)
	if err != nil {
		return nil, err
	}

	if event.IsCompleted(time.Now()) {
		return nil, errdef.NewForbidden("cannot modify a completed event")
	}

	if !handler.CanMutateEvent(actor) {
		return nil, errdef.NewUnauthorized("user not authorized")
	}

	return event, nil
}

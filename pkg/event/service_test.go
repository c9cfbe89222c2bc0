package event

import (
	"testing"
	"time"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	admin    = &model.User{ID: 1, Name: "Ada", Email: "ada@gatherly.test", Role: model.RoleAdministrator}
	attendee = &model.User{ID: 2, Name: "Ben", Email: "ben@gatherly.test", Role: model.RoleUser}
	outsider = &model.User{ID: 3, Name: "Cem", Email: "cem@gatherly.test", Role: model.RoleUser}
)

func futureEvent() *model.Event {
	return &model.Event{
		ID:        1,
		Name:      "Sprint Review",
		Date:      time.Now().Add(24 * time.Hour),
		Attendees: []model.User{*admin, *attendee},
	}
}

func completedEvent() *model.Event {
	event := futureEvent()
	event.Date = time.Now().Add(-24 * time.Hour)
	return event
}

func TestService_Create(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("create", mock.AnythingOfType("*model.Event")).
		Return(nil)
	service := NewService(repository, &mockUserService{})

	event, err := service.Create(CreateEvent{
		Name:        "Sprint Review",
		Description: "End of sprint demo",
		Date:        time.Now().Add(24 * time.Hour),
		Location:    "Room 3",
	}, admin)

	require.NoError(t, err)
	require.Len(t, event.Attendees, 1)
	assert.Equal(t, admin.ID, event.Attendees[0].ID)
	assert.Equal(t, admin.ID, event.CreatedByID)
	repository.AssertExpectations(t)
}

func TestService_Create_NotAdministrator(t *testing.T) {
	service := NewService(&mockEventRepository{}, &mockUserService{})

	_, err := service.Create(CreateEvent{Name: "Sprint Review"}, attendee)

	assert.True(t, errdef.IsUnauthorized(err))
}

func TestService_FindAll_Administrator(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findAll").
		Return([]*model.Event{futureEvent()}, nil)
	service := NewService(repository, &mockUserService{})

	events, err := service.FindAll(admin)

	require.NoError(t, err)
	assert.Len(t, events, 1)
	repository.AssertExpectations(t)
}

func TestService_FindAll_RegularUserOnlySeesAttendedEvents(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findAllByAttendee", attendee.ID).
		Return([]*model.Event{futureEvent()}, nil)
	service := NewService(repository, &mockUserService{})

	events, err := service.FindAll(attendee)

	require.NoError(t, err)
	assert.Len(t, events, 1)
	repository.AssertExpectations(t)
}

func TestService_FindById(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	service := NewService(repository, &mockUserService{})

	tests := map[string]struct {
		actor   *model.User
		wantErr bool
	}{
		"Administrator": {admin, false},
		"Attendee":      {attendee, false},
		"Outsider":      {outsider, true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			event, err := service.FindById(1, test.actor)
			if test.wantErr {
				assert.True(t, errdef.IsUnauthorized(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), event.ID)
			}
		})
	}
}

func TestService_FindById_NotFound(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(42)).
		Return(nil, errdef.NewNotFound("event not found"))
	service := NewService(repository, &mockUserService{})

	_, err := service.FindById(42, admin)

	assert.True(t, errdef.IsNotFound(err))
}

func TestService_Update(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	repository.
		On("save", mock.AnythingOfType("*model.Event")).
		Return(nil)
	service := NewService(repository, &mockUserService{})

	event, err := service.Update(1, UpdateEvent{Location: "Room 5"}, admin)

	require.NoError(t, err)
	assert.Equal(t, "Room 5", event.Location)
	assert.Equal(t, "Sprint Review", event.Name, "unset fields stay untouched")
	repository.AssertExpectations(t)
}

func TestService_Update_CompletedEvent(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(completedEvent(), nil)
	service := NewService(repository, &mockUserService{})

	// the temporal lock applies to administrators too
	_, err := service.Update(1, UpdateEvent{Location: "Room 5"}, admin)

	assert.True(t, errdef.IsForbidden(err))
	assert.EqualError(t, err, "cannot modify a completed event")
}

func TestService_Update_NotAdministrator(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	service := NewService(repository, &mockUserService{})

	_, err := service.Update(1, UpdateEvent{Location: "Room 5"}, attendee)

	assert.True(t, errdef.IsUnauthorized(err))
}

func TestService_Update_CompletedCheckedBeforeRole(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(completedEvent(), nil)
	service := NewService(repository, &mockUserService{})

	_, err := service.Update(1, UpdateEvent{}, outsider)

	assert.True(t, errdef.IsForbidden(err))
	assert.EqualError(t, err, "cannot modify a completed event")
}

func TestService_Delete(t *testing.T) {
	event := futureEvent()
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(event, nil)
	repository.
		On("delete", event).
		Return(nil)
	service := NewService(repository, &mockUserService{})

	err := service.Delete(1, admin)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_Delete_CompletedEvent(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(completedEvent(), nil)
	service := NewService(repository, &mockUserService{})

	err := service.Delete(1, admin)

	assert.True(t, errdef.IsForbidden(err))
	repository.AssertNotCalled(t, "delete", mock.Anything)
}

func TestService_AddAttendee(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	repository.
		On("addAttendee", mock.AnythingOfType("*model.Event"), outsider).
		Return(nil)
	userService := &mockUserService{}
	userService.
		On("FindById", outsider.ID).
		Return(outsider, nil)
	service := NewService(repository, userService)

	_, err := service.AddAttendee(1, outsider.ID, admin)

	require.NoError(t, err)
	repository.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestService_AddAttendee_AlreadyAdded(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	userService := &mockUserService{}
	userService.
		On("FindById", attendee.ID).
		Return(attendee, nil)
	service := NewService(repository, userService)

	_, err := service.AddAttendee(1, attendee.ID, admin)

	assert.True(t, errdef.IsConflict(err))
	repository.AssertNotCalled(t, "addAttendee", mock.Anything, mock.Anything)
}

func TestService_AddAttendee_UnknownUser(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	userService := &mockUserService{}
	userService.
		On("FindById", uint(99)).
		Return(nil, errdef.NewNotFound("failed to find user with id 99"))
	service := NewService(repository, userService)

	_, err := service.AddAttendee(1, 99, admin)

	assert.True(t, errdef.IsNotFound(err))
}

func TestService_RemoveAttendee(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	repository.
		On("removeAttendee", mock.AnythingOfType("*model.Event"), &model.User{ID: attendee.ID}).
		Return(nil)
	service := NewService(repository, &mockUserService{})

	_, err := service.RemoveAttendee(1, attendee.ID, admin)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_RemoveAttendee_Idempotent(t *testing.T) {
	repository := &mockEventRepository{}
	repository.
		On("findById", uint(1)).
		Return(futureEvent(), nil)
	repository.
		On("removeAttendee", mock.AnythingOfType("*model.Event"), mock.AnythingOfType("*model.User")).
		Return(nil)
	userService := &mockUserService{}
	service := NewService(repository, userService)

	// outsider is not an attendee and id 999 belongs to no user, removing
	// either is still a success
	_, err := service.RemoveAttendee(1, outsider.ID, admin)
	require.NoError(t, err)

	_, err = service.RemoveAttendee(1, 999, admin)
	require.NoError(t, err)

	userService.AssertNotCalled(t, "FindById", mock.Anything)
	repository.AssertExpectations(t)
}

type mockEventRepository struct{ mock.Mock }

func (m *mockEventRepository) create(event *model.Event) error {
	return m.Called(event).Error(0)
}

func (m *mockEventRepository) save(event *model.Event) error {
	return m.Called(event).Error(0)
}

func (m *mockEventRepository) findAll() ([]*model.Event, error) {
	called := m.Called()
	events, _ := called.Get(0).([]*model.Event)
	return events, called.Error(1)
}

func (m *mockEventRepository) findAllByAttendee(userID uint) ([]*model.Event, error) {
	called := m.Called(userID)
	events, _ := called.Get(0).([]*model.Event)
	return events, called.Error(1)
}

func (m *mockEventRepository) findById(id uint) (*model.Event, error) {
	called := m.Called(id)
	event, _ := called.Get(0).(*model.Event)
	return event, called.Error(1)
}

func (m *mockEventRepository) delete(event *model.Event) error {
	return m.Called(event).Error(0)
}

func (m *mockEventRepository) addAttendee(event *model.Event, user *model.User) error {
	return m.Called(event, user).Error(0)
}

func (m *mockEventRepository) removeAttendee(event *model.Event, user *model.User) error {
	return m.Called(event, user).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) FindById(id uint) (*model.User, error) {
	called := m.Called(id)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

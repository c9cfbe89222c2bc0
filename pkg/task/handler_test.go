package task

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterValidation(); err != nil {
		panic(err)
	}
	m.Run()
}

func newTestContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	request, err := http.NewRequest(method, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	c.Request = request

	c.Set("user", admin)
	return c, recorder
}

func TestHandler_Create(t *testing.T) {
	service := &mockTaskService{}
	service.
		On("Create", mock.AnythingOfType("task.CreateTask"), admin).
		Return(&Projection{ID: 5, Name: "Prepare slides", Status: model.TaskStatusPending}, nil)
	h := NewHandler(service)

	deadline := time.Now().Add(12 * time.Hour).Format(time.RFC3339)
	body, err := json.Marshal(gin.H{
		"name":               "Prepare slides",
		"deadline":           deadline,
		"eventId":            10,
		"assignedAttendeeId": 2,
	})
	require.NoError(t, err)
	c, recorder := newTestContext(t, http.MethodPost, string(body))

	h.Create(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Prepare slides")
	service.AssertExpectations(t)
}

func TestHandler_Create_MissingFields(t *testing.T) {
	service := &mockTaskService{}
	h := NewHandler(service)

	c, _ := newTestContext(t, http.MethodPost, `{"name": "Prepare slides"}`)

	h.Create(c)

	require.NotEmpty(t, c.Errors)
	assert.True(t, errdef.IsBadRequest(c.Errors.Last().Err))
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_UpdateStatus(t *testing.T) {
	service := &mockTaskService{}
	service.
		On("UpdateStatus", uint(5), model.TaskStatusCompleted, admin).
		Return(&Projection{ID: 5, Status: model.TaskStatusCompleted}, nil)
	h := NewHandler(service)

	c, recorder := newTestContext(t, http.MethodPut, `{"status": "Completed"}`)
	c.AddParam("id", "5")

	h.UpdateStatus(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, recorder.Code)
	service.AssertExpectations(t)
}

func TestHandler_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	service := &mockTaskService{}
	h := NewHandler(service)

	c, _ := newTestContext(t, http.MethodPut, `{"status": "Done"}`)
	c.AddParam("id", "5")

	h.UpdateStatus(c)

	require.NotEmpty(t, c.Errors)
	assert.True(t, errdef.IsBadRequest(c.Errors.Last().Err))
	service.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Progress(t *testing.T) {
	service := &mockTaskService{}
	service.
		On("Progress", uint(10)).
		Return(67, nil)
	h := NewHandler(service)

	c, recorder := newTestContext(t, http.MethodGet, "")
	c.AddParam("eventId", "10")

	h.Progress(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"progress": 67}`, recorder.Body.String())
	service.AssertExpectations(t)
}

type mockTaskService struct{ mock.Mock }

func (m *mockTaskService) Create(create CreateTask, actor *model.User) (*Projection, error) {
	called := m.Called(create, actor)
	projection, _ := called.Get(0).(*Projection)
	return projection, called.Error(1)
}

func (m *mockTaskService) FindAllByEvent(eventID uint, actor *model.User) ([]*Projection, error) {
	called := m.Called(eventID, actor)
	projections, _ := called.Get(0).([]*Projection)
	return projections, called.Error(1)
}

func (m *mockTaskService) UpdateStatus(id uint, status string, actor *model.User) (*Projection, error) {
	called := m.Called(id, status, actor)
	projection, _ := called.Get(0).(*Projection)
	return projection, called.Error(1)
}

func (m *mockTaskService) Progress(eventID uint) (int, error) {
	called := m.Called(eventID)
	return called.Int(0), called.Error(1)
}

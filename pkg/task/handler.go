package task

import (
	"net/http"
	"time"

	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(taskService taskService) Handler {
	return Handler{taskService}
}

type Handler struct {
	taskService taskService
}

type taskService interface {
	Create(create CreateTask, actor *model.User) (*Projection, error)
	FindAllByEvent(eventID uint, actor *model.User) ([]*Projection, error)
	UpdateStatus(id uint, status string, actor *model.User) (*Projection, error)
	Progress(eventID uint) (int, error)
}

type CreateTaskRequest struct {
	Name               string    `json:"name" binding:"required"`
	Deadline           time.Time `json:"deadline" binding:"required"`
	EventID            uint      `json:"eventId" binding:"required"`
	AssignedAttendeeID uint      `json:"assignedAttendeeId" binding:"required"`
}

// Create task
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /tasks createTask
	//
	// Create task
	//
	// Create a pending task on an event. Administrators only, and only while
	// the event is not completed. The event's room is notified.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Projection
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateTaskRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.taskService.Create(CreateTask{
		Name:               request.Name,
		Deadline:           request.Deadline,
		EventID:            request.EventID,
		AssignedAttendeeID: request.AssignedAttendeeID,
	}, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// FindAllByEvent tasks
func (h Handler) FindAllByEvent(c *gin.Context) {
	// swagger:route GET /tasks/event/{eventId} listTasksByEvent
	//
	// List tasks
	//
	// List an event's tasks. Administrators see every task, other users only
	// tasks assigned to them.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Projection
	//   400: Error
	//   401: Error
	eventID, ok := handler.GetPathParameter(c, "eventId")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tasks, err := h.taskService.FindAllByEvent(eventID, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneOf=Pending Completed"`
}

// UpdateStatus task
func (h Handler) UpdateStatus(c *gin.Context) {
	// swagger:route PUT /tasks/{id} updateTaskStatus
	//
	// Update task status
	//
	// Transition a task between Pending and Completed. Allowed for
	// administrators and the assigned attendee, and only while the event is
	// not completed. The event's room is notified.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Projection
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request UpdateTaskStatusRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.taskService.UpdateStatus(id, request.Status, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Progress of an event
func (h Handler) Progress(c *gin.Context) {
	// swagger:route GET /tasks/progress/{eventId} getEventProgress
	//
	// Event progress
	//
	// Percentage of the event's tasks that are completed.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Progress
	//   400: Error
	//   401: Error
	eventID, ok := handler.GetPathParameter(c, "eventId")
	if !ok {
		return
	}

	progress, err := h.taskService.Progress(eventID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

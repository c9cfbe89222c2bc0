package event

import (
	"net/http"
	"time"

	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gatherly/event-manager/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(create CreateEvent, creator *model.User) (*model.Event, error)
	FindAll(actor *model.User) ([]*model.Event, error)
	FindById(id uint, actor *model.User) (*model.Event, error)
	Update(id uint, update UpdateEvent, actor *model.User) (*model.Event, error)
	Delete(id uint, actor *model.User) error
	AddAttendee(id uint, userID uint, actor *model.User) (*model.Event, error)
	RemoveAttendee(id uint, userID uint, actor *model.User) (*model.Event, error)
}

type CreateEventRequest struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	Location     string    `json:"location" binding:"required"`
	Illustration string    `json:"illustration" binding:"omitempty,oneOf=conference workshop meeting party webinar"`
	Category     string    `json:"category" binding:"omitempty,oneOf=business social educational"`
	Tags         []string  `json:"tags"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create an event. The creator becomes the first attendee. Administrators only.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Projection
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(CreateEvent{
		Name:         request.Name,
		Description:  request.Description,
		Date:         request.Date,
		Location:     request.Location,
		Illustration: request.Illustration,
		Category:     request.Category,
		Tags:         request.Tags,
	}, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, project(event))
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events listEvents
	//
	// List events
	//
	// Administrators see every event, other users only events they attend.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Projection
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindAll(user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, projectAll(events))
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id, with its attendees. Accessible to
	// administrators and attendees of the event.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Projection
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.FindById(id, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project(event))
}

type UpdateEventRequest struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Illustration string    `json:"illustration" binding:"omitempty,oneOf=conference workshop meeting party webinar"`
	Category     string    `json:"category" binding:"omitempty,oneOf=business social educational"`
	Tags         []string  `json:"tags"`
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event. Administrators only, and only while the event is not
	// completed.
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

	var request UpdateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(id, UpdateEvent{
		Name:         request.Name,
		Description:  request.Description,
		Date:         request.Date,
		Location:     request.Location,
		Illustration: request.Illustration,
		Category:     request.Category,
		Tags:         request.Tags,
	}, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project(event))
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event and every task belonging to it. Administrators only,
	// and only while the event is not completed.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	err = h.eventService.Delete(id, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

type AttendeeRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// AddAttendee event
func (h Handler) AddAttendee(c *gin.Context) {
	// swagger:route POST /events/{id}/attendees addAttendee
	//
	// Add attendee
	//
	// Add a user to the event's attendees. Administrators only, and only
	// while the event is not completed.
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
	//   409: Error
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

	var request AttendeeRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.AddAttendee(id, request.UserID, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project(event))
}

// RemoveAttendee event
func (h Handler) RemoveAttendee(c *gin.Context) {
	// swagger:route DELETE /events/{id}/attendees removeAttendee
	//
	// Remove attendee
	//
	// Remove a user from the event's attendees. Removing a user who is not an
	// attendee is a no-op.
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

	var request AttendeeRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.RemoveAttendee(id, request.UserID, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project(event))
}

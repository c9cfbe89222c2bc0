package realtime

import (
	"io"

	"github.com/gatherly/event-manager/internal/handler"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

func NewHandler(broker broker) Handler {
	return Handler{broker}
}

type Handler struct {
	broker broker
}

type broker interface {
	Join(roomID uint) (uint, <-chan Event)
	Leave(roomID uint, subscriberID uint)
}

// Subscribe streams an event's room
func (h Handler) Subscribe(c *gin.Context) {
	// swagger:route GET /events/{id}/subscribe subscribeEventRoom
	//
	// Stream task events
	//
	// Joins the event's room and streams task-created and task-updated events
	// until the client disconnects.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Stream
	//   400: Error
	//   401: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	subscriberID, events := h.broker.Join(id)
	defer h.broker.Leave(id, subscriberID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-events:
			_ = sse.Encode(w, sse.Event{
				Event: event.Type,
				Data:  event.Payload,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

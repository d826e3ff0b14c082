package handlers

import (
	"context"
	"io"
	"net/http"

	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// ChangeFeed is the subscriber side of the realtime change stream.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan portssvc.ChangeEvent, func())
}

type eventsHandler struct {
	// nil when no broker is configured.
	feed ChangeFeed
}

func newEventsHandler(feed ChangeFeed) *eventsHandler {
	return &eventsHandler{feed: feed}
}

func registerEventRoutes(rg *gin.RouterGroup, feed ChangeFeed) {
	h := newEventsHandler(feed)
	rg.GET("/events/stream", h.stream)
}

// stream godoc
// @Summary      Live change feed
// @Description  Server-sent events announcing entity changes (collection, entity ID, action). Events carry no payload; clients refetch through the read API.
// @Tags         Events
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE stream"
// @Failure      503  {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/stream [get]
func (h *eventsHandler) stream(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Change feed is not configured"})
		return
	}

	events, cancel := h.feed.Subscribe(c.Request.Context())
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

package event

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

func NewHandler(logger *slog.Logger, broker broker, userService userService) Handler {
	return Handler{
		logger:      logger,
		broker:      broker,
		userService: userService,
	}
}

type Handler struct {
	logger      *slog.Logger
	broker      broker
	userService userService
}

type broker interface {
	Subscribe(filter Filter) (string, <-chan Event)
	Unsubscribe(id string)
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

// Stream sends newly created posts as server-sent events. With the userId query parameter only
// posts passing the avoidance checks of that user's preferences are sent.
func (h Handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	var filter Filter
	userID, present, ok := handler.GetOptionalQueryID(c, "userId")
	if !ok {
		return
	}
	if present {
		user, err := h.userService.FindById(ctx, userID)
		if err != nil {
			_ = c.Error(err)
			return
		}

		prefs := user.Preferences()
		filter = func(event Event) bool {
			return visibility.Safe(event.Post, prefs)
		}
	}

	id, events := h.broker.Subscribe(filter)
	defer func() {
		h.broker.Unsubscribe(id)
		h.logger.InfoContext(ctx, "Closing event stream", "subscriber", id)
	}()
	h.logger.InfoContext(ctx, "Opening event stream", "subscriber", id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	// send the headers before the first event so clients know the stream is open
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			// the post id lets reconnecting clients send Last-Event-ID
			c.Render(-1, sse.Event{
				Id:    strconv.FormatUint(uint64(event.Post.ID), 10),
				Event: event.Type,
				Data:  event.Post,
			})
			return true
		}
	})
}

package http

import (
	"fmt"
	"net/http"
	"time"

	"orderflow/internal/core/domain/model/notification"

	"github.com/labstack/echo/v4"
)

const streamKeepAlive = 15 * time.Second

// StreamNotifications handles GET /api/v1/notifications/stream. The session
// joins the caller's user room and role room on every connect; events missed
// while disconnected are picked up from GET /api/v1/notifications.
func (s *Server) StreamNotifications(ctx echo.Context) error {
	actor, err := actorFrom(ctx.Request())
	if err != nil {
		return s.fail(ctx, err)
	}

	session := s.hub.Connect(
		notification.UserTarget(actor.ID()).Room(),
		notification.RoleTarget(actor.Role()).Room(),
	)
	defer session.Close()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-ticker.C:
			if _, err = fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-session.Events():
			if !ok {
				return nil
			}
			if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event.Name, event.Data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
)

// NotificationHandler streams live notifications to the browser.
type NotificationHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewNotificationHandler(hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// Stream holds the connection open and forwards the caller's messages.
// Approvers and admins also receive the admin topic.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	topics := []string{actor.EmployeeID}
	if actor.CanApprove() {
		topics = append(topics, sse.AdminTopic)
	}
	events, cancel := h.hub.Subscribe(topics...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := sse.Write(w, sse.Event{Name: "connected", Data: map[string]string{"employeeId": actor.EmployeeID}}); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := sse.Write(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case t := <-keepalive.C:
			if err := sse.Write(w, sse.Event{Name: "ping", Data: map[string]int64{"timestamp": t.Unix()}}); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

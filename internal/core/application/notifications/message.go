package notifications

import (
	"time"

	"orderflow/internal/core/domain/model/notification"
)

// Message is the JSON shape of a notification on the real-time channel and
// in inbox listings.
type Message struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	CreatedAt time.Time            `json:"createdAt"`
	Priority  string               `json:"priority"`
	Category  string               `json:"category"`
	Target    string               `json:"target"`
	Payload   notification.Payload `json:"payload"`
	ReadAt    *time.Time           `json:"readAt,omitempty"`
}

func NewMessage(n *notification.Notification) Message {
	return Message{
		ID:        n.ID().String(),
		Type:      n.Type(),
		Title:     n.Title(),
		Message:   n.Message(),
		CreatedAt: n.CreatedAt(),
		Priority:  string(n.Priority()),
		Category:  n.Category(),
		Target:    n.Target().String(),
		Payload:   n.Payload(),
	}
}

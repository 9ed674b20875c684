package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationPayload is what the external notifier receives for each new
// alert. The contact snapshot travels with it; delivery is best-effort.
type NotificationPayload struct {
	AlertID   uuid.UUID     `json:"alert_id"`
	Category  AlertCategory `json:"category"`
	Priority  AlertPriority `json:"priority"`
	Location  Location      `json:"location"`
	UserName  string        `json:"user_name"`
	UserPhone string        `json:"user_phone"`
	Contacts  []Contact     `json:"contacts"`
	CreatedAt time.Time     `json:"created_at"`
}

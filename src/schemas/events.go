package schemas

import "time"

const (
	EventSyncCompleted      = "sync.completed"
	EventRemindersGenerated = "reminders.generated"
)

// Event is pushed to websocket clients of the owning user.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	UserID     string      `json:"user_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

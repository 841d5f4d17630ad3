package domain

// Event is pushed to realtime subscribers.
type Event struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification,omitempty"`
}

const EventNotification = "notification"

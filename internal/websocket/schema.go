package websocket

import "encoding/json"

// Actions (Client to Server)

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// Events (Server to Client)

type Event string

const (
	EventError        Event = "error"
	EventConnected    Event = "connected"
	EventNotification Event = "notification"
	EventPong         Event = "pong"
)

// ConnectedResponse confirms the stream is live and reports the unread
// backlog at connect time.
type ConnectedResponse struct {
	Event       Event `json:"event"`
	UnreadCount int   `json:"unread_count"`
}

// NotificationEvent wraps one pushed notification. The payload is the
// serialized inbox entry exactly as published.
type NotificationEvent struct {
	Event   Event           `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

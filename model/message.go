package model

import "time"

// Conversation roles. Only user and assistant turns appear in history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one turn of the conversation history.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

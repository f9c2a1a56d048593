// Package models defines the chat domain types shared across the client.
package models

// Message roles. The backend only ever sees these two values.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message. Messages are immutable once appended to
// a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-authored message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant-authored message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Package models contains domain models for the LLM Gateway Service.
package models

import "time"

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	// RoleSystem represents a system instruction message.
	RoleSystem MessageRole = "system"
	// RoleUser represents a message from the user.
	RoleUser MessageRole = "user"
	// RoleAssistant represents a message from the assistant.
	RoleAssistant MessageRole = "assistant"
)

// IsValid reports whether the role is one of the supported roles.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message represents a single chat message in a conversation.
// Ordering within a conversation is chronological and meaningful.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp,omitempty"`
}

// NewMessage creates a new message with the current UTC timestamp.
func NewMessage(role MessageRole, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// IsSystem returns true if this is a system message.
func (m Message) IsSystem() bool {
	return m.Role == RoleSystem
}

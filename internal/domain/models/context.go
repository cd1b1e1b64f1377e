// Package models contains domain models for the LLM Gateway Service.
package models

import "time"

// DefaultMaxHistory is the default non-system history bound for a conversation.
const DefaultMaxHistory = 10

// ConversationContext owns the ordered message history and metadata for one
// conversation. After any mutation the number of non-system messages never
// exceeds MaxHistory; system messages are never evicted by rotation.
//
// A ConversationContext is exclusively owned by the caller holding the
// (agentID, contextID) pair. The context store persists a serialized copy,
// so the stored and in-memory values are independent after each load/save.
type ConversationContext struct {
	Messages   []Message              `json:"messages"`
	Metadata   map[string]interface{} `json:"metadata"`
	MaxHistory int                    `json:"max_history"`
}

// NewConversationContext creates an empty context with the given history bound.
// Bounds below 1 fall back to DefaultMaxHistory.
func NewConversationContext(maxHistory int) *ConversationContext {
	if maxHistory < 1 {
		maxHistory = DefaultMaxHistory
	}
	return &ConversationContext{
		Messages:   []Message{},
		Metadata:   make(map[string]interface{}),
		MaxHistory: maxHistory,
	}
}

// NewConversationContextWithSystem creates a context seeded with one system message.
func NewConversationContextWithSystem(maxHistory int, systemPrompt string) *ConversationContext {
	c := NewConversationContext(maxHistory)
	c.AddMessage(RoleSystem, systemPrompt)
	return c
}

// AddMessage appends a message to the history and rotates the history when
// the non-system message count exceeds MaxHistory.
func (c *ConversationContext) AddMessage(role MessageRole, content string) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	c.rotate()
}

// rotate trims the history to all system messages plus the newest MaxHistory
// non-system messages, preserving order within each partition.
func (c *ConversationContext) rotate() {
	if c.nonSystemCount() <= c.MaxHistory {
		return
	}

	system := make([]Message, 0, 1)
	rest := make([]Message, 0, len(c.Messages))
	for _, msg := range c.Messages {
		if msg.IsSystem() {
			system = append(system, msg)
		} else {
			rest = append(rest, msg)
		}
	}
	if len(rest) > c.MaxHistory {
		rest = rest[len(rest)-c.MaxHistory:]
	}

	c.Messages = append(system, rest...)
}

func (c *ConversationContext) nonSystemCount() int {
	count := 0
	for _, msg := range c.Messages {
		if !msg.IsSystem() {
			count++
		}
	}
	return count
}

// ProviderMessages returns the history with role and content only, suitable
// for building a provider request payload.
func (c *ConversationContext) ProviderMessages() []Message {
	out := make([]Message, len(c.Messages))
	for i, msg := range c.Messages {
		out[i] = Message{Role: msg.Role, Content: msg.Content}
	}
	return out
}

// SystemPrompt returns the content of the first system message, or "".
func (c *ConversationContext) SystemPrompt() string {
	for _, msg := range c.Messages {
		if msg.IsSystem() {
			return msg.Content
		}
	}
	return ""
}

// SetMetadata sets a metadata value for the conversation.
func (c *ConversationContext) SetMetadata(key string, value interface{}) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]interface{})
	}
	c.Metadata[key] = value
}

// GetMetadata returns a metadata value, or the default when absent.
func (c *ConversationContext) GetMetadata(key string, defaultValue interface{}) interface{} {
	if c.Metadata == nil {
		return defaultValue
	}
	if value, ok := c.Metadata[key]; ok {
		return value
	}
	return defaultValue
}

// Clear removes all messages and metadata from the conversation.
func (c *ConversationContext) Clear() {
	c.Messages = []Message{}
	c.Metadata = make(map[string]interface{})
}

package model

import "time"

// ChatRole is the author of a chat message. Closed enumeration: transcripts
// only ever contain user turns and model turns.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one transcript entry. Messages are append-only: once created
// they are never mutated, the transcript only grows.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

package service

import "errors"

// Service layer errors surfaced to handlers.
var (
	ErrCapsuleNotFound  = errors.New("capsule not found")
	ErrDuplicateCapsule = errors.New("capsule id already exists")
	ErrChatClosed       = errors.New("chat session is closed")
)

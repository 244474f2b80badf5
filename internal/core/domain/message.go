package domain

import (
	"errors"
	"time"
)

// MessageType classifies how a message was delivered.
type MessageType string

const (
	MessageDirect       MessageType = "direct"
	MessageTeam         MessageType = "team"
	MessageAnnouncement MessageType = "announcement"
)

var ErrEmptyMessage = errors.New("message content cannot be empty")
var ErrInvalidMessageType = errors.New("invalid message type")

// ValidMessageType reports whether t is a member of the closed type enumeration.
func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageDirect, MessageTeam, MessageAnnouncement:
		return true
	}
	return false
}

// Message is a single entry in the messaging inbox.
type Message struct {
	ID          string      `json:"id" bson:"id"`
	SenderID    string      `json:"sender_id" bson:"sender_id"`
	SenderName  string      `json:"sender_name" bson:"sender_name"`
	RecipientID string      `json:"recipient_id,omitempty" bson:"recipient_id,omitempty"`
	Content     string      `json:"content" bson:"content"`
	Type        MessageType `json:"type" bson:"type"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

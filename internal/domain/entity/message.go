package entity

import (
	"encoding/json"
	"time"
)

const (
	SenderTypeUser    = "user"
	SenderTypeSupport = "support"
)

// Message is one entry in a room's append-only log. Messages are immutable
// once created; neither party edits or deletes them.
type Message struct {
	ID              string    `json:"id" firestore:"id"`
	RoomID          string    `json:"room_id" firestore:"roomId"`
	SenderType      string    `json:"sender_type" firestore:"senderType"` // "user" or "support"
	SenderID        string    `json:"sender_id" firestore:"senderId"`
	Content         string    `json:"content,omitempty" firestore:"content,omitempty"`
	SupporterName   string    `json:"supporter_name,omitempty" firestore:"supporterName,omitempty"`
	SupporterAvatar string    `json:"supporter_avatar,omitempty" firestore:"supporterAvatar,omitempty"`
	Files           string    `json:"files,omitempty" firestore:"files,omitempty"` // encoded attachment list
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
}

// Attachment describes one uploaded file referenced by a message.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// EncodeAttachments serializes an attachment list into the single string
// field persisted with a message. This is the only place the list is encoded;
// nothing downstream branches on the raw shape.
func EncodeAttachments(attachments []Attachment) (string, error) {
	if len(attachments) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeAttachments is the matching read-edge decoder. An empty field decodes
// to a nil list.
func DecodeAttachments(raw string) ([]Attachment, error) {
	if raw == "" {
		return nil, nil
	}
	var attachments []Attachment
	if err := json.Unmarshal([]byte(raw), &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// Attachments decodes the message's serialized file list.
func (m *Message) Attachments() ([]Attachment, error) {
	return DecodeAttachments(m.Files)
}

package entity

import (
	"time"
)

// ChatSessionTTL is how long a visitor identity survives without activity.
const ChatSessionTTL = 24 * time.Hour

// ChatSession is the self-asserted anonymous identity of one visitor. There
// is no server-side authority behind it; it only has to stay stable for the
// lifetime of a conversation.
type ChatSession struct {
	VisitorID    string    `json:"visitor_id"`
	RoomID       string    `json:"room_id"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// Expired reports whether the identity is stale at the given instant. Expiry
// is a pure wall-clock delta; no network call is involved.
func (s *ChatSession) Expired(now time.Time) bool {
	return now.Sub(s.LastActivity) > ChatSessionTTL
}

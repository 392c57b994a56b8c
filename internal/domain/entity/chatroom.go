package entity

import (
	"time"
)

const (
	RoomStatusActive   = "active"
	RoomStatusInOrder  = "in-order"
	RoomStatusNotBuy   = "not-buy"
	RoomStatusWonder   = "wonder"
	RoomStatusResolved = "resolved"
	RoomStatusClosed   = "closed"
)

// ChatRoomSession is the dashboard-side aggregate for one conversation room.
// It is created lazily the first time a room is observed with messages and is
// never deleted.
type ChatRoomSession struct {
	ID                  string    `json:"id" firestore:"id"`
	RoomID              string    `json:"room_id" firestore:"roomId"`
	Status              string    `json:"status" firestore:"status"`
	AssignedSupporterID string    `json:"assigned_supporter_id,omitempty" firestore:"assignedSupporterId,omitempty"`
	Notes               string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ValidRoomStatus reports whether status is one of the session statuses.
func ValidRoomStatus(status string) bool {
	switch status {
	case RoomStatusActive, RoomStatusInOrder, RoomStatusNotBuy,
		RoomStatusWonder, RoomStatusResolved, RoomStatusClosed:
		return true
	}
	return false
}

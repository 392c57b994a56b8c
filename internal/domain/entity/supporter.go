package entity

import (
	"time"
)

const (
	SupporterStatusOnline = "online"
	SupporterStatusBusy   = "busy"
	SupporterStatusAway   = "away"
)

// Supporter is one roster entry. The roster itself is managed outside this
// system; only the status field is mutated here.
type Supporter struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Avatar    string    `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Status    string    `json:"status" firestore:"status"` // "online", "busy", "away"
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// SupporterSessionTTL is how long a locally held supporter session stays
// valid after the last observed activity, regardless of the active flag.
const SupporterSessionTTL = 8 * time.Hour

// SupporterSession is the locally cached login state of a supporter. It is
// marked inactive on logout, not deleted.
type SupporterSession struct {
	Supporter    Supporter `json:"supporter"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// Expired reports whether the session is past its TTL at the given instant.
func (s *SupporterSession) Expired(now time.Time) bool {
	return now.Sub(s.LastActivity) > SupporterSessionTTL
}

// ValidSupporterStatus reports whether status is one of the roster statuses.
func ValidSupporterStatus(status string) bool {
	switch status {
	case SupporterStatusOnline, SupporterStatusBusy, SupporterStatusAway:
		return true
	}
	return false
}

package domain

import "time"

// NotificationKind is where a subscriber wants fissure alerts delivered.
type NotificationKind string

const (
	NotifyDM     NotificationKind = "dm"
	NotifyThread NotificationKind = "thread"
)

// ParseNotificationKind defaults an empty string to DM.
func ParseNotificationKind(s string) (NotificationKind, bool) {
	switch NotificationKind(s) {
	case "", NotifyDM:
		return NotifyDM, true
	case NotifyThread:
		return NotifyThread, true
	}
	return "", false
}

// FissureSubscription is a sparse pattern over fissure fields. Nil fields
// are wildcards. Target is the DM user id or the thread id.
type FissureSubscription struct {
	ID        string           `json:"id" db:"subscription_id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Kind      NotificationKind `json:"kind" db:"kind"`
	Target    string           `json:"target" db:"target"`
	Era       *string          `json:"era,omitempty" db:"era"`
	Mission   *string          `json:"mission,omitempty" db:"mission"`
	Node      *string          `json:"node,omitempty" db:"node"`
	Planet    *string          `json:"planet,omitempty" db:"planet"`
	Tileset   *string          `json:"tileset,omitempty" db:"tileset"`
	Enemy     *string          `json:"enemy,omitempty" db:"enemy"`
	Category  *FissureCategory `json:"category,omitempty" db:"category"`
	MaxTier   *int             `json:"max_tier,omitempty" db:"max_tier"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// IsEmpty reports whether no pattern field is set.
func (s FissureSubscription) IsEmpty() bool {
	return s.Era == nil && s.Mission == nil && s.Node == nil && s.Planet == nil &&
		s.Tileset == nil && s.Enemy == nil && s.Category == nil && s.MaxTier == nil
}

// Subscriber is the delivery address resolved from a subscription.
type Subscriber struct {
	SubscriptionID string
	UserID         string
	Kind           NotificationKind
	Target         string
}

// Subscriber returns the delivery address of the subscription.
func (s FissureSubscription) Subscriber() Subscriber {
	return Subscriber{SubscriptionID: s.ID, UserID: s.UserID, Kind: s.Kind, Target: s.Target}
}

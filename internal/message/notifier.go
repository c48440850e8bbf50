package message

import (
	"time"

	"github.com/google/uuid"
)

// PeerNotifier pushes a stored encouragement to the addressee's live
// sessions, fire-and-forget.
type PeerNotifier interface {
	NotifyEncouragement(toUserID uuid.UUID, payload any)
}

type EncouragementEvent struct {
	MessageID  uuid.UUID `json:"messageId"`
	FromUserID uuid.UUID `json:"fromUserId"`
	Text       string    `json:"message"`
	QuestDate  string    `json:"questDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

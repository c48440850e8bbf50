package quest

import (
	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
)

// PeerNotifier pushes quest changes to the linked partner's live
// sessions. Delivery is fire-and-forget; the store write never waits
// on it.
type PeerNotifier interface {
	NotifyQuestUpdate(toUserID uuid.UUID, payload any)
}

// QuestUpdateEvent is the payload sent to the peer after a toggle or
// replace.
type QuestUpdateEvent struct {
	UserID         uuid.UUID          `json:"userId"`
	Date           string             `json:"date"`
	CompletionRate int                `json:"completionRate"`
	Quests         []models.QuestItem `json:"quests"`
}

package quest

import (
	"time"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
)

// QuestItemInput is a caller-supplied item for a full-list replace.
// Every optional field is enumerated; nothing is merged from raw maps.
type QuestItemInput struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Photo     *string `json:"photo,omitempty"`
}

// ReplaceCommand is a partial update: nil means "leave as is".
type ReplaceCommand struct {
	Quests               *[]QuestItemInput
	EncouragementMessage *string
}

type QuestSetDTO struct {
	ID                   uuid.UUID          `json:"id"`
	UserID               uuid.UUID          `json:"userId"`
	Date                 string             `json:"date"`
	Quests               []models.QuestItem `json:"quests"`
	EncouragementMessage *string            `json:"encouragementMessage,omitempty"`
	CompletionRate       int                `json:"completionRate"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// PeerQuestDTO bundles the linked peer's set with their public summary.
type PeerQuestDTO struct {
	QuestSet   *QuestSetDTO        `json:"dailyQuest"`
	LinkedUser *user.PublicUserDTO `json:"linkedUser"`
}

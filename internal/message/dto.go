package message

import (
	"time"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
)

type MessageDTO struct {
	ID         uuid.UUID  `json:"id"`
	FromUserID uuid.UUID  `json:"fromUserId"`
	ToUserID   uuid.UUID  `json:"toUserId"`
	Text       string     `json:"message"`
	QuestDate  string     `json:"questDate"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewMessageDTO(m *models.Message) *MessageDTO {
	return &MessageDTO{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Text:       m.Text,
		QuestDate:  m.QuestDate,
		Read:       m.Read,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

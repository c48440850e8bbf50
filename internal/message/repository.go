package message

import (
	"context"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error

	GetMessageByID(ctx context.Context, id uuid.UUID) (*models.Message, error)

	// ListBetweenForDay returns both directions of the pair's thread for
	// one quest day, ascending by creation time.
	ListBetweenForDay(ctx context.Context, a, b uuid.UUID, questDate string) ([]models.Message, error)

	// MarkRead flips the message to read and stamps read_at. Already-read
	// messages are left untouched.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// CountUnreadFrom counts unread messages addressed to toID sent by fromID.
	CountUnreadFrom(ctx context.Context, toID, fromID uuid.UUID) (int, error)

	// ListRecentBetween returns the pair's newest messages first, capped
	// at limit.
	ListRecentBetween(ctx context.Context, a, b uuid.UUID, limit int) ([]models.Message, error)
}

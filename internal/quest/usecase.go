package quest

import (
	"context"

	"github.com/google/uuid"
)

type QuestUsecase interface {
	// GetOrCreateToday returns today's set, seeding it from the default
	// template on first access. Never creates a duplicate for the day.
	GetOrCreateToday(ctx context.Context, userID uuid.UUID) (*QuestSetDTO, error)

	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*QuestSetDTO, error)

	// Replace applies a partial update (quest list and/or encouragement
	// note) and recomputes the completion rate before persisting.
	Replace(ctx context.Context, userID uuid.UUID, date string, cmd ReplaceCommand) (*QuestSetDTO, error)

	// Toggle flips one item's completed flag and stamps/clears completedAt.
	Toggle(ctx context.Context, userID uuid.UUID, date, questID string) (*QuestSetDTO, error)

	// ListMonth returns the user's sets for the month, ascending by date.
	ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*QuestSetDTO, error)

	// LinkedPeerQuest reads the mutually linked peer's set for a day.
	LinkedPeerQuest(ctx context.Context, requesterID uuid.UUID, date string) (*PeerQuestDTO, error)
}

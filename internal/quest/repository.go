package quest

import (
	"context"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
)

type QuestRepository interface {
	// GetByUserAndDate fetches the set for (userID, date)
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.QuestSet, error)

	// CreateIfAbsent inserts the set unless (userID, date) already exists,
	// then returns the stored row either way. Concurrent callers for the
	// same day all see the same set.
	CreateIfAbsent(ctx context.Context, set *models.QuestSet) (*models.QuestSet, error)

	// Update persists a modified set, guarded by the version read earlier.
	// A stale version fails the write without touching the row.
	Update(ctx context.Context, set *models.QuestSet) error

	// ListRange returns the user's sets with from <= date <= to, ascending.
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.QuestSet, error)
}

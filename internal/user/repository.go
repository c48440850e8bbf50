package user

import (
	"context"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByCode(ctx context.Context, code string) (*models.User, error)

	UpdateNickname(ctx context.Context, userID uuid.UUID, nickname string) error
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	// LinkPair sets both users' linked_user_id to each other in one
	// transaction. Each write is guarded on the column still being null;
	// losing the guard on either side fails the whole transaction.
	LinkPair(ctx context.Context, requesterID, targetID uuid.UUID) error

	// UnlinkPair clears the requester's link and, best-effort, the
	// peer's backlink. A missing peer row does not fail the unlink.
	UnlinkPair(ctx context.Context, requesterID, peerID uuid.UUID) error

	// ClearDanglingLink nulls a linked_user_id whose peer row no longer
	// exists.
	ClearDanglingLink(ctx context.Context, userID uuid.UUID) error
}

package message

import (
	"context"

	"github.com/google/uuid"
)

type MessageUsecase interface {
	// Send stores an encouragement addressed to the caller's current
	// linked partner and pushes it to their live sessions.
	Send(ctx context.Context, fromID, toID uuid.UUID, text, questDate string) (*MessageDTO, error)

	// ListForDay returns the caller's thread with their partner for one
	// quest day, oldest first.
	ListForDay(ctx context.Context, userID uuid.UUID, questDate string) ([]*MessageDTO, error)

	// MarkRead transitions a message to read. Only the addressee may do
	// it; repeating it is a no-op.
	MarkRead(ctx context.Context, messageID, requesterID uuid.UUID) (*MessageDTO, error)

	// UnreadCount counts unread messages from the current partner.
	// Unlinked users always see 0.
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// Recent returns the newest messages either way between the caller
	// and their partner. limit <= 0 means the default of 20.
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*MessageDTO, error)
}

package user

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	// Register a new user; generates the public link code and issues a token
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResponse, error)

	// Login verifies the password and refreshes last_login_at
	Login(ctx context.Context, cmd LoginCommand) (*AuthResponse, error)

	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// FindByCode looks another user up by their public link code
	FindByCode(ctx context.Context, requesterID uuid.UUID, code string) (*PublicUserDTO, error)

	// Link pairs the requester with the owner of targetCode, both ways
	Link(ctx context.Context, requesterID uuid.UUID, targetCode string) (*PublicUserDTO, error)
	Unlink(ctx context.Context, requesterID uuid.UUID) error
	LinkedPeer(ctx context.Context, userID uuid.UUID) (*PublicUserDTO, error)

	UpdateNickname(ctx context.Context, userID uuid.UUID, nickname string) error
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error
}

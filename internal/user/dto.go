package user

import (
	"time"

	"github.com/google/uuid"

	models "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type RegisterCommand struct {
	Username string
	Password string
	Nickname string
}

type LoginCommand struct {
	Username string
	Password string
}

// Output DTOs
type UserDTO struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Nickname     string     `json:"nickname"`
	UniqueCode   string     `json:"uniqueCode"`
	LinkedUserID *uuid.UUID `json:"linkedUserId,omitempty"`
	ProfileImage *string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  time.Time  `json:"lastLoginAt"`
}

// PublicUserDTO is what another user may see: no username, no link state.
type PublicUserDTO struct {
	ID           uuid.UUID `json:"id"`
	Nickname     string    `json:"nickname"`
	UniqueCode   string    `json:"uniqueCode"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

func NewPublicUserDTO(u *models.User) *PublicUserDTO {
	return &PublicUserDTO{
		ID:           u.ID,
		Nickname:     u.Nickname,
		UniqueCode:   u.UniqueCode,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

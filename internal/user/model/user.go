package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// Username = unique login handle
	Username     string `bun:",unique,notnull"`
	PasswordHash string `bun:",notnull"`

	// Nickname = display name shown to the linked partner
	Nickname string `bun:",notnull"`

	// UniqueCode = short public code another user enters to link accounts
	UniqueCode string `bun:",unique,notnull"`

	// LinkedUserID is nil or points at a user whose own LinkedUserID
	// points back. Both sides are written in one transaction.
	LinkedUserID *uuid.UUID `bun:",type:uuid,nullzero"`

	ProfileImage *string `bun:",nullzero"`

	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	LastLoginAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// IsLinkedTo reports whether u's link points at other. It says nothing
// about the reverse direction.
func (u *User) IsLinkedTo(other uuid.UUID) bool {
	return u.LinkedUserID != nil && *u.LinkedUserID == other
}

type UserWithToken struct {
	User  *User
	Token string
}

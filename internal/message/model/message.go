package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a directed encouragement between two linked users, tagged
// with the quest day it concerns. Immutable except for the unread→read
// transition.
type Message struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	FromUserID uuid.UUID `bun:",type:uuid,notnull"`
	ToUserID   uuid.UUID `bun:",type:uuid,notnull"`

	Text string `bun:",notnull"`

	// QuestDate is the YYYY-MM-DD day this message belongs to.
	QuestDate string `bun:",notnull"`

	Read bool `bun:",notnull,default:false"`

	// ReadAt is non-nil iff Read is true.
	ReadAt *time.Time `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

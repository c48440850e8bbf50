package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// QuestItem is one trackable habit entry. Items live inside their set
// as a jsonb array; they have no identity outside it.
type QuestItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Photo       *string    `json:"photo,omitempty"`
}

type QuestSet struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	UserID uuid.UUID `bun:",type:uuid,notnull,unique:quest_sets_user_date_key"`

	// Date is the calendar day in YYYY-MM-DD form. One set per user per day.
	Date string `bun:",notnull,unique:quest_sets_user_date_key"`

	Quests []QuestItem `bun:",type:jsonb,notnull,default:'[]'"`

	EncouragementMessage *string `bun:",nullzero"`

	// CompletionRate is derived; Recalculate overwrites it on every persist.
	CompletionRate int `bun:",notnull,default:0"`

	// Version guards read-modify-write updates. The repository bumps it
	// on every successful update and rejects writes against a stale read.
	Version int64 `bun:",nullzero,notnull,default:1"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Recalculate derives CompletionRate from the items. Empty set is 0.
func (s *QuestSet) Recalculate() {
	if len(s.Quests) == 0 {
		s.CompletionRate = 0
		return
	}
	completed := 0
	for _, q := range s.Quests {
		if q.Completed {
			completed++
		}
	}
	s.CompletionRate = int(math.Round(100 * float64(completed) / float64(len(s.Quests))))
}

// FindItem returns a pointer into Quests for in-place mutation, or nil.
func (s *QuestSet) FindItem(id string) *QuestItem {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return &s.Quests[i]
		}
	}
	return nil
}

// DefaultQuests is the starter template every new day begins with.
func DefaultQuests() []QuestItem {
	return []QuestItem{
		{ID: "1", Title: "Wake up at 4:30 AM"},
		{ID: "2", Title: "Walk for 15 minutes after waking"},
		{ID: "3", Title: "Drink 8 glasses of water"},
		{ID: "4", Title: "Read for 30 minutes"},
	}
}

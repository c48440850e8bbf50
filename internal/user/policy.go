package user

import (
	models "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
)

// VerifyMutualLink is the single access rule for cross-user reads and
// writes: a may touch b's quests or messages iff each side's link points
// at the other at the time of the check. No transitive or delegated
// access exists.
func VerifyMutualLink(a, b *models.User) error {
	if a == nil || b == nil {
		return errors.ErrNotMutuallyLinked
	}
	if !a.IsLinkedTo(b.ID) || !b.IsLinkedTo(a.ID) {
		return errors.ErrNotMutuallyLinked
	}
	return nil
}

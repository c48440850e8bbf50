package errors

var (
	ErrInvalidDate         = InvalidArg("date must be in YYYY-MM-DD format")
	ErrInvalidMonth        = InvalidArg("invalid year or month")
	ErrQuestSetNotFound    = NotFound("no quests for that date")
	ErrQuestItemNotFound   = NotFound("quest not found")
	ErrInvalidQuestTitle   = InvalidArg("quest title must be 1-100 characters")
	ErrDuplicateQuestID    = InvalidArg("duplicate quest id")
	ErrEncouragementTooLong = InvalidArg("encouragement message must be at most 200 characters")
)

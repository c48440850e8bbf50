package errors

var (
	ErrMessageNotFound   = NotFound("message not found")
	ErrInvalidMessage    = InvalidArg("message must be 1-200 characters")
	ErrNotMutuallyLinked = Forbidden("only allowed between mutually linked partners")
	ErrNotAddressee      = Forbidden("only the recipient can mark a message as read")
)

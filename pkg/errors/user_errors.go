package errors

var (
	// Domain errors used in usecase/repository
	ErrUserNotFound       = NotFound("user not found")
	ErrUsernameTaken      = AlreadyExists("username is already taken")
	ErrInvalidUsername    = InvalidArg("username must be 3-20 characters")
	ErrInvalidPassword    = InvalidArg("password must be at least 6 characters")
	ErrInvalidNickname    = InvalidArg("nickname must be 2-10 characters")
	ErrInvalidCredentials = Unauthorized("invalid username or password")
	ErrInvalidToken       = Unauthorized("invalid or expired token")

	ErrSelfLink       = InvalidArg("cannot link to your own code")
	ErrSelfCodeSearch = InvalidArg("cannot search for your own code")
	ErrCodeNotFound   = NotFound("no user with that code")
	ErrAlreadyLinked  = AlreadyExists("requester is already linked to a partner")
	ErrTargetLinked   = AlreadyExists("target user is already linked to a partner")
	ErrNotLinked      = FailedPrecondition("no linked partner")

	ErrCodeGenerationExhausted = Internal("could not generate a unique code")
)

func ErrLinkInconsistent(cause error) error {
	return Wrap(CodeDataInconsistency, "link writes partially applied, manual repair required", cause)
}

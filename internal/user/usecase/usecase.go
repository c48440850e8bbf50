package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/woongiiit/DailyQuest-Backend/config"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	models "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	"github.com/woongiiit/DailyQuest-Backend/internal/user/repository"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
	"github.com/woongiiit/DailyQuest-Backend/pkg/utils"
)

// codeGenAttempts bounds the retry loop for link-code generation; the
// unique index on users.unique_code is the real guarantee.
const codeGenAttempts = 5

type UserUsecase struct {
	repo   user.UserRepository
	logger logger.Logger
	config config.Config
}

func NewUserUsecase(repo user.UserRepository, logger logger.Logger, config config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger, config: config}
}

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.AuthResponse, error) {
	if n := utf8.RuneCountInString(cmd.Username); n < 3 || n > 20 {
		return nil, errors.ErrInvalidUsername
	}
	if len(cmd.Password) < 6 {
		return nil, errors.ErrInvalidPassword
	}
	if n := utf8.RuneCountInString(cmd.Nickname); n < 2 || n > 10 {
		return nil, errors.ErrInvalidNickname
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, errors.Internal("internal server error")
	}

	var u *models.User
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		code, err := utils.GenerateLinkCode()
		if err != nil {
			uc.logger.Error("failed to generate link code", "err", err)
			return nil, errors.Internal("crypto rand failed")
		}

		candidate := &models.User{
			Username:     cmd.Username,
			PasswordHash: string(hash),
			Nickname:     cmd.Nickname,
			UniqueCode:   code,
		}

		err = uc.repo.CreateUser(ctx, candidate)
		if err == nil {
			u = candidate
			break
		}
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, errors.ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrDuplicateCode) {
			continue
		}
		uc.logger.Error("database error creating user", "err", err)
		return nil, errors.Internal("internal server error")
	}
	if u == nil {
		uc.logger.Error("link code generation exhausted", "username", cmd.Username, "attempts", codeGenAttempts)
		return nil, errors.ErrCodeGenerationExhausted
	}

	token, err := utils.GenerateJWTToken(u.ID, uc.config)
	if err != nil {
		uc.logger.Error("failed to issue token", "err", err)
		return nil, errors.Internal("failed to issue token")
	}

	return &user.AuthResponse{Token: token, User: toUserDTO(u)}, nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.AuthResponse, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	u, err := uc.repo.GetUserByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		uc.logger.Error("database error fetching user", "err", err)
		return nil, errors.Internal("internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := uc.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		// login still succeeds; the timestamp is informational
		uc.logger.Warn("failed to update last login", "user_id", u.ID, "err", err)
	}

	token, err := utils.GenerateJWTToken(u.ID, uc.config)
	if err != nil {
		uc.logger.Error("failed to issue token", "err", err)
		return nil, errors.Internal("failed to issue token")
	}

	return &user.AuthResponse{Token: token, User: toUserDTO(u)}, nil
}

func (uc *UserUsecase) Me(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(u), nil
}

func (uc *UserUsecase) FindByCode(ctx context.Context, requesterID uuid.UUID, code string) (*user.PublicUserDTO, error) {
	requester, err := uc.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.UniqueCode == code {
		return nil, errors.ErrSelfCodeSearch
	}

	target, err := uc.repo.GetUserByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrCodeNotFound
		}
		uc.logger.Error("database error fetching user by code", "err", err)
		return nil, errors.Internal("internal server error")
	}
	return toPublicDTO(target), nil
}

func (uc *UserUsecase) Link(ctx context.Context, requesterID uuid.UUID, targetCode string) (*user.PublicUserDTO, error) {
	requester, err := uc.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.UniqueCode == targetCode {
		return nil, errors.ErrSelfLink
	}

	target, err := uc.repo.GetUserByCode(ctx, targetCode)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrCodeNotFound
		}
		uc.logger.Error("database error fetching user by code", "err", err)
		return nil, errors.Internal("internal server error")
	}

	if requester.LinkedUserID != nil {
		return nil, errors.ErrAlreadyLinked
	}
	if target.LinkedUserID != nil {
		return nil, errors.ErrTargetLinked
	}

	err = uc.repo.LinkPair(ctx, requester.ID, target.ID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrRequesterLinked):
		return nil, errors.ErrAlreadyLinked
	case errors.Is(err, repository.ErrTargetLinked):
		return nil, errors.ErrTargetLinked
	case errors.Is(err, repository.ErrLinkCommitUncertain):
		uc.logger.Error("link left in uncertain state, manual repair required",
			"requester", requester.ID, "target", target.ID, "err", err)
		return nil, errors.ErrLinkInconsistent(err)
	default:
		uc.logger.Error("database error linking users", "err", err)
		return nil, errors.Internal("internal server error")
	}

	return toPublicDTO(target), nil
}

func (uc *UserUsecase) Unlink(ctx context.Context, requesterID uuid.UUID) error {
	requester, err := uc.getUser(ctx, requesterID)
	if err != nil {
		return err
	}
	if requester.LinkedUserID == nil {
		return errors.ErrNotLinked
	}

	if err := uc.repo.UnlinkPair(ctx, requester.ID, *requester.LinkedUserID); err != nil {
		uc.logger.Error("database error unlinking users", "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

func (uc *UserUsecase) LinkedPeer(ctx context.Context, userID uuid.UUID) (*user.PublicUserDTO, error) {
	u, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.LinkedUserID == nil {
		return nil, errors.ErrNotLinked
	}

	peer, err := uc.repo.GetUserByID(ctx, *u.LinkedUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// the peer account is gone; drop the dangling reference
			if clearErr := uc.repo.ClearDanglingLink(ctx, u.ID); clearErr != nil {
				uc.logger.Warn("failed to clear dangling link", "user_id", u.ID, "err", clearErr)
			}
			return nil, errors.ErrUserNotFound
		}
		uc.logger.Error("database error fetching linked peer", "err", err)
		return nil, errors.Internal("internal server error")
	}
	return toPublicDTO(peer), nil
}

func (uc *UserUsecase) UpdateNickname(ctx context.Context, userID uuid.UUID, nickname string) error {
	if n := utf8.RuneCountInString(nickname); n < 2 || n > 10 {
		return errors.ErrInvalidNickname
	}
	if err := uc.repo.UpdateNickname(ctx, userID, nickname); err != nil {
		uc.logger.Error("database error updating nickname", "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

func (uc *UserUsecase) UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error {
	if image == "" {
		return errors.InvalidArg("profile image is required")
	}
	if err := uc.repo.UpdateProfileImage(ctx, userID, image); err != nil {
		uc.logger.Error("database error updating profile image", "err", err)
		return errors.Internal("internal server error")
	}
	return nil
}

func (uc *UserUsecase) getUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		uc.logger.Error("database error fetching user", "err", err)
		return nil, errors.Internal("internal server error")
	}
	return u, nil
}

func toUserDTO(u *models.User) *user.UserDTO {
	return &user.UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Nickname:     u.Nickname,
		UniqueCode:   u.UniqueCode,
		LinkedUserID: u.LinkedUserID,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}

func toPublicDTO(u *models.User) *user.PublicUserDTO {
	return user.NewPublicUserDTO(u)
}

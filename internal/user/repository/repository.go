package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	models "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrDuplicateCode       = errors.New("unique code already exists")
	ErrRequesterLinked     = errors.New("requester already linked")
	ErrTargetLinked        = errors.New("target already linked")
	ErrLinkCommitUncertain = errors.New("link commit outcome unknown")
)

func NewUserRepository(db *bun.DB, logger logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {

	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err, "username") {
			return ErrDuplicateUsername
		}
		if isUniqueViolation(err, "unique_code") {
			return ErrDuplicateCode
		}
		return errors.Wrap(err, "userRepo.CreateUser.InsertUser: ")
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByID.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByUsername.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByCode(ctx context.Context, code string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("unique_code = ?", code).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByCode.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) UpdateNickname(ctx context.Context, userID uuid.UUID, nickname string) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("nickname = ?", nickname).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.UpdateNickname.Update: ")
	}
	return nil
}

func (r *UserRepository) UpdateProfileImage(ctx context.Context, userID uuid.UUID, image string) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("profile_image = ?", image).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.UpdateProfileImage.Update: ")
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("last_login_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.UpdateLastLogin.Update: ")
	}
	return nil
}

func (r *UserRepository) LinkPair(ctx context.Context, requesterID, targetID uuid.UUID) error {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "userRepo.LinkPair.BeginTx: ")
	}
	defer tx.Rollback()

	// Each write is guarded on the link still being absent so a
	// concurrent link on either side fails the whole transaction
	// instead of producing a one-directional pair.
	res, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("linked_user_id = ?", targetID).
		Set("updated_at = current_timestamp").
		Where("id = ? AND linked_user_id IS NULL", requesterID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.LinkPair.UpdateRequester: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRequesterLinked
	}

	res, err = tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("linked_user_id = ?", requesterID).
		Set("updated_at = current_timestamp").
		Where("id = ? AND linked_user_id IS NULL", targetID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.LinkPair.UpdateTarget: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTargetLinked
	}

	if err := tx.Commit(); err != nil {
		// Both writes were accepted but the commit outcome is unknown;
		// the pair may or may not exist in the store.
		r.logger.Error("link commit failed after both writes", "requester", requesterID, "target", targetID, "err", err)
		return ErrLinkCommitUncertain
	}
	return nil
}

func (r *UserRepository) UnlinkPair(ctx context.Context, requesterID, peerID uuid.UUID) error {

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("linked_user_id = NULL").
			Set("updated_at = current_timestamp").
			Where("id = ?", requesterID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "userRepo.UnlinkPair.UpdateRequester: ")
		}

		// Best-effort: the peer row may already be gone, which must not
		// block the requester's own unlink.
		_, err = tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("linked_user_id = NULL").
			Set("updated_at = current_timestamp").
			Where("id = ? AND linked_user_id = ?", peerID, requesterID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "userRepo.UnlinkPair.UpdatePeer: ")
		}
		return nil
	})
}

func (r *UserRepository) ClearDanglingLink(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("linked_user_id = NULL").
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.ClearDanglingLink.Update: ")
	}
	return nil
}

func isUniqueViolation(err error, column string) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
		return strings.Contains(pgErr.Field('M'), column) ||
			strings.Contains(pgErr.Field('n'), column)
	}
	return false
}

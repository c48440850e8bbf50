package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type QuestRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var (
	ErrQuestSetNotFound = errors.New("quest set not found")
	ErrVersionConflict  = errors.New("quest set version conflict")
)

func NewQuestRepository(db *bun.DB, logger logger.Logger) *QuestRepository {
	return &QuestRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *QuestRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.QuestSet, error) {

	set := new(models.QuestSet)
	err := r.db.NewSelect().Model(set).
		Where("user_id = ? AND date = ?", userID, date).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestSetNotFound
		}
		return nil, errors.Wrap(err, "questRepo.GetByUserAndDate.Scan: ")
	}
	return set, nil
}

func (r *QuestRepository) CreateIfAbsent(ctx context.Context, set *models.QuestSet) (*models.QuestSet, error) {

	res, err := r.db.NewInsert().Model(set).
		On("CONFLICT (user_id, date) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "questRepo.CreateIfAbsent.Insert: ")
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return set, nil
	}

	// Someone else created the day's set first; hand back theirs.
	stored, err := r.GetByUserAndDate(ctx, set.UserID, set.Date)
	if err != nil {
		return nil, errors.Wrap(err, "questRepo.CreateIfAbsent.Reselect: ")
	}
	return stored, nil
}

func (r *QuestRepository) Update(ctx context.Context, set *models.QuestSet) error {

	res, err := r.db.NewUpdate().
		Model((*models.QuestSet)(nil)).
		Set("quests = ?", set.Quests).
		Set("encouragement_message = ?", set.EncouragementMessage).
		Set("completion_rate = ?", set.CompletionRate).
		Set("version = version + 1").
		Set("updated_at = current_timestamp").
		Where("id = ? AND version = ?", set.ID, set.Version).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "questRepo.Update.Update: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVersionConflict
	}
	set.Version++
	return nil
}

func (r *QuestRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.QuestSet, error) {

	var sets []models.QuestSet
	err := r.db.NewSelect().Model(&sets).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "questRepo.ListRange.Scan: ")
	}
	return sets, nil
}

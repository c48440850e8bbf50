package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

type MessageRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrMessageNotFound = errors.New("message not found")

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {

	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateMessage.Insert: ")
	}
	return nil
}

func (r *MessageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {

	msg := new(models.Message)
	err := r.db.NewSelect().Model(msg).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "messageRepo.GetMessageByID.Scan: ")
	}
	return msg, nil
}

func (r *MessageRepository) ListBetweenForDay(ctx context.Context, a, b uuid.UUID, questDate string) ([]models.Message, error) {

	var msgs []models.Message
	err := r.db.NewSelect().Model(&msgs).
		Where("quest_date = ?", questDate).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", a).Where("to_user_id = ?", b)
				}).
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", b).Where("to_user_id = ?", a)
				})
		}).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListBetweenForDay.Scan: ")
	}
	return msgs, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {

	_, err := r.db.NewUpdate().
		Model((*models.Message)(nil)).
		Set("read = TRUE").
		Set("read_at = current_timestamp").
		Where("id = ? AND read = FALSE", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.MarkRead.Update: ")
	}
	return nil
}

func (r *MessageRepository) CountUnreadFrom(ctx context.Context, toID, fromID uuid.UUID) (int, error) {

	count, err := r.db.NewSelect().
		Model((*models.Message)(nil)).
		Where("to_user_id = ? AND from_user_id = ? AND read = FALSE", toID, fromID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "messageRepo.CountUnreadFrom.Count: ")
	}
	return count, nil
}

func (r *MessageRepository) ListRecentBetween(ctx context.Context, a, b uuid.UUID, limit int) ([]models.Message, error) {

	var msgs []models.Message
	err := r.db.NewSelect().Model(&msgs).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", a).Where("to_user_id = ?", b)
				}).
				WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.Where("from_user_id = ?", b).Where("to_user_id = ?", a)
				})
		}).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListRecentBetween.Scan: ")
	}
	return msgs, nil
}

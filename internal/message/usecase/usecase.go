package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/woongiiit/DailyQuest-Backend/internal/message"
	models "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
	"github.com/woongiiit/DailyQuest-Backend/internal/message/repository"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	userModels "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	userRepository "github.com/woongiiit/DailyQuest-Backend/internal/user/repository"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
	"github.com/woongiiit/DailyQuest-Backend/pkg/utils"
)

const defaultRecentLimit = 20

type MessageUsecase struct {
	repo     message.MessageRepository
	userRepo user.UserRepository
	notifier message.PeerNotifier
	logger   logger.Logger
}

func NewMessageUsecase(repo message.MessageRepository, userRepo user.UserRepository, notifier message.PeerNotifier, logger logger.Logger) *MessageUsecase {
	return &MessageUsecase{repo: repo, userRepo: userRepo, notifier: notifier, logger: logger}
}

func (uc *MessageUsecase) Send(ctx context.Context, fromID, toID uuid.UUID, text, questDate string) (*message.MessageDTO, error) {
	if n := utf8.RuneCountInString(text); n < 1 || n > 200 {
		return nil, errors.ErrInvalidMessage
	}
	if !utils.ValidQuestDate(questDate) {
		return nil, errors.ErrInvalidDate
	}

	from, err := uc.getUser(ctx, fromID)
	if err != nil {
		return nil, err
	}

	// A stale or mismatched addressee is an access violation, not a
	// not-found: the caller may only write to their current partner.
	if !from.IsLinkedTo(toID) {
		return nil, errors.ErrNotMutuallyLinked
	}

	to, err := uc.getUser(ctx, toID)
	if err != nil {
		return nil, err
	}
	if err := user.VerifyMutualLink(from, to); err != nil {
		return nil, err
	}

	msg := &models.Message{
		FromUserID: fromID,
		ToUserID:   toID,
		Text:       text,
		QuestDate:  questDate,
	}
	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		uc.logger.Error("database error storing message", "from", fromID, "to", toID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	uc.notifier.NotifyEncouragement(toID, message.EncouragementEvent{
		MessageID:  msg.ID,
		FromUserID: fromID,
		Text:       text,
		QuestDate:  questDate,
		CreatedAt:  msg.CreatedAt,
	})

	return message.NewMessageDTO(msg), nil
}

func (uc *MessageUsecase) ListForDay(ctx context.Context, userID uuid.UUID, questDate string) ([]*message.MessageDTO, error) {
	if !utils.ValidQuestDate(questDate) {
		return nil, errors.ErrInvalidDate
	}

	u, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.LinkedUserID == nil {
		return nil, errors.ErrNotLinked
	}

	msgs, err := uc.repo.ListBetweenForDay(ctx, userID, *u.LinkedUserID, questDate)
	if err != nil {
		uc.logger.Error("database error listing messages", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return toDTOs(msgs), nil
}

func (uc *MessageUsecase) MarkRead(ctx context.Context, messageID, requesterID uuid.UUID) (*message.MessageDTO, error) {
	msg, err := uc.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, errors.ErrMessageNotFound
		}
		uc.logger.Error("database error fetching message", "message_id", messageID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	if msg.ToUserID != requesterID {
		return nil, errors.ErrNotAddressee
	}
	if msg.Read {
		return message.NewMessageDTO(msg), nil
	}

	if err := uc.repo.MarkRead(ctx, messageID); err != nil {
		uc.logger.Error("database error marking message read", "message_id", messageID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	now := time.Now()
	msg.Read = true
	msg.ReadAt = &now
	return message.NewMessageDTO(msg), nil
}

func (uc *MessageUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	u, err := uc.getUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.LinkedUserID == nil {
		return 0, nil
	}

	count, err := uc.repo.CountUnreadFrom(ctx, userID, *u.LinkedUserID)
	if err != nil {
		uc.logger.Error("database error counting unread messages", "user_id", userID, "err", err)
		return 0, errors.Internal("internal server error")
	}
	return count, nil
}

func (uc *MessageUsecase) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*message.MessageDTO, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	u, err := uc.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.LinkedUserID == nil {
		return []*message.MessageDTO{}, nil
	}

	msgs, err := uc.repo.ListRecentBetween(ctx, userID, *u.LinkedUserID, limit)
	if err != nil {
		uc.logger.Error("database error listing recent messages", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return toDTOs(msgs), nil
}

func (uc *MessageUsecase) getUser(ctx context.Context, id uuid.UUID) (*userModels.User, error) {
	u, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepository.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		uc.logger.Error("database error fetching user", "user_id", id, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return u, nil
}

func toDTOs(msgs []models.Message) []*message.MessageDTO {
	dtos := make([]*message.MessageDTO, 0, len(msgs))
	for i := range msgs {
		dtos = append(dtos, message.NewMessageDTO(&msgs[i]))
	}
	return dtos
}

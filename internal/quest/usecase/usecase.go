package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/woongiiit/DailyQuest-Backend/internal/quest"
	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	"github.com/woongiiit/DailyQuest-Backend/internal/quest/repository"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	userModels "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	userRepository "github.com/woongiiit/DailyQuest-Backend/internal/user/repository"
	"github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
	"github.com/woongiiit/DailyQuest-Backend/pkg/utils"
)

// toggleAttempts bounds the reload-and-reapply loop when a toggle loses
// a version race.
const toggleAttempts = 2

type QuestUsecase struct {
	repo     quest.QuestRepository
	userRepo user.UserRepository
	notifier quest.PeerNotifier
	logger   logger.Logger
}

func NewQuestUsecase(repo quest.QuestRepository, userRepo user.UserRepository, notifier quest.PeerNotifier, logger logger.Logger) *QuestUsecase {
	return &QuestUsecase{repo: repo, userRepo: userRepo, notifier: notifier, logger: logger}
}

func (uc *QuestUsecase) GetOrCreateToday(ctx context.Context, userID uuid.UUID) (*quest.QuestSetDTO, error) {
	candidate := &models.QuestSet{
		UserID: userID,
		Date:   utils.Today(),
		Quests: models.DefaultQuests(),
	}
	candidate.Recalculate()

	stored, err := uc.repo.CreateIfAbsent(ctx, candidate)
	if err != nil {
		uc.logger.Error("database error creating today's quests", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return toDTO(stored), nil
}

func (uc *QuestUsecase) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*quest.QuestSetDTO, error) {
	if !utils.ValidQuestDate(date) {
		return nil, errors.ErrInvalidDate
	}

	set, err := uc.loadSet(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return toDTO(set), nil
}

func (uc *QuestUsecase) Replace(ctx context.Context, userID uuid.UUID, date string, cmd quest.ReplaceCommand) (*quest.QuestSetDTO, error) {
	if !utils.ValidQuestDate(date) {
		return nil, errors.ErrInvalidDate
	}

	set, err := uc.loadSet(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if cmd.Quests != nil {
		items, err := buildItems(*cmd.Quests, set)
		if err != nil {
			return nil, err
		}
		set.Quests = items
	}

	if cmd.EncouragementMessage != nil {
		note := *cmd.EncouragementMessage
		if utf8.RuneCountInString(note) > 200 {
			return nil, errors.ErrEncouragementTooLong
		}
		if note == "" {
			set.EncouragementMessage = nil
		} else {
			set.EncouragementMessage = &note
		}
	}

	set.Recalculate()

	if err := uc.repo.Update(ctx, set); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, errors.FailedPrecondition("quests changed concurrently, retry")
		}
		uc.logger.Error("database error updating quests", "user_id", userID, "date", date, "err", err)
		return nil, errors.Internal("internal server error")
	}

	uc.notifyPeer(ctx, userID, set)
	return toDTO(set), nil
}

func (uc *QuestUsecase) Toggle(ctx context.Context, userID uuid.UUID, date, questID string) (*quest.QuestSetDTO, error) {
	if !utils.ValidQuestDate(date) {
		return nil, errors.ErrInvalidDate
	}

	for attempt := 0; attempt < toggleAttempts; attempt++ {
		set, err := uc.loadSet(ctx, userID, date)
		if err != nil {
			return nil, err
		}

		item := set.FindItem(questID)
		if item == nil {
			return nil, errors.ErrQuestItemNotFound
		}

		item.Completed = !item.Completed
		if item.Completed {
			now := time.Now()
			item.CompletedAt = &now
		} else {
			item.CompletedAt = nil
		}
		set.Recalculate()

		err = uc.repo.Update(ctx, set)
		if err == nil {
			uc.notifyPeer(ctx, userID, set)
			return toDTO(set), nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			uc.logger.Error("database error toggling quest", "user_id", userID, "date", date, "err", err)
			return nil, errors.Internal("internal server error")
		}
		// lost a version race; reload and reapply once
	}
	return nil, errors.FailedPrecondition("quests changed concurrently, retry")
}

func (uc *QuestUsecase) ListMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*quest.QuestSetDTO, error) {
	from, to, ok := utils.MonthRange(year, month)
	if !ok {
		return nil, errors.ErrInvalidMonth
	}

	sets, err := uc.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		uc.logger.Error("database error listing monthly quests", "user_id", userID, "err", err)
		return nil, errors.Internal("internal server error")
	}

	dtos := make([]*quest.QuestSetDTO, 0, len(sets))
	for i := range sets {
		dtos = append(dtos, toDTO(&sets[i]))
	}
	return dtos, nil
}

func (uc *QuestUsecase) LinkedPeerQuest(ctx context.Context, requesterID uuid.UUID, date string) (*quest.PeerQuestDTO, error) {
	if !utils.ValidQuestDate(date) {
		return nil, errors.ErrInvalidDate
	}

	requester, err := uc.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.LinkedUserID == nil {
		return nil, errors.ErrNotLinked
	}

	peer, err := uc.getUser(ctx, *requester.LinkedUserID)
	if err != nil {
		return nil, err
	}
	if err := user.VerifyMutualLink(requester, peer); err != nil {
		return nil, err
	}

	set, err := uc.loadSet(ctx, peer.ID, date)
	if err != nil {
		return nil, err
	}

	return &quest.PeerQuestDTO{
		QuestSet:   toDTO(set),
		LinkedUser: user.NewPublicUserDTO(peer),
	}, nil
}

func (uc *QuestUsecase) loadSet(ctx context.Context, userID uuid.UUID, date string) (*models.QuestSet, error) {
	set, err := uc.repo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrQuestSetNotFound) {
			return nil, errors.ErrQuestSetNotFound
		}
		uc.logger.Error("database error fetching quests", "user_id", userID, "date", date, "err", err)
		return nil, errors.Internal("internal server error")
	}
	return set, nil
}

func (uc *QuestUsecase) getUser(ctx context.Context, id uuid.UUID) (*userModels.User, error) {
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

// notifyPeer pushes the updated set to the linked partner, if any. The
// write already succeeded; failures here are only logged.
func (uc *QuestUsecase) notifyPeer(ctx context.Context, userID uuid.UUID, set *models.QuestSet) {
	u, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("skipping quest notification", "user_id", userID, "err", err)
		return
	}
	if u.LinkedUserID == nil {
		return
	}

	uc.notifier.NotifyQuestUpdate(*u.LinkedUserID, quest.QuestUpdateEvent{
		UserID:         userID,
		Date:           set.Date,
		CompletionRate: set.CompletionRate,
		Quests:         set.Quests,
	})
}

// buildItems validates a caller-supplied quest list. Completion
// timestamps are carried over from the prior list when an item stays
// completed, stamped fresh when it newly completes.
func buildItems(inputs []quest.QuestItemInput, prior *models.QuestSet) ([]models.QuestItem, error) {
	seen := make(map[string]struct{}, len(inputs))
	items := make([]models.QuestItem, 0, len(inputs))

	for _, in := range inputs {
		if in.ID == "" {
			return nil, errors.ErrDuplicateQuestID
		}
		if _, dup := seen[in.ID]; dup {
			return nil, errors.ErrDuplicateQuestID
		}
		seen[in.ID] = struct{}{}

		if n := utf8.RuneCountInString(in.Title); n < 1 || n > 100 {
			return nil, errors.ErrInvalidQuestTitle
		}

		item := models.QuestItem{
			ID:        in.ID,
			Title:     in.Title,
			Completed: in.Completed,
			Photo:     in.Photo,
		}
		if in.Completed {
			if old := prior.FindItem(in.ID); old != nil && old.Completed && old.CompletedAt != nil {
				item.CompletedAt = old.CompletedAt
			} else {
				now := time.Now()
				item.CompletedAt = &now
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func toDTO(s *models.QuestSet) *quest.QuestSetDTO {
	return &quest.QuestSetDTO{
		ID:                   s.ID,
		UserID:               s.UserID,
		Date:                 s.Date,
		Quests:               s.Quests,
		EncouragementMessage: s.EncouragementMessage,
		CompletionRate:       s.CompletionRate,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

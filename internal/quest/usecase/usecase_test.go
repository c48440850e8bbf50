package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woongiiit/DailyQuest-Backend/internal/quest"
	questMocks "github.com/woongiiit/DailyQuest-Backend/internal/quest/mocks"
	models "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	"github.com/woongiiit/DailyQuest-Backend/internal/quest/repository"
	userMocks "github.com/woongiiit/DailyQuest-Backend/internal/user/mocks"
	userModels "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	appErrors "github.com/woongiiit/DailyQuest-Backend/pkg/errors"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

func newUC(t *testing.T) (*QuestUsecase, *questMocks.MockQuestRepository, *userMocks.MockUserRepository, *questMocks.MockPeerNotifier) {
	ctrl := gomock.NewController(t)
	questRepo := questMocks.NewMockQuestRepository(ctrl)
	userRepo := userMocks.NewMockUserRepository(ctrl)
	notifier := questMocks.NewMockPeerNotifier(ctrl)
	uc := NewQuestUsecase(questRepo, userRepo, notifier, logger.Logger{})
	return uc, questRepo, userRepo, notifier
}

func defaultSet(userID uuid.UUID, date string) *models.QuestSet {
	set := &models.QuestSet{
		ID:      uuid.New(),
		UserID:  userID,
		Date:    date,
		Quests:  models.DefaultQuests(),
		Version: 1,
	}
	set.Recalculate()
	return set
}

func Test_GetOrCreateToday(t *testing.T) {
	userID := uuid.New()

	t.Run("seeds the default template on first access", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		questRepo.EXPECT().
			CreateIfAbsent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, set *models.QuestSet) (*models.QuestSet, error) {
				require.Len(t, set.Quests, 4)
				assert.Equal(t, "1", set.Quests[0].ID)
				assert.Equal(t, "4", set.Quests[3].ID)
				assert.Equal(t, 0, set.CompletionRate)
				set.ID = uuid.New()
				return set, nil
			})

		dto, err := uc.GetOrCreateToday(context.Background(), userID)
		require.NoError(t, err)
		assert.Len(t, dto.Quests, 4)
		assert.Equal(t, 0, dto.CompletionRate)
	})

	t.Run("returns the stored set when the day already exists", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		stored := defaultSet(userID, "2026-08-31")
		stored.Quests[0].Completed = true
		stored.Recalculate()

		questRepo.EXPECT().
			CreateIfAbsent(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		dto, err := uc.GetOrCreateToday(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, dto.ID)
		assert.Equal(t, 25, dto.CompletionRate)
	})
}

func Test_GetByDate(t *testing.T) {
	userID := uuid.New()

	t.Run("sad path - malformed date", func(t *testing.T) {
		uc, _, _, _ := newUC(t)

		for _, bad := range []string{"2026-13-01", "2026-1-1", "today", ""} {
			_, err := uc.GetByDate(context.Background(), userID, bad)
			assert.Equal(t, appErrors.ErrInvalidDate, err, "date %q", bad)
		}
	})

	t.Run("sad path - absent day", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		questRepo.EXPECT().
			GetByUserAndDate(gomock.Any(), userID, "2026-08-30").
			Return(nil, repository.ErrQuestSetNotFound)

		_, err := uc.GetByDate(context.Background(), userID, "2026-08-30")
		assert.Equal(t, appErrors.ErrQuestSetNotFound, err)
	})
}

func Test_Toggle(t *testing.T) {
	userID := uuid.New()
	const date = "2026-08-31"

	expectUnlinkedOwner := func(userRepo *userMocks.MockUserRepository) {
		userRepo.EXPECT().
			GetUserByID(gomock.Any(), userID).
			Return(&userModels.User{ID: userID}, nil).
			AnyTimes()
	}

	t.Run("completing one of four items yields rate 25", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)
		expectUnlinkedOwner(userRepo)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil)
		questRepo.EXPECT().Update(gomock.Any(), set).Return(nil)

		dto, err := uc.Toggle(context.Background(), userID, date, "1")
		require.NoError(t, err)
		assert.Equal(t, 25, dto.CompletionRate)
		require.True(t, dto.Quests[0].Completed)
		assert.NotNil(t, dto.Quests[0].CompletedAt)
	})

	t.Run("toggling twice restores the original state and rate", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)
		expectUnlinkedOwner(userRepo)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil).Times(2)
		questRepo.EXPECT().Update(gomock.Any(), set).Return(nil).Times(2)

		_, err := uc.Toggle(context.Background(), userID, date, "2")
		require.NoError(t, err)

		dto, err := uc.Toggle(context.Background(), userID, date, "2")
		require.NoError(t, err)
		assert.Equal(t, 0, dto.CompletionRate)
		assert.False(t, dto.Quests[1].Completed)
		assert.Nil(t, dto.Quests[1].CompletedAt)
	})

	t.Run("sad path - unknown item leaves the set unmodified", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil)

		_, err := uc.Toggle(context.Background(), userID, date, "99")
		assert.Equal(t, appErrors.ErrQuestItemNotFound, err)
		assert.Equal(t, 0, set.CompletionRate)
	})

	t.Run("retries once after losing a version race", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)
		expectUnlinkedOwner(userRepo)

		first := defaultSet(userID, date)
		second := defaultSet(userID, date)
		second.Version = 2

		gomock.InOrder(
			questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(first, nil),
			questRepo.EXPECT().Update(gomock.Any(), first).Return(repository.ErrVersionConflict),
			questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(second, nil),
			questRepo.EXPECT().Update(gomock.Any(), second).Return(nil),
		)

		dto, err := uc.Toggle(context.Background(), userID, date, "1")
		require.NoError(t, err)
		assert.Equal(t, 25, dto.CompletionRate)
	})

	t.Run("gives up after a second version race", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).
			Return(defaultSet(userID, date), nil).Times(2)
		questRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
			Return(repository.ErrVersionConflict).Times(2)

		_, err := uc.Toggle(context.Background(), userID, date, "1")
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeFailedPrecondition, appErrors.CodeOf(err))
	})

	t.Run("notifies the linked partner after the write", func(t *testing.T) {
		uc, questRepo, userRepo, notifier := newUC(t)

		peerID := uuid.New()
		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil)
		questRepo.EXPECT().Update(gomock.Any(), set).Return(nil)
		userRepo.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&userModels.User{ID: userID, LinkedUserID: &peerID}, nil)
		notifier.EXPECT().NotifyQuestUpdate(peerID, gomock.Any()).
			Do(func(_ uuid.UUID, payload any) {
				event, ok := payload.(quest.QuestUpdateEvent)
				require.True(t, ok)
				assert.Equal(t, userID, event.UserID)
				assert.Equal(t, 25, event.CompletionRate)
			})

		_, err := uc.Toggle(context.Background(), userID, date, "1")
		require.NoError(t, err)
	})
}

func Test_Replace(t *testing.T) {
	userID := uuid.New()
	const date = "2026-08-31"

	expectUnlinkedOwner := func(userRepo *userMocks.MockUserRepository) {
		userRepo.EXPECT().
			GetUserByID(gomock.Any(), userID).
			Return(&userModels.User{ID: userID}, nil).
			AnyTimes()
	}

	t.Run("updates only the encouragement note", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)
		expectUnlinkedOwner(userRepo)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil)
		questRepo.EXPECT().Update(gomock.Any(), set).Return(nil)

		note := "you can do it"
		dto, err := uc.Replace(context.Background(), userID, date, quest.ReplaceCommand{EncouragementMessage: &note})
		require.NoError(t, err)
		require.NotNil(t, dto.EncouragementMessage)
		assert.Equal(t, note, *dto.EncouragementMessage)
		assert.Len(t, dto.Quests, 4)
	})

	t.Run("replaces the quest list and recomputes the rate", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)
		expectUnlinkedOwner(userRepo)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil)
		questRepo.EXPECT().Update(gomock.Any(), set).Return(nil)

		items := []quest.QuestItemInput{
			{ID: "1", Title: "Stretch", Completed: true},
			{ID: "2", Title: "Journal", Completed: false},
		}
		dto, err := uc.Replace(context.Background(), userID, date, quest.ReplaceCommand{Quests: &items})
		require.NoError(t, err)
		assert.Equal(t, 50, dto.CompletionRate)
		require.Len(t, dto.Quests, 2)
		assert.NotNil(t, dto.Quests[0].CompletedAt)
		assert.Nil(t, dto.Quests[1].CompletedAt)
	})

	t.Run("sad path - validation", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		set := defaultSet(userID, date)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, date).Return(set, nil).AnyTimes()

		long := strings.Repeat("x", 201)
		_, err := uc.Replace(context.Background(), userID, date, quest.ReplaceCommand{EncouragementMessage: &long})
		assert.Equal(t, appErrors.ErrEncouragementTooLong, err)

		dup := []quest.QuestItemInput{
			{ID: "1", Title: "a"},
			{ID: "1", Title: "b"},
		}
		_, err = uc.Replace(context.Background(), userID, date, quest.ReplaceCommand{Quests: &dup})
		assert.Equal(t, appErrors.ErrDuplicateQuestID, err)

		untitled := []quest.QuestItemInput{{ID: "1", Title: ""}}
		_, err = uc.Replace(context.Background(), userID, date, quest.ReplaceCommand{Quests: &untitled})
		assert.Equal(t, appErrors.ErrInvalidQuestTitle, err)
	})
}

func Test_ListMonth(t *testing.T) {
	userID := uuid.New()

	t.Run("uses the true calendar month end", func(t *testing.T) {
		uc, questRepo, _, _ := newUC(t)

		questRepo.EXPECT().
			ListRange(gomock.Any(), userID, "2024-02-01", "2024-02-29").
			Return([]models.QuestSet{*defaultSet(userID, "2024-02-10")}, nil)

		dtos, err := uc.ListMonth(context.Background(), userID, 2024, 2)
		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "2024-02-10", dtos[0].Date)
	})

	t.Run("sad path - invalid month", func(t *testing.T) {
		uc, _, _, _ := newUC(t)

		_, err := uc.ListMonth(context.Background(), userID, 2024, 13)
		assert.Equal(t, appErrors.ErrInvalidMonth, err)

		_, err = uc.ListMonth(context.Background(), userID, 2024, 0)
		assert.Equal(t, appErrors.ErrInvalidMonth, err)
	})
}

func Test_LinkedPeerQuest(t *testing.T) {
	requesterID := uuid.New()
	peerID := uuid.New()
	const date = "2026-08-31"

	t.Run("happy path", func(t *testing.T) {
		uc, questRepo, userRepo, _ := newUC(t)

		userRepo.EXPECT().GetUserByID(gomock.Any(), requesterID).
			Return(&userModels.User{ID: requesterID, LinkedUserID: &peerID}, nil)
		userRepo.EXPECT().GetUserByID(gomock.Any(), peerID).
			Return(&userModels.User{ID: peerID, Nickname: "Bob", LinkedUserID: &requesterID}, nil)
		questRepo.EXPECT().GetByUserAndDate(gomock.Any(), peerID, date).
			Return(defaultSet(peerID, date), nil)

		dto, err := uc.LinkedPeerQuest(context.Background(), requesterID, date)
		require.NoError(t, err)
		assert.Equal(t, "Bob", dto.LinkedUser.Nickname)
		assert.Equal(t, peerID, dto.QuestSet.UserID)
	})

	t.Run("sad path - not linked", func(t *testing.T) {
		uc, _, userRepo, _ := newUC(t)

		userRepo.EXPECT().GetUserByID(gomock.Any(), requesterID).
			Return(&userModels.User{ID: requesterID}, nil)

		_, err := uc.LinkedPeerQuest(context.Background(), requesterID, date)
		assert.Equal(t, appErrors.ErrNotLinked, err)
	})

	t.Run("sad path - one-directional link is rejected", func(t *testing.T) {
		uc, _, userRepo, _ := newUC(t)

		other := uuid.New()
		userRepo.EXPECT().GetUserByID(gomock.Any(), requesterID).
			Return(&userModels.User{ID: requesterID, LinkedUserID: &peerID}, nil)
		userRepo.EXPECT().GetUserByID(gomock.Any(), peerID).
			Return(&userModels.User{ID: peerID, LinkedUserID: &other}, nil)

		_, err := uc.LinkedPeerQuest(context.Background(), requesterID, date)
		assert.Equal(t, appErrors.ErrNotMutuallyLinked, err)
	})
}

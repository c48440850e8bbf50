package server

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woongiiit/DailyQuest-Backend/config"
	messageModels "github.com/woongiiit/DailyQuest-Backend/internal/message/model"
	messageRepo "github.com/woongiiit/DailyQuest-Backend/internal/message/repository"
	messageUsecase "github.com/woongiiit/DailyQuest-Backend/internal/message/usecase"
	"github.com/woongiiit/DailyQuest-Backend/internal/notifier"
	questModels "github.com/woongiiit/DailyQuest-Backend/internal/quest/model"
	questRepo "github.com/woongiiit/DailyQuest-Backend/internal/quest/repository"
	questUsecase "github.com/woongiiit/DailyQuest-Backend/internal/quest/usecase"
	"github.com/woongiiit/DailyQuest-Backend/internal/user"
	userModels "github.com/woongiiit/DailyQuest-Backend/internal/user/model"
	userRepo "github.com/woongiiit/DailyQuest-Backend/internal/user/repository"
	userUsecase "github.com/woongiiit/DailyQuest-Backend/internal/user/usecase"
	"github.com/woongiiit/DailyQuest-Backend/pkg/logger"
)

// In-memory stand-ins for the postgres repositories, honoring the same
// sentinel-error contracts, so the full two-user journey runs through
// the real usecases without a database.

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*userModels.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*userModels.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *userModels.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return userRepo.ErrDuplicateUsername
		}
		if existing.UniqueCode == u.UniqueCode {
			return userRepo.ErrDuplicateCode
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	u.LastLoginAt = u.CreatedAt
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*userModels.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*userModels.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByCode(_ context.Context, code string) (*userModels.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.UniqueCode == code {
			clone := *u
			return &clone, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateNickname(_ context.Context, userID uuid.UUID, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.Nickname = nickname
	}
	return nil
}

func (r *fakeUserRepo) UpdateProfileImage(_ context.Context, userID uuid.UUID, image string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.ProfileImage = &image
	}
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.LastLoginAt = time.Now()
	}
	return nil
}

func (r *fakeUserRepo) LinkPair(_ context.Context, requesterID, targetID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	requester, ok := r.byID[requesterID]
	if !ok || requester.LinkedUserID != nil {
		return userRepo.ErrRequesterLinked
	}
	target, ok := r.byID[targetID]
	if !ok || target.LinkedUserID != nil {
		return userRepo.ErrTargetLinked
	}
	requester.LinkedUserID = &targetID
	target.LinkedUserID = &requesterID
	return nil
}

func (r *fakeUserRepo) UnlinkPair(_ context.Context, requesterID, peerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[requesterID]; ok {
		u.LinkedUserID = nil
	}
	if peer, ok := r.byID[peerID]; ok && peer.LinkedUserID != nil && *peer.LinkedUserID == requesterID {
		peer.LinkedUserID = nil
	}
	return nil
}

func (r *fakeUserRepo) ClearDanglingLink(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[userID]; ok {
		u.LinkedUserID = nil
	}
	return nil
}

type fakeQuestRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]map[string]*questModels.QuestSet
}

func newFakeQuestRepo() *fakeQuestRepo {
	return &fakeQuestRepo{byUser: make(map[uuid.UUID]map[string]*questModels.QuestSet)}
}

func cloneSet(s *questModels.QuestSet) *questModels.QuestSet {
	clone := *s
	clone.Quests = append([]questModels.QuestItem(nil), s.Quests...)
	return &clone
}

func (r *fakeQuestRepo) GetByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*questModels.QuestSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.byUser[userID][date]; ok {
		return cloneSet(set), nil
	}
	return nil, questRepo.ErrQuestSetNotFound
}

func (r *fakeQuestRepo) CreateIfAbsent(_ context.Context, set *questModels.QuestSet) (*questModels.QuestSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	days, ok := r.byUser[set.UserID]
	if !ok {
		days = make(map[string]*questModels.QuestSet)
		r.byUser[set.UserID] = days
	}
	if existing, ok := days[set.Date]; ok {
		return cloneSet(existing), nil
	}
	set.ID = uuid.New()
	set.Version = 1
	set.CreatedAt = time.Now()
	set.UpdatedAt = set.CreatedAt
	days[set.Date] = cloneSet(set)
	return cloneSet(set), nil
}

func (r *fakeQuestRepo) Update(_ context.Context, set *questModels.QuestSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byUser[set.UserID][set.Date]
	if !ok || stored.Version != set.Version {
		return questRepo.ErrVersionConflict
	}
	updated := cloneSet(set)
	updated.Version++
	updated.UpdatedAt = time.Now()
	r.byUser[set.UserID][set.Date] = updated
	set.Version++
	return nil
}

func (r *fakeQuestRepo) ListRange(_ context.Context, userID uuid.UUID, from, to string) ([]questModels.QuestSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sets []questModels.QuestSet
	for date, set := range r.byUser[userID] {
		if date >= from && date <= to {
			sets = append(sets, *cloneSet(set))
		}
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Date < sets[j].Date })
	return sets, nil
}

type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs []messageModels.Message
	now  time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{now: time.Now()}
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, msg *messageModels.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = uuid.New()
	r.now = r.now.Add(time.Millisecond)
	msg.CreatedAt = r.now
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeMessageRepo) GetMessageByID(_ context.Context, id uuid.UUID) (*messageModels.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == id {
			clone := r.msgs[i]
			return &clone, nil
		}
	}
	return nil, messageRepo.ErrMessageNotFound
}

func (r *fakeMessageRepo) ListBetweenForDay(_ context.Context, a, b uuid.UUID, questDate string) ([]messageModels.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messageModels.Message
	for _, m := range r.msgs {
		if m.QuestDate != questDate {
			continue
		}
		if (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == id && !r.msgs[i].Read {
			now := time.Now()
			r.msgs[i].Read = true
			r.msgs[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeMessageRepo) CountUnreadFrom(_ context.Context, toID, fromID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, m := range r.msgs {
		if m.ToUserID == toID && m.FromUserID == fromID && !m.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) ListRecentBetween(_ context.Context, a, b uuid.UUID, limit int) ([]messageModels.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messageModels.Message
	for _, m := range r.msgs {
		if (m.FromUserID == a && m.ToUserID == b) || (m.FromUserID == b && m.ToUserID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type recordingSession struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (s *recordingSession) Send(event notifier.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return true
}

func (s *recordingSession) received() []notifier.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notifier.Event(nil), s.events...)
}

// Test_TwoUserJourney walks the whole flow: register two users, link
// them, work through a day's quests, exchange an encouragement, and
// read it.
func Test_TwoUserJourney(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "scenario-secret", ExpiredIn: 3600}}
	log := logger.Logger{}

	users := newFakeUserRepo()
	questSets := newFakeQuestRepo()
	messages := newFakeMessageRepo()
	hub := notifier.NewHub(log)

	userUC := userUsecase.NewUserUsecase(users, log, cfg)
	questUC := questUsecase.NewQuestUsecase(questSets, users, hub, log)
	messageUC := messageUsecase.NewMessageUsecase(messages, users, hub, log)

	ctx := context.Background()

	alice, err := userUC.Register(ctx, user.RegisterCommand{Username: "alice", Password: "secret1", Nickname: "Alice"})
	require.NoError(t, err)
	require.NotEmpty(t, alice.Token)

	bob, err := userUC.Register(ctx, user.RegisterCommand{Username: "bob", Password: "secret2", Nickname: "Bob"})
	require.NoError(t, err)

	aliceID := alice.User.ID
	bobID := bob.User.ID

	// alice links to bob's code; both sides see each other afterwards
	peer, err := userUC.Link(ctx, aliceID, bob.User.UniqueCode)
	require.NoError(t, err)
	assert.Equal(t, "Bob", peer.Nickname)

	aliceMe, err := userUC.Me(ctx, aliceID)
	require.NoError(t, err)
	require.NotNil(t, aliceMe.LinkedUserID)
	assert.Equal(t, bobID, *aliceMe.LinkedUserID)

	bobMe, err := userUC.Me(ctx, bobID)
	require.NoError(t, err)
	require.NotNil(t, bobMe.LinkedUserID)
	assert.Equal(t, aliceID, *bobMe.LinkedUserID)

	// alice opens a live session
	session := &recordingSession{}
	hub.Register("conn-alice", aliceID, session)

	// first access of the day seeds the default template
	todaySet, err := questUC.GetOrCreateToday(ctx, aliceID)
	require.NoError(t, err)
	assert.Len(t, todaySet.Quests, 4)
	assert.Equal(t, 0, todaySet.CompletionRate)

	// asking again returns the same set, not a duplicate
	again, err := questUC.GetOrCreateToday(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, todaySet.ID, again.ID)

	// completing one of four yields 25
	toggled, err := questUC.Toggle(ctx, aliceID, todaySet.Date, "1")
	require.NoError(t, err)
	assert.Equal(t, 25, toggled.CompletionRate)

	// bob can see alice's progress through the linked view
	peerView, err := questUC.LinkedPeerQuest(ctx, bobID, todaySet.Date)
	require.NoError(t, err)
	assert.Equal(t, 25, peerView.QuestSet.CompletionRate)
	assert.Equal(t, "Alice", peerView.LinkedUser.Nickname)

	// bob sends alice an encouragement for today
	sent, err := messageUC.Send(ctx, bobID, aliceID, "nice start!", todaySet.Date)
	require.NoError(t, err)
	assert.False(t, sent.Read)

	// it lands in alice's thread for the day, unread
	thread, err := messageUC.ListForDay(ctx, aliceID, todaySet.Date)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.False(t, thread[0].Read)
	assert.Equal(t, "nice start!", thread[0].Text)

	unread, err := messageUC.UnreadCount(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	// alice reads it
	read, err := messageUC.MarkRead(ctx, thread[0].ID, aliceID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	unread, err = messageUC.UnreadCount(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// alice's live session saw the encouragement arrive
	events := session.received()
	require.NotEmpty(t, events)
	var sawEncouragement bool
	for _, e := range events {
		if e.Type == notifier.EventEncouragement {
			sawEncouragement = true
		}
	}
	assert.True(t, sawEncouragement)
}

func Test_StrangersCannotMessage(t *testing.T) {
	cfg := config.Config{JWT: config.JWT{Secret: "scenario-secret", ExpiredIn: 3600}}
	log := logger.Logger{}

	users := newFakeUserRepo()
	messages := newFakeMessageRepo()
	hub := notifier.NewHub(log)

	userUC := userUsecase.NewUserUsecase(users, log, cfg)
	messageUC := messageUsecase.NewMessageUsecase(messages, users, hub, log)

	ctx := context.Background()

	alice, err := userUC.Register(ctx, user.RegisterCommand{Username: "alice", Password: "secret1", Nickname: "Alice"})
	require.NoError(t, err)
	bob, err := userUC.Register(ctx, user.RegisterCommand{Username: "bob", Password: "secret2", Nickname: "Bob"})
	require.NoError(t, err)

	_, err = messageUC.Send(ctx, alice.User.ID, bob.User.ID, "hi stranger", "2026-08-31")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "linked"))
}

package service

import (
	"campusflow/core/errors"
	"campusflow/core/realtime"
	"campusflow/modules/chat/dto"
	"campusflow/modules/chat/entity"
	notificationDto "campusflow/modules/notification/dto"
	userDto "campusflow/modules/user/dto"
	userEntity "campusflow/modules/user/entity"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type unreadKey struct{ chat, user uuid.UUID }

type fakeRepo struct {
	chats    map[uuid.UUID]*entity.Chat
	messages []entity.Message
	unread   map[unreadKey]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{chats: map[uuid.UUID]*entity.Chat{}, unread: map[unreadKey]int{}}
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Chat, error) {
	if c, ok := r.chats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetByDMKey(_ context.Context, key string) (*entity.Chat, error) {
	for _, c := range r.chats {
		if c.DMKey != nil && *c.DMKey == key {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateDM(ctx context.Context, c *entity.Chat) (*entity.Chat, error) {
	if existing, _ := r.GetByDMKey(ctx, *c.DMKey); existing != nil {
		return existing, nil
	}
	cp := *c
	r.chats[c.ID] = &cp
	return c, nil
}

func (r *fakeRepo) subject(kind string, subjectID uuid.UUID) *entity.Chat {
	for _, c := range r.chats {
		if c.Type == kind && c.SubjectID != nil && *c.SubjectID == subjectID {
			return c
		}
	}
	return nil
}

func (r *fakeRepo) JoinSubject(_ context.Context, kind string, subjectID, userID uuid.UUID) error {
	c := r.subject(kind, subjectID)
	if c == nil {
		sid := subjectID
		c = &entity.Chat{Type: kind, SubjectID: &sid, Participants: pq.StringArray{}}
		c.Touch()
		r.chats[c.ID] = c
	}
	if !c.HasParticipant(userID) {
		c.Participants = append(c.Participants, userID.String())
	}
	return nil
}

func (r *fakeRepo) LeaveSubject(_ context.Context, kind string, subjectID, userID uuid.UUID) (uuid.UUID, error) {
	c := r.subject(kind, subjectID)
	if c == nil {
		return uuid.Nil, nil
	}
	kept := pq.StringArray{}
	for _, p := range c.Participants {
		if p != userID.String() {
			kept = append(kept, p)
		}
	}
	c.Participants = kept
	return c.ID, nil
}

func (r *fakeRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]entity.ChatSummary, error) {
	var out []entity.ChatSummary
	for _, c := range r.chats {
		if c.HasParticipant(userID) {
			out = append(out, entity.ChatSummary{Chat: *c, UnreadCount: r.unread[unreadKey{c.ID, userID}]})
		}
	}
	return out, nil
}

func (r *fakeRepo) UnreadCount(_ context.Context, chatID, userID uuid.UUID) (int, error) {
	return r.unread[unreadKey{chatID, userID}], nil
}

func (r *fakeRepo) UnreadTotal(_ context.Context, userID uuid.UUID) (int, error) {
	total := 0
	for k, n := range r.unread {
		if k.user == userID {
			total += n
		}
	}
	return total, nil
}

func (r *fakeRepo) ListMessages(_ context.Context, chatID uuid.UUID, before *time.Time, limit int) ([]entity.Message, error) {
	var out []entity.Message
	for _, m := range r.messages {
		if m.ChatID == chatID && (before == nil || m.CreatedAt.Before(*before)) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) AddMessage(_ context.Context, m *entity.Message, recipients []uuid.UUID) error {
	r.messages = append(r.messages, *m)
	c := r.chats[m.ChatID]
	c.LastMessage = m.Text
	at := m.CreatedAt
	c.LastMessageAt = &at
	for _, id := range recipients {
		r.unread[unreadKey{m.ChatID, id}]++
	}
	return nil
}

func (r *fakeRepo) MarkRead(_ context.Context, chatID, userID uuid.UUID) error {
	r.unread[unreadKey{chatID, userID}] = 0
	for i := range r.messages {
		m := &r.messages[i]
		if m.ChatID == chatID && m.SenderID != userID {
			m.ReadBy = append(m.ReadBy, userID.String())
		}
	}
	return nil
}

func (r *fakeRepo) MessageExists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, m := range r.messages {
		if m.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type stubUsers struct {
	users   map[uuid.UUID]*userEntity.User
	blocked map[uuid.UUID]uuid.UUID
	lookups [][]uuid.UUID
}

func (s *stubUsers) GetUser(_ context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
}

func (s *stubUsers) Profiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]userDto.PublicProfile, error) {
	s.lookups = append(s.lookups, ids)
	out := map[uuid.UUID]userDto.PublicProfile{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = userDto.PublicProfile{ID: id, Name: u.Name}
		}
	}
	return out, nil
}

func (s *stubUsers) IsBlockedEither(_ context.Context, a, b uuid.UUID) (bool, error) {
	return s.blocked[a] == b || s.blocked[b] == a, nil
}

type published struct {
	topic, kind string
}

type recordingPublisher struct{ events []published }

func (p *recordingPublisher) Publish(_ context.Context, topic, eventType string, _ any) {
	p.events = append(p.events, published{topic, eventType})
}

func (p *recordingPublisher) has(topic, kind string) bool {
	for _, e := range p.events {
		if e.topic == topic && e.kind == kind {
			return true
		}
	}
	return false
}

type stubNotifier struct{ sent []uuid.UUID }

func (n *stubNotifier) Notify(_ context.Context, userID uuid.UUID, _ notificationDto.Payload) error {
	n.sent = append(n.sent, userID)
	return nil
}

type fixture struct {
	svc       *ChatService
	repo      *fakeRepo
	users     *stubUsers
	publisher *recordingPublisher
	notifier  *stubNotifier
	alice     *userEntity.User
	bob       *userEntity.User
	carol     *userEntity.User
	clock     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeRepo(),
		publisher: &recordingPublisher{},
		notifier:  &stubNotifier{},
		alice:     userEntity.NewUser("alice@uni.ac.uk", "Alice"),
		bob:       userEntity.NewUser("bob@uni.ac.uk", "Bob"),
		carol:     userEntity.NewUser("carol@uni.ac.uk", "Carol"),
		clock:     time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC),
	}
	f.users = &stubUsers{
		users:   map[uuid.UUID]*userEntity.User{f.alice.ID: f.alice, f.bob.ID: f.bob, f.carol.ID: f.carol},
		blocked: map[uuid.UUID]uuid.UUID{},
	}
	f.svc = NewChatService(f.repo, f.users, f.publisher, f.notifier)
	f.svc.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}

func TestOpenDMReusesChat(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, appErr := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	second, appErr := f.svc.OpenDM(ctx, f.bob.ID, f.alice.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if first.ID != second.ID {
		t.Errorf("two DMs for one pair: %s, %s", first.ID, second.ID)
	}
	if second.Other == nil || second.Other.ID != f.alice.ID {
		t.Errorf("other profile = %+v", second.Other)
	}
}

func TestOpenDMRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.blocked[f.bob.ID] = f.alice.ID

	if _, appErr := f.svc.OpenDM(ctx, f.alice.ID, f.alice.ID); !errors.Is(appErr, errors.ErrInvalidInput) {
		t.Errorf("self DM, err = %v", appErr)
	}
	if _, appErr := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("blocked DM, err = %v", appErr)
	}
	if _, appErr := f.svc.OpenDM(ctx, f.alice.ID, uuid.New()); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("unknown target, err = %v", appErr)
	}
}

func TestSendUpdatesUnreadAndFansOut(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dm, _ := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID)

	msg, appErr := f.svc.Send(ctx, f.alice.ID, dm.ID, "  see you at the library  ")
	if appErr != nil {
		t.Fatal(appErr)
	}
	if msg.Text != "see you at the library" || msg.SenderName != "Alice" {
		t.Errorf("message = %+v", msg)
	}
	if n := f.repo.unread[unreadKey{dm.ID, f.bob.ID}]; n != 1 {
		t.Errorf("bob unread = %d, want 1", n)
	}
	if n := f.repo.unread[unreadKey{dm.ID, f.alice.ID}]; n != 0 {
		t.Errorf("sender unread = %d, want 0", n)
	}
	if !f.publisher.has(realtime.ChatTopic(dm.ID), EventMessageNew) {
		t.Error("message not published to chat topic")
	}
	if !f.publisher.has(realtime.UserTopic(f.bob.ID), EventChatUpdated) {
		t.Error("summary not published to recipient")
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0] != f.bob.ID {
		t.Errorf("notified %v", f.notifier.sent)
	}

	if appErr := f.svc.MarkRead(ctx, f.bob.ID, dm.ID); appErr != nil {
		t.Fatal(appErr)
	}
	total, _ := f.svc.UnreadTotal(ctx, f.bob.ID)
	if total.Total != 0 {
		t.Errorf("unread after read = %d", total.Total)
	}
	if got := f.repo.messages[0].ReadBy; len(got) != 1 || got[0] != f.bob.ID.String() {
		t.Errorf("read_by = %v", got)
	}
}

func TestSendValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dm, _ := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID)

	if _, appErr := f.svc.Send(ctx, f.alice.ID, dm.ID, "   "); !errors.Is(appErr, errors.ErrInvalidInput) {
		t.Errorf("blank text, err = %v", appErr)
	}
	if _, appErr := f.svc.Send(ctx, f.alice.ID, dm.ID, strings.Repeat("x", 1001)); !errors.Is(appErr, errors.ErrInvalidInput) {
		t.Errorf("long text, err = %v", appErr)
	}
	if _, appErr := f.svc.Send(ctx, f.carol.ID, dm.ID, "hi"); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("outsider send, err = %v", appErr)
	}
	if _, appErr := f.svc.Messages(ctx, f.carol.ID, dm.ID, dtoQuery()); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("outsider read, err = %v", appErr)
	}

	f.users.blocked[f.bob.ID] = f.alice.ID
	if _, appErr := f.svc.Send(ctx, f.alice.ID, dm.ID, "hello?"); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("send after block, err = %v", appErr)
	}
}

func TestListChatsOrderAndSingleProfileLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	withBob, _ := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID)
	withCarol, _ := f.svc.OpenDM(ctx, f.alice.ID, f.carol.ID)
	groupID := uuid.New()
	_ = f.svc.JoinSubject(ctx, entity.TypeGroup, groupID, f.alice.ID)

	if _, appErr := f.svc.Send(ctx, f.alice.ID, withBob.ID, "first"); appErr != nil {
		t.Fatal(appErr)
	}
	if _, appErr := f.svc.Send(ctx, f.carol.ID, withCarol.ID, "second"); appErr != nil {
		t.Fatal(appErr)
	}

	f.users.lookups = nil
	chats, appErr := f.svc.ListChats(ctx, f.alice.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if len(chats) != 3 {
		t.Fatalf("got %d chats", len(chats))
	}
	if chats[0].ID != withCarol.ID || chats[1].ID != withBob.ID || chats[2].Type != entity.TypeGroup {
		t.Errorf("order = %s, %s, %s", chats[0].ID, chats[1].ID, chats[2].Type)
	}
	if chats[0].UnreadCount != 1 || chats[0].Other == nil || chats[0].Other.Name != "Carol" {
		t.Errorf("top chat = %+v", chats[0])
	}
	if len(f.users.lookups) != 1 {
		t.Errorf("profiles looked up %d times", len(f.users.lookups))
	}
}

func TestMessagesNewestFirstWithCursor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dm, _ := f.svc.OpenDM(ctx, f.alice.ID, f.bob.ID)
	for _, text := range []string{"one", "two", "three"} {
		if _, appErr := f.svc.Send(ctx, f.alice.ID, dm.ID, text); appErr != nil {
			t.Fatal(appErr)
		}
	}

	page, appErr := f.svc.Messages(ctx, f.bob.ID, dm.ID, dtoQuery())
	if appErr != nil {
		t.Fatal(appErr)
	}
	if len(page) != 3 || page[0].Text != "three" {
		t.Fatalf("page = %+v", page)
	}

	q := dtoQuery()
	q.Before = &page[0].CreatedAt
	q.Limit = 1
	older, _ := f.svc.Messages(ctx, f.bob.ID, dm.ID, q)
	if len(older) != 1 || older[0].Text != "two" {
		t.Errorf("older = %+v", older)
	}
}

func TestSubjectMembershipAndAuthorizer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	roomID := uuid.New()

	_ = f.svc.JoinSubject(ctx, entity.TypeRoom, roomID, f.bob.ID)
	_ = f.svc.JoinSubject(ctx, entity.TypeRoom, roomID, f.bob.ID)
	chat := f.repo.subject(entity.TypeRoom, roomID)
	if chat == nil || len(chat.Participants) != 1 {
		t.Fatalf("room chat = %+v", chat)
	}
	if ok, _ := f.svc.IsParticipant(ctx, chat.ID, f.bob.ID); !ok {
		t.Error("member not authorised")
	}
	_ = f.svc.LeaveSubject(ctx, entity.TypeRoom, roomID, f.bob.ID)
	if ok, _ := f.svc.IsParticipant(ctx, chat.ID, f.bob.ID); ok {
		t.Error("former member still authorised")
	}
	if !f.publisher.has(realtime.ChatTopic(chat.ID), realtime.EventRevoke) {
		t.Error("leaving did not revoke the chat subscription")
	}
}

func dtoQuery() dto.MessageQuery {
	return dto.MessageQuery{}
}

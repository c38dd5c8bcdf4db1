package service

import (
	"campusflow/core/errors"
	chatDto "campusflow/modules/chat/dto"
	notificationDto "campusflow/modules/notification/dto"
	"campusflow/modules/studybuddy/dto"
	"campusflow/modules/studybuddy/entity"
	userDto "campusflow/modules/user/dto"
	userEntity "campusflow/modules/user/entity"
	"context"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct{ reqs map[uuid.UUID]*entity.Request }

func (r *fakeRepo) Create(_ context.Context, req *entity.Request) error {
	for _, existing := range r.reqs {
		if existing.Status == entity.StatusPending && existing.RequesterID == req.RequesterID && existing.TargetID == req.TargetID {
			return entity.ErrDuplicatePending
		}
	}
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Request, error) {
	if req, ok := r.reqs[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) ListIncomingPending(_ context.Context, targetID uuid.UUID) ([]entity.Request, error) {
	var out []entity.Request
	for _, req := range r.reqs {
		if req.TargetID == targetID && req.Status == entity.StatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRepo) Respond(_ context.Context, id uuid.UUID, status string) (bool, error) {
	req, ok := r.reqs[id]
	if !ok || req.Status != entity.StatusPending {
		return false, nil
	}
	req.Status = status
	return true, nil
}

type stubUsers struct {
	users   map[uuid.UUID]*userEntity.User
	blocked map[uuid.UUID]struct{}
}

func (s *stubUsers) GetUser(_ context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
}

func (s *stubUsers) ListOthers(_ context.Context, exclude uuid.UUID, _ string) ([]userEntity.User, error) {
	var out []userEntity.User
	for id, u := range s.users {
		if id != exclude {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *stubUsers) BlockedEither(_ context.Context, _ uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return s.blocked, nil
}

func (s *stubUsers) IsBlockedEither(_ context.Context, a, b uuid.UUID) (bool, error) {
	_, ba := s.blocked[a]
	_, bb := s.blocked[b]
	return ba || bb, nil
}

func (s *stubUsers) Profiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]userDto.PublicProfile, error) {
	out := map[uuid.UUID]userDto.PublicProfile{}
	for _, id := range ids {
		out[id] = userDto.PublicProfile{ID: id, Name: s.users[id].Name}
	}
	return out, nil
}

type stubNotifier struct{ types []string }

func (n *stubNotifier) Notify(_ context.Context, _ uuid.UUID, p notificationDto.Payload) error {
	n.types = append(n.types, p.Type)
	return nil
}

type stubChats struct {
	opened int
	refuse bool
}

func (c *stubChats) OpenDM(_ context.Context, _, _ uuid.UUID) (*chatDto.ChatResponse, *errors.AppError) {
	if c.refuse {
		return nil, errors.NewAppError(errors.ErrForbidden, "cannot message this user", nil)
	}
	c.opened++
	return &chatDto.ChatResponse{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("dm"))}, nil
}

func setup() (*StudyBuddyService, *stubUsers, *stubNotifier, *stubChats, *userEntity.User, *userEntity.User) {
	alice := userEntity.NewUser("alice@uni.ac.uk", "Alice")
	bob := userEntity.NewUser("bob@uni.ac.uk", "Bob")
	users := &stubUsers{
		users:   map[uuid.UUID]*userEntity.User{alice.ID: alice, bob.ID: bob},
		blocked: map[uuid.UUID]struct{}{},
	}
	notifier := &stubNotifier{}
	chats := &stubChats{}
	svc := NewStudyBuddyService(&fakeRepo{reqs: map[uuid.UUID]*entity.Request{}}, users, notifier, chats)
	return svc, users, notifier, chats, alice, bob
}

func TestSendRequest(t *testing.T) {
	svc, _, notifier, _, alice, bob := setup()
	ctx := context.Background()

	req, appErr := svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: bob.ID.String(), Course: "CS101"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if req.Status != entity.StatusPending {
		t.Errorf("status = %s", req.Status)
	}
	if len(notifier.types) != 1 || notifier.types[0] != "study_buddy_request" {
		t.Errorf("notifications = %v", notifier.types)
	}

	if _, appErr := svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: bob.ID.String()}); !errors.Is(appErr, errors.ErrAlreadyExists) {
		t.Errorf("duplicate pending, err = %v", appErr)
	}
	if _, appErr := svc.SendRequest(ctx, bob.ID, &dto.CreateRequest{TargetID: alice.ID.String()}); appErr != nil {
		t.Errorf("reverse direction rejected: %v", appErr)
	}
	if _, appErr := svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: alice.ID.String()}); !errors.Is(appErr, errors.ErrInvalidInput) {
		t.Errorf("self request, err = %v", appErr)
	}
}

func TestAcceptOpensDMOnce(t *testing.T) {
	svc, _, _, chats, alice, bob := setup()
	ctx := context.Background()
	req, _ := svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: bob.ID.String()})

	if _, appErr := svc.Accept(ctx, alice.ID, req.ID); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("requester accepting, err = %v", appErr)
	}
	res, appErr := svc.Accept(ctx, bob.ID, req.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if res.ChatID == uuid.Nil || chats.opened != 1 {
		t.Errorf("accept = %+v, opened %d", res, chats.opened)
	}
	if _, appErr := svc.Accept(ctx, bob.ID, req.ID); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("second accept, err = %v", appErr)
	}
	if appErr := svc.Reject(ctx, bob.ID, req.ID); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("reject after accept, err = %v", appErr)
	}
}

func TestRefusedDMKeepsRequestPending(t *testing.T) {
	svc, _, _, chats, alice, bob := setup()
	ctx := context.Background()
	req, _ := svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: bob.ID.String()})

	chats.refuse = true
	if _, appErr := svc.Accept(ctx, bob.ID, req.ID); !errors.Is(appErr, errors.ErrForbidden) {
		t.Fatalf("accept with refused dm, err = %v", appErr)
	}
	incoming, _ := svc.Incoming(ctx, bob.ID)
	if len(incoming) != 1 {
		t.Fatalf("request left the pending list after a failed accept: %+v", incoming)
	}

	chats.refuse = false
	if _, appErr := svc.Accept(ctx, bob.ID, req.ID); appErr != nil {
		t.Fatalf("retry accept: %v", appErr)
	}
}

func TestIncomingCarriesRequester(t *testing.T) {
	svc, _, _, _, alice, bob := setup()
	ctx := context.Background()
	_, _ = svc.SendRequest(ctx, alice.ID, &dto.CreateRequest{TargetID: bob.ID.String()})

	incoming, appErr := svc.Incoming(ctx, bob.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if len(incoming) != 1 || incoming[0].Requester == nil || incoming[0].Requester.Name != "Alice" {
		t.Errorf("incoming = %+v", incoming)
	}
}

func TestBlockedUsersCannotRequest(t *testing.T) {
	svc, users, _, _, alice, bob := setup()
	users.blocked[bob.ID] = struct{}{}

	if _, appErr := svc.SendRequest(context.Background(), alice.ID, &dto.CreateRequest{TargetID: bob.ID.String()}); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("blocked request, err = %v", appErr)
	}
}

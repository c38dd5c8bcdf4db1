package service

import (
	"campusflow/core/errors"
	coreEntity "campusflow/core/entity"
	"campusflow/core/params"
	"campusflow/modules/group/dto"
	"campusflow/modules/group/entity"
	userEntity "campusflow/modules/user/entity"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type memberKey struct{ group, user uuid.UUID }

type fakeRepo struct {
	groups  map[uuid.UUID]*entity.Group
	members map[memberKey]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{groups: map[uuid.UUID]*entity.Group{}, members: map[memberKey]string{}}
}

func (r *fakeRepo) Create(_ context.Context, g *entity.Group) error {
	g.MemberCount = 1
	cp := *g
	r.groups[g.ID] = &cp
	r.members[memberKey{g.ID, g.OwnerID}] = entity.RoleModerator
	return nil
}

func (r *fakeRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, g := range r.groups {
		if g.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	if g, ok := r.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, g *entity.Group) error {
	cp := *g
	r.groups[g.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, groupType string, p params.QueryParams) (*entity.PaginatedGroupEntity, error) {
	var items []entity.Group
	for _, g := range r.groups {
		if groupType == "" || g.Type == groupType {
			items = append(items, *g)
		}
	}
	return coreEntity.NewPagination(items, len(items), p.PageNumber, p.PageSize), nil
}

func (r *fakeRepo) AddMember(_ context.Context, groupID, userID uuid.UUID, role string) (int, error) {
	key := memberKey{groupID, userID}
	if _, ok := r.members[key]; !ok {
		r.members[key] = role
		r.groups[groupID].MemberCount++
	}
	return r.groups[groupID].MemberCount, nil
}

func (r *fakeRepo) RemoveMember(_ context.Context, groupID, userID uuid.UUID) (int, error) {
	key := memberKey{groupID, userID}
	if _, ok := r.members[key]; ok {
		delete(r.members, key)
		r.groups[groupID].MemberCount--
	}
	return r.groups[groupID].MemberCount, nil
}

func (r *fakeRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	_, ok := r.members[memberKey{groupID, userID}]
	return ok, nil
}

func (r *fakeRepo) ListMembers(_ context.Context, groupID uuid.UUID) ([]entity.Member, error) {
	var out []entity.Member
	for k, role := range r.members {
		if k.group == groupID {
			out = append(out, entity.Member{GroupID: k.group, UserID: k.user, Role: role})
		}
	}
	return out, nil
}

func (r *fakeRepo) ListMemberIDs(_ context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for k := range r.members {
		if k.group == groupID {
			out = append(out, k.user)
		}
	}
	return out, nil
}

func (r *fakeRepo) GroupIDsForUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for k := range r.members {
		if k.user == userID {
			out = append(out, k.group)
		}
	}
	return out, nil
}

type stubUsers map[uuid.UUID]*userEntity.User

func (s stubUsers) GetUser(_ context.Context, id uuid.UUID) (*userEntity.User, *errors.AppError) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
}

type stubChats struct{ members map[uuid.UUID]map[uuid.UUID]bool }

func (c *stubChats) JoinSubject(_ context.Context, _ string, subjectID, userID uuid.UUID) error {
	if c.members[subjectID] == nil {
		c.members[subjectID] = map[uuid.UUID]bool{}
	}
	c.members[subjectID][userID] = true
	return nil
}

func (c *stubChats) LeaveSubject(_ context.Context, _ string, subjectID, userID uuid.UUID) error {
	delete(c.members[subjectID], userID)
	return nil
}

func setup() (*GroupService, *fakeRepo, *stubChats, stubUsers) {
	repo := newFakeRepo()
	chats := &stubChats{members: map[uuid.UUID]map[uuid.UUID]bool{}}
	owner := userEntity.NewUser("owen@uni.ac.uk", "Owen")
	other := userEntity.NewUser("mia@uni.ac.uk", "Mia")
	admin := userEntity.NewUser("ada@uni.ac.uk", "Ada")
	admin.RoleAdmin = true
	users := stubUsers{owner.ID: owner, other.ID: other, admin.ID: admin}
	return NewGroupService(repo, users, chats), repo, chats, users
}

func pick(users stubUsers, name string) *userEntity.User {
	for _, u := range users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

func TestCreateGroupOwnerIsModerator(t *testing.T) {
	svc, repo, chats, users := setup()
	owner := pick(users, "Owen")

	g, appErr := svc.CreateGroup(context.Background(), owner.ID, &dto.GroupRequest{Name: " Chess  Society ", Type: "society"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if g.Name != "Chess Society" || g.Slug != "chess-society" {
		t.Errorf("name/slug = %q/%q", g.Name, g.Slug)
	}
	if g.MemberCount != 1 || !g.IsMember {
		t.Errorf("owner membership = %+v", g)
	}
	if repo.members[memberKey{g.ID, owner.ID}] != entity.RoleModerator {
		t.Error("owner is not a moderator")
	}
	if !chats.members[g.ID][owner.ID] {
		t.Error("owner not in group chat")
	}
}

func TestSlugCollisionGetsSuffix(t *testing.T) {
	svc, _, _, users := setup()
	owner := pick(users, "Owen")
	ctx := context.Background()

	first, _ := svc.CreateGroup(ctx, owner.ID, &dto.GroupRequest{Name: "Chess", Type: "society"})
	second, appErr := svc.CreateGroup(ctx, owner.ID, &dto.GroupRequest{Name: "Chess", Type: "study"})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if first.Slug == second.Slug || !strings.HasPrefix(second.Slug, "chess-") {
		t.Errorf("slugs %q and %q", first.Slug, second.Slug)
	}
}

func TestJoinLeaveIdempotent(t *testing.T) {
	svc, _, chats, users := setup()
	owner, other := pick(users, "Owen"), pick(users, "Mia")
	ctx := context.Background()
	g, _ := svc.CreateGroup(ctx, owner.ID, &dto.GroupRequest{Name: "Maths study", Type: "study"})

	for i := 0; i < 2; i++ {
		res, appErr := svc.Join(ctx, other.ID, g.ID)
		if appErr != nil {
			t.Fatal(appErr)
		}
		if res.MemberCount != 2 {
			t.Errorf("join #%d count = %d, want 2", i+1, res.MemberCount)
		}
	}
	if !chats.members[g.ID][other.ID] {
		t.Error("member not in chat")
	}

	for i := 0; i < 2; i++ {
		res, appErr := svc.Leave(ctx, other.ID, g.ID)
		if appErr != nil {
			t.Fatal(appErr)
		}
		if res.MemberCount != 1 {
			t.Errorf("leave #%d count = %d, want 1", i+1, res.MemberCount)
		}
	}
	if chats.members[g.ID][other.ID] {
		t.Error("member still in chat")
	}
}

func TestOwnerCannotLeave(t *testing.T) {
	svc, _, _, users := setup()
	owner := pick(users, "Owen")
	ctx := context.Background()
	g, _ := svc.CreateGroup(ctx, owner.ID, &dto.GroupRequest{Name: "Drama", Type: "society"})

	if _, appErr := svc.Leave(ctx, owner.ID, g.ID); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("owner leave, err = %v", appErr)
	}
}

func TestUpdateDeletePermissions(t *testing.T) {
	svc, _, _, users := setup()
	owner, other, admin := pick(users, "Owen"), pick(users, "Mia"), pick(users, "Ada")
	ctx := context.Background()
	g, _ := svc.CreateGroup(ctx, owner.ID, &dto.GroupRequest{Name: "Film", Type: "society"})
	desc := "Weekly screenings"

	if _, appErr := svc.UpdateGroup(ctx, other.ID, g.ID, &dto.UpdateGroupRequest{Description: &desc}); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("non-owner update, err = %v", appErr)
	}
	if got, appErr := svc.UpdateGroup(ctx, admin.ID, g.ID, &dto.UpdateGroupRequest{Description: &desc}); appErr != nil || got.Description != desc {
		t.Errorf("admin update = %+v, %v", got, appErr)
	}
	if appErr := svc.DeleteGroup(ctx, other.ID, g.ID); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("non-owner delete, err = %v", appErr)
	}
	if appErr := svc.DeleteGroup(ctx, owner.ID, g.ID); appErr != nil {
		t.Errorf("owner delete: %v", appErr)
	}
	if _, appErr := svc.GetGroup(ctx, owner.ID, g.ID); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("deleted group still found, err = %v", appErr)
	}
}

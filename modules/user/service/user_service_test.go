package service

import (
	"bytes"
	"campusflow/core/errors"
	"campusflow/core/storage"
	"campusflow/modules/user/dto"
	"campusflow/modules/user/entity"
	"campusflow/modules/user/repository"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	repository.UserRepositoryInterface
	users      map[uuid.UUID]*entity.User
	blocks     map[[2]uuid.UUID]bool
	getByIDsFn int
	lastIDs    []uuid.UUID
}

func newFakeRepo(users ...*entity.User) *fakeRepo {
	r := &fakeRepo{users: map[uuid.UUID]*entity.User{}, blocks: map[[2]uuid.UUID]bool{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.User, error) {
	r.getByIDsFn++
	r.lastIDs = ids
	var out []entity.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) SetAvatar(_ context.Context, id uuid.UUID, url string) error {
	r.users[id].AvatarURL = url
	return nil
}

func (r *fakeRepo) SetRoles(_ context.Context, id uuid.UUID, organizer, admin bool) error {
	r.users[id].RoleOrganizer, r.users[id].RoleAdmin = organizer, admin
	return nil
}

func (r *fakeRepo) Block(_ context.Context, a, b uuid.UUID) error {
	r.blocks[[2]uuid.UUID{a, b}] = true
	return nil
}

func (r *fakeRepo) IsBlockedEither(_ context.Context, a, b uuid.UUID) (bool, error) {
	return r.blocks[[2]uuid.UUID{a, b}] || r.blocks[[2]uuid.UUID{b, a}], nil
}

type fakeUploader struct {
	key  string
	size int
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, body []byte, progress storage.ProgressFunc) (string, error) {
	u.key, u.size = key, len(body)
	progress(int64(len(body)/2), int64(len(body)))
	progress(int64(len(body)), int64(len(body)))
	return "https://cdn.test/" + key, nil
}

func strPtr(s string) *string { return &s }

func TestNewUserDefaults(t *testing.T) {
	u := entity.NewUser("a@uni.edu", "Ada")
	if !u.RoleStudent || u.RoleOrganizer || u.RoleAdmin {
		t.Fatalf("unexpected default roles %+v", u)
	}
	if u.QuietStart != "22:00" || u.QuietEnd != "07:00" || !u.QuietEnabled {
		t.Fatalf("unexpected quiet hours %s-%s %v", u.QuietStart, u.QuietEnd, u.QuietEnabled)
	}
}

func TestUpdateMeIsPartial(t *testing.T) {
	u := entity.NewUser("a@uni.edu", "Ada")
	u.Course, u.Year = "CS", 2
	repo := newFakeRepo(u)
	svc := NewUserService(repo, nil)

	res, appErr := svc.UpdateMe(context.Background(), u.ID, &dto.UpdateProfileRequest{
		Bio:       strPtr("  loves   graphs "),
		Interests: []string{"Chess", "chess", " AI "},
	})
	if appErr != nil {
		t.Fatalf("UpdateMe: %v", appErr)
	}
	if res.Course != "CS" || res.Year != 2 || res.Name != "Ada" {
		t.Fatalf("untouched fields changed: %+v", res)
	}
	if res.Bio != "loves graphs" {
		t.Fatalf("bio = %q", res.Bio)
	}
	if len(res.Interests) != 2 || res.Interests[0] != "chess" || res.Interests[1] != "ai" {
		t.Fatalf("interests = %v", res.Interests)
	}
}

func TestBlockSelfRejected(t *testing.T) {
	u := entity.NewUser("a@uni.edu", "Ada")
	svc := NewUserService(newFakeRepo(u), nil)
	appErr := svc.Block(context.Background(), u.ID, u.ID)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("got %v", appErr)
	}
}

func TestBlockIsSymmetricForChecks(t *testing.T) {
	a, b := entity.NewUser("a@uni.edu", "A"), entity.NewUser("b@uni.edu", "B")
	svc := NewUserService(newFakeRepo(a, b), nil)
	if appErr := svc.Block(context.Background(), a.ID, b.ID); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := svc.Block(context.Background(), a.ID, b.ID); appErr != nil {
		t.Fatalf("second block should be a no-op: %v", appErr)
	}
	blocked, _ := svc.IsBlockedEither(context.Background(), b.ID, a.ID)
	if !blocked {
		t.Fatal("block should be visible from both sides")
	}
}

func TestProfilesDedupesLookups(t *testing.T) {
	a, b := entity.NewUser("a@uni.edu", "A"), entity.NewUser("b@uni.edu", "B")
	repo := newFakeRepo(a, b)
	svc := NewUserService(repo, nil)

	got, err := svc.Profiles(context.Background(), []uuid.UUID{a.ID, b.ID, a.ID, uuid.Nil, b.ID})
	if err != nil {
		t.Fatal(err)
	}
	if repo.getByIDsFn != 1 || len(repo.lastIDs) != 2 {
		t.Fatalf("lookups=%d ids=%v", repo.getByIDsFn, repo.lastIDs)
	}
	if got[a.ID].Name != "A" || got[b.ID].Name != "B" {
		t.Fatalf("profiles = %+v", got)
	}
}

func TestUploadAvatar(t *testing.T) {
	u := entity.NewUser("a@uni.edu", "Ada")
	repo := newFakeRepo(u)
	up := &fakeUploader{}
	svc := NewUserService(repo, up)

	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 200)))

	res, appErr := svc.UploadAvatar(context.Background(), u.ID, buf.Bytes())
	if appErr != nil {
		t.Fatalf("UploadAvatar: %v", appErr)
	}
	if res.Progress != 100 || up.size == 0 {
		t.Fatalf("progress=%d size=%d", res.Progress, up.size)
	}
	if repo.users[u.ID].AvatarURL != res.AvatarURL {
		t.Fatal("avatar url not stored")
	}

	if _, appErr := svc.UploadAvatar(context.Background(), u.ID, []byte("nope")); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", appErr)
	}
}

func TestSetRolesAndHasRole(t *testing.T) {
	u := entity.NewUser("a@uni.edu", "Ada")
	svc := NewUserService(newFakeRepo(u), nil)
	yes := true
	if _, appErr := svc.SetRoles(context.Background(), u.ID, &dto.RolesRequest{Admin: &yes}); appErr != nil {
		t.Fatal(appErr)
	}
	ok, _ := svc.HasRole(context.Background(), u.ID, "admin")
	if !ok {
		t.Fatal("admin role should be granted")
	}
	ok, _ = svc.HasRole(context.Background(), u.ID, "organizer")
	if ok {
		t.Fatal("organizer should stay false")
	}
}

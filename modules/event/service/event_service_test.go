package service

import (
	"campusflow/core/errors"
	"campusflow/core/queue"
	"campusflow/modules/event/dto"
	"campusflow/modules/event/entity"
	"campusflow/modules/event/repository"
	notificationDto "campusflow/modules/notification/dto"
	userEntity "campusflow/modules/user/entity"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type rsvpKey struct{ event, user uuid.UUID }

type fakeRepo struct {
	events map[uuid.UUID]*entity.Event
	rsvps  map[rsvpKey]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[uuid.UUID]*entity.Event{}, rsvps: map[rsvpKey]string{}}
}

func (r *fakeRepo) Create(_ context.Context, e *entity.Event) error {
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	if e, ok := r.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, e *entity.Event) error {
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.events, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ repository.ListFilter) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		if e.Status == entity.StatusApproved {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status string) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.events {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	events, _ := r.ListByStatus(ctx, status)
	return len(events), nil
}

func (r *fakeRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to string) (bool, error) {
	e, ok := r.events[id]
	if !ok || e.Status != from {
		return false, nil
	}
	e.Status = to
	return true, nil
}

func (r *fakeRepo) SetFeatured(_ context.Context, id uuid.UUID, featured bool) error {
	r.events[id].Featured = featured
	return nil
}

func (r *fakeRepo) SetCover(_ context.Context, id uuid.UUID, url string) error {
	r.events[id].CoverURL = url
	return nil
}

func (r *fakeRepo) GetRSVP(_ context.Context, eventID, userID uuid.UUID) (*entity.EventRSVP, error) {
	status, ok := r.rsvps[rsvpKey{eventID, userID}]
	if !ok {
		return nil, nil
	}
	return &entity.EventRSVP{EventID: eventID, UserID: userID, Status: status}, nil
}

func (r *fakeRepo) ChangeRSVP(_ context.Context, eventID, userID uuid.UUID, next string) (*entity.RSVPChange, error) {
	e, ok := r.events[eventID]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	key := rsvpKey{eventID, userID}
	prev := r.rsvps[key]
	going, interested, err := entity.PlanRSVP(e, prev, next)
	if err != nil {
		return nil, err
	}
	if next == "" {
		delete(r.rsvps, key)
	} else {
		r.rsvps[key] = next
	}
	e.AttendeeCount += going
	e.InterestedCount += interested
	return &entity.RSVPChange{Prev: prev, Next: next, AttendeeCount: e.AttendeeCount, InterestedCount: e.InterestedCount}, nil
}

func (r *fakeRepo) ListRSVPsByUser(_ context.Context, userID uuid.UUID) ([]entity.UserRSVP, error) {
	var out []entity.UserRSVP
	for k, status := range r.rsvps {
		if k.user == userID {
			out = append(out, entity.UserRSVP{Event: *r.events[k.event], RSVPStatus: status})
		}
	}
	return out, nil
}

func (r *fakeRepo) ListGoingUserIDs(_ context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for k, status := range r.rsvps {
		if k.event == eventID && status == entity.RSVPGoing {
			out = append(out, k.user)
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

type sentNote struct {
	to      uuid.UUID
	payload notificationDto.Payload
}

type stubNotifier struct{ sent []sentNote }

func (n *stubNotifier) Notify(_ context.Context, userID uuid.UUID, p notificationDto.Payload) error {
	n.sent = append(n.sent, sentNote{userID, p})
	return nil
}

type stubRooms struct{ members map[uuid.UUID]map[uuid.UUID]bool }

func (r *stubRooms) JoinSubject(_ context.Context, _ string, subjectID, userID uuid.UUID) error {
	if r.members[subjectID] == nil {
		r.members[subjectID] = map[uuid.UUID]bool{}
	}
	r.members[subjectID][userID] = true
	return nil
}

func (r *stubRooms) LeaveSubject(_ context.Context, _ string, subjectID, userID uuid.UUID) error {
	delete(r.members[subjectID], userID)
	return nil
}

type harness struct {
	svc       *EventService
	repo      *fakeRepo
	scheduler *queue.Recorder
	notifier  *stubNotifier
	rooms     *stubRooms
	student   *userEntity.User
	organizer *userEntity.User
	admin     *userEntity.User
	now       time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mk := func(name string) *userEntity.User {
		u := userEntity.NewUser(name+"@uni.ac.uk", name)
		return u
	}
	h := &harness{
		repo:      newFakeRepo(),
		scheduler: queue.NewRecorder(),
		notifier:  &stubNotifier{},
		rooms:     &stubRooms{members: map[uuid.UUID]map[uuid.UUID]bool{}},
		student:   mk("sam"),
		organizer: mk("olivia"),
		admin:     mk("ada"),
		now:       time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	h.organizer.RoleOrganizer = true
	h.admin.RoleAdmin = true
	users := stubUsers{h.student.ID: h.student, h.organizer.ID: h.organizer, h.admin.ID: h.admin}
	h.svc = NewEventService(h.repo, users, h.notifier, h.scheduler, nil, h.rooms)
	h.svc.now = func() time.Time { return h.now }
	return h
}

func (h *harness) create(t *testing.T, host *userEntity.User, capacity *int) *dto.EventResponse {
	t.Helper()
	start := h.now.Add(48 * time.Hour)
	resp, appErr := h.svc.CreateEvent(context.Background(), host.ID, &dto.CreateEventRequest{
		Title:    "  Film club  ",
		Category: "culture",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
		Location: dto.Location{Type: entity.LocationPhysical, Value: "Room 101"},
		Capacity: capacity,
	})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}
	return resp
}

func TestCreateEventStatusByRole(t *testing.T) {
	h := newHarness(t)

	student := h.create(t, h.student, nil)
	if student.Status != entity.StatusPending {
		t.Errorf("student event status = %s, want pending", student.Status)
	}
	if student.Title != "Film club" {
		t.Errorf("title not sanitized: %q", student.Title)
	}
	if student.AttendeeCount != 0 || student.Featured {
		t.Errorf("unexpected initial counters %+v", student)
	}

	org := h.create(t, h.organizer, nil)
	if org.Status != entity.StatusApproved {
		t.Errorf("organizer event status = %s, want approved", org.Status)
	}
	if !h.rooms.members[org.ID][h.organizer.ID] {
		t.Error("host not added to the event room")
	}
}

func TestPendingEventHiddenFromOthers(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.student, nil)
	ctx := context.Background()

	if _, appErr := h.svc.GetEvent(ctx, h.organizer.ID, ev.ID); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("other user got pending event, err = %v", appErr)
	}
	if _, appErr := h.svc.GetEvent(ctx, h.student.ID, ev.ID); appErr != nil {
		t.Errorf("host cannot see own event: %v", appErr)
	}
	if _, appErr := h.svc.GetEvent(ctx, h.admin.ID, ev.ID); appErr != nil {
		t.Errorf("admin cannot see pending event: %v", appErr)
	}
}

func TestRSVPCapacityAndCounters(t *testing.T) {
	h := newHarness(t)
	one := 1
	ev := h.create(t, h.organizer, &one)
	ctx := context.Background()

	res, appErr := h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing)
	if appErr != nil {
		t.Fatalf("rsvp: %v", appErr)
	}
	if res.AttendeeCount != 1 {
		t.Errorf("attendees = %d, want 1", res.AttendeeCount)
	}

	// repeating the same status is a no-op
	res, appErr = h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing)
	if appErr != nil || res.AttendeeCount != 1 {
		t.Errorf("repeat rsvp = %+v, %v", res, appErr)
	}

	if _, appErr := h.svc.RSVP(ctx, h.admin.ID, ev.ID, entity.RSVPGoing); !errors.Is(appErr, errors.ErrCapacityReached) {
		t.Errorf("full event accepted rsvp, err = %v", appErr)
	}
	if res, appErr := h.svc.RSVP(ctx, h.admin.ID, ev.ID, entity.RSVPInterested); appErr != nil || res.InterestedCount != 1 {
		t.Errorf("interested on full event = %+v, %v", res, appErr)
	}

	res, appErr = h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPInterested)
	if appErr != nil {
		t.Fatalf("switch: %v", appErr)
	}
	if res.AttendeeCount != 0 || res.InterestedCount != 2 {
		t.Errorf("after switch = %+v", res)
	}
}

func TestRSVPRequiresApproval(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.student, nil)
	ctx := context.Background()
	if _, appErr := h.svc.RSVP(ctx, h.admin.ID, ev.ID, entity.RSVPGoing); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("rsvp on pending event, err = %v", appErr)
	}
	if _, appErr := h.svc.RSVP(ctx, h.organizer.ID, ev.ID, entity.RSVPGoing); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("stranger rsvp on pending event, err = %v, want not found", appErr)
	}
}

func TestPrivateEventRejectsStrangerRSVP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	start := h.now.Add(48 * time.Hour)
	ev, appErr := h.svc.CreateEvent(ctx, h.organizer.ID, &dto.CreateEventRequest{
		Title:      "Secret",
		Category:   "social",
		StartsAt:   start,
		EndsAt:     start.Add(time.Hour),
		Location:   dto.Location{Type: entity.LocationPhysical, Value: "Attic"},
		Visibility: entity.VisibilityPrivate,
	})
	if appErr != nil {
		t.Fatalf("create: %v", appErr)
	}

	if _, appErr := h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing); !errors.Is(appErr, errors.ErrNotFound) {
		t.Fatalf("stranger rsvp = %v, want not found", appErr)
	}
	if _, appErr := h.svc.GetEvent(ctx, h.student.ID, ev.ID); !errors.Is(appErr, errors.ErrNotFound) {
		t.Fatalf("stranger can read private event after rsvp attempt: %v", appErr)
	}
	if h.repo.rsvps[rsvpKey{ev.ID, h.student.ID}] != "" {
		t.Fatal("stranger rsvp was stored")
	}

	if _, appErr := h.svc.RSVP(ctx, h.organizer.ID, ev.ID, entity.RSVPGoing); appErr != nil {
		t.Fatalf("host rsvp: %v", appErr)
	}
	if _, appErr := h.svc.RSVP(ctx, h.admin.ID, ev.ID, entity.RSVPInterested); appErr != nil {
		t.Fatalf("admin rsvp: %v", appErr)
	}
}

func TestGoingSchedulesReminder(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.organizer, nil)
	ctx := context.Background()
	id := queue.EventReminderID(ev.ID.String(), h.student.ID.String())

	if _, appErr := h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing); appErr != nil {
		t.Fatal(appErr)
	}
	job, ok := h.scheduler.Job(id)
	if !ok {
		t.Fatal("no reminder scheduled")
	}
	if want := ev.StartsAt.Add(-time.Hour); !job.At.Equal(want) {
		t.Errorf("reminder at %v, want %v", job.At, want)
	}
	if !h.rooms.members[ev.ID][h.student.ID] {
		t.Error("attendee not added to room")
	}

	if _, appErr := h.svc.RemoveRSVP(ctx, h.student.ID, ev.ID); appErr != nil {
		t.Fatal(appErr)
	}
	if _, ok := h.scheduler.Job(id); ok {
		t.Error("reminder survived removing the rsvp")
	}
	if h.rooms.members[ev.ID][h.student.ID] {
		t.Error("attendee still in room")
	}

	// removing again is a no-op
	if _, appErr := h.svc.RemoveRSVP(ctx, h.student.ID, ev.ID); appErr != nil {
		t.Errorf("second remove: %v", appErr)
	}
}

func TestMovingStartReschedulesReminders(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.organizer, nil)
	ctx := context.Background()
	if _, appErr := h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing); appErr != nil {
		t.Fatal(appErr)
	}

	newStart := ev.StartsAt.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	if _, appErr := h.svc.UpdateEvent(ctx, h.organizer.ID, ev.ID, &dto.UpdateEventRequest{StartsAt: &newStart, EndsAt: &newEnd}); appErr != nil {
		t.Fatal(appErr)
	}
	job, ok := h.scheduler.Job(queue.EventReminderID(ev.ID.String(), h.student.ID.String()))
	if !ok || !job.At.Equal(newStart.Add(-time.Hour)) {
		t.Errorf("reminder = %+v, %v", job, ok)
	}
}

func TestUpdateEventPermissions(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.student, nil)
	ctx := context.Background()
	title := "Renamed"

	if _, appErr := h.svc.UpdateEvent(ctx, h.organizer.ID, ev.ID, &dto.UpdateEventRequest{Title: &title}); !errors.Is(appErr, errors.ErrForbidden) {
		t.Errorf("non-host edit, err = %v", appErr)
	}
	if _, appErr := h.svc.UpdateEvent(ctx, h.admin.ID, ev.ID, &dto.UpdateEventRequest{Title: &title}); appErr != nil {
		t.Errorf("admin edit: %v", appErr)
	}
}

func TestStudentEditSendsApprovedEventBackToReview(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.student, nil)
	ctx := context.Background()
	if _, appErr := h.svc.Approve(ctx, ev.ID); appErr != nil {
		t.Fatal(appErr)
	}

	title := "Film club: director's cut"
	got, appErr := h.svc.UpdateEvent(ctx, h.student.ID, ev.ID, &dto.UpdateEventRequest{Title: &title})
	if appErr != nil {
		t.Fatal(appErr)
	}
	if got.Status != entity.StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
}

func TestApproveTransitions(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.student, nil)
	ctx := context.Background()

	got, appErr := h.svc.Approve(ctx, ev.ID)
	if appErr != nil {
		t.Fatal(appErr)
	}
	if got.Status != entity.StatusApproved {
		t.Errorf("status = %s", got.Status)
	}
	if len(h.notifier.sent) != 1 || h.notifier.sent[0].to != h.student.ID {
		t.Errorf("host not notified: %+v", h.notifier.sent)
	}

	if _, appErr := h.svc.Reject(ctx, ev.ID); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("reject after approve, err = %v", appErr)
	}
	if _, appErr := h.svc.Approve(ctx, uuid.New()); !errors.Is(appErr, errors.ErrNotFound) {
		t.Errorf("approve missing, err = %v", appErr)
	}
}

func TestReminderTarget(t *testing.T) {
	h := newHarness(t)
	ev := h.create(t, h.organizer, nil)
	ctx := context.Background()

	target, err := h.svc.ReminderTarget(ctx, ev.ID, h.student.ID)
	if err != nil || target != nil {
		t.Fatalf("target without rsvp = %+v, %v", target, err)
	}
	if _, appErr := h.svc.RSVP(ctx, h.student.ID, ev.ID, entity.RSVPGoing); appErr != nil {
		t.Fatal(appErr)
	}
	target, err = h.svc.ReminderTarget(ctx, ev.ID, h.student.ID)
	if err != nil || target == nil || target.Title != "Film club" {
		t.Errorf("target = %+v, %v", target, err)
	}
}

func TestCapacityBelowAttendeesRejected(t *testing.T) {
	h := newHarness(t)
	ten := 10
	ev := h.create(t, h.organizer, &ten)
	ctx := context.Background()
	for _, u := range []*userEntity.User{h.student, h.admin} {
		if _, appErr := h.svc.RSVP(ctx, u.ID, ev.ID, entity.RSVPGoing); appErr != nil {
			t.Fatal(appErr)
		}
	}
	one := 1
	if _, appErr := h.svc.UpdateEvent(ctx, h.organizer.ID, ev.ID, &dto.UpdateEventRequest{Capacity: &one}); !errors.Is(appErr, errors.ErrConflict) {
		t.Errorf("shrinking capacity, err = %v", appErr)
	}
}

package content_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"content-calendar/internal/common/pagination"
	"content-calendar/internal/domain/entity"
	"content-calendar/internal/repository"
	contentUC "content-calendar/internal/usecase/content"
)

// Minimal in-memory ContentRepository. A mutex guards the map because the
// bulk operations write concurrently.
type stubRepo struct {
	mu     sync.Mutex
	data   map[int64]*entity.ContentItem
	nextID int64
	err    error // forces every call to fail when set
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.ContentItem{}, nextID: 1}
}

func (s *stubRepo) List(_ context.Context, userID int64, _ repository.ContentFilters, offset, limit int) ([]*entity.ContentItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ContentItem
	for _, v := range s.data {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubRepo) Count(_ context.Context, userID int64, _ repository.ContentFilters) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, v := range s.data {
		if v.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *stubRepo) Create(_ context.Context, item *entity.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	item.ID = s.nextID
	s.nextID++
	cp := *item
	s.data[item.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, item *entity.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *item
	s.data[item.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	return nil
}

func (s *stubRepo) ListRange(_ context.Context, userID int64, from, to time.Time) ([]*entity.ContentItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ContentItem
	for _, v := range s.data {
		if v.UserID == userID && !v.ScheduledAt.Before(from) && v.ScheduledAt.Before(to) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubRepo) CountByPlatform(_ context.Context, _ int64) (map[entity.Platform]int64, error) {
	return nil, s.err
}

func (s *stubRepo) CountByStatus(_ context.Context, _ int64) (map[entity.Status]int64, error) {
	return nil, s.err
}

func (s *stubRepo) ListDue(_ context.Context, _ time.Time, _ int) ([]*entity.ContentItem, error) {
	return nil, s.err
}

func (s *stubRepo) MarkPosted(_ context.Context, _ int64, _ time.Time) error {
	return s.err
}

func (s *stubRepo) CountForUser(_ context.Context, userID int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, v := range s.data {
		if v.UserID == userID {
			n++
		}
	}
	return n, nil
}

type stubQuota struct{ limit int64 }

func (q stubQuota) ItemLimit(_ context.Context, _ int64) (int64, error) {
	return q.limit, nil
}

func seedItem(repo *stubRepo, userID int64, title string, at time.Time) *entity.ContentItem {
	item := &entity.ContentItem{
		UserID: userID, Title: title,
		Platform: entity.PlatformSocial, Status: entity.StatusScheduled,
		ScheduledAt: at,
	}
	_ = repo.Create(context.Background(), item)
	return item
}

/* ───────── Get ───────── */

func TestService_Get(t *testing.T) {
	repo := newStub()
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seeded := seedItem(repo, 7, "post", at)

	svc := &contentUC.Service{Repo: repo}

	got, err := svc.Get(context.Background(), 7, seeded.ID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.Title != "post" {
		t.Errorf("Title = %q, want %q", got.Title, "post")
	}
}

func TestService_Get_InvalidID(t *testing.T) {
	svc := &contentUC.Service{Repo: newStub()}

	for _, id := range []int64{0, -1} {
		if _, err := svc.Get(context.Background(), 7, id); !errors.Is(err, contentUC.ErrInvalidContentID) {
			t.Errorf("Get(id=%d) err=%v, want ErrInvalidContentID", id, err)
		}
	}
}

func TestService_Get_OtherUsersItemHidden(t *testing.T) {
	repo := newStub()
	seeded := seedItem(repo, 7, "mine", time.Now())

	svc := &contentUC.Service{Repo: repo}

	// Another user's lookup is indistinguishable from a missing item.
	if _, err := svc.Get(context.Background(), 8, seeded.ID); !errors.Is(err, contentUC.ErrContentNotFound) {
		t.Fatalf("Get err=%v, want ErrContentNotFound", err)
	}
}

/* ───────── Create ───────── */

func TestService_Create(t *testing.T) {
	repo := newStub()
	svc := &contentUC.Service{Repo: repo}

	item, err := svc.Create(context.Background(), 7, contentUC.CreateInput{
		Title:       "Launch post",
		Platform:    entity.PlatformSocial,
		ScheduledAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if item.ID == 0 {
		t.Error("Create did not assign an ID")
	}
	if item.Status != entity.StatusDraft {
		t.Errorf("Status = %q, want draft default", item.Status)
	}
	if item.UserID != 7 {
		t.Errorf("UserID = %d, want 7", item.UserID)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := &contentUC.Service{Repo: newStub()}

	tests := []struct {
		name string
		in   contentUC.CreateInput
	}{
		{"missing title", contentUC.CreateInput{Platform: entity.PlatformSocial}},
		{"bad platform", contentUC.CreateInput{Title: "x", Platform: "tiktok"}},
		{"bad status", contentUC.CreateInput{Title: "x", Platform: entity.PlatformBlog, Status: "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 7, tt.in)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Create err=%v, want ValidationError", err)
			}
		})
	}
}

func TestService_Create_QuotaExceeded(t *testing.T) {
	repo := newStub()
	seedItem(repo, 7, "one", time.Now())
	seedItem(repo, 7, "two", time.Now())

	svc := &contentUC.Service{Repo: repo, Quota: stubQuota{limit: 2}}

	_, err := svc.Create(context.Background(), 7, contentUC.CreateInput{
		Title:    "three",
		Platform: entity.PlatformSocial,
	})
	if !errors.Is(err, contentUC.ErrQuotaExceeded) {
		t.Fatalf("Create err=%v, want ErrQuotaExceeded", err)
	}
}

func TestService_Create_UnlimitedQuota(t *testing.T) {
	repo := newStub()
	seedItem(repo, 7, "one", time.Now())

	svc := &contentUC.Service{Repo: repo, Quota: stubQuota{limit: 0}}

	if _, err := svc.Create(context.Background(), 7, contentUC.CreateInput{
		Title:    "two",
		Platform: entity.PlatformSocial,
	}); err != nil {
		t.Fatalf("Create err=%v", err)
	}
}

/* ───────── Update ───────── */

func TestService_Update_PartialFields(t *testing.T) {
	repo := newStub()
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	seeded := seedItem(repo, 7, "old title", at)

	svc := &contentUC.Service{Repo: repo}

	newTitle := "new title"
	newStatus := entity.StatusPosted
	got, err := svc.Update(context.Background(), 7, contentUC.UpdateInput{
		ID:     seeded.ID,
		Title:  &newTitle,
		Status: &newStatus,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if got.Title != "new title" || got.Status != entity.StatusPosted {
		t.Errorf("Update applied = %q/%q", got.Title, got.Status)
	}
	// Untouched fields survive.
	if !got.ScheduledAt.Equal(at) || got.Platform != entity.PlatformSocial {
		t.Errorf("Update clobbered untouched fields: %+v", got)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := &contentUC.Service{Repo: newStub()}

	title := "x"
	_, err := svc.Update(context.Background(), 7, contentUC.UpdateInput{ID: 99, Title: &title})
	if !errors.Is(err, contentUC.ErrContentNotFound) {
		t.Fatalf("Update err=%v, want ErrContentNotFound", err)
	}
}

func TestService_Update_InvalidField(t *testing.T) {
	repo := newStub()
	seeded := seedItem(repo, 7, "post", time.Now())

	svc := &contentUC.Service{Repo: repo}

	empty := ""
	_, err := svc.Update(context.Background(), 7, contentUC.UpdateInput{ID: seeded.ID, Title: &empty})
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Update err=%v, want ValidationError", err)
	}
}

/* ───────── Delete ───────── */

func TestService_Delete(t *testing.T) {
	repo := newStub()
	seeded := seedItem(repo, 7, "post", time.Now())

	svc := &contentUC.Service{Repo: repo}

	if err := svc.Delete(context.Background(), 7, seeded.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if _, err := svc.Get(context.Background(), 7, seeded.ID); !errors.Is(err, contentUC.ErrContentNotFound) {
		t.Fatalf("item still present after Delete")
	}
}

func TestService_Delete_OtherUsersItem(t *testing.T) {
	repo := newStub()
	seeded := seedItem(repo, 7, "post", time.Now())

	svc := &contentUC.Service{Repo: repo}

	if err := svc.Delete(context.Background(), 8, seeded.ID); !errors.Is(err, contentUC.ErrContentNotFound) {
		t.Fatalf("Delete err=%v, want ErrContentNotFound", err)
	}
	if len(repo.data) != 1 {
		t.Fatal("Delete removed another user's item")
	}
}

/* ───────── List ───────── */

func TestService_List(t *testing.T) {
	repo := newStub()
	seedItem(repo, 7, "a", time.Now())
	seedItem(repo, 7, "b", time.Now())
	seedItem(repo, 8, "other user", time.Now())

	svc := &contentUC.Service{Repo: repo}

	got, err := svc.List(context.Background(), 7, repository.ContentFilters{}, pagination.Params{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(got.Data))
	}
	if got.Pagination.Total != 2 || got.Pagination.TotalPages != 1 {
		t.Errorf("Pagination = %+v", got.Pagination)
	}
}

/* ───────── Calendar ───────── */

func TestService_Calendar(t *testing.T) {
	repo := newStub()
	day1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 9, 3, 18, 30, 0, 0, time.UTC)
	seedItem(repo, 7, "first", day1)
	seedItem(repo, 7, "late same day", day1.Add(5*time.Hour))
	seedItem(repo, 7, "third", day3)

	svc := &contentUC.Service{Repo: repo}

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	days, err := svc.Calendar(context.Background(), 7, from, to)
	if err != nil {
		t.Fatalf("Calendar err=%v", err)
	}

	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	if days[0].Date != "2026-09-01" || len(days[0].Items) != 2 {
		t.Errorf("day 0 = %s with %d items", days[0].Date, len(days[0].Items))
	}
	// Empty days still appear so the client can render a fixed grid.
	if days[1].Date != "2026-09-02" || len(days[1].Items) != 0 {
		t.Errorf("day 1 = %s with %d items", days[1].Date, len(days[1].Items))
	}
	if days[2].Date != "2026-09-03" || len(days[2].Items) != 1 {
		t.Errorf("day 2 = %s with %d items", days[2].Date, len(days[2].Items))
	}
}

func TestService_Calendar_InvalidRange(t *testing.T) {
	svc := &contentUC.Service{Repo: newStub()}

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	var vErr *entity.ValidationError
	if _, err := svc.Calendar(context.Background(), 7, from, from); !errors.As(err, &vErr) {
		t.Errorf("Calendar with empty range err=%v, want ValidationError", err)
	}
	if _, err := svc.Calendar(context.Background(), 7, from, from.Add(101*24*time.Hour)); !errors.As(err, &vErr) {
		t.Errorf("Calendar with oversize range err=%v, want ValidationError", err)
	}
}

/* ───────── BulkCreate ───────── */

func TestService_BulkCreate_PartialSuccess(t *testing.T) {
	repo := newStub()
	svc := &contentUC.Service{Repo: repo}

	at := time.Now().Add(time.Hour)
	results, err := svc.BulkCreate(context.Background(), 7, []contentUC.CreateInput{
		{Title: "ok one", Platform: entity.PlatformSocial, ScheduledAt: at},
		{Title: "", Platform: entity.PlatformSocial, ScheduledAt: at}, // invalid
		{Title: "ok two", Platform: entity.PlatformBlog, ScheduledAt: at},
	})
	if err != nil {
		t.Fatalf("BulkCreate err=%v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Err != nil || results[0].ID == 0 {
		t.Errorf("results[0] = %+v, want success", results[0])
	}
	var vErr *entity.ValidationError
	if !errors.As(results[1].Err, &vErr) {
		t.Errorf("results[1].Err = %v, want ValidationError", results[1].Err)
	}
	if results[2].Err != nil || results[2].ID == 0 {
		t.Errorf("results[2] = %+v, want success", results[2])
	}

	// Only the valid items landed in the repository.
	if len(repo.data) != 2 {
		t.Errorf("stored items = %d, want 2", len(repo.data))
	}
}

func TestService_BulkCreate_TooMany(t *testing.T) {
	svc := &contentUC.Service{Repo: newStub()}

	inputs := make([]contentUC.CreateInput, contentUC.MaxBulkItems+1)
	for i := range inputs {
		inputs[i] = contentUC.CreateInput{Title: "x", Platform: entity.PlatformSocial}
	}

	_, err := svc.BulkCreate(context.Background(), 7, inputs)
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("BulkCreate err=%v, want ValidationError", err)
	}
}

func TestService_BulkCreate_QuotaCoversBatch(t *testing.T) {
	repo := newStub()
	seedItem(repo, 7, "existing", time.Now())

	svc := &contentUC.Service{Repo: repo, Quota: stubQuota{limit: 2}}

	_, err := svc.BulkCreate(context.Background(), 7, []contentUC.CreateInput{
		{Title: "a", Platform: entity.PlatformSocial},
		{Title: "b", Platform: entity.PlatformSocial},
	})
	if !errors.Is(err, contentUC.ErrQuotaExceeded) {
		t.Fatalf("BulkCreate err=%v, want ErrQuotaExceeded", err)
	}
}

/* ───────── BulkReschedule ───────── */

func TestService_BulkReschedule_Shift(t *testing.T) {
	repo := newStub()
	at1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	at2 := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	a := seedItem(repo, 7, "a", at1)
	b := seedItem(repo, 7, "b", at2)

	svc := &contentUC.Service{Repo: repo}

	shift := 48 * time.Hour
	items, err := svc.BulkReschedule(context.Background(), 7, contentUC.BulkRescheduleInput{
		IDs:   []int64{a.ID, b.ID},
		Shift: &shift,
	})
	if err != nil {
		t.Fatalf("BulkReschedule err=%v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	stored, _ := repo.Get(context.Background(), a.ID)
	if !stored.ScheduledAt.Equal(at1.Add(shift)) {
		t.Errorf("item a ScheduledAt = %v, want %v", stored.ScheduledAt, at1.Add(shift))
	}
	stored, _ = repo.Get(context.Background(), b.ID)
	if !stored.ScheduledAt.Equal(at2.Add(shift)) {
		t.Errorf("item b ScheduledAt = %v, want %v", stored.ScheduledAt, at2.Add(shift))
	}
}

func TestService_BulkReschedule_NewStartKeepsOffsets(t *testing.T) {
	repo := newStub()
	at1 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	at2 := at1.Add(36 * time.Hour)
	a := seedItem(repo, 7, "a", at1)
	b := seedItem(repo, 7, "b", at2)

	svc := &contentUC.Service{Repo: repo}

	newStart := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.BulkReschedule(context.Background(), 7, contentUC.BulkRescheduleInput{
		IDs:      []int64{b.ID, a.ID}, // order must not matter
		NewStart: &newStart,
	})
	if err != nil {
		t.Fatalf("BulkReschedule err=%v", err)
	}

	stored, _ := repo.Get(context.Background(), a.ID)
	if !stored.ScheduledAt.Equal(newStart) {
		t.Errorf("earliest item moved to %v, want %v", stored.ScheduledAt, newStart)
	}
	stored, _ = repo.Get(context.Background(), b.ID)
	if !stored.ScheduledAt.Equal(newStart.Add(36 * time.Hour)) {
		t.Errorf("second item moved to %v, want offset preserved", stored.ScheduledAt)
	}
}

func TestService_BulkReschedule_Validation(t *testing.T) {
	repo := newStub()
	a := seedItem(repo, 7, "a", time.Now())

	svc := &contentUC.Service{Repo: repo}
	shift := time.Hour
	newStart := time.Now()

	tests := []struct {
		name string
		in   contentUC.BulkRescheduleInput
	}{
		{"no ids", contentUC.BulkRescheduleInput{Shift: &shift}},
		{"neither shift nor new_start", contentUC.BulkRescheduleInput{IDs: []int64{a.ID}}},
		{"both shift and new_start", contentUC.BulkRescheduleInput{IDs: []int64{a.ID}, Shift: &shift, NewStart: &newStart}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BulkReschedule(context.Background(), 7, tt.in)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("BulkReschedule err=%v, want ValidationError", err)
			}
		})
	}
}

func TestService_BulkReschedule_UnknownIDAbortsAll(t *testing.T) {
	repo := newStub()
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	a := seedItem(repo, 7, "a", at)

	svc := &contentUC.Service{Repo: repo}

	shift := time.Hour
	_, err := svc.BulkReschedule(context.Background(), 7, contentUC.BulkRescheduleInput{
		IDs:   []int64{a.ID, 999},
		Shift: &shift,
	})
	if !errors.Is(err, contentUC.ErrContentNotFound) {
		t.Fatalf("BulkReschedule err=%v, want ErrContentNotFound", err)
	}

	// No partial writes.
	stored, _ := repo.Get(context.Background(), a.ID)
	if !stored.ScheduledAt.Equal(at) {
		t.Errorf("item moved despite failed batch: %v", stored.ScheduledAt)
	}
}

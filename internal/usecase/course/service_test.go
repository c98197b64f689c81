package course

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecoc/coursecoc-server/domain"
)

type likeKey struct {
	courseID, userID int64
}

type fakeCourseRepo struct {
	courses   map[int64]domain.Course
	likes     map[likeKey]bool
	bookmarks map[likeKey]bool
	nextID    int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:   map[int64]domain.Course{},
		likes:     map[likeKey]bool{},
		bookmarks: map[likeKey]bool{},
	}
}

func (f *fakeCourseRepo) Store(_ context.Context, c *domain.Course) error {
	f.nextID++
	c.ID = f.nextID
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return domain.Course{}, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) Fetch(_ context.Context, _ string, _ int64) ([]domain.Course, error) {
	var res []domain.Course
	for _, c := range f.courses {
		if !c.IsDraft {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeCourseRepo) FetchByUser(_ context.Context, userID int64) ([]domain.Course, error) {
	var res []domain.Course
	for _, c := range f.courses {
		if c.Author.ID == userID {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeCourseRepo) FetchByTag(_ context.Context, tag string) ([]domain.Course, error) {
	var res []domain.Course
	for _, c := range f.courses {
		if c.IsDraft {
			continue
		}
		for _, t := range c.Tags {
			if t == tag {
				res = append(res, c)
				break
			}
		}
	}
	return res, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *domain.Course) error {
	existing, ok := f.courses[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.Likes = existing.Likes
	c.Views = existing.Views
	c.Bookmarks = existing.Bookmarks
	c.CommentCount = existing.CommentCount
	c.CreatedAt = existing.CreatedAt
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) AddViews(_ context.Context, id int64, delta int64) error {
	c, ok := f.courses[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Views += delta
	f.courses[id] = c
	return nil
}

func (f *fakeCourseRepo) ToggleLike(_ context.Context, courseID, userID int64) (bool, error) {
	c, ok := f.courses[courseID]
	if !ok {
		return false, domain.ErrNotFound
	}
	key := likeKey{courseID, userID}
	if f.likes[key] {
		delete(f.likes, key)
		c.Likes--
		f.courses[courseID] = c
		return false, nil
	}
	f.likes[key] = true
	c.Likes++
	f.courses[courseID] = c
	return true, nil
}

func (f *fakeCourseRepo) ToggleBookmark(_ context.Context, courseID, userID int64) (bool, error) {
	c, ok := f.courses[courseID]
	if !ok {
		return false, domain.ErrNotFound
	}
	key := likeKey{courseID, userID}
	if f.bookmarks[key] {
		delete(f.bookmarks, key)
		c.Bookmarks--
		f.courses[courseID] = c
		return false, nil
	}
	f.bookmarks[key] = true
	c.Bookmarks++
	f.courses[courseID] = c
	return true, nil
}

func (f *fakeCourseRepo) IsLiked(_ context.Context, courseID, userID int64) (bool, error) {
	return f.likes[likeKey{courseID, userID}], nil
}

func (f *fakeCourseRepo) IsBookmarked(_ context.Context, courseID, userID int64) (bool, error) {
	return f.bookmarks[likeKey{courseID, userID}], nil
}

type fakeUserRepo struct {
	users map[int64]domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUserRepo) Insert(_ context.Context, _ *domain.User) error { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	res := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// cache writes happen from goroutines, so the fake locks
type fakeCourseCache struct {
	mu         sync.Mutex
	courses    map[int64]domain.Course
	viewDeltas map[int64]int64
}

func newFakeCourseCache() *fakeCourseCache {
	return &fakeCourseCache{
		courses:    map[int64]domain.Course{},
		viewDeltas: map[int64]int64{},
	}
}

func (f *fakeCourseCache) GetCourse(_ context.Context, id int64) (domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok {
		return domain.Course{}, redis.Nil
	}
	return c, nil
}

func (f *fakeCourseCache) SetCourse(_ context.Context, c *domain.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseCache) DeleteCourse(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseCache) IncrViews(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewDeltas[id]++
	return f.viewDeltas[id], nil
}

func (f *fakeCourseCache) FetchAndResetViews(_ context.Context) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.viewDeltas
	f.viewDeltas = map[int64]int64{}
	return res, nil
}

func validCourse(authorID int64) domain.Course {
	return domain.Course{
		Title:       faker.Sentence(),
		Description: faker.Paragraph(),
		Tags:        []string{"로맨틱"},
		Locations: []domain.Location{
			{Name: "한강공원", Address: faker.Sentence(), Time: "14:00"},
		},
		Content: faker.Paragraph(),
		Author:  domain.User{ID: authorID},
	}
}

func newTestService() (*Service, *fakeCourseRepo, *fakeCourseCache) {
	repo := newFakeCourseRepo()
	users := &fakeUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Nickname: "dana"},
		2: {ID: 2, Nickname: "minho"},
	}}
	cache := newFakeCourseCache()
	return NewService(repo, users, cache), repo, cache
}

func TestPublishValidationOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	longTitle := make([]rune, maxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = '가'
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Course)
		wantErr error
	}{
		{
			name:    "missing title reported before missing locations",
			mutate:  func(c *domain.Course) { c.Title = "  "; c.Locations = nil },
			wantErr: domain.ErrTitleRequired,
		},
		{
			name:    "title too long",
			mutate:  func(c *domain.Course) { c.Title = string(longTitle) },
			wantErr: domain.ErrTitleTooLong,
		},
		{
			name:    "missing description reported before missing tags",
			mutate:  func(c *domain.Course) { c.Description = ""; c.Tags = nil },
			wantErr: domain.ErrDescriptionRequired,
		},
		{
			name:    "missing locations reported before missing content",
			mutate:  func(c *domain.Course) { c.Locations = nil; c.Content = "" },
			wantErr: domain.ErrLocationsRequired,
		},
		{
			name:    "missing tags",
			mutate:  func(c *domain.Course) { c.Tags = []string{} },
			wantErr: domain.ErrTagsRequired,
		},
		{
			name:    "missing content",
			mutate:  func(c *domain.Course) { c.Content = "   " },
			wantErr: domain.ErrContentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCourse(1)
			tt.mutate(&c)
			err := svc.Publish(ctx, &c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPublishDefaults(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	c.IsDraft = true // publish overrides whatever the caller set
	c.Likes = 99

	require.NoError(t, svc.Publish(ctx, &c))
	require.NotZero(t, c.ID)

	stored := repo.courses[c.ID]
	assert.False(t, stored.IsDraft)
	assert.Zero(t, stored.Likes)
	assert.Zero(t, stored.Views)
	assert.Zero(t, stored.Bookmarks)
	assert.Zero(t, stored.CommentCount)
}

func TestSaveDraftOnlyNeedsTitle(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	draft := domain.Course{Title: "아직 작성 중", Author: domain.User{ID: 1}}
	require.NoError(t, svc.SaveDraft(ctx, &draft))
	assert.True(t, repo.courses[draft.ID].IsDraft)

	noTitle := domain.Course{Author: domain.User{ID: 1}}
	assert.ErrorIs(t, svc.SaveDraft(ctx, &noTitle), domain.ErrTitleRequired)
}

func TestUpdateAuthorization(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))
	before := repo.courses[c.ID]

	edited := validCourse(1)
	edited.ID = c.ID
	edited.Title = "바뀐 제목"

	err := svc.Update(ctx, &edited, 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, before.Title, repo.courses[c.ID].Title, "store must be untouched on auth failure")

	require.NoError(t, svc.Update(ctx, &edited, 1))
	assert.Equal(t, "바뀐 제목", repo.courses[c.ID].Title)
}

func TestUpdateDraftSkipsPublishRules(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	draft := domain.Course{Title: "제주 초안", Author: domain.User{ID: 1}}
	require.NoError(t, svc.SaveDraft(ctx, &draft))

	// a title-only draft stays re-savable
	edited := domain.Course{ID: draft.ID, Title: "제주 초안 v2", IsDraft: true, Author: domain.User{ID: 1}}
	require.NoError(t, svc.Update(ctx, &edited, 1))
	assert.Equal(t, "제주 초안 v2", repo.courses[draft.ID].Title)
	assert.True(t, repo.courses[draft.ID].IsDraft)

	// the full rules kick in once the payload publishes
	published := domain.Course{ID: draft.ID, Title: "제주 초안 v2", IsDraft: false, Author: domain.User{ID: 1}}
	assert.ErrorIs(t, svc.Update(ctx, &published, 1), domain.ErrDescriptionRequired)
}

func TestDeleteAuthorization(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))

	assert.ErrorIs(t, svc.Delete(ctx, c.ID, 2), domain.ErrForbidden)
	assert.Contains(t, repo.courses, c.ID)

	require.NoError(t, svc.Delete(ctx, c.ID, 1))
	assert.NotContains(t, repo.courses, c.ID)
}

func TestGetEchoesBufferedViews(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))
	stored := repo.courses[c.ID]
	stored.Views = 5
	repo.courses[c.ID] = stored

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, got.Views, "first read echoes views+1")

	got, err = svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.Views, "echo accumulates while the buffer is undrained")

	// the stored counter only moves when the worker drains the buffer
	assert.EqualValues(t, 5, repo.courses[c.ID].Views)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetFillsAuthor(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana", got.Author.Nickname)
}

func TestToggleLikePairRestoresState(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))

	liked, err := svc.ToggleLike(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, repo.courses[c.ID].Likes)

	liked, err = svc.ToggleLike(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, repo.courses[c.ID].Likes, "a toggle pair is a no-op on the counter")
}

func TestToggleBookmarkPairRestoresState(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))

	bookmarked, err := svc.ToggleBookmark(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = svc.ToggleBookmark(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.EqualValues(t, 0, repo.courses[c.ID].Bookmarks)
}

func TestIsLikedReflectsToggle(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	require.NoError(t, svc.Publish(ctx, &c))

	liked, err := svc.IsLiked(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = svc.ToggleLike(ctx, c.ID, 2)
	require.NoError(t, err)

	liked, err = svc.IsLiked(ctx, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestFetchByTag(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	c := validCourse(1)
	c.Tags = []string{"로맨틱"}
	require.NoError(t, svc.Publish(ctx, &c))

	romantic, err := svc.FetchByTag(ctx, "로맨틱")
	require.NoError(t, err)
	require.Len(t, romantic, 1)
	assert.Equal(t, c.ID, romantic[0].ID)

	cafe, err := svc.FetchByTag(ctx, "카페")
	require.NoError(t, err)
	assert.Empty(t, cafe)

	// adding the tag via update makes the course show up
	edited := validCourse(1)
	edited.ID = c.ID
	edited.Tags = []string{"로맨틱", "카페"}
	require.NoError(t, svc.Update(ctx, &edited, 1))

	cafe, err = svc.FetchByTag(ctx, "카페")
	require.NoError(t, err)
	require.Len(t, cafe, 1)
	assert.Equal(t, c.ID, cafe[0].ID)
}

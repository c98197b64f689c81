package course

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/repository"
)

const maxTitleLen = 200

type Service struct {
	courseRepo  domain.CourseRepository
	userRepo    domain.UserRepository
	courseCache domain.CourseCache
}

var _ domain.CourseUsecase = (*Service)(nil)

// NewService will create a new course service object
func NewService(c domain.CourseRepository, u domain.UserRepository, cc domain.CourseCache) *Service {
	return &Service{
		courseRepo:  c,
		userRepo:    u,
		courseCache: cc,
	}
}

// validate runs the payload rules in a fixed order. The first rule that
// fails is the one reported, so a payload missing both title and locations
// always reports the title.
func validate(c *domain.Course) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return domain.ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLen {
		return domain.ErrTitleTooLong
	}
	if strings.TrimSpace(c.Description) == "" {
		return domain.ErrDescriptionRequired
	}
	if len(c.Locations) == 0 {
		return domain.ErrLocationsRequired
	}
	if len(c.Tags) == 0 {
		return domain.ErrTagsRequired
	}
	if strings.TrimSpace(c.Content) == "" {
		return domain.ErrContentRequired
	}
	return nil
}

// validateDraft applies the reduced rules for work-in-progress payloads.
func validateDraft(c *domain.Course) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return domain.ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLen {
		return domain.ErrTitleTooLong
	}
	return nil
}

func (s *Service) Publish(ctx context.Context, c *domain.Course) error {
	if err := validate(c); err != nil {
		return err
	}

	c.IsDraft = false
	c.Likes = 0
	c.Views = 0
	c.Bookmarks = 0
	c.CommentCount = 0
	return s.courseRepo.Store(ctx, c)
}

// SaveDraft stores a work-in-progress course. Drafts only need a title;
// the remaining rules apply when the draft is published.
func (s *Service) SaveDraft(ctx context.Context, c *domain.Course) error {
	if err := validateDraft(c); err != nil {
		return err
	}

	c.IsDraft = true
	c.Likes = 0
	c.Views = 0
	c.Bookmarks = 0
	c.CommentCount = 0
	return s.courseRepo.Store(ctx, c)
}

// Get returns the course with a buffered view increment already echoed in
// Views. The echo is optimistic: the stored counter catches up when the
// sync worker drains the buffer.
func (s *Service) Get(ctx context.Context, id int64) (res domain.Course, err error) {
	res, err = s.courseCache.GetCourse(ctx, id)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("cache get error: %v", err)
		}

		res, err = s.courseRepo.GetByID(ctx, id)
		if err != nil {
			return domain.Course{}, err
		}

		author, err := s.userRepo.GetByID(ctx, res.Author.ID)
		if err != nil {
			return domain.Course{}, err
		}
		res.Author = author

		go func(course domain.Course) {
			if err := s.courseCache.SetCourse(context.Background(), &course); err != nil {
				logrus.Warnf("failed to set course cache: %v", err)
			}
		}(res)
	}

	deltaViews, err := s.courseCache.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to IncrViews for course %d: %v", id, err)
		return res, nil
	}
	res.Views += deltaViews
	return res, nil
}

func (s *Service) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Course, string, error) {
	res, err := s.courseRepo.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}
	if len(res) == 0 {
		return []domain.Course{}, "", nil
	}

	res, err = s.fillAuthorDetails(ctx, res)
	if err != nil {
		return nil, "", err
	}
	return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
}

func (s *Service) FetchByUser(ctx context.Context, userID int64) ([]domain.Course, error) {
	res, err := s.courseRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.fillAuthorDetails(ctx, res)
}

func (s *Service) FetchByTag(ctx context.Context, tag string) ([]domain.Course, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, domain.ErrBadParamInput
	}
	res, err := s.courseRepo.FetchByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	return s.fillAuthorDetails(ctx, res)
}

// Update rewrites the course in place. A payload that stays a draft only
// needs the draft rules; the full set applies once it publishes.
func (s *Service) Update(ctx context.Context, c *domain.Course, userID int64) error {
	check := validate
	if c.IsDraft {
		check = validateDraft
	}
	if err := check(c); err != nil {
		return err
	}

	existing, err := s.courseRepo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing.Author.ID != userID {
		return domain.ErrForbidden
	}

	c.Author = existing.Author
	if err := s.courseRepo.Update(ctx, c); err != nil {
		return err
	}

	go func(id int64) {
		if err := s.courseCache.DeleteCourse(context.Background(), id); err != nil {
			logrus.Warnf("failed to invalidate course cache: %v", err)
		}
	}(c.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	existing, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Author.ID != userID {
		return domain.ErrForbidden
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.courseCache.DeleteCourse(ctx, id)
}

func (s *Service) ToggleLike(ctx context.Context, courseID, userID int64) (bool, error) {
	liked, err := s.courseRepo.ToggleLike(ctx, courseID, userID)
	if err != nil {
		return false, err
	}
	s.invalidate(courseID)
	return liked, nil
}

func (s *Service) ToggleBookmark(ctx context.Context, courseID, userID int64) (bool, error) {
	bookmarked, err := s.courseRepo.ToggleBookmark(ctx, courseID, userID)
	if err != nil {
		return false, err
	}
	s.invalidate(courseID)
	return bookmarked, nil
}

func (s *Service) IsLiked(ctx context.Context, courseID, userID int64) (bool, error) {
	return s.courseRepo.IsLiked(ctx, courseID, userID)
}

func (s *Service) IsBookmarked(ctx context.Context, courseID, userID int64) (bool, error) {
	return s.courseRepo.IsBookmarked(ctx, courseID, userID)
}

// invalidate drops the cached course after a counter change.
func (s *Service) invalidate(courseID int64) {
	go func(id int64) {
		if err := s.courseCache.DeleteCourse(context.Background(), id); err != nil {
			logrus.Warnf("failed to invalidate course cache: %v", err)
		}
	}(courseID)
}

// fillAuthorDetails hydrates the author of each course, fetching each
// distinct author once, concurrently.
func (s *Service) fillAuthorDetails(ctx context.Context, data []domain.Course) ([]domain.Course, error) {
	if len(data) == 0 {
		return data, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	mapUsers := map[int64]domain.User{}
	for i := range data {
		mapUsers[data[i].Author.ID] = domain.User{}
	}

	chanUser := make(chan domain.User)
	for userID := range mapUsers {
		userID := userID
		g.Go(func() error {
			res, err := s.userRepo.GetByID(ctx, userID)
			if err != nil {
				return err
			}
			chanUser <- res
			return nil
		})
	}

	go func() {
		defer close(chanUser)
		if err := g.Wait(); err != nil {
			logrus.Error(err)
		}
	}()

	for user := range chanUser {
		if user != (domain.User{}) {
			mapUsers[user.ID] = user
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for index, item := range data {
		if u, ok := mapUsers[item.Author.ID]; ok {
			data[index].Author = u
		}
	}
	return data, nil
}

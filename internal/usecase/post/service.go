package post

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/repository"
)

type service struct {
	postRepo   domain.PostRepository
	userRepo   domain.UserRepository
	viewBuffer domain.PostViewBuffer
}

var _ domain.PostUsecase = (*service)(nil)

func NewService(postRepo domain.PostRepository, userRepo domain.UserRepository, viewBuffer domain.PostViewBuffer) *service {
	return &service{
		postRepo:   postRepo,
		userRepo:   userRepo,
		viewBuffer: viewBuffer,
	}
}

func (s *service) Create(ctx context.Context, p *domain.Post) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return domain.ErrBadParamInput
	}
	p.Likes = 0
	p.Views = 0
	p.CommentCount = 0
	return s.postRepo.Store(ctx, p)
}

func (s *service) Get(ctx context.Context, id int64) (domain.Post, error) {
	res, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	author, err := s.userRepo.GetByID(ctx, res.Author.ID)
	if err != nil {
		return domain.Post{}, err
	}
	res.Author = author

	deltaViews, err := s.viewBuffer.IncrViews(ctx, id)
	if err != nil {
		logrus.Errorf("failed to IncrViews for post %d: %v", id, err)
		return res, nil
	}
	res.Views += deltaViews
	return res, nil
}

func (s *service) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Post, string, error) {
	res, err := s.postRepo.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}
	if len(res) == 0 {
		return []domain.Post{}, "", nil
	}

	if err := s.fillAuthorDetails(ctx, res); err != nil {
		return nil, "", err
	}
	return res, repository.EncodeCursor(res[len(res)-1].CreatedAt), nil
}

func (s *service) Update(ctx context.Context, p *domain.Post, userID int64) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Content) == "" {
		return domain.ErrBadParamInput
	}

	existing, err := s.postRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.Author.ID != userID {
		return domain.ErrForbidden
	}

	return s.postRepo.Update(ctx, p)
}

func (s *service) Delete(ctx context.Context, id int64, userID int64) error {
	existing, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Author.ID != userID {
		return domain.ErrForbidden
	}

	return s.postRepo.Delete(ctx, id)
}

func (s *service) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	return s.postRepo.ToggleLike(ctx, postID, userID)
}

func (s *service) IsLiked(ctx context.Context, postID, userID int64) (bool, error) {
	return s.postRepo.IsLiked(ctx, postID, userID)
}

func (s *service) fillAuthorDetails(ctx context.Context, posts []domain.Post) error {
	ids := make([]int64, 0, len(posts))
	seen := make(map[int64]bool)
	for i := range posts {
		if !seen[posts[i].Author.ID] {
			ids = append(ids, posts[i].Author.ID)
			seen[posts[i].Author.ID] = true
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	userMap := make(map[int64]domain.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range posts {
		if u, ok := userMap[posts[i].Author.ID]; ok {
			posts[i].Author = u
		}
	}
	return nil
}

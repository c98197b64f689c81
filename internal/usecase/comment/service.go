package comment

import (
	"context"
	"sort"
	"strings"

	"github.com/coursecoc/coursecoc-server/domain"
)

type service struct {
	commentRepo domain.CommentRepository
	userRepo    domain.UserRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, userRepo domain.UserRepository) *service {
	return &service{
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	if strings.TrimSpace(c.Content) == "" {
		return domain.ErrBadParamInput
	}
	return s.commentRepo.Store(ctx, c)
}

// FetchTree pulls the owner's flat comment set and shapes it into the
// two-level tree: top-level comments newest-first, each carrying its
// replies oldest-first. A reply node never carries replies of its own.
func (s *service) FetchTree(ctx context.Context, ownerType domain.OwnerType, ownerID int64) ([]*domain.Comment, error) {
	flat, err := s.commentRepo.FetchByOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return []*domain.Comment{}, nil
	}

	if err := s.fillAuthorDetails(ctx, flat); err != nil {
		return nil, err
	}

	return BuildTree(flat), nil
}

// BuildTree partitions a flat comment set into top-level comments and
// replies, attaches each reply list to its parent sorted oldest-first,
// and returns the top-level comments sorted newest-first.
//
// A reply whose parent is missing from the set is dropped rather than
// surfaced as a phantom top-level comment.
func BuildTree(flat []*domain.Comment) []*domain.Comment {
	roots := make([]*domain.Comment, 0, len(flat))
	replyMap := make(map[int64][]*domain.Comment)

	for _, c := range flat {
		if c.IsReply() {
			replyMap[c.ParentID] = append(replyMap[c.ParentID], c)
		} else {
			roots = append(roots, c)
		}
	}

	for _, root := range roots {
		replies := replyMap[root.ID]
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		})
		if replies == nil {
			replies = []*domain.Comment{}
		}
		root.Replies = replies
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	return roots
}

func (s *service) Edit(ctx context.Context, ownerType domain.OwnerType, ownerID, id, userID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ErrBadParamInput
	}

	existing, err := s.authorize(ctx, ownerType, ownerID, id, userID)
	if err != nil {
		return err
	}

	return s.commentRepo.UpdateContent(ctx, existing.ID, content)
}

func (s *service) Delete(ctx context.Context, ownerType domain.OwnerType, ownerID, id, userID int64) error {
	existing, err := s.authorize(ctx, ownerType, ownerID, id, userID)
	if err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, existing.ID)
}

// authorize loads the comment and checks it hangs off the routed owner
// and belongs to the caller. A comment reached through the wrong owner
// route reads as absent rather than forbidden.
func (s *service) authorize(ctx context.Context, ownerType domain.OwnerType, ownerID, id, userID int64) (*domain.Comment, error) {
	existing, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerType != ownerType || existing.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	if existing.Author.ID != userID {
		return nil, domain.ErrForbidden
	}
	return existing, nil
}

// fillAuthorDetails resolves the author profile of every comment in one
// batched lookup.
func (s *service) fillAuthorDetails(ctx context.Context, comments []*domain.Comment) error {
	ids := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if !seen[c.Author.ID] {
			ids = append(ids, c.Author.ID)
			seen[c.Author.ID] = true
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

	for _, c := range comments {
		if u, ok := userMap[c.Author.ID]; ok {
			c.Author = u
		}
	}
	return nil
}

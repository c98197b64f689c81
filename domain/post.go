package domain

import (
	"context"
	"time"
)

// Post is a free-form community discussion entry, distinct from a Course,
// with its own comment thread.
type Post struct {
	ID           int64
	Title        string
	Content      string
	Likes        int64
	Views        int64
	CommentCount int64
	Author       User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostRepository defines the contract for post data persistence.
type PostRepository interface {
	Store(ctx context.Context, p *Post) error

	// GetByID returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (Post, error)

	Fetch(ctx context.Context, cursor string, num int64) ([]Post, error)

	Update(ctx context.Context, p *Post) error

	// Delete removes the post together with its comments and likes in one
	// transaction.
	Delete(ctx context.Context, id int64) error

	AddViews(ctx context.Context, id int64, deltaViews int64) error

	// ToggleLike flips the (post, user) like state transactionally and
	// returns the new liked state.
	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)

	IsLiked(ctx context.Context, postID, userID int64) (bool, error)
}

// PostViewBuffer buffers post view increments in redis until the sync
// worker folds them into the database.
type PostViewBuffer interface {
	IncrViews(ctx context.Context, id int64) (int64, error)
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

type PostUsecase interface {
	// Create stores a new post. Title and content must be non-empty after
	// trim, otherwise ErrBadParamInput.
	Create(ctx context.Context, p *Post) error

	// Get returns the post with a buffered view increment echoed in Views.
	Get(ctx context.Context, id int64) (Post, error)

	Fetch(ctx context.Context, cursor string, num int64) ([]Post, string, error)

	// Update refuses with ErrForbidden when userID is not the author.
	Update(ctx context.Context, p *Post, userID int64) error

	// Delete refuses with ErrForbidden when userID is not the author.
	Delete(ctx context.Context, id int64, userID int64) error

	ToggleLike(ctx context.Context, postID, userID int64) (bool, error)

	// IsLiked reports the caller's current like state.
	IsLiked(ctx context.Context, postID, userID int64) (bool, error)
}

package domain

import (
	"context"
	"time"
)

// OwnerType names the kind of entity a comment thread hangs off.
type OwnerType string

const (
	OwnerCourse OwnerType = "course"
	OwnerPost   OwnerType = "post"
)

// Comment domain model. Comments are stored flat; a comment with a
// non-zero ParentID is a reply and is never itself a reply target — the
// hierarchy is exactly two levels deep.
//
// ReplyCount on a parent and CommentCount on the owning entity are
// denormalized counters kept in step with the true row counts by the
// repository (every write that touches them runs in one transaction).
// CommentCount counts top-level comments and replies together.
type Comment struct {
	ID         int64      `json:"id"`
	OwnerType  OwnerType  `json:"owner_type"`
	OwnerID    int64      `json:"owner_id"`
	ParentID   int64      `json:"parent_id"` // 0 for a top-level comment
	Content    string     `json:"content"`
	IsEdited   bool       `json:"is_edited"`
	Likes      int64      `json:"likes"`
	ReplyCount int64      `json:"reply_count"`
	CreatedAt  time.Time  `json:"created_at"`
	Author     User       `json:"-"`
	Replies    []*Comment `json:"replies,omitempty"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool { return c.ParentID != 0 }

// CommentRepository defines the contract for comment persistence.
// Store and Delete are the only places the denormalized counters change.
type CommentRepository interface {
	// Store inserts the comment, increments the parent's reply_count when
	// it is a reply, and increments the owner's comment_count, all in one
	// transaction. Returns ErrNotFound when the owner (or the parent, for
	// a reply) doesn't exist; ErrBadParamInput when the parent is itself
	// a reply or belongs to a different owner.
	Store(ctx context.Context, c *Comment) error

	// GetByID returns ErrNotFound if the comment doesn't exist.
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchByOwner returns the flat comment set of one owner, unordered.
	FetchByOwner(ctx context.Context, ownerType OwnerType, ownerID int64) ([]*Comment, error)

	// UpdateContent replaces the content and marks the comment edited.
	UpdateContent(ctx context.Context, id int64, content string) error

	// Delete removes the comment; for a top-level comment its replies go
	// with it. The parent's reply_count and the owner's comment_count are
	// corrected in the same transaction.
	Delete(ctx context.Context, id int64) error
}

// CommentUsecase defines the business rules for comment threads.
type CommentUsecase interface {
	// Create stores a comment or reply for the authenticated author.
	Create(ctx context.Context, c *Comment) error

	// FetchTree returns the two-level comment tree of the owner:
	// top-level comments newest-first, each carrying its replies
	// oldest-first. Reply nodes never carry replies of their own.
	FetchTree(ctx context.Context, ownerType OwnerType, ownerID int64) ([]*Comment, error)

	// Edit replaces the content after checking the comment belongs to the
	// routed owner (ErrNotFound) and to the caller (ErrForbidden).
	Edit(ctx context.Context, ownerType OwnerType, ownerID, id, userID int64, content string) error

	// Delete removes the comment with the same owner and author checks
	// as Edit.
	Delete(ctx context.Context, ownerType OwnerType, ownerID, id, userID int64) error
}

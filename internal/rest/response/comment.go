package response

import "github.com/coursecoc/coursecoc-server/domain"

type Comment struct {
	ID         int64      `json:"id"`
	OwnerType  string     `json:"owner_type"`
	OwnerID    int64      `json:"owner_id"`
	ParentID   int64      `json:"parent_id"`
	Content    string     `json:"content"`
	IsEdited   bool       `json:"is_edited"`
	Likes      int64      `json:"likes"`
	ReplyCount int64      `json:"reply_count"`
	CreatedAt  string     `json:"created_at"`
	Author     *User      `json:"author,omitempty"`
	Replies    []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:         c.ID,
		OwnerType:  string(c.OwnerType),
		OwnerID:    c.OwnerID,
		ParentID:   c.ParentID,
		Content:    c.Content,
		IsEdited:   c.IsEdited,
		Likes:      c.Likes,
		ReplyCount: c.ReplyCount,
		CreatedAt:  c.CreatedAt.Format(DateTimeFormat),
		Author:     NewUserFromDomain(&c.Author),
		Replies:    nil,
	}
}

// NewCommentFromDomain: Domain -> Response, one top-level comment with its
// reply list. Replies are rendered flat; they never nest further.
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	if len(c.Replies) > 0 {
		replies := make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, NewSingleCommentFromDomain(r))
		}
		root.Replies = replies
	}
	return root
}

package request

import "github.com/coursecoc/coursecoc-server/domain"

type Comment struct {
	Content  string `json:"content" binding:"required"`
	ParentID int64  `json:"parent_id"` // 0 for a top-level comment
}

// ToDomain: Request -> Domain. Owner and author come from the route and
// the auth middleware, not the body.
func (r *Comment) ToDomain(ownerType domain.OwnerType, ownerID, userID int64) domain.Comment {
	return domain.Comment{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		ParentID:  r.ParentID,
		Content:   r.Content,
		Author: domain.User{
			ID: userID,
		},
	}
}

type CommentEdit struct {
	Content string `json:"content" binding:"required"`
}

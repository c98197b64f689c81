package response

import "github.com/coursecoc/coursecoc-server/domain"

type Post struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Likes        int64  `json:"likes"`
	Views        int64  `json:"views"`
	CommentCount int64  `json:"comment_count"`
	Author       *User  `json:"author,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Likes:        p.Likes,
		Views:        p.Views,
		CommentCount: p.CommentCount,
		Author:       NewUserFromDomain(&p.Author),
		CreatedAt:    p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:    p.UpdatedAt.Format(DateTimeFormat),
	}
}

package request

import "github.com/coursecoc/coursecoc-server/domain"

type Post struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		Title:   r.Title,
		Content: r.Content,
	}
}

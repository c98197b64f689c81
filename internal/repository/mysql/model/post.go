package model

import (
	"time"

	"github.com/coursecoc/coursecoc-server/domain"
)

type Post struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Content      string    `gorm:"type:longtext;not null"`
	Likes        int64     `gorm:"default:0"`
	Views        int64     `gorm:"default:0"`
	CommentCount int64     `gorm:"column:comment_count;default:0"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
	CreatedAt    time.Time `gorm:"type:datetime;index"`
}

func (Post) TableName() string {
	return "post"
}

func NewPostFromDomain(p *domain.Post) *Post {
	return &Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Likes:        p.Likes,
		Views:        p.Views,
		CommentCount: p.CommentCount,
		UserID:       p.Author.ID,
		UpdatedAt:    p.UpdatedAt,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *Post) ToDomain() domain.Post {
	return domain.Post{
		ID:           m.ID,
		Title:        m.Title,
		Content:      m.Content,
		Likes:        m.Likes,
		Views:        m.Views,
		CommentCount: m.CommentCount,
		Author: domain.User{
			ID: m.UserID,
		},
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

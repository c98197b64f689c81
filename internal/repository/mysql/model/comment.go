package model

import (
	"time"

	"github.com/coursecoc/coursecoc-server/domain"
)

type Comment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OwnerType  string    `gorm:"column:owner_type;type:varchar(10);not null;index:idx_comment_owner"`
	OwnerID    int64     `gorm:"column:owner_id;not null;index:idx_comment_owner"`
	ParentID   int64     `gorm:"column:parent_id;not null;default:0;index"`
	UserID     int64     `gorm:"column:user_id;not null"`
	Content    string    `gorm:"type:text;not null"`
	IsEdited   bool      `gorm:"column:is_edited;not null;default:false"`
	Likes      int64     `gorm:"default:0"`
	ReplyCount int64     `gorm:"column:reply_count;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:         c.ID,
		OwnerType:  string(c.OwnerType),
		OwnerID:    c.OwnerID,
		ParentID:   c.ParentID,
		UserID:     c.Author.ID,
		Content:    c.Content,
		IsEdited:   c.IsEdited,
		Likes:      c.Likes,
		ReplyCount: c.ReplyCount,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:         m.ID,
		OwnerType:  domain.OwnerType(m.OwnerType),
		OwnerID:    m.OwnerID,
		ParentID:   m.ParentID,
		Content:    m.Content,
		IsEdited:   m.IsEdited,
		Likes:      m.Likes,
		ReplyCount: m.ReplyCount,
		CreatedAt:  m.CreatedAt,
		Author: domain.User{
			ID: m.UserID,
		},
	}
}

package model

import "time"

// CourseLike is the existence marker for a (course, user) like pair.
// The unique index makes double-likes impossible at the storage level.
type CourseLike struct {
	CourseID  int64     `gorm:"column:course_id;not null;uniqueIndex:idx_course_user_like"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_course_user_like"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CourseLike) TableName() string {
	return "course_like"
}

type CourseBookmark struct {
	CourseID  int64     `gorm:"column:course_id;not null;uniqueIndex:idx_course_user_bookmark"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_course_user_bookmark"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CourseBookmark) TableName() string {
	return "course_bookmark"
}

type PostLike struct {
	PostID    int64     `gorm:"column:post_id;not null;uniqueIndex:idx_post_user_like"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (PostLike) TableName() string {
	return "post_like"
}

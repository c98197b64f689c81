package model

import (
	"time"

	"github.com/coursecoc/coursecoc-server/domain"
)

type Course struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text;not null"`
	Duration     string    `gorm:"type:varchar(45)"`
	Budget       string    `gorm:"type:varchar(45)"`
	Season       string    `gorm:"type:varchar(45)"`
	HeroImageURL string    `gorm:"type:varchar(512)"`
	Content      string    `gorm:"type:longtext;not null"`
	IsDraft      bool      `gorm:"not null;default:false"`
	Likes        int64     `gorm:"default:0"`
	Views        int64     `gorm:"default:0"`
	Bookmarks    int64     `gorm:"default:0"`
	CommentCount int64     `gorm:"column:comment_count;default:0"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
	CreatedAt    time.Time `gorm:"type:datetime;index"`
}

func (Course) TableName() string {
	return "course"
}

// CourseLocation is one itinerary stop. Position is the zero-based order
// within the course and rows are always read back ORDER BY position.
type CourseLocation struct {
	ID          int64    `gorm:"primaryKey;autoIncrement"`
	CourseID    int64    `gorm:"column:course_id;not null;index"`
	Position    int      `gorm:"not null"`
	Name        string   `gorm:"type:varchar(100);not null"`
	Address     string   `gorm:"type:varchar(255)"`
	Time        string   `gorm:"type:varchar(45)"`
	Description string   `gorm:"type:text"`
	Detail      string   `gorm:"type:text"`
	ImageURL    string   `gorm:"type:varchar(512)"`
	Lat         *float64 `gorm:"type:double"`
	Lng         *float64 `gorm:"type:double"`
}

func (CourseLocation) TableName() string {
	return "course_location"
}

type CourseTag struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	CourseID int64  `gorm:"column:course_id;not null;uniqueIndex:idx_course_tag"`
	Tag      string `gorm:"type:varchar(45);not null;uniqueIndex:idx_course_tag;index"`
}

func (CourseTag) TableName() string {
	return "course_tag"
}

func (m *Course) ToDomain() domain.Course {
	return domain.Course{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Duration:     m.Duration,
		Budget:       m.Budget,
		Season:       m.Season,
		HeroImageURL: m.HeroImageURL,
		Content:      m.Content,
		IsDraft:      m.IsDraft,
		Likes:        m.Likes,
		Views:        m.Views,
		Bookmarks:    m.Bookmarks,
		CommentCount: m.CommentCount,
		Author: domain.User{
			ID: m.UserID,
		},
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewCourseFromDomain(c *domain.Course) *Course {
	return &Course{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Duration:     c.Duration,
		Budget:       c.Budget,
		Season:       c.Season,
		HeroImageURL: c.HeroImageURL,
		Content:      c.Content,
		IsDraft:      c.IsDraft,
		Likes:        c.Likes,
		Views:        c.Views,
		Bookmarks:    c.Bookmarks,
		CommentCount: c.CommentCount,
		UserID:       c.Author.ID,
		UpdatedAt:    c.UpdatedAt,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *CourseLocation) ToDomain() domain.Location {
	return domain.Location{
		ID:          m.ID,
		Name:        m.Name,
		Address:     m.Address,
		Time:        m.Time,
		Description: m.Description,
		Detail:      m.Detail,
		ImageURL:    m.ImageURL,
		Lat:         m.Lat,
		Lng:         m.Lng,
	}
}

func NewCourseLocationFromDomain(courseID int64, position int, l *domain.Location) CourseLocation {
	return CourseLocation{
		ID:          l.ID,
		CourseID:    courseID,
		Position:    position,
		Name:        l.Name,
		Address:     l.Address,
		Time:        l.Time,
		Description: l.Description,
		Detail:      l.Detail,
		ImageURL:    l.ImageURL,
		Lat:         l.Lat,
		Lng:         l.Lng,
	}
}

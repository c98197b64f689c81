package model

import (
	"time"

	"github.com/coursecoc/coursecoc-server/domain"
)

type User struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Nickname        string    `gorm:"type:varchar(45);not null"`
	Password        string    `gorm:"type:varchar(255);not null"`
	ProfileImageURL string    `gorm:"column:profile_image_url;type:varchar(512)"`
	BirthYear       int       `gorm:"column:birth_year;default:0"`
	Gender          string    `gorm:"type:varchar(10)"`
	UpdatedAt       time.Time `gorm:"type:datetime"`
	CreatedAt       time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:              u.ID,
		Email:           u.Email,
		Nickname:        u.Nickname,
		Password:        u.Password,
		ProfileImageURL: u.ProfileImageURL,
		BirthYear:       u.BirthYear,
		Gender:          u.Gender,
		UpdatedAt:       u.UpdatedAt,
		CreatedAt:       u.CreatedAt,
	}
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:              m.ID,
		Email:           m.Email,
		Nickname:        m.Nickname,
		Password:        m.Password,
		ProfileImageURL: m.ProfileImageURL,
		BirthYear:       m.BirthYear,
		Gender:          m.Gender,
		UpdatedAt:       m.UpdatedAt,
		CreatedAt:       m.CreatedAt,
	}
}

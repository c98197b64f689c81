package request

import "github.com/coursecoc/coursecoc-server/domain"

type Register struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type Login struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileEdit struct {
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
	BirthYear       int    `json:"birth_year"`
	Gender          string `json:"gender" binding:"omitempty,oneof=male female other"`
}

// ToDomain: Request -> Domain, bound to the authenticated user.
func (r *ProfileEdit) ToDomain(userID int64) domain.User {
	return domain.User{
		ID:              userID,
		Nickname:        r.Nickname,
		ProfileImageURL: r.ProfileImageURL,
		BirthYear:       r.BirthYear,
		Gender:          r.Gender,
	}
}

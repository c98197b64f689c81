package response

import "github.com/coursecoc/coursecoc-server/domain"

type User struct {
	ID              int64  `json:"id"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	BirthYear       int    `json:"birth_year,omitempty"`
	Gender          string `json:"gender,omitempty"`
}

// NewUserFromDomain: Domain -> Response. Email and password never leave
// the service layer.
func NewUserFromDomain(u *domain.User) *User {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &User{
		ID:              u.ID,
		Nickname:        u.Nickname,
		ProfileImageURL: u.ProfileImageURL,
		BirthYear:       u.BirthYear,
		Gender:          u.Gender,
	}
}

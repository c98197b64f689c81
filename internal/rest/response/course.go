package response

import "github.com/coursecoc/coursecoc-server/domain"

type Location struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Detail      string   `json:"detail"`
	ImageURL    string   `json:"image_url,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

type Course struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Duration     string     `json:"duration,omitempty"`
	Budget       string     `json:"budget,omitempty"`
	Season       string     `json:"season,omitempty"`
	HeroImageURL string     `json:"hero_image_url,omitempty"`
	Locations    []Location `json:"locations"`
	Content      string     `json:"content"`
	IsDraft      bool       `json:"is_draft"`
	Likes        int64      `json:"likes"`
	Views        int64      `json:"views"`
	Bookmarks    int64      `json:"bookmarks"`
	CommentCount int64      `json:"comment_count"`
	Author       *User      `json:"author,omitempty"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
}

// NewCourseFromDomain: Domain -> Response
func NewCourseFromDomain(c *domain.Course) Course {
	locations := make([]Location, len(c.Locations))
	for i, l := range c.Locations {
		locations[i] = Location{
			ID:          l.ID,
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
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return Course{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Tags:         tags,
		Duration:     c.Duration,
		Budget:       c.Budget,
		Season:       c.Season,
		HeroImageURL: c.HeroImageURL,
		Locations:    locations,
		Content:      c.Content,
		IsDraft:      c.IsDraft,
		Likes:        c.Likes,
		Views:        c.Views,
		Bookmarks:    c.Bookmarks,
		CommentCount: c.CommentCount,
		Author:       NewUserFromDomain(&c.Author),
		CreatedAt:    c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:    c.UpdatedAt.Format(DateTimeFormat),
	}
}

package request

import "github.com/coursecoc/coursecoc-server/domain"

type Location struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Detail      string   `json:"detail"`
	ImageURL    string   `json:"image_url"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

// Course carries the write-flow payload. The business rules (required
// title/description/locations/tags/content, checked in order) live in the
// course service; only the season format is checked at the binding layer.
type Course struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Duration     string     `json:"duration"`
	Budget       string     `json:"budget"`
	Season       string     `json:"season" binding:"omitempty,season"`
	HeroImageURL string     `json:"hero_image_url"`
	Locations    []Location `json:"locations"`
	Content      string     `json:"content"`
	IsDraft      bool       `json:"is_draft"`
}

// ToDomain: Request -> Domain
func (r *Course) ToDomain() domain.Course {
	locations := make([]domain.Location, len(r.Locations))
	for i, l := range r.Locations {
		locations[i] = domain.Location{
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
	return domain.Course{
		Title:        r.Title,
		Description:  r.Description,
		Tags:         r.Tags,
		Duration:     r.Duration,
		Budget:       r.Budget,
		Season:       r.Season,
		HeroImageURL: r.HeroImageURL,
		Locations:    locations,
		Content:      r.Content,
		IsDraft:      r.IsDraft,
	}
}

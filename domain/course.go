package domain

import (
	"context"
	"time"
)

// Location is one stop within a course itinerary, with an optional map
// coordinate. The slice order on Course is the itinerary sequence and is
// preserved end-to-end.
type Location struct {
	ID          int64
	Name        string
	Address     string
	Time        string
	Description string
	Detail      string
	ImageURL    string
	Lat         *float64
	Lng         *float64
}

// Course is a saved date itinerary: ordered locations plus metadata and
// rich-text content. Likes, Views and Bookmarks are denormalized counters
// maintained only via atomic deltas, never read-modify-write.
type Course struct {
	ID           int64
	Title        string
	Description  string
	Tags         []string
	Duration     string
	Budget       string
	Season       string
	HeroImageURL string
	Locations    []Location
	Content      string
	IsDraft      bool
	Likes        int64
	Views        int64
	Bookmarks    int64
	CommentCount int64
	Author       User
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CourseRepository defines the contract for course data persistence.
type CourseRepository interface {
	// Store creates a new course and backfills ID and timestamps.
	Store(ctx context.Context, c *Course) error

	// GetByID retrieves a single course with its locations and tags.
	// Returns ErrNotFound if the course doesn't exist.
	GetByID(ctx context.Context, id int64) (Course, error)

	// Fetch retrieves published courses newest-first.
	// cursor: pass the cursor from the previous page, or empty for the first.
	Fetch(ctx context.Context, cursor string, num int64) ([]Course, error)

	// FetchByUser retrieves all courses of one author newest-first,
	// drafts included.
	FetchByUser(ctx context.Context, userID int64) ([]Course, error)

	// FetchByTag retrieves published courses carrying the tag, newest-first.
	FetchByTag(ctx context.Context, tag string) ([]Course, error)

	// Update replaces the course fields and stamps UpdatedAt.
	// Returns ErrNotFound if the course doesn't exist.
	Update(ctx context.Context, c *Course) error

	// Delete removes the course together with its locations, tags,
	// comments, likes and bookmarks in one transaction.
	Delete(ctx context.Context, id int64) error

	// AddViews increments the view count by deltaViews.
	AddViews(ctx context.Context, id int64, deltaViews int64) error

	// ToggleLike flips the (course, user) like state: the like row and the
	// likes counter change together in one transaction. Returns the new
	// liked state.
	ToggleLike(ctx context.Context, courseID, userID int64) (bool, error)

	// ToggleBookmark behaves like ToggleLike for the bookmarks pair.
	ToggleBookmark(ctx context.Context, courseID, userID int64) (bool, error)

	IsLiked(ctx context.Context, courseID, userID int64) (bool, error)
	IsBookmarked(ctx context.Context, courseID, userID int64) (bool, error)
}

// CourseCache is the redis-backed course cache plus the view buffer the
// sync worker drains.
type CourseCache interface {
	GetCourse(ctx context.Context, id int64) (Course, error)
	SetCourse(ctx context.Context, c *Course) error
	DeleteCourse(ctx context.Context, id int64) error

	// IncrViews buffers one view and returns the buffered delta for the id.
	IncrViews(ctx context.Context, id int64) (int64, error)
	// FetchAndResetViews drains the whole buffer, returning id -> delta.
	FetchAndResetViews(ctx context.Context) (map[int64]int64, error)
}

// CourseUsecase defines the business rules for courses.
type CourseUsecase interface {
	// Publish validates the payload and stores it as a published course.
	// Validation rules run in order, first failure wins:
	// title (required, <=200 after trim), description, locations, tags, content.
	Publish(ctx context.Context, c *Course) error

	// SaveDraft stores the payload with IsDraft set, skipping validation of
	// everything except the title.
	SaveDraft(ctx context.Context, c *Course) error

	// Get returns the course and buffers a view increment; the returned
	// Views already includes the buffered delta (optimistic echo).
	Get(ctx context.Context, id int64) (Course, error)

	Fetch(ctx context.Context, cursor string, num int64) ([]Course, string, error)
	FetchByUser(ctx context.Context, userID int64) ([]Course, error)
	FetchByTag(ctx context.Context, tag string) ([]Course, error)

	// Update re-fetches the course and refuses with ErrForbidden when
	// userID is not the stored author.
	Update(ctx context.Context, c *Course, userID int64) error

	// Delete behaves like Update regarding authorship, then cascades.
	Delete(ctx context.Context, id int64, userID int64) error

	ToggleLike(ctx context.Context, courseID, userID int64) (bool, error)
	ToggleBookmark(ctx context.Context, courseID, userID int64) (bool, error)

	// IsLiked/IsBookmarked report the caller's current state, for the
	// initial render of the course page.
	IsLiked(ctx context.Context, courseID, userID int64) (bool, error)
	IsBookmarked(ctx context.Context, courseID, userID int64) (bool, error)
}

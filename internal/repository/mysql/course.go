package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/repository"
	"github.com/coursecoc/coursecoc-server/internal/repository/mysql/model"
)

type courseRepository struct {
	DB *gorm.DB
}

var _ domain.CourseRepository = (*courseRepository)(nil)

// NewCourseRepository will create an implementation of domain.CourseRepository
func NewCourseRepository(db *gorm.DB) *courseRepository {
	return &courseRepository{db}
}

func (m *courseRepository) Store(ctx context.Context, c *domain.Course) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courseModel := model.NewCourseFromDomain(c)
		if err := tx.Create(courseModel).Error; err != nil {
			return err
		}

		if err := storeChildren(tx, courseModel.ID, c); err != nil {
			return err
		}

		c.ID = courseModel.ID
		c.CreatedAt = courseModel.CreatedAt
		c.UpdatedAt = courseModel.UpdatedAt
		return nil
	})
}

// storeChildren inserts the location rows (position = slice index, so the
// itinerary order survives the round trip) and the tag rows.
func storeChildren(tx *gorm.DB, courseID int64, c *domain.Course) error {
	if len(c.Locations) > 0 {
		locations := make([]model.CourseLocation, len(c.Locations))
		for i := range c.Locations {
			locations[i] = model.NewCourseLocationFromDomain(courseID, i, &c.Locations[i])
			locations[i].ID = 0
		}
		if err := tx.Create(&locations).Error; err != nil {
			return err
		}
		for i := range locations {
			c.Locations[i].ID = locations[i].ID
		}
	}

	if len(c.Tags) > 0 {
		tags := make([]model.CourseTag, len(c.Tags))
		for i, tag := range c.Tags {
			tags[i] = model.CourseTag{CourseID: courseID, Tag: tag}
		}
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}
	}
	return nil
}

func (m *courseRepository) GetByID(ctx context.Context, id int64) (res domain.Course, err error) {
	var course model.Course
	err = m.DB.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = course.ToDomain()

	courses := []domain.Course{res}
	if err = m.fillChildren(ctx, courses); err != nil {
		return domain.Course{}, err
	}
	return courses[0], nil
}

func (m *courseRepository) Fetch(ctx context.Context, cursor string, num int64) (res []domain.Course, err error) {
	decodedCursor, err := repository.DecodeCursor(cursor)
	if err != nil && cursor != "" {
		return nil, domain.ErrBadParamInput
	}

	repository.PageVerify(&num)
	query := m.DB.WithContext(ctx).Where("is_draft = ?", false)
	if cursor != "" {
		query = query.Where("created_at < ?", decodedCursor)
	}

	var courses []model.Course
	err = query.Order("created_at DESC").
		Limit(int(num)).
		Find(&courses).
		Error
	if err != nil {
		return nil, err
	}

	return m.toDomainList(ctx, courses)
}

func (m *courseRepository) FetchByUser(ctx context.Context, userID int64) ([]domain.Course, error) {
	var courses []model.Course
	err := m.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).
		Error
	if err != nil {
		return nil, err
	}

	return m.toDomainList(ctx, courses)
}

func (m *courseRepository) FetchByTag(ctx context.Context, tag string) ([]domain.Course, error) {
	var courses []model.Course
	err := m.DB.WithContext(ctx).
		Where("is_draft = ?", false).
		Where("id IN (?)", m.DB.Model(&model.CourseTag{}).Select("course_id").Where("tag = ?", tag)).
		Order("created_at DESC").
		Find(&courses).
		Error
	if err != nil {
		return nil, err
	}

	return m.toDomainList(ctx, courses)
}

func (m *courseRepository) Update(ctx context.Context, c *domain.Course) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Course
		if err := tx.First(&existing, "id = ?", c.ID).Error; err != nil {
			return domain.ErrNotFound
		}

		courseModel := model.NewCourseFromDomain(c)
		courseModel.CreatedAt = existing.CreatedAt
		courseModel.UpdatedAt = time.Now()
		if err := tx.Model(&model.Course{}).Where("id = ?", c.ID).
			Select("title", "description", "duration", "budget", "season",
				"hero_image_url", "content", "is_draft", "updated_at").
			Updates(courseModel).Error; err != nil {
			return err
		}

		// Locations and tags are replaced wholesale so the stored order is
		// always the caller's order.
		if err := tx.Where("course_id = ?", c.ID).Delete(&model.CourseLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", c.ID).Delete(&model.CourseTag{}).Error; err != nil {
			return err
		}
		if err := storeChildren(tx, c.ID, c); err != nil {
			return err
		}

		c.UpdatedAt = courseModel.UpdatedAt
		return nil
	})
}

// Delete removes the course and everything hanging off it. The original
// client left comments and like rows orphaned; here the whole subtree goes
// in one transaction.
func (m *courseRepository) Delete(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Course{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("course_id = ?", id).Delete(&model.CourseLocation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseBookmark{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_type = ? AND owner_id = ?", string(domain.OwnerCourse), id).
			Delete(&model.Comment{}).Error
	})
}

func (m *courseRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	result := m.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + ?", deltaViews))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *courseRepository) ToggleLike(ctx context.Context, courseID, userID int64) (liked bool, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like model.CourseLike
		probe := tx.Where("course_id = ? AND user_id = ?", courseID, userID).First(&like)
		if probe.Error != nil && !errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			return probe.Error
		}

		if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(&model.CourseLike{CourseID: courseID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			return addCounter(tx, &model.Course{}, courseID, "likes", 1)
		}

		result := tx.Where("course_id = ? AND user_id = ?", courseID, userID).
			Delete(&model.CourseLike{})
		if result.Error != nil {
			return result.Error
		}
		liked = false
		// the probe read is non-locking; a concurrent unlike may have
		// removed the row (and moved the counter) first
		if result.RowsAffected == 0 {
			return nil
		}
		return addCounter(tx, &model.Course{}, courseID, "likes", -1)
	})
	return liked, err
}

func (m *courseRepository) ToggleBookmark(ctx context.Context, courseID, userID int64) (bookmarked bool, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bookmark model.CourseBookmark
		probe := tx.Where("course_id = ? AND user_id = ?", courseID, userID).First(&bookmark)
		if probe.Error != nil && !errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			return probe.Error
		}

		if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(&model.CourseBookmark{CourseID: courseID, UserID: userID}).Error; err != nil {
				return err
			}
			bookmarked = true
			return addCounter(tx, &model.Course{}, courseID, "bookmarks", 1)
		}

		result := tx.Where("course_id = ? AND user_id = ?", courseID, userID).
			Delete(&model.CourseBookmark{})
		if result.Error != nil {
			return result.Error
		}
		bookmarked = false
		if result.RowsAffected == 0 {
			return nil
		}
		return addCounter(tx, &model.Course{}, courseID, "bookmarks", -1)
	})
	return bookmarked, err
}

func (m *courseRepository) IsLiked(ctx context.Context, courseID, userID int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.CourseLike{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

func (m *courseRepository) IsBookmarked(ctx context.Context, courseID, userID int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.CourseBookmark{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}

// addCounter applies an atomic delta to a denormalized counter column.
// Counters never go through read-modify-write.
func addCounter(tx *gorm.DB, entity any, id int64, column string, delta int64) error {
	result := tx.Model(entity).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *courseRepository) toDomainList(ctx context.Context, courses []model.Course) ([]domain.Course, error) {
	res := make([]domain.Course, len(courses))
	for i := range courses {
		res[i] = courses[i].ToDomain()
	}
	if err := m.fillChildren(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// fillChildren hydrates locations (ordered) and tags for a course batch.
func (m *courseRepository) fillChildren(ctx context.Context, courses []domain.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]int64, len(courses))
	index := make(map[int64]int, len(courses))
	for i := range courses {
		ids[i] = courses[i].ID
		index[courses[i].ID] = i
	}

	var locations []model.CourseLocation
	err := m.DB.WithContext(ctx).
		Where("course_id IN ?", ids).
		Order("course_id, position").
		Find(&locations).
		Error
	if err != nil {
		return err
	}
	for i := range locations {
		j := index[locations[i].CourseID]
		courses[j].Locations = append(courses[j].Locations, locations[i].ToDomain())
	}

	var tags []model.CourseTag
	err = m.DB.WithContext(ctx).
		Where("course_id IN ?", ids).
		Order("course_id, id").
		Find(&tags).
		Error
	if err != nil {
		return err
	}
	for i := range tags {
		j := index[tags[i].CourseID]
		courses[j].Tags = append(courses[j].Tags, tags[i].Tag)
	}

	return nil
}

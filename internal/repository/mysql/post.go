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

type postRepository struct {
	DB *gorm.DB
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) error {
	postModel := model.NewPostFromDomain(p)
	result := m.DB.WithContext(ctx).Create(postModel)
	if result.Error != nil {
		return result.Error
	}
	p.ID = postModel.ID
	p.CreatedAt = postModel.CreatedAt
	p.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (m *postRepository) GetByID(ctx context.Context, id int64) (res domain.Post, err error) {
	var post model.Post
	err = m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	return post.ToDomain(), nil
}

func (m *postRepository) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Post, error) {
	decodedCursor, err := repository.DecodeCursor(cursor)
	if err != nil && cursor != "" {
		return nil, domain.ErrBadParamInput
	}

	repository.PageVerify(&num)
	query := m.DB.WithContext(ctx)
	if cursor != "" {
		query = query.Where("created_at < ?", decodedCursor)
	}

	var posts []model.Post
	err = query.Order("created_at DESC").
		Limit(int(num)).
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (m *postRepository) Update(ctx context.Context, p *domain.Post) error {
	p.UpdatedAt = time.Now()
	result := m.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", p.ID).
		Updates(map[string]any{
			"title":      p.Title,
			"content":    p.Content,
			"updated_at": p.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *postRepository) Delete(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_type = ? AND owner_id = ?", string(domain.OwnerPost), id).
			Delete(&model.Comment{}).Error
	})
}

func (m *postRepository) AddViews(ctx context.Context, id int64, deltaViews int64) error {
	result := m.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + ?", deltaViews))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *postRepository) ToggleLike(ctx context.Context, postID, userID int64) (liked bool, err error) {
	err = m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like model.PostLike
		probe := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like)
		if probe.Error != nil && !errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			return probe.Error
		}

		if errors.Is(probe.Error, gorm.ErrRecordNotFound) {
			if err := tx.Create(&model.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			return addCounter(tx, &model.Post{}, postID, "likes", 1)
		}

		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		liked = false
		// non-locking probe; a concurrent unlike may have won the delete
		if result.RowsAffected == 0 {
			return nil
		}
		return addCounter(tx, &model.Post{}, postID, "likes", -1)
	})
	return liked, err
}

func (m *postRepository) IsLiked(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

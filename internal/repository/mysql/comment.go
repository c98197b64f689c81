package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Store inserts the comment and moves both denormalized counters in the
// same transaction: reply_count on the parent (replies only) and
// comment_count on the owning course/post (always — comment_count counts
// top-level comments and replies together).
func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownerExists(tx, comment.OwnerType, comment.OwnerID); err != nil {
			return err
		}

		if comment.IsReply() {
			var parent model.Comment
			if err := tx.First(&parent, "id = ?", comment.ParentID).Error; err != nil {
				return domain.ErrNotFound
			}
			// replies never nest: the parent must be a top-level comment
			// of the same owner
			if parent.ParentID != 0 {
				return domain.ErrBadParamInput
			}
			if parent.OwnerType != string(comment.OwnerType) || parent.OwnerID != comment.OwnerID {
				return domain.ErrBadParamInput
			}

			if err := addCounter(tx, &model.Comment{}, comment.ParentID, "reply_count", 1); err != nil {
				return err
			}
		}

		commentModel := model.NewCommentFromDomain(comment)
		if err := tx.Create(commentModel).Error; err != nil {
			return err
		}
		comment.ID = commentModel.ID
		comment.CreatedAt = commentModel.CreatedAt

		return addOwnerCommentCount(tx, comment.OwnerType, comment.OwnerID, 1)
	})
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, domain.ErrNotFound
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) FetchByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", string(ownerType), ownerID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	result := c.DB.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		Updates(map[string]any{"content": content, "is_edited": true})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete is the single deletion routine for comments. A reply decrements
// its parent's reply_count; a top-level comment takes its replies with it.
// The owner's comment_count drops by the number of rows removed, all in
// one transaction, so the counters cannot drift from the true row counts.
func (c *commentRepository) Delete(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		removed := int64(1)
		if comment.ParentID != 0 {
			if err := addCounter(tx, &model.Comment{}, comment.ParentID, "reply_count", -1); err != nil {
				return err
			}
		} else {
			result := tx.Where("parent_id = ?", comment.ID).Delete(&model.Comment{})
			if result.Error != nil {
				return result.Error
			}
			removed += result.RowsAffected
		}

		if err := tx.Delete(&model.Comment{}, comment.ID).Error; err != nil {
			return err
		}

		return addOwnerCommentCount(tx, domain.OwnerType(comment.OwnerType), comment.OwnerID, -removed)
	})
}

func ownerExists(tx *gorm.DB, ownerType domain.OwnerType, ownerID int64) error {
	var count int64
	var err error
	switch ownerType {
	case domain.OwnerCourse:
		err = tx.Model(&model.Course{}).Where("id = ?", ownerID).Count(&count).Error
	case domain.OwnerPost:
		err = tx.Model(&model.Post{}).Where("id = ?", ownerID).Count(&count).Error
	default:
		return domain.ErrBadParamInput
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func addOwnerCommentCount(tx *gorm.DB, ownerType domain.OwnerType, ownerID int64, delta int64) error {
	switch ownerType {
	case domain.OwnerCourse:
		return addCounter(tx, &model.Course{}, ownerID, "comment_count", delta)
	case domain.OwnerPost:
		return addCounter(tx, &model.Post{}, ownerID, "comment_count", delta)
	default:
		return domain.ErrBadParamInput
	}
}

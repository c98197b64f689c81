package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coursecoc/coursecoc-server/domain"
	"github.com/coursecoc/coursecoc-server/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return result.Error
	}

	u.ID = userModel.ID
	u.CreatedAt = userModel.CreatedAt

	return nil
}

// Update merges the profile fields; gorm's Updates skips zero values, which
// gives the merge semantics the profile edit flow expects.
func (m *userRepository) Update(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Model(userModel).Updates(userModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	var users []model.User
	err := m.DB.WithContext(ctx).Model(&model.User{}).Where("id in ?", ids).Find(&users).Error
	res := make([]domain.User, len(users))
	for i := range users {
		res[i] = users[i].ToDomain()
	}
	return res, err
}

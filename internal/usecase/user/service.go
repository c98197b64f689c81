package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursecoc/coursecoc-server/domain"
)

type service struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

var _ domain.UserUsecase = (*service)(nil)

func NewService(userRepo domain.UserRepository, jwtSecret []byte, jwtTTL time.Duration) *service {
	return &service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *service) Register(ctx context.Context, email, nickname, password string) error {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" || nickname == "" || len(password) < 8 {
		return domain.ErrBadParamInput
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.Insert(ctx, &domain.User{
		Email:    email,
		Nickname: nickname,
		Password: string(hashed),
	})
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", domain.ErrBadParamInput
	}

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"exp":     time.Now().Add(s.jwtTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *service) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	// never hand the hash back to the rest layer
	u.Password = ""
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, u *domain.User) error {
	if u.ID == 0 {
		return domain.ErrBadParamInput
	}
	// email and password are not editable through the profile flow
	u.Email = ""
	u.Password = ""
	u.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, u)
}

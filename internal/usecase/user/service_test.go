package user

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecoc/coursecoc-server/domain"
)

type fakeUserRepo struct {
	byID    map[int64]domain.User
	byEmail map[string]domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[int64]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = *u
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	existing, ok := f.byID[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if u.Nickname != "" {
		existing.Nickname = u.Nickname
	}
	if u.ProfileImageURL != "" {
		existing.ProfileImageURL = u.ProfileImageURL
	}
	f.byID[u.ID] = existing
	f.byEmail[existing.Email] = existing
	return nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	res := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

const testSecret = "test-secret"

func newTestService() (*service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, []byte(testSecret), time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	email := faker.Email()
	require.NoError(t, svc.Register(ctx, email, "dana", "correct horse battery"))

	stored := repo.byEmail[email]
	assert.NotEqual(t, "correct horse battery", stored.Password, "password must be stored hashed")

	token, err := svc.Login(ctx, email, "correct horse battery")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, stored.ID, claims["user_id"])
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name                      string
		email, nickname, password string
	}{
		{"blank email", "  ", "dana", "longenoughpw"},
		{"blank nickname", faker.Email(), "", "longenoughpw"},
		{"short password", faker.Email(), "dana", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.email, tt.nickname, tt.password)
			assert.ErrorIs(t, err, domain.ErrBadParamInput)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	email := faker.Email()
	require.NoError(t, svc.Register(ctx, email, "dana", "longenoughpw"))

	err := svc.Register(ctx, email, "minho", "anotherlongpw")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	email := faker.Email()
	require.NoError(t, svc.Register(ctx, email, "dana", "longenoughpw"))

	_, err := svc.Login(ctx, email, "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStripsPassword(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	email := faker.Email()
	require.NoError(t, svc.Register(ctx, email, "dana", "longenoughpw"))
	id := repo.byEmail[email].ID

	u, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, u.Password)
	assert.Equal(t, "dana", u.Nickname)
}

func TestUpdateProfileNeverTouchesCredentials(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	email := faker.Email()
	require.NoError(t, svc.Register(ctx, email, "dana", "longenoughpw"))
	id := repo.byEmail[email].ID
	hashBefore := repo.byID[id].Password

	edit := domain.User{
		ID:       id,
		Email:    "evil@example.com",
		Password: "newpassword!",
		Nickname: "dana2",
	}
	require.NoError(t, svc.UpdateProfile(ctx, &edit))

	after := repo.byID[id]
	assert.Equal(t, "dana2", after.Nickname)
	assert.Equal(t, email, after.Email)
	assert.Equal(t, hashBefore, after.Password)
}

package service

import (
	"context"
	"testing"
	"time"

	"endurafit/workout-service/internal/domain"
	"endurafit/workout-service/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo stores users in memory keyed by email.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	f.byEmail[user.Email] = &stored
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	stored, ok := f.byEmail[user.Email]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = user.Name
	stored.BirthDate = user.BirthDate
	stored.Gender = user.Gender
	stored.Defaults = user.Defaults
	return nil
}

func (f *fakeUserRepo) SetAvatarKey(ctx context.Context, id primitive.ObjectID, key string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.AvatarKey = key
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, token string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.VerificationToken != "" && u.VerificationToken == token {
			u.EmailVerified = true
			u.VerificationToken = ""
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestAuth() (AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func registerVerified(t *testing.T, svc AuthService, repo *fakeUserRepo, email, password string) *domain.User {
	t.Helper()
	_, err := svc.Register(context.Background(), "Alex", email, password)
	require.NoError(t, err)
	verified, err := svc.VerifyEmail(context.Background(), repo.byEmail[email].VerificationToken)
	require.NoError(t, err)
	return verified
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	cases := []struct {
		name               string
		uname, email, pass string
		want               *domain.AppError
	}{
		{"empty name", "", "a@b.com", "secret1", domain.ErrEmptyFields},
		{"empty email", "Alex", "", "secret1", domain.ErrEmptyFields},
		{"empty password", "Alex", "a@b.com", "", domain.ErrEmptyFields},
		{"malformed email", "Alex", "not-an-email", "secret1", domain.ErrInvalidEmail},
		{"short password", "Alex", "a@b.com", "12345", domain.ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.uname, tc.email, tc.pass)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "a@b.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "a@b.com", "secret2")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyInUse)
}

func TestRegisterStartsUnverified(t *testing.T) {
	svc, repo := newTestAuth()

	user, err := svc.Register(context.Background(), "Alex", "a@b.com", "secret1")
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
	assert.NotEmpty(t, user.VerificationToken)
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")
	assert.NotEmpty(t, repo.byEmail["a@b.com"].PasswordHash)
	assert.NotEqual(t, "secret1", repo.byEmail["a@b.com"].PasswordHash)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestAuth()
	ctx := context.Background()
	registerVerified(t, svc, repo, "a@b.com", "secret1")

	t.Run("success returns signed token", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)

		claims := &jwtClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
		assert.Equal(t, "endurafit", claims.Issuer)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "who@b.com", "secret1")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrWrongPassword)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyFields)
	})
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	svc, repo := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alex", "a@b.com", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrEmailNotVerified)

	// Redeeming the token unlocks login.
	_, err = svc.VerifyEmail(ctx, repo.byEmail["a@b.com"].VerificationToken)
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "a@b.com", "secret1")
	assert.NoError(t, err)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	svc, _ := newTestAuth()
	_, err := svc.VerifyEmail(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

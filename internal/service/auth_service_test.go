package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow-be/internal/crypto"
	"taskflow-be/internal/entities"
	"taskflow-be/internal/jwt"
	"taskflow-be/internal/models"
	"taskflow-be/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*entities.User
	byID    map[int64]*entities.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*entities.User{},
		byID:    map[int64]*entities.User{},
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, email, passwordHash, fullName string) (*entities.User, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, repository.ErrDuplicateEmail
	}
	user := &entities.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.nextID++
	f.byEmail[email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, changes repository.Fields) (*entities.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if len(changes) == 0 {
		return user, nil
	}
	for _, change := range changes {
		switch change.Column {
		case "full_name":
			user.FullName = change.Value.(string)
		case "email":
			email := change.Value.(string)
			if other, exists := f.byEmail[email]; exists && other.ID != id {
				return nil, repository.ErrDuplicateEmail
			}
			delete(f.byEmail, user.Email)
			user.Email = email
			f.byEmail[email] = user
		}
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

func newTestAuthService(repo repository.UserRepository) (AuthService, *jwt.JWTService) {
	jwtService := jwt.NewJWTService("test-secret", 24*time.Hour)
	return NewAuthService(repo, jwtService, nil), jwtService
}

func TestSignup(t *testing.T) {
	t.Run("creates a user with a verifiable hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestAuthService(repo)

		user, err := svc.Signup(context.Background(), &models.SignupRequest{
			Email:    "a@x.com",
			Password: "secret1",
			FullName: "A",
		})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, crypto.CheckPassword("secret1", user.PasswordHash))
	})

	t.Run("duplicate email conflicts regardless of password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestAuthService(repo)

		_, err := svc.Signup(context.Background(), &models.SignupRequest{
			Email: "a@x.com", Password: "secret1", FullName: "A",
		})
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), &models.SignupRequest{
			Email: "a@x.com", Password: "different-password", FullName: "B",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, jwtService := newTestAuthService(repo)

	_, err := svc.Signup(context.Background(), &models.SignupRequest{
		Email: "a@x.com", Password: "secret1", FullName: "A",
	})
	require.NoError(t, err)

	t.Run("signup then login succeeds and yields a valid token", func(t *testing.T) {
		token, err := svc.Login(context.Background(), &models.LoginRequest{
			Email: "a@x.com", Password: "secret1",
		})
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Subject)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPassword := svc.Login(context.Background(), &models.LoginRequest{
			Email: "a@x.com", Password: "wrong",
		})
		_, unknownEmail := svc.Login(context.Background(), &models.LoginRequest{
			Email: "ghost@x.com", Password: "secret1",
		})
		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	newUser := func(t *testing.T, repo *fakeUserRepo, svc AuthService, email string) *entities.User {
		t.Helper()
		user, err := svc.Signup(context.Background(), &models.SignupRequest{
			Email: email, Password: "secret1", FullName: "A",
		})
		require.NoError(t, err)
		return user
	}

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestAuthService(repo)
		user := newUser(t, repo, svc, "a@x.com")

		name := "New Name"
		updated, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
			FullName: &name,
		})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.FullName)
		assert.Equal(t, "a@x.com", updated.Email)
	})

	t.Run("empty update returns the current record", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestAuthService(repo)
		user := newUser(t, repo, svc, "a@x.com")
		before := user.UpdatedAt

		updated, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, before, updated.UpdatedAt)
	})

	t.Run("taking another account's email conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, _ := newTestAuthService(repo)
		newUser(t, repo, svc, "a@x.com")
		other := newUser(t, repo, svc, "b@x.com")

		taken := "a@x.com"
		_, err := svc.UpdateProfile(context.Background(), other.ID, &models.UpdateProfileRequest{
			Email: &taken,
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLoginFailureIsOpaque(t *testing.T) {
	// Neither failure path may leak whether the account exists
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@x.com", Password: "x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrNotFound))
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type fakeAuthUserStore struct {
	users  map[string]domain.User
	nextID uint
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (f *fakeAuthUserStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("stores a bcrypt hash, not the password", func(t *testing.T) {
		store := newFakeAuthUserStore()
		svc := NewAuthService(store)

		user, err := svc.Signup(context.Background(), domain.User{
			Email:    "alice@example.com",
			Password: "passw0rd1",
			Name:     "Alice",
		})

		require.NoError(t, err)
		assert.NotEqual(t, "passw0rd1", store.users["alice@example.com"].Password)
		assert.NotZero(t, user.ID)
	})

	t.Run("a duplicate email is rejected", func(t *testing.T) {
		store := newFakeAuthUserStore()
		svc := NewAuthService(store)

		_, err := svc.Signup(context.Background(), domain.User{Email: "alice@example.com", Password: "passw0rd1"})
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), domain.User{Email: "alice@example.com", Password: "passw0rd1"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := NewAuthService(store)

	_, err := svc.Signup(context.Background(), domain.User{Email: "alice@example.com", Password: "passw0rd1"})
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "alice@example.com", "passw0rd1")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "bob@example.com", "passw0rd1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

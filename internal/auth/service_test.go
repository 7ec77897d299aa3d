package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"festly/internal/shared/config"
	"festly/internal/users"
)

type mockRepository struct {
	createUserFn     func(ctx context.Context, user *users.User) error
	getUserByEmailFn func(ctx context.Context, email string) (*users.User, error)
	getUserByIDFn    func(ctx context.Context, id string) (*users.User, error)
	emailExistsFn    func(ctx context.Context, email string) (bool, error)
}

func (m *mockRepository) CreateUser(ctx context.Context, user *users.User) error {
	return m.createUserFn(ctx, user)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.getUserByEmailFn(ctx, email)
}

func (m *mockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	return m.getUserByIDFn(ctx, id)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegister(t *testing.T) {
	var created *users.User
	repo := &mockRepository{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createUserFn: func(ctx context.Context, user *users.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}

	svc := NewService(repo, testConfig())
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Equal(t, string(users.RoleUser), resp.User.Role)

	require.NotNil(t, created)
	require.NotEqual(t, "password123", created.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockRepository{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := NewService(repo, testConfig())
	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &users.User{
		ID:       uuid.New(),
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: string(hash),
		Role:     users.RoleUser,
	}

	repo := &mockRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*users.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, ErrUserNotFound
		},
	}

	svc := NewService(repo, testConfig())

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	repo := &mockRepository{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createUserFn: func(ctx context.Context, user *users.User) error {
			user.ID = uuid.New()
			return nil
		},
	}

	svc := NewService(repo, testConfig())
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alice Martin",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := svc.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", claims.Email)
		require.Equal(t, "access", claims.Type)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.JWT.Secret = "another-secret"
		otherSvc := NewService(repo, otherCfg)

		_, err := otherSvc.ValidateToken(resp.AccessToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

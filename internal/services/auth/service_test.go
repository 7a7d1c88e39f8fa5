package auth

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	apperrors "clinic/internal/errors"
	"clinic/internal/models"
	"clinic/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockUsers) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return m.Called(ctx, userID, hash).Error(0)
}

func (m *MockUsers) IncrementTokenVersion(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

var tokenCfg = utils.TokenConfig{
	AccessSecret:  "access",
	RefreshSecret: "refresh",
	AccessTTL:     15 * time.Minute,
	RefreshTTL:    time.Hour,
}

func testUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	clinicID := uuid.New()
	return &models.User{
		Base:         models.Base{ID: uuid.New()},
		Email:        "admin@clinic.test",
		Password:     string(hash),
		Role:         models.RoleClinicAdmin,
		ClinicID:     &clinicID,
		TokenVersion: 1,
	}
}

func TestService_Login(t *testing.T) {
	user := testUser(t)

	t.Run("success carries clinic and permissions", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", mock.Anything, "admin@clinic.test").Return(user, nil)
		svc := NewService(users, new(MockSessions), tokenCfg, nil)

		_, pair, err := svc.Login(context.Background(), "admin@clinic.test", "s3cret-pass")
		require.NoError(t, err)

		_, claims, err := utils.ParseToken(pair.AccessToken, tokenCfg.AccessSecret)
		require.NoError(t, err)
		assert.Equal(t, user.ClinicID.String(), claims.ClinicID)
		assert.True(t, claims.HasPermission(models.PermissionTreatmentWrite))
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", mock.Anything, "admin@clinic.test").Return(user, nil)
		svc := NewService(users, new(MockSessions), tokenCfg, nil)

		_, _, err := svc.Login(context.Background(), "admin@clinic.test", "nope")
		assert.True(t, stderrors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetByEmail", mock.Anything, "ghost@clinic.test").Return(nil, apperrors.ErrNotFound)
		svc := NewService(users, new(MockSessions), tokenCfg, nil)

		_, _, err := svc.Login(context.Background(), "ghost@clinic.test", "whatever")
		assert.True(t, stderrors.Is(err, apperrors.ErrInvalidCredentials))
	})
}

func TestService_Refresh(t *testing.T) {
	user := testUser(t)
	pair, err := utils.GenerateTokens(tokenCfg, &models.UserClaims{UserID: user.ID, Role: user.Role, TokenVersion: 1})
	require.NoError(t, err)

	t.Run("rotates the refresh token", func(t *testing.T) {
		users := new(MockUsers)
		sessions := new(MockSessions)
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		sessions.On("IsRevoked", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
		sessions.On("Revoke", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)
		svc := NewService(users, sessions, tokenCfg, nil)

		next, err := svc.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
		sessions.AssertExpectations(t)
	})

	t.Run("revoked token", func(t *testing.T) {
		sessions := new(MockSessions)
		sessions.On("IsRevoked", mock.Anything, mock.Anything).Return(true, nil)
		svc := NewService(new(MockUsers), sessions, tokenCfg, nil)

		_, err := svc.Refresh(context.Background(), pair.RefreshToken)
		assert.True(t, stderrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("stale token version", func(t *testing.T) {
		bumped := *user
		bumped.TokenVersion = 2
		users := new(MockUsers)
		sessions := new(MockSessions)
		users.On("GetByID", mock.Anything, user.ID).Return(&bumped, nil)
		sessions.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
		svc := NewService(users, sessions, tokenCfg, nil)

		_, err := svc.Refresh(context.Background(), pair.RefreshToken)
		assert.True(t, stderrors.Is(err, apperrors.ErrUnauthorized))
		sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		svc := NewService(new(MockUsers), new(MockSessions), tokenCfg, nil)

		_, err := svc.Refresh(context.Background(), pair.AccessToken)
		assert.True(t, stderrors.Is(err, apperrors.ErrUnauthorized))
	})
}

func TestService_Logout(t *testing.T) {
	userID := uuid.New()
	claims := &models.UserClaims{UserID: userID}
	claims.ID = "token-1"

	users := new(MockUsers)
	sessions := new(MockSessions)
	sessions.On("Revoke", mock.Anything, "token-1", time.Duration(0)).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, userID).Return(nil)
	svc := NewService(users, sessions, tokenCfg, nil)

	require.NoError(t, svc.Logout(context.Background(), claims))
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestService_ChangePassword(t *testing.T) {
	user := testUser(t)

	users := new(MockUsers)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)
	svc := NewService(users, new(MockSessions), tokenCfg, nil)

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password-1")
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidCredentials))

	err = svc.ChangePassword(context.Background(), user.ID, "s3cret-pass", "short")
	assert.True(t, stderrors.Is(err, apperrors.ErrValidation))

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "s3cret-pass", "new-password-1"))
	users.AssertNumberOfCalls(t, "UpdatePassword", 1)
}

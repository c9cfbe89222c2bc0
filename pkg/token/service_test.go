package token

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gatherly/event-manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const refreshTokenSecretKey = "not-so-secret"

func newTestService(t *testing.T, repository repository) *tokenService {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repository, privateKey, 300, refreshTokenSecretKey, 3600)
}

func TestTokenService_GetTokens(t *testing.T) {
	repository := &mockTokenRepository{}
	repository.
		On("SetRefreshToken", uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return(nil)
	service := newTestService(t, repository)
	user := &model.User{ID: 1, Email: "ada@gatherly.test"}

	tokens, err := service.GetTokens(user, "")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, uint(300), tokens.ExpiresIn)
	repository.AssertExpectations(t)
	repository.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
}

func TestTokenService_GetTokens_RotatesPreviousToken(t *testing.T) {
	repository := &mockTokenRepository{}
	repository.
		On("DeleteRefreshToken", uint(1), "previous-id").
		Return(nil)
	repository.
		On("SetRefreshToken", uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return(nil)
	service := newTestService(t, repository)
	user := &model.User{ID: 1, Email: "ada@gatherly.test"}

	_, err := service.GetTokens(user, "previous-id")

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestTokenService_ValidateRefreshToken(t *testing.T) {
	var storedTokenId string
	repository := &mockTokenRepository{}
	repository.
		On("SetRefreshToken", uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Run(func(args mock.Arguments) {
			storedTokenId = args.String(1)
		}).
		Return(nil)
	service := newTestService(t, repository)
	user := &model.User{ID: 1, Email: "ada@gatherly.test"}

	tokens, err := service.GetTokens(user, "")
	require.NoError(t, err)

	repository.
		On("HasRefreshToken", uint(1), storedTokenId).
		Return(true, nil)

	data, err := service.ValidateRefreshToken(context.Background(), tokens.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, uint(1), data.UserId)
	assert.Equal(t, storedTokenId, data.ID.String())
	assert.Equal(t, tokens.RefreshToken, data.SignedToken)
}

func TestTokenService_ValidateRefreshToken_NotOnAllowList(t *testing.T) {
	repository := &mockTokenRepository{}
	repository.
		On("SetRefreshToken", uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).
		Return(nil)
	repository.
		On("HasRefreshToken", uint(1), mock.AnythingOfType("string")).
		Return(false, nil)
	service := newTestService(t, repository)
	user := &model.User{ID: 1, Email: "ada@gatherly.test"}

	tokens, err := service.GetTokens(user, "")
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(context.Background(), tokens.RefreshToken)

	assert.ErrorContains(t, err, "unable to verify refresh token")
}

func TestTokenService_ValidateRefreshToken_Garbage(t *testing.T) {
	service := newTestService(t, &mockTokenRepository{})

	_, err := service.ValidateRefreshToken(context.Background(), "not-a-token")

	assert.ErrorContains(t, err, "unable to verify refresh token")
}

func TestTokenService_SignOut(t *testing.T) {
	repository := &mockTokenRepository{}
	repository.
		On("DeleteRefreshTokens", uint(1)).
		Return(nil)
	service := newTestService(t, repository)

	err := service.SignOut(1)

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

type mockTokenRepository struct{ mock.Mock }

func (m *mockTokenRepository) SetRefreshToken(userId uint, tokenId string, expiresIn time.Duration) error {
	return m.Called(userId, tokenId, expiresIn).Error(0)
}

func (m *mockTokenRepository) HasRefreshToken(userId uint, tokenId string) (bool, error) {
	called := m.Called(userId, tokenId)
	return called.Bool(0), called.Error(1)
}

func (m *mockTokenRepository) DeleteRefreshToken(userId uint, tokenId string) error {
	return m.Called(userId, tokenId).Error(0)
}

func (m *mockTokenRepository) DeleteRefreshTokens(userId uint) error {
	return m.Called(userId).Error(0)
}

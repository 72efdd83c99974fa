// File: services/mock_identity_service.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	"recruit-portal/models"
)

// Ensure MockIdentityService implements IdentityServiceInterface
var _ IdentityServiceInterface = (*MockIdentityService)(nil)

// MockIdentityService is a mock implementation for controller tests.
type MockIdentityService struct {
	mock.Mock
}

// Resolve (Mocked)
func (m *MockIdentityService) Resolve(ctx context.Context, srn string) (*models.User, error) {
	args := m.Called(ctx, srn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CompleteLogin (Mocked)
func (m *MockIdentityService) CompleteLogin(ctx context.Context, p Profile) (*models.User, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Ensure MockOAuthProvider implements OAuthProvider
var _ OAuthProvider = (*MockOAuthProvider)(nil)

// MockOAuthProvider is a mock identity provider for auth flow tests.
type MockOAuthProvider struct {
	mock.Mock
}

// AuthCodeURL (Mocked)
func (m *MockOAuthProvider) AuthCodeURL(state, verifier string) string {
	args := m.Called(state, verifier)
	return args.String(0)
}

// Exchange (Mocked)
func (m *MockOAuthProvider) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	args := m.Called(ctx, code, verifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

// FetchProfile (Mocked)
func (m *MockOAuthProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(Profile), args.Error(1)
}

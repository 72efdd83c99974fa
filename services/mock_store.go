// File: services/mock_store.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recruit-portal/models"
	"recruit-portal/store"
)

// Ensure MockStore implements store.Store
var _ store.Store = (*MockStore)(nil)

// MockStore is a mock implementation of store.Store for service tests.
type MockStore struct {
	mock.Mock
}

// Ping (Mocked)
func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetUserBySRN (Mocked)
func (m *MockStore) GetUserBySRN(ctx context.Context, srn string) (*models.User, error) {
	args := m.Called(ctx, srn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// UpsertUser (Mocked)
func (m *MockStore) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CountUsersWithRole (Mocked)
func (m *MockStore) CountUsersWithRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

// ListDomains (Mocked)
func (m *MockStore) ListDomains(ctx context.Context) ([]models.Domain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Domain), args.Error(1)
}

// GetDomainByID (Mocked)
func (m *MockStore) GetDomainByID(ctx context.Context, id string) (*models.Domain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Domain), args.Error(1)
}

// GetDomainBySlug (Mocked)
func (m *MockStore) GetDomainBySlug(ctx context.Context, slug string) (*models.Domain, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Domain), args.Error(1)
}

// SetDomainWhatsAppLink (Mocked)
func (m *MockStore) SetDomainWhatsAppLink(ctx context.Context, id string, link *string) error {
	args := m.Called(ctx, id, link)
	return args.Error(0)
}

// CreateApplication (Mocked)
func (m *MockStore) CreateApplication(ctx context.Context, userID, domainID string) (*models.Application, error) {
	args := m.Called(ctx, userID, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

// DeleteApplication (Mocked)
func (m *MockStore) DeleteApplication(ctx context.Context, userID, domainID string) error {
	args := m.Called(ctx, userID, domainID)
	return args.Error(0)
}

// GetApplicationByID (Mocked)
func (m *MockStore) GetApplicationByID(ctx context.Context, id string) (*store.ApplicationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ApplicationRecord), args.Error(1)
}

// CountApplicationsByUser (Mocked)
func (m *MockStore) CountApplicationsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// ListApplicationsByUser (Mocked)
func (m *MockStore) ListApplicationsByUser(ctx context.Context, userID string) ([]store.StudentApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.StudentApplication), args.Error(1)
}

// ListApplicationsByDomain (Mocked)
func (m *MockStore) ListApplicationsByDomain(ctx context.Context, domainID string, offset, limit int) ([]store.DomainApplicant, int, error) {
	args := m.Called(ctx, domainID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]store.DomainApplicant), args.Int(1), args.Error(2)
}

// ListDomainApplications (Mocked)
func (m *MockStore) ListDomainApplications(ctx context.Context, domainID string) ([]models.Application, error) {
	args := m.Called(ctx, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

// ListAllApplications (Mocked)
func (m *MockStore) ListAllApplications(ctx context.Context) ([]store.ExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ExportRow), args.Error(1)
}

// SetApplicationScore (Mocked)
func (m *MockStore) SetApplicationScore(ctx context.Context, id string, score int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

// MarkApplicationInterviewed (Mocked)
func (m *MockStore) MarkApplicationInterviewed(ctx context.Context, id string, score *int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

// SetApplicationStatus (Mocked)
func (m *MockStore) SetApplicationStatus(ctx context.Context, id string, status models.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// GetSettings (Mocked)
func (m *MockStore) GetSettings(ctx context.Context) (*models.SystemSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

// SetFrozen (Mocked)
func (m *MockStore) SetFrozen(ctx context.Context, frozen bool) error {
	args := m.Called(ctx, frozen)
	return args.Error(0)
}

// PublishResults (Mocked)
func (m *MockStore) PublishResults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

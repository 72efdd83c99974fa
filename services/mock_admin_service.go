// File: services/mock_admin_service.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recruit-portal/models"
)

// Ensure MockAdminService implements AdminServiceInterface
var _ AdminServiceInterface = (*MockAdminService)(nil)

// MockAdminService is a mock implementation for controller tests.
type MockAdminService struct {
	mock.Mock
}

// Freeze (Mocked)
func (m *MockAdminService) Freeze(ctx context.Context, actor *models.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

// Unfreeze (Mocked)
func (m *MockAdminService) Unfreeze(ctx context.Context, actor *models.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

// Publish (Mocked)
func (m *MockAdminService) Publish(ctx context.Context, actor *models.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

// OverviewStats (Mocked)
func (m *MockAdminService) OverviewStats(ctx context.Context, actor *models.User) (*Overview, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Overview), args.Error(1)
}

// MultiDomainStudents (Mocked)
func (m *MockAdminService) MultiDomainStudents(ctx context.Context, actor *models.User) ([]MultiDomainStudent, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MultiDomainStudent), args.Error(1)
}

// UpdateWhatsAppLink (Mocked)
func (m *MockAdminService) UpdateWhatsAppLink(ctx context.Context, actor *models.User, domainID, link string) error {
	args := m.Called(ctx, actor, domainID, link)
	return args.Error(0)
}

// WhatsAppQR (Mocked)
func (m *MockAdminService) WhatsAppQR(ctx context.Context, actor *models.User, domainID string, size int) ([]byte, error) {
	args := m.Called(ctx, actor, domainID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ExportCSV (Mocked)
func (m *MockAdminService) ExportCSV(ctx context.Context, actor *models.User) (string, error) {
	args := m.Called(ctx, actor)
	return args.String(0), args.Error(1)
}

// ExportXLSX (Mocked)
func (m *MockAdminService) ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

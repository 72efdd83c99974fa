// File: services/mock_application_service.go
package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recruit-portal/models"
	"recruit-portal/store"
)

// Ensure MockApplicationService implements ApplicationServiceInterface
var _ ApplicationServiceInterface = (*MockApplicationService)(nil)

// MockApplicationService is a mock implementation for controller tests.
type MockApplicationService struct {
	mock.Mock
}

// Domains (Mocked)
func (m *MockApplicationService) Domains(ctx context.Context) ([]models.Domain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Domain), args.Error(1)
}

// Settings (Mocked)
func (m *MockApplicationService) Settings(ctx context.Context) (*models.SystemSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

// Apply (Mocked)
func (m *MockApplicationService) Apply(ctx context.Context, actor *models.User, domainID string) error {
	args := m.Called(ctx, actor, domainID)
	return args.Error(0)
}

// Withdraw (Mocked)
func (m *MockApplicationService) Withdraw(ctx context.Context, actor *models.User, domainID string) error {
	args := m.Called(ctx, actor, domainID)
	return args.Error(0)
}

// MyApplications (Mocked)
func (m *MockApplicationService) MyApplications(ctx context.Context, actor *models.User) ([]store.StudentApplication, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.StudentApplication), args.Error(1)
}

// ApplicantsPage (Mocked)
func (m *MockApplicationService) ApplicantsPage(ctx context.Context, actor *models.User, page int) (*ApplicantsPage, error) {
	args := m.Called(ctx, actor, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ApplicantsPage), args.Error(1)
}

// DomainSummary (Mocked)
func (m *MockApplicationService) DomainSummary(ctx context.Context, actor *models.User) (*DomainSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DomainSummary), args.Error(1)
}

// Score (Mocked)
func (m *MockApplicationService) Score(ctx context.Context, actor *models.User, applicationID string, score int) error {
	args := m.Called(ctx, actor, applicationID, score)
	return args.Error(0)
}

// MarkInterviewDone (Mocked)
func (m *MockApplicationService) MarkInterviewDone(ctx context.Context, actor *models.User, applicationID string, score *int) error {
	args := m.Called(ctx, actor, applicationID, score)
	return args.Error(0)
}

// Decide (Mocked)
func (m *MockApplicationService) Decide(ctx context.Context, actor *models.User, applicationID string, status models.Status) error {
	args := m.Called(ctx, actor, applicationID, status)
	return args.Error(0)
}

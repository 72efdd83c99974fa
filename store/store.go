// Package store is the persistence boundary: PostgreSQL behind a narrow
// interface so services can be tested against a fake.
// File: store/store.go
package store

import (
	"context"
	"errors"

	"recruit-portal/models"
)

// Sentinel errors services branch on. Anything else from a Store method is
// an opaque storage failure.
var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means an insert hit a unique constraint.
	ErrDuplicate = errors.New("duplicate")
)

// ApplicationRecord is an application joined with its domain's slug, which
// is what coordinator ownership checks compare against.
type ApplicationRecord struct {
	models.Application
	DomainSlug string `json:"domain_slug"`
}

// StudentApplication is an application joined with its domain, shaped for
// the owning student's status page.
type StudentApplication struct {
	models.Application
	Domain models.Domain `json:"domain"`
}

// DomainApplicant is an application joined with its applicant, shaped for
// the coordinator listing.
type DomainApplicant struct {
	models.Application
	User models.User `json:"user"`
}

// ExportRow is a fully joined application used by exports and admin stats.
type ExportRow struct {
	models.Application
	User       models.User `json:"user"`
	DomainName string      `json:"domain_name"`
}

// Store is everything the services need from the database.
type Store interface {
	Ping(ctx context.Context) error

	// users
	GetUserBySRN(ctx context.Context, srn string) (*models.User, error)
	UpsertUser(ctx context.Context, u *models.User) (*models.User, error)
	CountUsersWithRole(ctx context.Context, role string) (int, error)

	// domains
	ListDomains(ctx context.Context) ([]models.Domain, error)
	GetDomainByID(ctx context.Context, id string) (*models.Domain, error)
	GetDomainBySlug(ctx context.Context, slug string) (*models.Domain, error)
	SetDomainWhatsAppLink(ctx context.Context, id string, link *string) error

	// applications
	CreateApplication(ctx context.Context, userID, domainID string) (*models.Application, error)
	DeleteApplication(ctx context.Context, userID, domainID string) error
	GetApplicationByID(ctx context.Context, id string) (*ApplicationRecord, error)
	CountApplicationsByUser(ctx context.Context, userID string) (int, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]StudentApplication, error)
	ListApplicationsByDomain(ctx context.Context, domainID string, offset, limit int) ([]DomainApplicant, int, error)
	ListDomainApplications(ctx context.Context, domainID string) ([]models.Application, error)
	ListAllApplications(ctx context.Context) ([]ExportRow, error)
	SetApplicationScore(ctx context.Context, id string, score int) error
	MarkApplicationInterviewed(ctx context.Context, id string, score *int) error
	SetApplicationStatus(ctx context.Context, id string, status models.Status) error

	// system settings singleton
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	SetFrozen(ctx context.Context, frozen bool) error
	PublishResults(ctx context.Context) error
}

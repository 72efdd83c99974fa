// File: services/identity_service.go
package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"recruit-portal/logger"
	"recruit-portal/models"
	"recruit-portal/store"
)

// Profile is what the identity provider reports about a logged-in student.
type Profile struct {
	SRN   string `json:"srn"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// IdentityServiceInterface resolves session claims to authoritative users
// and completes logins.
type IdentityServiceInterface interface {
	// Resolve maps the SRN held by a session to the persisted user. The
	// session claim is only a hint; role and ownership always come from
	// the row this returns.
	Resolve(ctx context.Context, srn string) (*models.User, error)
	// CompleteLogin upserts the user for a fetched profile and returns the
	// stored account, with its role decided by DetermineRole.
	CompleteLogin(ctx context.Context, p Profile) (*models.User, error)
}

// admissionPattern extracts the two-digit admission year from an SRN,
// e.g. PES1UG25CS001 -> 25.
var admissionPattern = regexp.MustCompile(`(?i)UG(\d{2})`)

// IdentityService implements IdentityServiceInterface against the store.
type IdentityService struct {
	Store store.Store
	// SuperAdmins is the configured allowlist of SRNs escalated to
	// superadmin at login time.
	SuperAdmins []string
	// AcademicYear is the current two-digit academic year used to derive
	// year-of-study from an SRN.
	AcademicYear int
}

// NewIdentityService creates an identity service.
func NewIdentityService(st store.Store, superAdmins []string, academicYear int) *IdentityService {
	return &IdentityService{Store: st, SuperAdmins: superAdmins, AcademicYear: academicYear}
}

// Resolve loads the authenticated user for a session SRN.
func (s *IdentityService) Resolve(ctx context.Context, srn string) (*models.User, error) {
	if srn == "" {
		return nil, errUnauthenticated()
	}
	user, err := s.Store.GetUserBySRN(ctx, srn)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errUnauthenticated()
	}
	if err != nil {
		return nil, errStorage("Resolve", err)
	}
	return user, nil
}

// DeriveYear computes year of study from the SRN's admission year digits,
// clamped to [1,4]. Unparseable SRNs default to first year.
func (s *IdentityService) DeriveYear(srn string) int {
	m := admissionPattern.FindStringSubmatch(srn)
	if m == nil {
		return 1
	}
	admission, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	year := s.AcademicYear - admission
	if year <= 0 {
		return 1
	}
	if year > 4 {
		return 4
	}
	return year
}

// DetermineRole picks the role to persist at login. Allowlisted SRNs
// become superadmin; an existing escalated role is preserved; everyone
// else is a student. A login never downgrades a non-student role.
func (s *IdentityService) DetermineRole(srn string, existing *models.User) models.Role {
	for _, admin := range s.SuperAdmins {
		if admin == srn {
			return models.SuperAdminRole()
		}
	}
	if existing != nil && !existing.Role.IsStudent() {
		return existing.Role
	}
	return models.StudentRole()
}

// CompleteLogin upserts the account for a freshly fetched profile.
func (s *IdentityService) CompleteLogin(ctx context.Context, p Profile) (*models.User, error) {
	if p.SRN == "" {
		return nil, errValidation("Profile is missing an SRN")
	}

	existing, err := s.Store.GetUserBySRN(ctx, p.SRN)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, errStorage("CompleteLogin", err)
	}

	user := &models.User{
		SRN:   p.SRN,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Year:  s.DeriveYear(p.SRN),
		Role:  s.DetermineRole(p.SRN, existing),
	}

	stored, err := s.Store.UpsertUser(ctx, user)
	if err != nil {
		return nil, errStorage("CompleteLogin", err)
	}

	logger.Info.Printf("CompleteLogin: %s logged in (role=%s, year=%d)",
		stored.SRN, stored.Role.String(), stored.Year)
	return stored, nil
}

// File: services/admin_service.go
package services

import (
	"context"
	"errors"

	"github.com/skip2/go-qrcode"

	"recruit-portal/logger"
	"recruit-portal/metrics"
	"recruit-portal/models"
	"recruit-portal/ratelimit"
	"recruit-portal/store"
	"recruit-portal/validate"
)

// Rate-limit action names for admin toggles.
const (
	actionFreeze   = "admin_freeze"
	actionUnfreeze = "admin_unfreeze"
	actionPublish  = "admin_publish"
)

// whatsappLinkMaxLen caps the stored group link.
const whatsappLinkMaxLen = 500

// AdminServiceInterface is the super-admin surface: the freeze/publish
// workflow, cross-domain reporting, exports, and domain link upkeep.
type AdminServiceInterface interface {
	Freeze(ctx context.Context, actor *models.User) error
	Unfreeze(ctx context.Context, actor *models.User) error
	Publish(ctx context.Context, actor *models.User) error

	OverviewStats(ctx context.Context, actor *models.User) (*Overview, error)
	MultiDomainStudents(ctx context.Context, actor *models.User) ([]MultiDomainStudent, error)

	UpdateWhatsAppLink(ctx context.Context, actor *models.User, domainID, link string) error
	WhatsAppQR(ctx context.Context, actor *models.User, domainID string, size int) ([]byte, error)
	ExportCSV(ctx context.Context, actor *models.User) (string, error)
	ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error)
}

// AdminService implements AdminServiceInterface.
type AdminService struct {
	Store   store.Store
	Limiter ratelimit.Limiter
}

// NewAdminService creates the service.
func NewAdminService(st store.Store, lim ratelimit.Limiter) *AdminService {
	return &AdminService{Store: st, Limiter: lim}
}

// requireSuperAdmin gates every method here on the authoritative role.
func requireSuperAdmin(actor *models.User) error {
	if actor == nil {
		return errUnauthenticated()
	}
	if !actor.Role.IsSuperAdmin() {
		return errUnauthorized("Unauthorized")
	}
	return nil
}

func (s *AdminService) limit(action, subject string) error {
	ok, retryAfter := s.Limiter.Allow(action, subject, ratelimit.AdminActionLimit, ratelimit.Window)
	if !ok {
		metrics.RateLimitRejections.WithLabelValues(action).Inc()
		return errRateLimited(retryAfter)
	}
	return nil
}

// ---------------- freeze / publish workflow ----------------

// Freeze blocks all further application mutations (except this toggle).
func (s *AdminService) Freeze(ctx context.Context, actor *models.User) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if err := s.limit(actionFreeze, actor.SRN); err != nil {
		return err
	}
	if err := s.Store.SetFrozen(ctx, true); err != nil {
		return errStorage("Freeze", err)
	}
	logger.Info.Printf("Freeze: %s froze the system", actor.SRN)
	return nil
}

// Unfreeze re-opens application mutations.
func (s *AdminService) Unfreeze(ctx context.Context, actor *models.User) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if err := s.limit(actionUnfreeze, actor.SRN); err != nil {
		return err
	}
	if err := s.Store.SetFrozen(ctx, false); err != nil {
		return errStorage("Unfreeze", err)
	}
	logger.Info.Printf("Unfreeze: %s unfroze the system", actor.SRN)
	return nil
}

// Publish reveals decisions to students. Publishing implies freezing;
// both flags flip in one update and there is no unpublish.
func (s *AdminService) Publish(ctx context.Context, actor *models.User) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if err := s.limit(actionPublish, actor.SRN); err != nil {
		return err
	}
	if err := s.Store.PublishResults(ctx); err != nil {
		return errStorage("Publish", err)
	}
	logger.Info.Printf("Publish: %s published results", actor.SRN)
	return nil
}

// ---------------- reporting ----------------

// OverviewStats aggregates the whole portal for the admin dashboard.
func (s *AdminService) OverviewStats(ctx context.Context, actor *models.User) (*Overview, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}

	totalStudents, err := s.Store.CountUsersWithRole(ctx, models.StudentRole().String())
	if err != nil {
		return nil, errStorage("OverviewStats", err)
	}
	domains, err := s.Store.ListDomains(ctx)
	if err != nil {
		return nil, errStorage("OverviewStats", err)
	}
	rows, err := s.Store.ListAllApplications(ctx)
	if err != nil {
		return nil, errStorage("OverviewStats", err)
	}

	overview := BuildOverview(domains, rows, totalStudents)
	return &overview, nil
}

// MultiDomainStudents lists users accepted into two or more domains.
func (s *AdminService) MultiDomainStudents(ctx context.Context, actor *models.User) ([]MultiDomainStudent, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	rows, err := s.Store.ListAllApplications(ctx)
	if err != nil {
		return nil, errStorage("MultiDomainStudents", err)
	}
	return MultiDomainAcceptances(rows), nil
}

// ---------------- domain upkeep ----------------

// UpdateWhatsAppLink sets or clears a domain's group link. Links must be
// HTTPS; an empty string clears the column.
func (s *AdminService) UpdateWhatsAppLink(ctx context.Context, actor *models.User, domainID, link string) error {
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if !validate.IsValidID(domainID) {
		return errValidation("Invalid domain ID")
	}

	clean := validate.Sanitize(link, whatsappLinkMaxLen)
	if !validate.IsHTTPSURL(clean) {
		return errValidation("WhatsApp link must be an HTTPS URL")
	}

	var stored *string
	if clean != "" {
		stored = &clean
	}
	err := s.Store.SetDomainWhatsAppLink(ctx, domainID, stored)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("Domain not found")
	}
	if err != nil {
		return errStorage("UpdateWhatsAppLink", err)
	}
	return nil
}

// WhatsAppQR renders a domain's group link as a PNG for printing at the
// venue desk.
func (s *AdminService) WhatsAppQR(ctx context.Context, actor *models.User, domainID string, size int) ([]byte, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if !validate.IsValidID(domainID) {
		return nil, errValidation("Invalid domain ID")
	}
	if size <= 0 {
		size = 256
	}

	domain, err := s.Store.GetDomainByID(ctx, domainID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Domain not found")
	}
	if err != nil {
		return nil, errStorage("WhatsAppQR", err)
	}
	if domain.WhatsAppLink == nil || *domain.WhatsAppLink == "" {
		return nil, errNotFound("Domain has no WhatsApp link")
	}

	png, err := qrcode.Encode(*domain.WhatsAppLink, qrcode.Medium, size)
	if err != nil {
		return nil, errStorage("WhatsAppQR", err)
	}
	return png, nil
}

// ---------------- exports ----------------

// ExportCSV dumps every application joined with user and domain, newest
// first, statuses unmasked.
func (s *AdminService) ExportCSV(ctx context.Context, actor *models.User) (string, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return "", err
	}
	rows, err := s.Store.ListAllApplications(ctx)
	if err != nil {
		return "", errStorage("ExportCSV", err)
	}
	out, err := RenderCSV(rows)
	if err != nil {
		return "", errStorage("ExportCSV", err)
	}
	return out, nil
}

// ExportXLSX is the same projection as ExportCSV in workbook form.
func (s *AdminService) ExportXLSX(ctx context.Context, actor *models.User) ([]byte, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	rows, err := s.Store.ListAllApplications(ctx)
	if err != nil {
		return nil, errStorage("ExportXLSX", err)
	}
	out, err := RenderXLSX(rows)
	if err != nil {
		return nil, errStorage("ExportXLSX", err)
	}
	return out, nil
}

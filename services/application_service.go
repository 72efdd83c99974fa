// File: services/application_service.go
package services

import (
	"context"
	"errors"

	"recruit-portal/logger"
	"recruit-portal/metrics"
	"recruit-portal/models"
	"recruit-portal/ratelimit"
	"recruit-portal/store"
	"recruit-portal/validate"
)

// maxApplications caps how many domains one student may apply to. The cap
// is checked before insert only; concurrent applies from the same user can
// slip past it (known soft limit, the unique pair constraint still holds).
const maxApplications = 6

// applicantsPageSize is the fixed page size of the coordinator listing.
const applicantsPageSize = 50

// Rate-limit action names. The limiter keys counts by action:subject.
const (
	actionApply     = "apply"
	actionScore     = "score"
	actionInterview = "interview_done"
	actionDecision  = "accept_reject"
)

// ApplicantsPage is one page of a domain's applicants plus the total.
type ApplicantsPage struct {
	Applicants []store.DomainApplicant `json:"applicants"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
}

// DomainSummary is a coordinator's dashboard view of their own domain.
type DomainSummary struct {
	Domain models.Domain `json:"domain"`
	Stats  DomainStats   `json:"stats"`
}

// ApplicationServiceInterface is the application state machine plus its
// read side. Every mutating call runs identity -> rate limit -> validation
// -> authorization -> state transition, short-circuiting on the first
// failing check.
type ApplicationServiceInterface interface {
	Domains(ctx context.Context) ([]models.Domain, error)
	Settings(ctx context.Context) (*models.SystemSettings, error)

	Apply(ctx context.Context, actor *models.User, domainID string) error
	Withdraw(ctx context.Context, actor *models.User, domainID string) error
	MyApplications(ctx context.Context, actor *models.User) ([]store.StudentApplication, error)

	ApplicantsPage(ctx context.Context, actor *models.User, page int) (*ApplicantsPage, error)
	DomainSummary(ctx context.Context, actor *models.User) (*DomainSummary, error)
	Score(ctx context.Context, actor *models.User, applicationID string, score int) error
	MarkInterviewDone(ctx context.Context, actor *models.User, applicationID string, score *int) error
	Decide(ctx context.Context, actor *models.User, applicationID string, status models.Status) error
}

// ApplicationService implements ApplicationServiceInterface.
type ApplicationService struct {
	Store   store.Store
	Limiter ratelimit.Limiter
}

// NewApplicationService creates the service.
func NewApplicationService(st store.Store, lim ratelimit.Limiter) *ApplicationService {
	return &ApplicationService{Store: st, Limiter: lim}
}

// limit runs the fixed-window check for one action/subject pair.
func (s *ApplicationService) limit(action, subject string, max int) error {
	ok, retryAfter := s.Limiter.Allow(action, subject, max, ratelimit.Window)
	if !ok {
		metrics.RateLimitRejections.WithLabelValues(action).Inc()
		return errRateLimited(retryAfter)
	}
	return nil
}

// coordinatorSlug returns the domain slug the actor coordinates, or an
// authorization error for everyone else.
func coordinatorSlug(actor *models.User) (string, error) {
	if actor == nil {
		return "", errUnauthenticated()
	}
	if !actor.Role.IsCoordinator() || actor.Role.DomainSlug == "" {
		return "", errUnauthorized("Unauthorized")
	}
	return actor.Role.DomainSlug, nil
}

// frozen reports the global freeze flag.
func (s *ApplicationService) frozen(ctx context.Context) (bool, error) {
	settings, err := s.Store.GetSettings(ctx)
	if err != nil {
		return false, errStorage("GetSettings", err)
	}
	return settings.Frozen, nil
}

// ownedApplication loads an application and verifies it belongs to the
// coordinator's domain. A missing application is NotFound; an application
// in someone else's domain is Unauthorized. The two stay distinct so a
// coordinator cannot probe other domains' ids.
func (s *ApplicationService) ownedApplication(ctx context.Context, slug, applicationID string) (*store.ApplicationRecord, error) {
	rec, err := s.Store.GetApplicationByID(ctx, applicationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Application not found")
	}
	if err != nil {
		return nil, errStorage("GetApplicationByID", err)
	}
	if rec.DomainSlug != slug {
		return nil, errUnauthorized("Cannot act on applications from other domains")
	}
	return rec, nil
}

// ---------------- public reads ----------------

// Domains lists every recruitment domain; public data.
func (s *ApplicationService) Domains(ctx context.Context) ([]models.Domain, error) {
	domains, err := s.Store.ListDomains(ctx)
	if err != nil {
		return nil, errStorage("Domains", err)
	}
	return domains, nil
}

// Settings exposes the freeze/publish flags for the UI.
func (s *ApplicationService) Settings(ctx context.Context) (*models.SystemSettings, error) {
	settings, err := s.Store.GetSettings(ctx)
	if err != nil {
		return nil, errStorage("Settings", err)
	}
	return settings, nil
}

// ---------------- student operations ----------------

// Apply creates an interview_left application for the actor in a domain.
// Pre-checks (cap, freeze, domain existence) give good error messages; the
// database's unique pair constraint is the real duplicate guard.
func (s *ApplicationService) Apply(ctx context.Context, actor *models.User, domainID string) error {
	if actor == nil {
		return errUnauthenticated()
	}
	if !validate.IsValidID(domainID) {
		return errValidation("Invalid domain")
	}
	if err := s.limit(actionApply, actor.SRN, ratelimit.ApplyLimit); err != nil {
		return err
	}

	count, err := s.Store.CountApplicationsByUser(ctx, actor.ID)
	if err != nil {
		return errStorage("Apply", err)
	}
	if count >= maxApplications {
		return errPrecondition("Maximum 6 domain applications allowed")
	}

	if frozen, err := s.frozen(ctx); err != nil {
		return err
	} else if frozen {
		return errPrecondition("Applications are frozen")
	}

	if _, err := s.Store.GetDomainByID(ctx, domainID); errors.Is(err, store.ErrNotFound) {
		return errNotFound("Domain not found")
	} else if err != nil {
		return errStorage("Apply", err)
	}

	if _, err := s.Store.CreateApplication(ctx, actor.ID, domainID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return errConflict("Already applied to this domain")
		}
		return errStorage("Apply", err)
	}

	logger.Info.Printf("Apply: %s applied to domain %s", actor.SRN, domainID)
	return nil
}

// Withdraw deletes the actor's own application for a domain. Any status
// may be withdrawn, but not while the system is frozen.
func (s *ApplicationService) Withdraw(ctx context.Context, actor *models.User, domainID string) error {
	if actor == nil {
		return errUnauthenticated()
	}
	if !validate.IsValidID(domainID) {
		return errValidation("Invalid domain")
	}

	if frozen, err := s.frozen(ctx); err != nil {
		return err
	} else if frozen {
		return errPrecondition("Applications are frozen. Cannot withdraw.")
	}

	// ownership is the delete filter itself: only (actor, domain) matches
	err := s.Store.DeleteApplication(ctx, actor.ID, domainID)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("Application not found")
	}
	if err != nil {
		return errStorage("Withdraw", err)
	}

	logger.Info.Printf("Withdraw: %s withdrew from domain %s", actor.SRN, domainID)
	return nil
}

// MyApplications returns the actor's applications newest first. While
// results are unpublished, terminal statuses are masked back to applied.
// The mask is a view-time transform; the stored rows are untouched.
func (s *ApplicationService) MyApplications(ctx context.Context, actor *models.User) ([]store.StudentApplication, error) {
	if actor == nil {
		return nil, errUnauthenticated()
	}

	apps, err := s.Store.ListApplicationsByUser(ctx, actor.ID)
	if err != nil {
		return nil, errStorage("MyApplications", err)
	}
	settings, err := s.Store.GetSettings(ctx)
	if err != nil {
		return nil, errStorage("MyApplications", err)
	}

	if !settings.ResultsPublished {
		for i := range apps {
			if apps[i].Status.Terminal() {
				apps[i].Status = models.StatusApplied
			}
		}
	}
	return apps, nil
}

// ---------------- coordinator operations ----------------

// ApplicantsPage lists one page of the coordinator's own applicants,
// newest first, with the total count for pagination. Pages start at 1.
func (s *ApplicationService) ApplicantsPage(ctx context.Context, actor *models.User, page int) (*ApplicantsPage, error) {
	slug, err := coordinatorSlug(actor)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	domain, err := s.Store.GetDomainBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Domain not found")
	}
	if err != nil {
		return nil, errStorage("ApplicantsPage", err)
	}

	offset := (page - 1) * applicantsPageSize
	applicants, total, err := s.Store.ListApplicationsByDomain(ctx, domain.ID, offset, applicantsPageSize)
	if err != nil {
		return nil, errStorage("ApplicantsPage", err)
	}
	return &ApplicantsPage{
		Applicants: applicants,
		Total:      total,
		Page:       page,
		PageSize:   applicantsPageSize,
	}, nil
}

// DomainSummary returns the coordinator's domain with aggregate applicant
// stats for their dashboard.
func (s *ApplicationService) DomainSummary(ctx context.Context, actor *models.User) (*DomainSummary, error) {
	slug, err := coordinatorSlug(actor)
	if err != nil {
		return nil, err
	}

	domain, err := s.Store.GetDomainBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errNotFound("Domain not found")
	}
	if err != nil {
		return nil, errStorage("DomainSummary", err)
	}

	apps, err := s.Store.ListDomainApplications(ctx, domain.ID)
	if err != nil {
		return nil, errStorage("DomainSummary", err)
	}
	return &DomainSummary{Domain: *domain, Stats: SummarizeDomain(apps)}, nil
}

// Score records an interview score on an application in the coordinator's
// domain. Status and interview_done are left alone.
func (s *ApplicationService) Score(ctx context.Context, actor *models.User, applicationID string, score int) error {
	slug, err := coordinatorSlug(actor)
	if err != nil {
		return err
	}
	if !validate.IsValidID(applicationID) {
		return errValidation("Invalid application ID")
	}
	if !validate.ValidScore(score) {
		return errValidation("Score must be an integer between 1 and 10")
	}
	if err := s.limit(actionScore, actor.SRN, ratelimit.ScoreLimit); err != nil {
		return err
	}

	if frozen, err := s.frozen(ctx); err != nil {
		return err
	} else if frozen {
		return errPrecondition("System is frozen")
	}

	if _, err := s.ownedApplication(ctx, slug, applicationID); err != nil {
		return err
	}

	if err := s.Store.SetApplicationScore(ctx, applicationID, score); err != nil {
		return errStorage("Score", err)
	}
	logger.Info.Printf("Score: %s scored application %s: %d", actor.SRN, applicationID, score)
	return nil
}

// MarkInterviewDone flips interview_done, moves the application to
// applied, and optionally records a score in the same write.
//
// Policy: interview completion is pre-decision bookkeeping and is exempt
// from the global freeze. Freeze blocks decisions and scores, not the
// record of who has already been interviewed.
func (s *ApplicationService) MarkInterviewDone(ctx context.Context, actor *models.User, applicationID string, score *int) error {
	slug, err := coordinatorSlug(actor)
	if err != nil {
		return err
	}
	if !validate.IsValidID(applicationID) {
		return errValidation("Invalid application ID")
	}
	if score != nil && !validate.ValidScore(*score) {
		return errValidation("Score must be an integer between 1 and 10")
	}
	if err := s.limit(actionInterview, actor.SRN, ratelimit.InterviewLimit); err != nil {
		return err
	}

	if _, err := s.ownedApplication(ctx, slug, applicationID); err != nil {
		return err
	}

	if err := s.Store.MarkApplicationInterviewed(ctx, applicationID, score); err != nil {
		return errStorage("MarkInterviewDone", err)
	}
	logger.Info.Printf("MarkInterviewDone: %s marked application %s interviewed", actor.SRN, applicationID)
	return nil
}

// Decide records an accept/reject decision. The decision applies directly;
// the super-admin's lever against further changes is the global freeze.
func (s *ApplicationService) Decide(ctx context.Context, actor *models.User, applicationID string, status models.Status) error {
	slug, err := coordinatorSlug(actor)
	if err != nil {
		return err
	}
	if !validate.IsValidID(applicationID) {
		return errValidation("Invalid application ID")
	}
	if status != models.StatusAccepted && status != models.StatusRejected {
		return errValidation("Invalid status")
	}
	if err := s.limit(actionDecision, actor.SRN, ratelimit.DecisionLimit); err != nil {
		return err
	}

	if frozen, err := s.frozen(ctx); err != nil {
		return err
	} else if frozen {
		return errPrecondition("System is frozen — cannot modify")
	}

	if _, err := s.ownedApplication(ctx, slug, applicationID); err != nil {
		return err
	}

	if err := s.Store.SetApplicationStatus(ctx, applicationID, status); err != nil {
		return errStorage("Decide", err)
	}
	logger.Info.Printf("Decide: %s set application %s to %s", actor.SRN, applicationID, status)
	return nil
}

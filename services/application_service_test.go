// File: services/application_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruit-portal/models"
	"recruit-portal/store"
)

// Fixture ids. IsValidID wants canonical UUIDs.
const (
	testDomainID = "3f2b8a1c-9d4e-4f6a-b7c8-0d1e2f3a4b5c"
	testAppID    = "7a6b5c4d-3e2f-4a1b-9c8d-7e6f5a4b3c2d"
	testUserID   = "1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"
)

// allowAll is a limiter that never rejects.
type allowAll struct{}

func (allowAll) Allow(action, subject string, max int, window time.Duration) (bool, time.Duration) {
	return true, 0
}

// denyAll is a limiter that always rejects with a fixed retry-after.
type denyAll struct{ retry time.Duration }

func (d denyAll) Allow(action, subject string, max int, window time.Duration) (bool, time.Duration) {
	return false, d.retry
}

func student() *models.User {
	return &models.User{ID: testUserID, SRN: "PES1UG25CS001", Role: models.StudentRole()}
}

func techCoordinator() *models.User {
	return &models.User{ID: testUserID, SRN: "PES1UG24CS042", Role: models.ParseRole("CO_TECH")}
}

func unfrozen() *models.SystemSettings {
	return &models.SystemSettings{Frozen: false, ResultsPublished: false}
}

func frozenSettings() *models.SystemSettings {
	return &models.SystemSettings{Frozen: true, ResultsPublished: false}
}

// ---------------- Apply ----------------

func TestApplyHappyPath(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("CountApplicationsByUser", mock.Anything, testUserID).Return(2, nil)
	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetDomainByID", mock.Anything, testDomainID).Return(&models.Domain{ID: testDomainID, Slug: "tech"}, nil)
	st.On("CreateApplication", mock.Anything, testUserID, testDomainID).
		Return(&models.Application{ID: testAppID, Status: models.StatusInterviewLeft}, nil)

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.NoError(t, err)
	st.AssertExpectations(t)
}

func TestApplyRequiresAuth(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	err := svc.Apply(context.Background(), nil, testDomainID)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestApplyRejectsMalformedDomainID(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	err := svc.Apply(context.Background(), student(), "not-a-uuid")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestApplyRateLimited(t *testing.T) {
	svc := NewApplicationService(new(MockStore), denyAll{retry: 42 * time.Second})

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.Equal(t, KindRateLimited, KindOf(err))
	assert.Contains(t, err.Error(), "wait 42s")

	var se *Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, 42*time.Second, se.RetryAfter)
}

func TestApplyEnforcesCap(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("CountApplicationsByUser", mock.Anything, testUserID).Return(6, nil)

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, "Maximum 6 domain applications allowed", err.Error())
	st.AssertNotCalled(t, "CreateApplication", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyBlockedWhileFrozen(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("CountApplicationsByUser", mock.Anything, testUserID).Return(0, nil)
	st.On("GetSettings", mock.Anything).Return(frozenSettings(), nil)

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, "Applications are frozen", err.Error())
}

func TestApplyUnknownDomain(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("CountApplicationsByUser", mock.Anything, testUserID).Return(0, nil)
	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetDomainByID", mock.Anything, testDomainID).Return(nil, store.ErrNotFound)

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestApplyDuplicateIsConflict(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("CountApplicationsByUser", mock.Anything, testUserID).Return(1, nil)
	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetDomainByID", mock.Anything, testDomainID).Return(&models.Domain{ID: testDomainID}, nil)
	st.On("CreateApplication", mock.Anything, testUserID, testDomainID).Return(nil, store.ErrDuplicate)

	err := svc.Apply(context.Background(), student(), testDomainID)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Already applied to this domain", err.Error())
}

// ---------------- Withdraw ----------------

func TestWithdrawBlockedWhileFrozen(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(frozenSettings(), nil)

	err := svc.Withdraw(context.Background(), student(), testDomainID)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, "Applications are frozen. Cannot withdraw.", err.Error())
	st.AssertNotCalled(t, "DeleteApplication", mock.Anything, mock.Anything, mock.Anything)
}

func TestWithdrawMissingApplication(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("DeleteApplication", mock.Anything, testUserID, testDomainID).Return(store.ErrNotFound)

	err := svc.Withdraw(context.Background(), student(), testDomainID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestWithdrawHappyPath(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("DeleteApplication", mock.Anything, testUserID, testDomainID).Return(nil)

	assert.NoError(t, svc.Withdraw(context.Background(), student(), testDomainID))
	st.AssertExpectations(t)
}

// ---------------- MyApplications masking ----------------

func TestMyApplicationsMasksTerminalStatusesUntilPublished(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	apps := []store.StudentApplication{
		{Application: models.Application{ID: "a", Status: models.StatusAccepted}},
		{Application: models.Application{ID: "b", Status: models.StatusRejected}},
		{Application: models.Application{ID: "c", Status: models.StatusInterviewLeft}},
		{Application: models.Application{ID: "d", Status: models.StatusApplied}},
	}
	st.On("ListApplicationsByUser", mock.Anything, testUserID).Return(apps, nil)
	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)

	got, err := svc.MyApplications(context.Background(), student())
	assert.NoError(t, err)
	assert.Equal(t, models.StatusApplied, got[0].Status)
	assert.Equal(t, models.StatusApplied, got[1].Status)
	assert.Equal(t, models.StatusInterviewLeft, got[2].Status)
	assert.Equal(t, models.StatusApplied, got[3].Status)
}

func TestMyApplicationsShowsRealStatusesOncePublished(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	apps := []store.StudentApplication{
		{Application: models.Application{ID: "a", Status: models.StatusAccepted}},
		{Application: models.Application{ID: "b", Status: models.StatusRejected}},
	}
	st.On("ListApplicationsByUser", mock.Anything, testUserID).Return(apps, nil)
	st.On("GetSettings", mock.Anything).
		Return(&models.SystemSettings{Frozen: true, ResultsPublished: true}, nil)

	got, err := svc.MyApplications(context.Background(), student())
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got[0].Status)
	assert.Equal(t, models.StatusRejected, got[1].Status)
}

// ---------------- coordinator ownership ----------------

func ownedRecord(slug string) *store.ApplicationRecord {
	return &store.ApplicationRecord{
		Application: models.Application{ID: testAppID, Status: models.StatusInterviewLeft},
		DomainSlug:  slug,
	}
}

func TestScoreRejectsNonCoordinator(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	err := svc.Score(context.Background(), student(), testAppID, 7)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestScoreRejectsCrossDomainApplication(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(ownedRecord("design"), nil)

	err := svc.Score(context.Background(), techCoordinator(), testAppID, 7)
	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.Equal(t, "Cannot act on applications from other domains", err.Error())
	st.AssertNotCalled(t, "SetApplicationScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestScoreMissingApplicationIsNotFound(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(nil, store.ErrNotFound)

	err := svc.Score(context.Background(), techCoordinator(), testAppID, 7)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestScoreValidatesRange(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	for _, bad := range []int{0, -1, 11} {
		err := svc.Score(context.Background(), techCoordinator(), testAppID, bad)
		assert.Equal(t, KindValidation, KindOf(err), "score %d", bad)
	}
}

func TestScoreBlockedWhileFrozen(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(frozenSettings(), nil)

	err := svc.Score(context.Background(), techCoordinator(), testAppID, 7)
	assert.Equal(t, KindPrecondition, KindOf(err))
	assert.Equal(t, "System is frozen", err.Error())
}

func TestScoreHappyPath(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(ownedRecord("tech"), nil)
	st.On("SetApplicationScore", mock.Anything, testAppID, 8).Return(nil)

	assert.NoError(t, svc.Score(context.Background(), techCoordinator(), testAppID, 8))
	st.AssertExpectations(t)
}

// ---------------- interview completion ----------------

func TestMarkInterviewDoneWorksWhileFrozen(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	// no GetSettings expectation: interview bookkeeping ignores the freeze
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(ownedRecord("tech"), nil)
	st.On("MarkApplicationInterviewed", mock.Anything, testAppID, (*int)(nil)).Return(nil)

	assert.NoError(t, svc.MarkInterviewDone(context.Background(), techCoordinator(), testAppID, nil))
	st.AssertNotCalled(t, "GetSettings", mock.Anything)
}

func TestMarkInterviewDoneWithScore(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	score := 9
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(ownedRecord("tech"), nil)
	st.On("MarkApplicationInterviewed", mock.Anything, testAppID, &score).Return(nil)

	assert.NoError(t, svc.MarkInterviewDone(context.Background(), techCoordinator(), testAppID, &score))
	st.AssertExpectations(t)
}

func TestMarkInterviewDoneValidatesOptionalScore(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	bad := 11
	err := svc.MarkInterviewDone(context.Background(), techCoordinator(), testAppID, &bad)
	assert.Equal(t, KindValidation, KindOf(err))
}

// ---------------- decisions ----------------

func TestDecideValidatesStatus(t *testing.T) {
	svc := NewApplicationService(new(MockStore), allowAll{})
	for _, bad := range []models.Status{models.StatusApplied, models.StatusInterviewLeft, "banana"} {
		err := svc.Decide(context.Background(), techCoordinator(), testAppID, bad)
		assert.Equal(t, KindValidation, KindOf(err), "status %s", bad)
	}
}

func TestDecideBlockedWhileFrozen(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(frozenSettings(), nil)

	err := svc.Decide(context.Background(), techCoordinator(), testAppID, models.StatusAccepted)
	assert.Equal(t, KindPrecondition, KindOf(err))
}

func TestDecideHappyPath(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetSettings", mock.Anything).Return(unfrozen(), nil)
	st.On("GetApplicationByID", mock.Anything, testAppID).Return(ownedRecord("tech"), nil)
	st.On("SetApplicationStatus", mock.Anything, testAppID, models.StatusAccepted).Return(nil)

	assert.NoError(t, svc.Decide(context.Background(), techCoordinator(), testAppID, models.StatusAccepted))
	st.AssertExpectations(t)
}

// ---------------- coordinator reads ----------------

func TestApplicantsPageClampsPage(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetDomainBySlug", mock.Anything, "tech").Return(&models.Domain{ID: testDomainID, Slug: "tech"}, nil)
	st.On("ListApplicationsByDomain", mock.Anything, testDomainID, 0, 50).
		Return([]store.DomainApplicant{}, 120, nil)

	page, err := svc.ApplicantsPage(context.Background(), techCoordinator(), 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 120, page.Total)
	assert.Equal(t, 50, page.PageSize)
}

func TestApplicantsPageOffsets(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	st.On("GetDomainBySlug", mock.Anything, "tech").Return(&models.Domain{ID: testDomainID, Slug: "tech"}, nil)
	st.On("ListApplicationsByDomain", mock.Anything, testDomainID, 100, 50).
		Return([]store.DomainApplicant{}, 120, nil)

	_, err := svc.ApplicantsPage(context.Background(), techCoordinator(), 3)
	assert.NoError(t, err)
	st.AssertExpectations(t)
}

func TestDomainSummaryAggregates(t *testing.T) {
	st := new(MockStore)
	svc := NewApplicationService(st, allowAll{})

	apps := []models.Application{
		{Status: models.StatusAccepted, InterviewDone: true},
		{Status: models.StatusRejected, InterviewDone: true},
		{Status: models.StatusInterviewLeft},
	}
	st.On("GetDomainBySlug", mock.Anything, "tech").Return(&models.Domain{ID: testDomainID, Slug: "tech"}, nil)
	st.On("ListDomainApplications", mock.Anything, testDomainID).Return(apps, nil)

	summary, err := svc.DomainSummary(context.Background(), techCoordinator())
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.Stats.Accepted)
	assert.Equal(t, 1, summary.Stats.Rejected)
	assert.Equal(t, 2, summary.Stats.Interviewed)
}

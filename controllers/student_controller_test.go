// controllers/student_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruit-portal/middleware"
	"recruit-portal/models"
	"recruit-portal/services"
	"recruit-portal/store"
)

const (
	testSRN      = "PES1UG25CS001"
	testDomainID = "3f2b8a1c-9d4e-4f6a-b7c8-0d1e2f3a4b5c"
	testAppID    = "7a6b5c4d-3e2f-4a1b-9c8d-7e6f5a4b3c2d"
)

func testStudent() *models.User {
	return &models.User{ID: "u1", SRN: testSRN, Role: models.StudentRole()}
}

func newStudentRouter(apps *services.MockApplicationService, identity *services.MockIdentityService) *gin.Engine {
	router := setupTestRouter()
	sc := NewStudentController(apps, identity)
	router.GET("/api/domains", sc.ListDomains)
	router.GET("/api/settings", sc.Settings)
	router.POST("/api/applications", sc.Apply)
	router.DELETE("/api/applications/:domainID", sc.Withdraw)
	router.GET("/api/applications", sc.MyApplications)
	return router
}

func TestListDomainsPublic(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	apps.On("Domains", mock.Anything).Return([]models.Domain{{ID: testDomainID, Name: "Tech", Slug: "tech"}}, nil)

	req, _ := http.NewRequest("GET", "/api/domains", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"tech"`)
}

func TestApplySuccess(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)
	apps.On("Apply", mock.Anything, mock.Anything, testDomainID).Return(nil)

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	body, _ := json.Marshal(map[string]string{"domain_id": testDomainID})
	req, _ := http.NewRequest("POST", "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestApplyWithoutSessionIs401(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, "").
		Return(nil, &services.Error{Kind: services.KindUnauthenticated, Message: "Not authenticated"})

	body, _ := json.Marshal(map[string]string{"domain_id": testDomainID})
	req, _ := http.NewRequest("POST", "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplyMalformedBody(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	req, _ := http.NewRequest("POST", "/api/applications", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	apps.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyDuplicateIs409(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)
	apps.On("Apply", mock.Anything, mock.Anything, testDomainID).
		Return(&services.Error{Kind: services.KindConflict, Message: "Already applied to this domain"})

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	body, _ := json.Marshal(map[string]string{"domain_id": testDomainID})
	req, _ := http.NewRequest("POST", "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Already applied to this domain")
}

func TestApplyRateLimitedSetsRetryAfter(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)
	apps.On("Apply", mock.Anything, mock.Anything, testDomainID).
		Return(&services.Error{
			Kind:       services.KindRateLimited,
			Message:    "Too many requests. Please wait 30s before trying again.",
			RetryAfter: 30 * time.Second,
		})

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	body, _ := json.Marshal(map[string]string{"domain_id": testDomainID})
	req, _ := http.NewRequest("POST", "/api/applications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestWithdraw(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)
	apps.On("Withdraw", mock.Anything, mock.Anything, testDomainID).Return(nil)

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	req, _ := http.NewRequest("DELETE", "/api/applications/"+testDomainID, nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	apps.AssertExpectations(t)
}

func TestMyApplications(t *testing.T) {
	apps := new(services.MockApplicationService)
	identity := new(services.MockIdentityService)
	router := newStudentRouter(apps, identity)

	identity.On("Resolve", mock.Anything, testSRN).Return(testStudent(), nil)
	apps.On("MyApplications", mock.Anything, mock.Anything).Return([]store.StudentApplication{
		{Application: models.Application{ID: testAppID, Status: models.StatusApplied}},
	}, nil)

	cookie := SetSession(router, "/set-session", map[string]interface{}{
		middleware.SessionSRN: testSRN,
	})

	req, _ := http.NewRequest("GET", "/api/applications", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"applied"`)
}

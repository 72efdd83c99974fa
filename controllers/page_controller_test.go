// controllers/page_controller_test.go
//go:build unit
// +build unit

package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruit-portal/services"
)

func TestHealthOK(t *testing.T) {
	st := new(services.MockStore)
	st.On("Ping", mock.Anything).Return(nil)

	router := setupTestRouter()
	pc := NewPageController(st)
	router.GET("/health", pc.Health)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHealthReportsDBFailure(t *testing.T) {
	st := new(services.MockStore)
	st.On("Ping", mock.Anything).Return(errors.New("dial tcp: refused"))

	router := setupTestRouter()
	pc := NewPageController(st)
	router.GET("/health", pc.Health)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoot(t *testing.T) {
	router := setupTestRouter()
	pc := NewPageController(nil)
	router.GET("/", pc.Root)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recruit-portal")
}

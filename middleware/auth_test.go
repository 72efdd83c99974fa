// file: middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newSessionRouter wires a minimal engine with cookie sessions and a
// helper route to seed session values.
func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	return router
}

func seedSession(router *gin.Engine, data map[string]interface{}) *http.Cookie {
	router.GET("/seed", func(c *gin.Context) {
		session := sessions.Default(c)
		for k, v := range data {
			session.Set(k, v)
		}
		_ = session.Save()
		c.String(http.StatusOK, "ok")
	})
	req, _ := http.NewRequest("GET", "/seed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "testsession" {
			return ck
		}
	}
	return nil
}

func TestAuthRequiredRedirectsAnonymous(t *testing.T) {
	router := newSessionRouter()
	router.GET("/api/applications", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/api/applications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?returnUrl=%2Fapi%2Fapplications", w.Header().Get("Location"))
}

func TestAuthRequiredPassesLoggedIn(t *testing.T) {
	router := newSessionRouter()
	router.GET("/api/applications", AuthRequired, func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+SessionSRNValue(c))
	})

	ck := seedSession(router, map[string]interface{}{SessionSRN: "PES1UG25CS001"})

	req, _ := http.NewRequest("GET", "/api/applications", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello PES1UG25CS001", w.Body.String())
}

func TestSessionSRNValueEmptyWithoutSession(t *testing.T) {
	router := newSessionRouter()
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, "["+SessionSRNValue(c)+"]")
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "[]", w.Body.String())
}

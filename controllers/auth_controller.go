// Package controllers handles user authentication and session management.
// File: controllers/auth_controller.go
package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"recruit-portal/logger"
	"recruit-portal/middleware"
	"recruit-portal/models"
	"recruit-portal/observability"
	"recruit-portal/services"

	"golang.org/x/oauth2"
)

// Transient session keys used between /auth/login and /auth/callback.
const (
	sessionOAuthState    = "oauth_state"
	sessionOAuthVerifier = "oauth_verifier"
)

// defaultLanding is where a login without a return path ends up.
const defaultLanding = "/domains"

// AuthController runs the OAuth2 + PKCE login flow against the campus
// identity provider.
type AuthController struct {
	Identity services.IdentityServiceInterface
	Provider services.OAuthProvider
}

// NewAuthController initializes a new instance of AuthController.
func NewAuthController(identity services.IdentityServiceInterface, provider services.OAuthProvider) *AuthController {
	return &AuthController{Identity: identity, Provider: provider}
}

// randomState draws an unguessable nonce for the state parameter.
func randomState(length int) string {
	const possible = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(possible))))
		if err != nil {
			panic(err) // crypto/rand failing means nothing here is trustworthy
		}
		b[i] = possible[n.Int64()]
	}
	return string(b)
}

// encodeState packs the nonce and the base64 of the return path so the
// path round-trips exactly through the provider.
func encodeState(nonce, returnURL string) string {
	return nonce + "|" + base64.RawURLEncoding.EncodeToString([]byte(returnURL))
}

// returnPathFromState recovers the return path, falling back to the
// default landing page on anything malformed.
func returnPathFromState(state string) string {
	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		return defaultLanding
	}
	decoded, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return defaultLanding
	}
	path := string(decoded)
	// only same-site paths: anything absolute would be an open redirect
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return defaultLanding
	}
	return path
}

// ------------------ login flow ------------------

// Login starts the flow: generates the PKCE verifier and anti-CSRF state,
// parks both in the session, and redirects to the provider's /authorize.
func (ac *AuthController) Login(c *gin.Context) {
	session := sessions.Default(c)

	returnURL := c.Query("returnUrl")
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") {
		returnURL = defaultLanding
	}

	verifier := oauth2.GenerateVerifier()
	state := encodeState(randomState(32), returnURL)

	session.Set(sessionOAuthState, state)
	session.Set(sessionOAuthVerifier, verifier)
	if err := session.Save(); err != nil {
		logger.Error.Println("Login: failed to save session:", err)
		c.Redirect(http.StatusFound, "/?error=oauth_init_failed")
		return
	}

	c.Redirect(http.StatusFound, ac.Provider.AuthCodeURL(state, verifier))
}

// Callback finishes the flow: validates state, exchanges the code with the
// PKCE verifier, fetches the profile, upserts the user and issues the
// session claim.
func (ac *AuthController) Callback(c *gin.Context) {
	session := sessions.Default(c)

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn.Printf("Callback: provider returned error %q", errParam)
		c.Redirect(http.StatusFound, "/?error="+errParam)
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.Redirect(http.StatusFound, "/?error=missing_params")
		return
	}

	verifier, _ := session.Get(sessionOAuthVerifier).(string)
	storedState, _ := session.Get(sessionOAuthState).(string)
	if verifier == "" {
		c.Redirect(http.StatusFound, "/?error=session_expired")
		return
	}
	if storedState == "" || state != storedState {
		logger.Warn.Println("Callback: state mismatch, rejecting")
		c.Redirect(http.StatusFound, "/?error=state_mismatch")
		return
	}

	token, err := ac.Provider.Exchange(c.Request.Context(), code, verifier)
	if err != nil {
		logger.Error.Println("Callback: token exchange failed:", err)
		observability.CaptureErr(err)
		c.Redirect(http.StatusFound, "/?error=token_failed")
		return
	}

	profile, err := ac.Provider.FetchProfile(c.Request.Context(), token)
	if err != nil {
		logger.Error.Println("Callback: profile fetch failed:", err)
		observability.CaptureErr(err)
		c.Redirect(http.StatusFound, "/?error=profile_failed")
		return
	}

	user, err := ac.Identity.CompleteLogin(c.Request.Context(), profile)
	if err != nil {
		logger.Error.Println("Callback: login completion failed:", err)
		c.Redirect(http.StatusFound, "/?error=callback_failed")
		return
	}

	// one-time values are done; replace them with the session claim
	session.Delete(sessionOAuthState)
	session.Delete(sessionOAuthVerifier)
	session.Set(middleware.SessionSRN, user.SRN)
	session.Set(middleware.SessionName, user.Name)
	session.Set(middleware.SessionEmail, user.Email)
	session.Set(middleware.SessionRole, user.Role.String())
	if err := session.Save(); err != nil {
		logger.Error.Println("Callback: failed to save session:", err)
		c.Redirect(http.StatusFound, "/?error=callback_failed")
		return
	}

	c.Redirect(http.StatusFound, landingFor(user.Role, state))
}

// landingFor picks the post-login destination: admins and coordinators go
// to their dashboards, students back to where they started.
func landingFor(role models.Role, state string) string {
	switch {
	case role.IsSuperAdmin():
		return "/admin/overview"
	case role.IsCoordinator():
		return "/co"
	default:
		return returnPathFromState(state)
	}
}

// Logout clears the whole session and returns to the landing page.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	if srn := session.Get(middleware.SessionSRN); srn != nil {
		logger.Info.Printf("Logout: logging out %v", srn)
	}

	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session during logout: %v", err)
	}

	c.Redirect(http.StatusFound, "/")
}

// File: services/oauth.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// OAuthProvider abstracts the external identity provider so the auth
// controller can be tested against a fake.
type OAuthProvider interface {
	// AuthCodeURL builds the /authorize redirect carrying the anti-CSRF
	// state and the S256 challenge for verifier.
	AuthCodeURL(state, verifier string) string
	// Exchange trades an authorization code (plus the PKCE verifier) for a
	// token.
	Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error)
	// FetchProfile loads the logged-in student's profile with the token.
	FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error)
}

// CampusOAuth talks to the college's OAuth2 + PKCE provider.
type CampusOAuth struct {
	Config     oauth2.Config
	ProfileURL string
}

// NewCampusOAuth wires the provider endpoints from its base URL.
func NewCampusOAuth(baseURL, clientID, clientSecret, redirectURL string) *CampusOAuth {
	return &CampusOAuth{
		Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile:basic", "profile:academic", "profile:contact"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  baseURL + "/oauth2/authorize",
				TokenURL: baseURL + "/oauth2/token",
			},
		},
		ProfileURL: baseURL + "/api/v1/user",
	}
}

// AuthCodeURL implements OAuthProvider.
func (o *CampusOAuth) AuthCodeURL(state, verifier string) string {
	return o.Config.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange implements OAuthProvider.
func (o *CampusOAuth) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	return o.Config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
}

// FetchProfile implements OAuthProvider.
func (o *CampusOAuth) FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	client := o.Config.Client(ctx, token)
	resp, err := client.Get(o.ProfileURL)
	if err != nil {
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetch profile: status %d", resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

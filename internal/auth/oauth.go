// Package auth wraps golang.org/x/oauth2 for the authorization-code
// login flow. The identity provider is configured by URL, so any
// provider exposing a token endpoint and a JSON userinfo endpoint works
// without code changes.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Profile is the slice of the provider's userinfo response the
// application consumes. Subject becomes the user's primary key, so it
// must be the provider's stable identifier.
type Profile struct {
	Subject     string `json:"sub"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	AvatarURL   string `json:"picture"`
}

// Provider holds the OAuth client configuration plus the userinfo URL.
type Provider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewProvider builds a Provider from explicit endpoint URLs. Returns
// nil when no client ID is configured; callers treat a nil provider as
// "OAuth login disabled".
func NewProvider(clientID, clientSecret, authURL, tokenURL, userInfoURL, redirectURL string) *Provider {
	if clientID == "" {
		return nil
	}
	return &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL},
		},
		userInfoURL: userInfoURL,
	}
}

// AuthURL returns the provider URL to redirect the user to. The state
// value must be verified on callback by the caller.
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for a token and fetches the
// user's profile. The code-for-token exchange is server-to-server using
// the client secret; the provider token never reaches the browser.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging code: %w", err)
	}

	// oauth2.Config.Client returns an http.Client that attaches the
	// bearer token to every request.
	client := p.config.Client(ctx, tok)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: userinfo returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("auth: decoding userinfo: %w", err)
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("auth: userinfo missing subject")
	}
	return &profile, nil
}

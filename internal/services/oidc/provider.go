package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Settings holds the OIDC provider configuration supplied at startup.
type Settings struct {
	Issuer       string
	JWKSURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// JWKSEndpoint returns the configured JWKS URL, falling back to the
// conventional discovery path under the issuer.
func (s Settings) JWKSEndpoint() string {
	if s.JWKSURL != "" {
		return s.JWKSURL
	}
	return strings.TrimSuffix(s.Issuer, "/") + "/.well-known/jwks.json"
}

// Provider exposes OIDC provider configuration to the login flow.
type Provider struct {
	settings Settings
}

// NewProvider creates a new OIDC provider manager.
func NewProvider(settings Settings) *Provider {
	return &Provider{settings: settings}
}

// Settings returns the provider's configured settings.
func (p *Provider) Settings() Settings {
	return p.settings
}

// GetLoginConfig returns the configuration needed for frontend OIDC login.
func (p *Provider) GetLoginConfig(ctx context.Context) (*LoginConfig, error) {
	issuer := strings.TrimSuffix(p.settings.Issuer, "/")

	// Try to fetch the real endpoints from the OIDC discovery document.
	// Fall back to constructing them from the issuer if discovery fails.
	var authEndpoint, tokenEndpoint string
	discoveryURL := issuer + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build discovery request: %w", err)
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err == nil {
		if resp.StatusCode == http.StatusOK {
			var discovery struct {
				AuthorizationEndpoint string `json:"authorization_endpoint"`
				TokenEndpoint         string `json:"token_endpoint"`
			}
			if decodeErr := json.NewDecoder(resp.Body).Decode(&discovery); decodeErr == nil {
				authEndpoint = discovery.AuthorizationEndpoint
				tokenEndpoint = discovery.TokenEndpoint
			}
		}
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Body already consumed; nothing actionable.
			_ = closeErr
		}
	}

	if authEndpoint == "" {
		authEndpoint = issuer + "/oauth2/authorize"
	}
	if tokenEndpoint == "" {
		tokenEndpoint = issuer + "/oauth2/token"
	}

	return &LoginConfig{
		AuthorizationEndpoint: authEndpoint,
		TokenEndpoint:         tokenEndpoint,
		ClientID:              p.settings.ClientID,
		RedirectURI:           p.settings.RedirectURI,
		Scope:                 "openid email profile",
	}, nil
}

// LoginConfig contains OIDC login configuration for frontend
type LoginConfig struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	ClientID              string `json:"client_id"`
	RedirectURI           string `json:"redirect_uri"`
	Scope                 string `json:"scope"`
}

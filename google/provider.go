package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DiscoveryURL is an exported constant or variable used by the account engine.
const DiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

// DefaultScopes is an exported constant or variable used by the account engine.
var DefaultScopes = []string{"openid", "email", "profile"}

// ErrEndpointDiscovery is an exported constant or variable used by the account engine.
var ErrEndpointDiscovery = errors.New("google endpoint discovery failed")

// Profile defines a public type used by goAccounts APIs.
//
// Profile instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Profile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// Config defines a public type used by goAccounts APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// DiscoveryURL overrides the provider discovery document location.
	// Empty means [DiscoveryURL]. Tests point it at a local server.
	DiscoveryURL string

	// HTTPClient carries the client used for discovery, token exchange, and
	// userinfo calls. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Provider defines a public type used by goAccounts APIs.
//
// Provider resolves its authorization, token, and userinfo endpoints lazily
// from the discovery document and caches them for the process lifetime.
type Provider struct {
	config Config

	mu        sync.Mutex
	endpoints *discoveryDocument
}

type discoveryDocument struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
}

// NewProvider describes the newprovider operation and its observable behavior.
//
// NewProvider may return an error when input validation, dependency calls, or security checks fail.
// NewProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("google client id and secret are required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("google redirect url is required")
	}
	if cfg.DiscoveryURL == "" {
		cfg.DiscoveryURL = DiscoveryURL
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Provider{config: cfg}, nil
}

// AuthURL describes the authurl operation and its observable behavior.
//
// AuthURL builds the consent-screen redirect URL for state. The state value is
// opaque to this package; callers bind it to the browser session and check it
// on callback.
func (p *Provider) AuthURL(ctx context.Context, state string) (string, error) {
	cfg, err := p.oauthConfig(ctx)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange describes the exchange operation and its observable behavior.
//
// Exchange trades the callback authorization code for tokens and fetches the
// authenticated subject's profile from the userinfo endpoint.
func (p *Provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	cfg, err := p.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.config.HTTPClient)
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return p.fetchProfile(ctx, cfg, tok)
}

func (p *Provider) fetchProfile(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) (*Profile, error) {
	endpoints, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := cfg.Client(ctx, tok).Get(endpoints.UserinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	if profile.Sub == "" {
		return nil, errors.New("userinfo response missing subject")
	}
	return &profile, nil
}

func (p *Provider) oauthConfig(ctx context.Context) (*oauth2.Config, error) {
	endpoints, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		RedirectURL:  p.config.RedirectURL,
		Scopes:       p.config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  endpoints.AuthorizationEndpoint,
			TokenURL: endpoints.TokenEndpoint,
		},
	}, nil
}

func (p *Provider) discover(ctx context.Context) (*discoveryDocument, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.endpoints != nil {
		return p.endpoints, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.DiscoveryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndpointDiscovery, err)
	}

	resp, err := p.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndpointDiscovery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrEndpointDiscovery, resp.StatusCode)
	}

	var doc discoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndpointDiscovery, err)
	}
	if doc.AuthorizationEndpoint == "" || doc.TokenEndpoint == "" || doc.UserinfoEndpoint == "" {
		return nil, fmt.Errorf("%w: incomplete discovery document", ErrEndpointDiscovery)
	}

	p.endpoints = &doc
	return p.endpoints, nil
}

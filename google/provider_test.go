package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFakeGoogle(t *testing.T, profile Profile) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"authorization_endpoint": srv.URL + "/auth",
			"token_endpoint":         srv.URL + "/token",
			"userinfo_endpoint":      srv.URL + "/userinfo",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostFormValue("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(profile)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, srv *httptest.Server) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/callback",
		DiscoveryURL: srv.URL + "/.well-known/openid-configuration",
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestAuthURLUsesDiscoveredEndpoint(t *testing.T) {
	srv := newFakeGoogle(t, Profile{Sub: "sub-1"})
	p := newTestProvider(t, srv)

	url, err := p.AuthURL(context.Background(), "state-abc")
	if err != nil {
		t.Fatalf("AuthURL: %v", err)
	}
	if !strings.HasPrefix(url, srv.URL+"/auth") {
		t.Fatalf("auth url = %q, want prefix %q", url, srv.URL+"/auth")
	}
	if !strings.Contains(url, "state=state-abc") {
		t.Fatalf("auth url missing state: %q", url)
	}
}

func TestExchangeReturnsProfile(t *testing.T) {
	want := Profile{
		Sub:           "11223344",
		Email:         "person@example.com",
		EmailVerified: true,
		GivenName:     "Pat",
		FamilyName:    "Doe",
	}
	srv := newFakeGoogle(t, want)
	p := newTestProvider(t, srv)

	got, err := p.Exchange(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if *got != want {
		t.Fatalf("profile = %+v, want %+v", *got, want)
	}
}

func TestExchangeBadCode(t *testing.T) {
	srv := newFakeGoogle(t, Profile{Sub: "sub-1"})
	p := newTestProvider(t, srv)

	if _, err := p.Exchange(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for rejected code")
	}
}

func TestExchangeMissingSubject(t *testing.T) {
	srv := newFakeGoogle(t, Profile{Email: "person@example.com", EmailVerified: true})
	p := newTestProvider(t, srv)

	if _, err := p.Exchange(context.Background(), "good-code"); err == nil {
		t.Fatal("expected error for userinfo response without subject")
	}
}

func TestDiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider(Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/callback",
		DiscoveryURL: srv.URL + "/.well-known/openid-configuration",
		HTTPClient:   srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if _, err := p.AuthURL(context.Background(), "state"); !errors.Is(err, ErrEndpointDiscovery) {
		t.Fatalf("expected ErrEndpointDiscovery, got %v", err)
	}
}

func TestNewProviderValidation(t *testing.T) {
	if _, err := NewProvider(Config{ClientSecret: "s", RedirectURL: "r"}); err == nil {
		t.Fatal("expected error for missing client id")
	}
	if _, err := NewProvider(Config{ClientID: "c", ClientSecret: "s"}); err == nil {
		t.Fatal("expected error for missing redirect url")
	}
}

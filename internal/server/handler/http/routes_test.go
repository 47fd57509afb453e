package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/passgen/internal/fingerprint"
	"github.com/atinyakov/passgen/internal/generator"
	"github.com/atinyakov/passgen/internal/models"
	"github.com/atinyakov/passgen/internal/repository"
	"github.com/atinyakov/passgen/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := service.NewFingerprintStore(
		repository.NewMemoryFingerprintRepository(),
		fingerprint.NewHasher("test", 1),
	)
	gen := generator.New(store, generator.WithTimeout(50*time.Millisecond))
	svc := service.NewPasswordService(gen, store)

	router := NewRouter(
		&PasswordHandler{PasswordService: svc},
		&PingHandler{Version: "test"},
		zap.NewNop(),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_Ping(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/ping")
	if err != nil {
		t.Fatalf("GET /api/ping: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if _, ok := payload["version"]; !ok {
		t.Errorf("response lacks version: %v", payload)
	}
}

func TestRouter_GenerateAndStats(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/generate", `{"length":3,"digits":true,"lowercase":true,"uppercase":true,"count":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var payload models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(payload.Passwords) != 5 {
		t.Fatalf("got %d passwords; want 5", len(payload.Passwords))
	}
	for _, pw := range payload.Passwords {
		for _, re := range []string{`^.{3}$`, `[0-9]`, `[a-z]`, `[A-Z]`} {
			if !regexp.MustCompile(re).MatchString(pw) {
				t.Errorf("password %q does not match %s", pw, re)
			}
		}
	}

	stats, err := http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer stats.Body.Close()
	var counted models.StatsResponse
	if err := json.NewDecoder(stats.Body).Decode(&counted); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if counted.Issued != 5 {
		t.Errorf("issued = %d; want 5", counted.Issued)
	}
}

func TestRouter_StatusCodes(t *testing.T) {
	srv := newTestServer(t)

	if resp := postJSON(t, srv.URL+"/api/generate", `{"length":11,"digits":true}`); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("too long: expected status 422, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/generate", `{"length":2,"digits":true,"lowercase":true,"uppercase":true}`); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("too many classes: expected status 422, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/generate", `{"length":1,"digits":true,"count":10}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("exhaust digits: expected status 200, got %d", resp.StatusCode)
	}
	if resp := postJSON(t, srv.URL+"/api/generate", `{"length":1,"digits":true}`); resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("exhausted: expected status 503, got %d", resp.StatusCode)
	}

	resp, err := http.Post(srv.URL+"/api/generate", "text/plain", bytes.NewBufferString(`{"length":4}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("text/plain: expected status 415, got %d", resp.StatusCode)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/passgen/internal/generator"
	"github.com/atinyakov/passgen/internal/models"
	"github.com/atinyakov/passgen/internal/service"
)

// fakePasswordService implements PasswordService for testing.
type fakePasswordService struct {
	resp     models.GenerateResponse
	err      error
	stats    models.StatsResponse
	statsErr error
	got      models.GenerateRequest
}

func (f *fakePasswordService) Generate(_ context.Context, req models.GenerateRequest) (models.GenerateResponse, error) {
	f.got = req
	return f.resp, f.err
}

func (f *fakePasswordService) Issued(context.Context) (models.StatsResponse, error) {
	return f.stats, f.statsErr
}

func TestPasswordHandler_Generate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakePasswordService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakePasswordService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "invalid count",
			body:           `{"length":4,"digits":true,"count":1000}`,
			service:        &fakePasswordService{err: service.ErrInvalidCount},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "count must be between",
		},
		{
			name: "alphabet too small",
			body: `{"length":11,"digits":true}`,
			service: &fakePasswordService{err: &generator.GenerationError{
				Err: generator.ErrInsufficientAlphabet, Length: 11, Available: 10,
			}},
			expectedCode:   http.StatusUnprocessableEntity,
			expectedSubstr: "password length (11) too big for available characters variations (10)",
		},
		{
			name:           "uniqueness timeout",
			body:           `{"length":1,"digits":true}`,
			service:        &fakePasswordService{err: &generator.GenerationError{Err: generator.ErrUniquenessTimeout}},
			expectedCode:   http.StatusServiceUnavailable,
			expectedSubstr: "timeout while trying to generate a unique password",
		},
		{
			name:           "store failure",
			body:           `{"length":4,"digits":true}`,
			service:        &fakePasswordService{err: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "internal error",
		},
		{
			name:           "success",
			body:           `{"length":4,"digits":true,"uppercase":true}`,
			service:        &fakePasswordService{resp: models.GenerateResponse{Passwords: []string{"1A2B"}}},
			expectedCode:   http.StatusOK,
			expectedSubstr: `{"passwords":["1A2B"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/generate", bytes.NewBufferString(tt.body))
			h := &PasswordHandler{PasswordService: tt.service}
			h.Generate(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestPasswordHandler_GenerateDecodesFlags(t *testing.T) {
	svc := &fakePasswordService{}
	h := &PasswordHandler{PasswordService: svc}

	body := `{"length":9,"digits":true,"lowercase":true,"uppercase":false,"count":2}`
	h.Generate(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/generate", bytes.NewBufferString(body)))

	want := models.GenerateRequest{Length: 9, Digits: true, LowerCase: true, Count: 2}
	if svc.got != want {
		t.Errorf("service received %+v; want %+v", svc.got, want)
	}
}

func TestPasswordHandler_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h := &PasswordHandler{PasswordService: &fakePasswordService{stats: models.StatsResponse{Issued: 7}}}
		h.Stats(rec, httptest.NewRequest("GET", "/api/stats", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var payload models.StatsResponse
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode JSON: %v", err)
		}
		if payload.Issued != 7 {
			t.Errorf("issued = %d; want 7", payload.Issued)
		}
	})

	t.Run("error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h := &PasswordHandler{PasswordService: &fakePasswordService{statsErr: errors.New("db down")}}
		h.Stats(rec, httptest.NewRequest("GET", "/api/stats", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rec.Code)
		}
	})
}

func TestPingHandler(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"v1.2.3", "v1.2.3"},
		{"", "N/A"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h := &PingHandler{Version: tt.version}
		h.Ping(rec, httptest.NewRequest("GET", "/api/ping", nil))

		var payload map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode JSON: %v", err)
		}
		if payload["version"] != tt.want {
			t.Errorf("version = %q; want %q", payload["version"], tt.want)
		}
	}
}

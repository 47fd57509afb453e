// Package client talks to a passgen server.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/passgen/internal/models"
)

const (
	apiGenerate = "/api/generate"
	apiPing     = "/api/ping"
)

// Client issues requests against one server.
type Client struct {
	http    *http.Client
	baseURL string
}

// New returns a Client for baseURL using httpClient.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewHTTPClient returns an http.Client that trusts the CA in caFile, or the
// system roots when caFile is empty.
func NewHTTPClient(caFile string) (*http.Client, error) {
	if caFile == "" {
		return &http.Client{Timeout: time.Minute}, nil
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    caPool,
			MinVersion: tls.VersionTLS12,
		},
	}
	return &http.Client{Transport: transport, Timeout: time.Minute}, nil
}

// Generate asks the server for passwords.
func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) ([]string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiGenerate, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var resp models.GenerateResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, fmt.Errorf("generate failed: %w", err)
	}
	return resp.Passwords, nil
}

// Ping returns the server's build version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPing, nil)
	if err != nil {
		return "", err
	}

	var resp map[string]string
	if err := c.do(httpReq, &resp); err != nil {
		return "", fmt.Errorf("ping failed: %w", err)
	}
	return resp["version"], nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

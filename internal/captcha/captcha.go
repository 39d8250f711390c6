package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier reports whether a challenge token came from a human. Any transport
// or decoding failure counts as not verified, never as verified.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// HCaptcha verifies tokens against the hCaptcha siteverify endpoint.
type HCaptcha struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewHCaptcha(secret, verifyURL string) *HCaptcha {
	return &HCaptcha{
		secret:    secret,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (h *HCaptcha) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", h.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	return body.Success, nil
}

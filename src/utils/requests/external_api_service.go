package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"famwealth/src/utils"

	"github.com/sethvargo/go-retry"
)

// ExternalAPIService performs JSON and form requests against broker APIs.
type ExternalAPIService struct {
	client     *http.Client
	maxRetries uint64
	backoff    time.Duration
}

// NewExternalAPIService creates a service with a 30 second client timeout.
// Idempotent GETs are retried on network errors and 5xx responses.
func NewExternalAPIService() *ExternalAPIService {
	return &ExternalAPIService{
		client:     &http.Client{Timeout: 30 * time.Second},
		maxRetries: 2,
		backoff:    200 * time.Millisecond,
	}
}

// WithHTTPClient replaces the underlying client, mostly for tests.
func (s *ExternalAPIService) WithHTTPClient(client *http.Client) *ExternalAPIService {
	s.client = client
	return s
}

// WithRetries overrides the GET retry policy. Zero disables retries.
func (s *ExternalAPIService) WithRetries(maxRetries uint64, backoff time.Duration) *ExternalAPIService {
	s.maxRetries = maxRetries
	s.backoff = backoff
	return s
}

// Get makes a GET request and returns the body of a 2xx response.
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values, headers map[string]string) ([]byte, error) {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	backoff := s.backoff
	if backoff <= 0 {
		backoff = time.Millisecond
	}

	var body []byte
	b := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		body, err = s.do(ctx, http.MethodGet, endpoint, nil, headers)
		if err == nil {
			return nil
		}
		var httpErr *utils.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			return err
		}
		return retry.RetryableError(err)
	})
	return body, err
}

// PostJSON makes a POST request with body marshalled as JSON.
func (s *ExternalAPIService) PostJSON(ctx context.Context, endpoint string, params url.Values, body interface{}, headers map[string]string) ([]byte, error) {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}

	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return s.do(ctx, http.MethodPost, endpoint, reader, h)
}

// PostForm makes a form-encoded POST request.
func (s *ExternalAPIService) PostForm(ctx context.Context, endpoint string, form url.Values, headers map[string]string) ([]byte, error) {
	h := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	for k, v := range headers {
		h[k] = v
	}
	return s.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()), h)
}

func (s *ExternalAPIService) do(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = resp.Status
		}
		return nil, utils.NewHTTPError(resp.StatusCode, message)
	}
	return data, nil
}

// BearerHeader builds an Authorization header map for token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

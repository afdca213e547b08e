package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"fxconv/internal/domain"
)

const maxDocumentSize = 4 << 20

type HTTPSource struct {
	http *http.Client
	url  string
}

func (s *HTTPSource) Name() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source URL: %w: %w", domain.ErrSourceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w: %w", s.url, domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %q: %w: %w", s.url, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for %q: %w", resp.StatusCode, s.url, domain.ErrSourceUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %q: %w: %w", s.url, domain.ErrSourceUnavailable, err)
	}
	return body, nil
}

func NewHTTPSource(httpClient *http.Client, rawURL string) *HTTPSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSource{http: httpClient, url: rawURL}
}

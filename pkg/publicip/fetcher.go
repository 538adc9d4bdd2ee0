// Package publicip discovers the caller's public IP address from an echo service.
package publicip

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const DefaultEchoURL = "https://api.ipify.org"

// Fetcher returns the caller's public IP as the echo service reports it.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

type RestyFetcher struct {
	client *resty.Client
	url    string
}

// NewRestyFetcher builds a fetcher for url. resty takes ownership of
// httpClient; nil gets a fresh client.
func NewRestyFetcher(url, userAgent string, httpClient *http.Client) *RestyFetcher {
	if url == "" {
		url = DefaultEchoURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	client := resty.NewWithClient(httpClient).
		SetHeader("Accept", "text/plain")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &RestyFetcher{client: client, url: url}
}

// Fetch issues one GET and returns the body untouched, whatever the status.
func (f *RestyFetcher) Fetch(ctx context.Context) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return "", err
	}
	// resp.String() trims whitespace, so read the raw body instead.
	return string(resp.Body()), nil
}

var _ Fetcher = (*RestyFetcher)(nil)

// Package source fetches the LorcanaJSON card dataset
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/arcanaland/inktable/internal/card"
)

// DefaultURL is the LorcanaJSON allCards.json file
const DefaultURL = "https://lorcanajson.org/files/current/en/allCards.json"

// Config contains configuration options for the fetcher.
type Config struct {
	// URL of the dataset (optional, defaults to DefaultURL)
	URL string
	// Timeout for the request (optional, defaults to 30 seconds)
	Timeout time.Duration
	// UserAgent sent with the request (optional)
	UserAgent string
	// Client overrides the HTTP client (optional)
	Client *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "inktable"
	}
	return nil
}

// Dataset is the decoded allCards.json document
type Dataset struct {
	Cards []card.Record
}

// FetchError reports a transport failure or a non-2xx response
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that is not a card dataset
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Fetcher downloads the dataset with a single GET
type Fetcher struct {
	cfg Config
}

// NewFetcher creates a fetcher from a validated config
func NewFetcher(cfg Config) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{cfg: cfg}, nil
}

// URL returns the dataset location
func (f *Fetcher) URL() string {
	return f.cfg.URL
}

// Fetch performs the request and decodes the body. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context) (*Dataset, error) {
	body, err := f.get(ctx, f.cfg.URL)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "dataset downloaded", "url", f.cfg.URL, "bytes", len(body))

	return Decode(body)
}

// Get downloads an arbitrary resource with the fetcher's client, e.g. card art
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.cfg.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// Decode parses a dataset document. Numbers are kept as json.Number.
func Decode(body []byte) (*Dataset, error) {
	var doc struct {
		Cards []card.Record `json:"cards"`
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("unexpected data after JSON document at offset %d", dec.InputOffset())}
	}
	if doc.Cards == nil {
		return nil, &ParseError{Err: errors.New("document has no cards array")}
	}

	return &Dataset{Cards: doc.Cards}, nil
}

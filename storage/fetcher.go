// Package storage fetches stored PDFs from Supabase Storage or S3, either
// through a short-lived signed URL or through the bucket's public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrUpstreamFetch = errors.New("upstream fetch failed")

// Mode selects how the fetcher builds the object URL.
type Mode string

const (
	ModeSigned Mode = "signed"
	ModePublic Mode = "public"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSigned:
		return ModeSigned, nil
	case ModePublic:
		return ModePublic, nil
	default:
		return "", fmt.Errorf("unknown fetch mode %q (want signed or public)", s)
	}
}

// ObjectStore issues URLs for objects in a single bucket.
type ObjectStore interface {
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	PublicURL(path string) string
}

// Uploader puts an object into the bucket. Only the seed command writes.
type Uploader interface {
	Upload(ctx context.Context, path string, body io.Reader, contentType string) error
}

// Fetcher downloads whole objects into memory.
type Fetcher struct {
	store     ObjectStore
	mode      Mode
	signedTTL time.Duration
	client    *http.Client
}

// NewFetcher returns a Fetcher. A nil client uses http.DefaultClient.
func NewFetcher(store ObjectStore, mode Mode, signedTTL time.Duration, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{store: store, mode: mode, signedTTL: signedTTL, client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	target, err := f.objectURL(ctx, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("failed to fetch pdf")
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamFetch, err)
	}
	return body, nil
}

func (f *Fetcher) objectURL(ctx context.Context, path string) (string, error) {
	if f.mode == ModePublic {
		return f.store.PublicURL(path), nil
	}

	signed, err := f.store.SignedURL(ctx, path, f.signedTTL)
	if err != nil {
		return "", fmt.Errorf("%w: sign %s: %v", ErrUpstreamFetch, path, err)
	}
	if signed == "" {
		log.Error().Str("path", path).Msg("failed to get signed url")
		return "", fmt.Errorf("%w: no signed url for %s", ErrUpstreamFetch, path)
	}
	return signed, nil
}

// escapePath escapes each segment of an object path, keeping separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSupabase answers the sign and upload endpoints of the storage API and
// records every request it sees.
type fakeSupabase struct {
	signReply string

	mu       sync.Mutex
	requests []string
	headers  []http.Header
}

func (f *fakeSupabase) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.headers = append(f.headers, r.Header.Clone())
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/storage/v1/object/sign/"):
			_, _ = w.Write([]byte(f.signReply))
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
			_, _ = w.Write([]byte(`{"Key":"secure-pdfs/a.pdf"}`))
		default:
			_, _ = w.Write([]byte("storage root page"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSupabaseStore_SignedURL(t *testing.T) {
	fake := &fakeSupabase{signReply: `{"signedURL":"/object/sign/secure-pdfs/a.pdf?token=abc"}`}
	srv := fake.start(t)
	s := NewSupabaseStore(srv.URL, "service-role", "secure-pdfs")

	signed, err := s.SignedURL(context.Background(), "a.pdf", 60*time.Second)

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/sign/secure-pdfs/a.pdf?token=abc", signed)
}

func TestSupabaseStore_SignedURLMissingFromReply(t *testing.T) {
	fake := &fakeSupabase{signReply: `{}`}
	srv := fake.start(t)
	s := NewSupabaseStore(srv.URL, "service-role", "secure-pdfs")

	signed, err := s.SignedURL(context.Background(), "a.pdf", 60*time.Second)
	require.NoError(t, err)
	assert.Empty(t, signed)

	data, err := NewFetcher(s, ModeSigned, 60*time.Second, srv.Client()).Fetch(context.Background(), "a.pdf")
	assert.ErrorIs(t, err, ErrUpstreamFetch)
	assert.Nil(t, data)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, req := range fake.requests {
		assert.False(t, strings.HasPrefix(req, http.MethodGet), "unexpected upstream GET %s", req)
	}
}

func TestSupabaseStore_UploadSendsContentType(t *testing.T) {
	fake := &fakeSupabase{}
	srv := fake.start(t)
	s := NewSupabaseStore(srv.URL, "service-role", "secure-pdfs")

	err := s.Upload(context.Background(), "tok/a.pdf", strings.NewReader("%PDF-1.7"), "application/pdf")
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.headers, 1)
	assert.Equal(t, "POST /storage/v1/object/secure-pdfs/tok/a.pdf", fake.requests[0])
	assert.Equal(t, "application/pdf", fake.headers[0].Get("Content-Type"))
}

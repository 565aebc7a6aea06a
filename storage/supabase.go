package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore serves objects from one Supabase Storage bucket.
type SupabaseStore struct {
	client  *storage_go.Client
	baseURL string
	bucket  string
}

// NewSupabaseStore connects to the storage API under projectURL using the
// service-role key.
func NewSupabaseStore(projectURL, serviceRole, bucket string) *SupabaseStore {
	baseURL := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &SupabaseStore{
		client:  storage_go.NewClient(baseURL, serviceRole, nil),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

func (s *SupabaseStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	resp, err := s.client.CreateSignedUrl(s.bucket, path, int(ttl.Seconds()))
	if err != nil {
		return "", err
	}
	// storage-go prefixes the base URL even when the reply carried no
	// signedURL, so anything that is not a sign path counts as missing.
	if !strings.Contains(resp.SignedURL, "/object/sign/") {
		return "", nil
	}
	return resp.SignedURL, nil
}

func (s *SupabaseStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, s.bucket, escapePath(path))
}

func (s *SupabaseStore) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	opts := storage_go.FileOptions{ContentType: &contentType}
	if _, err := s.client.UploadFile(s.bucket, path, body, opts); err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", path, s.bucket, err)
	}
	return nil
}

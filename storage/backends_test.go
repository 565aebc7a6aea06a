package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseStore_PublicURL(t *testing.T) {
	s := NewSupabaseStore("https://proj.supabase.co/", "service-role", "secure-pdfs")

	got := s.PublicURL("deals/Term Sheet.pdf")

	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/secure-pdfs/deals/Term%20Sheet.pdf", got)
}

func TestS3Store_PublicURL(t *testing.T) {
	s := NewS3Store(s3.New(s3.Options{Region: "eu-west-1"}), "eu-west-1", "secure-pdfs", "")

	assert.Equal(t, "https://s3.eu-west-1.amazonaws.com/secure-pdfs/a/b%20c.pdf", s.PublicURL("a/b c.pdf"))

	custom := NewS3Store(s3.New(s3.Options{Region: "eu-west-1"}), "eu-west-1", "secure-pdfs", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/secure-pdfs/a.pdf", custom.PublicURL("a.pdf"))
}

func TestS3Store_SignedURL(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "eu-west-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", "")),
	})
	s := NewS3Store(client, "eu-west-1", "secure-pdfs", "")

	signed, err := s.SignedURL(context.Background(), "deals/a.pdf", 60*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Contains(t, u.Host+u.Path, "secure-pdfs")
	assert.Contains(t, u.Path, "deals/a.pdf")
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

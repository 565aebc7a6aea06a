package initializers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/basit/pdf-proxy/storage"
)

// ObjectStore is a storage backend that can both issue URLs and accept
// uploads.
type ObjectStore interface {
	storage.ObjectStore
	storage.Uploader
}

// InitStorage builds the backend named by cfg.StorageBackend.
func InitStorage(ctx context.Context, cfg *Config) (ObjectStore, error) {
	switch cfg.StorageBackend {
	case BackendS3:
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load AWS SDK config: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Str("region", cfg.AWSRegion).Msg("using s3 storage")
		return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.AWSRegion, cfg.Bucket, cfg.S3PublicBaseURL), nil
	case BackendSupabase:
		log.Info().Str("bucket", cfg.Bucket).Msg("using supabase storage")
		return storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceRole, cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

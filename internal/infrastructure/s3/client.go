package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// Config holds S3/MinIO configuration
type Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PresignTTL time.Duration
}

// MediaStore stores channel banners and produces time-limited access URLs
type MediaStore interface {
	UploadBanner(ctx context.Context, channelID uint, contentType string, data []byte) (string, error)
	PresignedURL(ctx context.Context, objectKey string) (string, error)
	EnsureBucket(ctx context.Context) error
}

// Client wraps MinIO client with banner storage functionality
type Client struct {
	client     *minio.Client
	bucket     string
	presignTTL time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new S3/MinIO client
func NewClient(cfg *Config, logger zerolog.Logger) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	presignTTL := cfg.PresignTTL
	if presignTTL <= 0 {
		presignTTL = time.Hour
	}

	return &Client{
		client:     client,
		bucket:     cfg.Bucket,
		presignTTL: presignTTL,
		logger:     logger.With().Str("component", "s3_client").Logger(),
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		c.logger.Info().Str("bucket", c.bucket).Msg("created S3 bucket")
	}

	return nil
}

// UploadBanner uploads a channel banner and returns its object key.
// Path structure: channels/{channel_id}/banner_{unix}
func (c *Client) UploadBanner(ctx context.Context, channelID uint, contentType string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("channels/%d/banner_%d", channelID, time.Now().UTC().Unix())

	reader := bytes.NewReader(data)
	_, err := c.client.PutObject(ctx, c.bucket, objectKey, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload banner: %w", err)
	}

	c.logger.Debug().
		Uint("channel_id", channelID).
		Str("object_key", objectKey).
		Msg("uploaded banner to S3")

	return objectKey, nil
}

// PresignedURL returns a time-limited GET URL for the given object key
func (c *Client) PresignedURL(ctx context.Context, objectKey string) (string, error) {
	u, err := c.client.PresignedGetObject(ctx, c.bucket, objectKey, c.presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object URL: %w", err)
	}
	return u.String(), nil
}

// Ensure Client implements MediaStore interface
var _ MediaStore = (*Client)(nil)

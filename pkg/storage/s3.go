package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const (
	// FolderVideos is the S3 prefix for submitted campaign videos.
	FolderVideos = "wpd_videos"
	// FolderCertificates is the S3 prefix for generated certificate PDFs.
	FolderCertificates = "wpd_certificates"
)

// Video extensions accepted for submission, mapped to their MIME types.
var allowedVideoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	MediaBucket     string
}

// S3 stores campaign media (videos and certificates) with public URLs.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 client. Static credentials from config take precedence;
// otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	} else {
		logger.Warn("S3 client using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 5 * 1024 * 1024 // 5MB parts for streaming video uploads
	})
	logger.Info("S3 client ready", zap.String("region", cfg.Region), zap.String("bucket", cfg.MediaBucket))
	return &S3{client: client, uploader: uploader, cfg: cfg, logger: logger}, nil
}

// ValidVideoUpload reports whether the content type or filename extension
// indicates an accepted video format.
func ValidVideoUpload(contentType, filename string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return true
	}
	_, ok := allowedVideoExtensions[strings.ToLower(path.Ext(filename))]
	return ok
}

// VideoContentType returns the MIME type for a video filename extension.
func VideoContentType(filename string) string {
	if ct, ok := allowedVideoExtensions[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// VideoKey returns the object key for a submitted video:
// wpd_videos/{registrant_id}/{filename}.
func VideoKey(registrantID, filename string) string {
	return path.Join(FolderVideos, registrantID, path.Base(filename))
}

// CertificateKey returns the object key for a certificate PDF:
// wpd_certificates/{registrant_id}/{stamp}.pdf. The timestamp keeps re-issued
// certificates from overwriting earlier ones.
func CertificateKey(registrantID string, issuedAt time.Time) string {
	return path.Join(FolderCertificates, registrantID, issuedAt.UTC().Format("20060102T150405")+".pdf")
}

// Upload streams a reader to the media bucket and returns the public URL.
// Campaign media is served directly, so objects are uploaded public-read.
func (s *S3) Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error) {
	var contentLengthPtr *int64
	if contentLength > 0 {
		contentLengthPtr = &contentLength
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.MediaBucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: contentLengthPtr,
		ACL:           types.ObjectCannedACLPublicRead,
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return s.PublicURL(key), nil
}

// Delete removes an object from the media bucket.
func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.MediaBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// PublicURL returns the direct URL for an object in the media bucket.
func (s *S3) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.MediaBucket, s.cfg.Region, key)
}

// Package objectstorage uploads proof photos to an S3-compatible bucket
// (AWS S3, Cloudflare R2, MinIO).
package objectstorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"clubxp/internal/ports/output"
)

var _ output.ObjectStorage = (*S3Uploader)(nil)

type Config struct {
	// Endpoint is empty for AWS S3 and set for R2 or MinIO.
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL prefixes returned URIs. Empty yields s3://bucket/key.
	PublicBaseURL string
	KeyPrefix     string
}

// putter is the part of *s3.Client the uploader needs.
type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client  putter
	cfg     Config
	newName func() string
}

func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("objectstorage: bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newUploader(client, cfg), nil
}

func newUploader(client putter, cfg Config) *S3Uploader {
	return &S3Uploader{client: client, cfg: cfg, newName: uuid.NewString}
}

// Upload puts the object under a fresh key and returns its URI.
func (u *S3Uploader) Upload(ctx context.Context, obj output.Object) (string, error) {
	key := objectKey(u.cfg.KeyPrefix, u.newName(), obj.Name, obj.ContentType)
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(obj.Body),
	}
	if obj.ContentType != "" {
		in.ContentType = aws.String(obj.ContentType)
	}
	if _, err := u.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.uri(key), nil
}

func (u *S3Uploader) uri(key string) string {
	if u.cfg.PublicBaseURL == "" {
		return fmt.Sprintf("s3://%s/%s", u.cfg.Bucket, key)
	}
	return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
}

// objectKey builds "<prefix>/<id>-<slug><ext>". The extension comes from the
// file name, or from the content type when the name has none.
func objectKey(prefix, id, name, contentType string) string {
	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if ext == "" && contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	var b strings.Builder
	if p := strings.Trim(prefix, "/"); p != "" {
		b.WriteString(p)
		b.WriteByte('/')
	}
	b.WriteString(id)
	if s := slug.Make(base); s != "" && name != "" {
		b.WriteByte('-')
		b.WriteString(s)
	}
	b.WriteString(ext)
	return b.String()
}

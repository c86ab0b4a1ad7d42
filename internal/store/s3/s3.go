// Package s3 stores each profile as one JSON object in an S3-compatible
// bucket (AWS S3 or MinIO). PutObject replaces objects atomically.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/edgard/atbot/internal/store"
)

const contentType = "application/json"

// API is the subset of the S3 client the store uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds construction parameters. Credentials come from the default
// AWS chain.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. MinIO
	PathStyle bool
	Prefix    string
}

// Store implements store.Store on a bucket.
type Store struct {
	client API
	bucket string
	prefix string
	logger *slog.Logger
}

// New builds an S3 client from cfg and the default AWS configuration.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client API, bucket, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With("component", "s3_store"),
	}
}

func (s *Store) objectKey(key string) string {
	return s.prefix + path.Join(store.Namespace, key+"."+string(store.FormatJSON))
}

// Load downloads and decodes the object for key.
func (s *Store) Load(ctx context.Context, key string) (*store.Profile, error) {
	objKey := s.objectKey(key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &objKey})
	if err != nil {
		if isNotFound(err) {
			s.logger.DebugContext(ctx, "No profile object", "key", key, "object", objKey)
			return nil, store.NotFound(key)
		}
		s.logger.ErrorContext(ctx, "Failed to get profile object", "key", key, "object", objKey, "error", err)
		return nil, store.ReadError(key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, store.ReadError(key, fmt.Errorf("read %s: %w", objKey, err))
	}
	p, err := store.Decode(store.FormatJSON, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Corrupt profile object", "key", key, "object", objKey, "error", err)
		return nil, store.ReadError(key, err)
	}
	return p, nil
}

// Save uploads p, replacing any previous object.
func (s *Store) Save(ctx context.Context, p *store.Profile) error {
	if p == nil {
		return store.WriteError("", fmt.Errorf("cannot save nil profile"))
	}
	data, err := store.Encode(store.FormatJSON, p)
	if err != nil {
		return store.WriteError(p.Nickname, err)
	}
	objKey := s.objectKey(p.Nickname)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &objKey,
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to put profile object", "key", p.Nickname, "object", objKey, "error", err)
		return store.WriteError(p.Nickname, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no resources that need releasing.
func (s *Store) Close() error { return nil }

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}

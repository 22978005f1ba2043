package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/shortclip/shortclip/internal/fxhash"
	"github.com/shortclip/shortclip/internal/metadata"
)

// S3 implements Store against an S3 bucket. Objects use the same two-file
// layout as the filesystem store: <prefix>/<id> and <prefix>/<id>.json.
type S3 struct {
	bucket string
	prefix string
	region string
	client *s3.Client
}

// NewS3 creates a new S3 store
func NewS3(bucket, prefix, region string) *S3 {
	return &S3{
		bucket: bucket,
		prefix: strings.TrimSuffix(prefix, "/"),
		region: region,
	}
}

// Type returns the backend type
func (s *S3) Type() BackendType {
	return BackendS3
}

// Init loads AWS configuration from the standard credential chain and
// verifies bucket access.
func (s *S3) Init(ctx context.Context) error {
	if s.bucket == "" {
		return ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{}
	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	s.client = s3.NewFromConfig(cfg)

	_, err = s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.bucket, err)
	}

	return nil
}

// Close releases resources (no-op for S3)
func (s *S3) Close() error {
	return nil
}

func (s *S3) objectKey(id string) string {
	if s.prefix != "" {
		return s.prefix + "/" + id
	}
	return id
}

// Put uploads the object unless its id already exists. Like the filesystem
// store the metadata object is written before the data object.
func (s *S3) Put(ctx context.Context, data []byte, meta metadata.Metadata) (string, bool, error) {
	if s.client == nil {
		return "", false, ErrNotConfigured
	}

	id := fxhash.ID(data)
	key := s.objectKey(id)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return id, false, nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return "", false, fmt.Errorf("S3 head failed: %w", err)
	}

	encoded, err := meta.Encode()
	if err != nil {
		return "", false, fmt.Errorf("encode metadata: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key + MetadataExt),
		Body:        bytes.NewReader(encoded),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", false, fmt.Errorf("S3 put metadata failed: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(meta.ContentType),
	})
	if err != nil {
		return "", false, fmt.Errorf("S3 put data failed: %w", err)
	}

	return id, true, nil
}

// Get retrieves an object and its metadata, metadata first.
func (s *S3) Get(ctx context.Context, id string) ([]byte, metadata.Metadata, error) {
	if s.client == nil {
		return nil, metadata.Metadata{}, ErrNotConfigured
	}

	key := s.objectKey(id)

	encoded, err := s.getObject(ctx, key+MetadataExt)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}
	meta, err := metadata.Decode(encoded)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}

	data, err := s.getObject(ctx, key)
	if err != nil {
		return nil, metadata.Metadata{}, err
	}

	return data, meta, nil
}

func (s *S3) getObject(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound
		}
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("S3 get failed: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return data, nil
}

package seencache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps the cache as a JSON object in a bucket, for runs that move
// between hosts without shared disk
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Store parses an s3://bucket/key location and connects using the
// default AWS config/credential chain
func NewS3Store(ctx context.Context, location string) (*S3Store, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 cache location %q, want s3://bucket/key", location)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket, key: key}, nil
}

// Load reads the cache object. A missing key is an empty cache.
func (s *S3Store) Load(ctx context.Context) (Cache, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return Cache{}, nil
		}
		return Cache{}, fmt.Errorf("fetch cache object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return Cache{}, err
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return Cache{}, fmt.Errorf("parse cache object: %w", err)
	}
	return c, nil
}

func (s *S3Store) Save(ctx context.Context, c Cache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload cache to S3: %w", err)
	}
	return nil
}

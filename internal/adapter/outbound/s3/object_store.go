package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/outfitpicker/server/internal/port/outbound"
)

// objectAPI is the subset of the S3 client the adapters call.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// presignAPI is the subset of the presign client the adapters call.
type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectStore implements ObjectStoragePort on one bucket.
type ObjectStore struct {
	api       objectAPI
	presigner presignAPI
	bucket    string
}

// NewObjectStore creates an object store adapter.
func NewObjectStore(client *s3.Client, bucket string) *ObjectStore {
	return &ObjectStore{
		api:       client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}
}

// Put uploads the object with its user metadata.
func (s *ObjectStore) Put(ctx context.Context, in *outbound.PutObjectInput) error {
	input := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(in.Key),
		Body:     in.Body,
		Metadata: in.Metadata,
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}

	if _, err := s.api.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %s: %w", in.Key, err)
	}
	return nil
}

// GetPresignedURL returns a time limited GET URL for key.
func (s *ObjectStore) GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = duration
	})
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return req.URL, nil
}

// Compile-time check
var _ outbound.ObjectStoragePort = (*ObjectStore)(nil)

package s3storage

import (
	"context"
	"errors"
	"io"

	"github.com/Abraxas-365/inputassist/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Client is the subset of *s3.Client the store calls.
type Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type S3Store struct {
	client Client
	bucket string
}

func NewS3Store(client Client, bucket string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
	}
}

// NewClient builds an S3 client from the default credential chain. An
// empty region falls back to the environment or shared config.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if region != "" {
		optFns = append(optFns, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, storage.NewStorageError("NewClient", "", err, storage.ErrCodeInternal, "failed to load aws config")
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *S3Store) Bucket() string {
	return s.bucket
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	result, err := s.client.GetObject(ctx, input)
	if err != nil {
		return nil, storageError("Get", key, err, "failed to get object")
	}

	return result.Body, nil
}

func (s *S3Store) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	result, err := s.client.HeadObject(ctx, input)
	if err != nil {
		return storage.ObjectInfo{}, storageError("Stat", key, err, "failed to stat object")
	}

	return storage.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(result.ContentLength),
		LastModified: aws.ToTime(result.LastModified),
		ETag:         aws.ToString(result.ETag),
		ContentType:  aws.ToString(result.ContentType),
		Metadata:     result.Metadata,
	}, nil
}

func (s *S3Store) List(ctx context.Context, prefix string, options ...storage.ListOption) ([]storage.ObjectInfo, error) {
	opts := storage.NewListOptions(options...)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if !opts.Recursive {
		input.Delimiter = aws.String("/")
	}

	var objects []storage.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storageError("List", prefix, err, "failed to list objects")
		}

		for _, obj := range page.Contents {
			if opts.MaxKeys > 0 && len(objects) >= opts.MaxKeys {
				return objects, nil
			}
			objects = append(objects, storage.ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
			})
		}
	}

	return objects, nil
}

func storageError(op, key string, err error, message string) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return storage.NewStorageError(op, key, err, storage.ErrCodeNotFound, "object not found")
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return storage.NewStorageError(op, key, err, storage.ErrCodeNotFound, "bucket not found")
		case "AccessDenied", "Forbidden":
			return storage.NewStorageError(op, key, err, storage.ErrCodePermissionDenied, "access denied")
		}
	}

	return storage.NewStorageError(op, key, err, storage.ErrCodeInternal, message)
}

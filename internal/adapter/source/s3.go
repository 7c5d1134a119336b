package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3 client. Credentials come from the default AWS
// chain (environment, shared config, instance role).
type S3Options struct {
	Region    string
	Endpoint  string // optional; set for MinIO or other S3-compatible stores
	PathStyle bool
}

// S3 reads a table from an S3 object.
type S3 struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3 builds an S3 source for bucket/key.
func NewS3(ctx context.Context, bucket, key string, opts S3Options) (*S3, error) {
	if bucket == "" || key == "" {
		return nil, errors.New("s3 source needs both bucket and key")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.PathStyle {
			o.UsePathStyle = true
		}
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	return newS3WithClient(client, bucket, key), nil
}

func newS3WithClient(client *s3.Client, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

// Fetch downloads the object body.
func (s *S3) Fetch(ctx context.Context) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		return "", fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read s3://%s/%s: %w", s.bucket, s.key, err)
	}
	if len(data) > maxBodyBytes {
		return "", fmt.Errorf("s3://%s/%s exceeds %d bytes", s.bucket, s.key, maxBodyBytes)
	}
	return string(data), nil
}

// Package photos presigns profile photo uploads and downloads against an S3
// compatible bucket.
package photos

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultURLTTL is how long presigned URLs stay valid.
const DefaultURLTTL = 15 * time.Minute

type Config struct {
	Endpoint  string // empty for AWS, e.g. http://minio:9000 otherwise
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	URLTTL    time.Duration
}

// S3Store signs requests locally; it never contacts the bucket.
type S3Store struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("photos: bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.URLTTL <= 0 {
		cfg.URLTTL = DefaultURLTTL
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		ttl:     cfg.URLTTL,
	}, nil
}

func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string) (string, time.Time, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", time.Time{}, err
	}
	return req.URL, time.Now().Add(s.ttl), nil
}

func (s *S3Store) PresignDownload(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", time.Time{}, err
	}
	return req.URL, time.Now().Add(s.ttl), nil
}

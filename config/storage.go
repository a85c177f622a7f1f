package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the archive bucket and a client for it
type S3Config struct {
	Client     *s3.Client
	BucketName string
}

// NewS3Config builds the S3 client for the generation archive bucket from the
// default AWS credential chain. It returns nil when no bucket is configured.
// ArchiveEndpoint points the client at an S3-compatible store such as MinIO.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if cfg.ArchiveBucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.ArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.ArchiveEndpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Config{Client: client, BucketName: cfg.ArchiveBucket}, nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-pantry/backend/config"
)

// PayloadArchiver keeps model output that could not be turned into recipes.
type PayloadArchiver interface {
	Archive(ctx context.Context, userID uuid.UUID, payload string, cause error) error
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes rejected payloads to generation-failures/<user>/<time>.json.
type S3Archiver struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

// NewS3Archiver returns nil when no archive bucket is configured.
func NewS3Archiver(s3Config *config.S3Config) *S3Archiver {
	if s3Config == nil || s3Config.Client == nil {
		return nil
	}
	return &S3Archiver{client: s3Config.Client, bucket: s3Config.BucketName, now: time.Now}
}

type archivedPayload struct {
	UserID     uuid.UUID `json:"userId"`
	Error      string    `json:"error"`
	Payload    string    `json:"payload"`
	ArchivedAt time.Time `json:"archivedAt"`
}

// Archive implements PayloadArchiver.
func (a *S3Archiver) Archive(ctx context.Context, userID uuid.UUID, payload string, cause error) error {
	now := a.now().UTC()
	record := archivedPayload{UserID: userID, Payload: payload, ArchivedAt: now}
	if cause != nil {
		record.Error = cause.Error()
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal archived payload: %w", err)
	}

	key := ArchiveKey(userID, now)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}
	return nil
}

// ArchiveKey is the object key for a payload rejected at t.
func ArchiveKey(userID uuid.UUID, t time.Time) string {
	return fmt.Sprintf("generation-failures/%s/%s.json", userID, t.UTC().Format("20060102T150405.000000000Z"))
}

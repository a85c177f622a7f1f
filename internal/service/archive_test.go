package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-pantry/backend/config"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver(t *testing.T) {
	putter := &fakePutter{}
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	archiver := &S3Archiver{client: putter, bucket: "pantry-archive", now: func() time.Time { return at }}
	userID := uuid.MustParse("7b0e7bde-65a8-4a8f-9b53-6f3d1c1f4b11")

	err := archiver.Archive(context.Background(), userID, "{not json", errors.New("unexpected end of JSON input"))
	require.NoError(t, err)

	assert.Equal(t, "pantry-archive", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "generation-failures/7b0e7bde-65a8-4a8f-9b53-6f3d1c1f4b11/20260314T092653.589793000Z.json", aws.ToString(putter.input.Key))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))

	var stored archivedPayload
	require.NoError(t, json.Unmarshal(putter.body, &stored))
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, "{not json", stored.Payload)
	assert.Equal(t, "unexpected end of JSON input", stored.Error)
}

func TestS3ArchiverUploadError(t *testing.T) {
	archiver := &S3Archiver{client: &fakePutter{err: errors.New("access denied")}, bucket: "b", now: time.Now}
	err := archiver.Archive(context.Background(), uuid.New(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestNewS3ArchiverDisabled(t *testing.T) {
	assert.Nil(t, NewS3Archiver(nil))
	assert.Nil(t, NewS3Archiver(&config.S3Config{BucketName: "b"}))
}

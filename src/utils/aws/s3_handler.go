package aws_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrStorage wraps object store failures so callers can tell archival
// problems apart from the rest of the pipeline.
var ErrStorage = errors.New("storage error")

type S3Handler struct {
	svc *s3.S3
}

func NewS3Handler(svc *s3.S3) *S3Handler {
	return &S3Handler{svc: svc}
}

// GetObject reads the full object under bucket/key.
func (h *S3Handler) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	result, err := h.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get s3://%s/%s: %v", ErrStorage, bucket, key, err)
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read s3://%s/%s: %v", ErrStorage, bucket, key, err)
	}
	return body, nil
}

// PutObject writes data under bucket/key, overwriting any previous version.
func (h *S3Handler) PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error {
	_, err := h.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("%w: put s3://%s/%s: %v", ErrStorage, bucket, key, err)
	}
	return nil
}

// ListKeys returns every object key under the prefix.
func (h *S3Handler) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	err := h.svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			key := aws.StringValue(object.Key)
			// Skip the directory placeholder some tools create.
			if strings.HasSuffix(key, "/") {
				continue
			}
			keys = append(keys, key)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list s3://%s/%s: %v", ErrStorage, bucket, prefix, err)
	}
	return keys, nil
}

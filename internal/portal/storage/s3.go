package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config points at an S3-compatible endpoint. Path-style addressing is
// forced because most self-hosted object stores require it.
type S3Config struct {
	Endpoint string // host, no scheme
	Region   string
	Bucket   string
	KeyID    string
	Secret   string
}

type S3Uploader struct {
	client *s3.Client
	bucket string
	base   string // public base URL for stored objects
}

func NewS3Uploader(cfg S3Config) *S3Uploader {
	endpoint := fmt.Sprintf("https://%s", cfg.Endpoint)

	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.KeyID, cfg.Secret, "",
		),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
	})

	return &S3Uploader{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s/%s", endpoint, cfg.Bucket),
	}
}

// Upload writes the object with If-None-Match: * so an existing key is never
// clobbered. The precondition failure maps to ErrObjectExists.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if isPreconditionFailed(err) {
			return ErrObjectExists
		}
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (u *S3Uploader) URL(key string) string {
	return u.base + "/" + url.PathEscape(key)
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	var nf *types.NoSuchKey
	if errors.As(err, &nf) {
		return nil
	}
	return err
}

func isPreconditionFailed(err error) bool {
	var apiErr interface{ ErrorCode() string }
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "PreconditionFailed"
	}
	return false
}

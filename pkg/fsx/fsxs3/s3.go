package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/casedesk/casedesk/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem on an S3 bucket. Keys are built as
// prefix/path with forward slashes regardless of the host OS.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed file system.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (fs *S3FileSystem) key(p string) string {
	if fs.prefix == "" {
		return p
	}
	return path.Join(fs.prefix, p)
}

func (fs *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := fs.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("file not found: %s", p)
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

func (fs *S3FileSystem) Stat(ctx context.Context, p string) (fsx.FileInfo, error) {
	out, err := fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		return fsx.FileInfo{}, fmt.Errorf("failed to stat object: %w", err)
	}

	info := fsx.FileInfo{
		Name:     path.Base(p),
		Size:     aws.ToInt64(out.ContentLength),
		Metadata: out.Metadata,
	}
	if out.ContentType != nil {
		info.ContentType = *out.ContentType
	}
	if out.LastModified != nil {
		info.ModTime = *out.LastModified
	}
	return info, nil
}

func (fs *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	_, err := fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

func (fs *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (fs *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.key(p)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (fs *S3FileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

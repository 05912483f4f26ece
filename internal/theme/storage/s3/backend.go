package s3

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sync"

	"github.com/bornholm/syscommerce/internal/theme/storage"
	"github.com/bornholm/syscommerce/pkg/log"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Backend stores each value as a small object named <prefix>/<scope>/<key>.
type Backend struct {
	client *minio.Client
	bucket string
	prefix string
	region string

	bucketMutex sync.Mutex
	bucketReady bool
}

// Get implements storage.Backend.
func (b *Backend) Get(ctx context.Context, scope string, key string) (string, bool, error) {
	if err := b.ensureBucket(ctx); err != nil {
		return "", false, errors.WithStack(err)
	}

	object, err := b.client.GetObject(ctx, b.bucket, b.objectName(scope, key), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}

		return "", false, errors.WithStack(err)
	}

	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}

		return "", false, errors.WithStack(err)
	}

	return string(data), true, nil
}

// Set implements storage.Backend.
func (b *Backend) Set(ctx context.Context, scope string, key string, value string) error {
	if err := b.ensureBucket(ctx); err != nil {
		return errors.WithStack(err)
	}

	data := []byte(value)

	_, err := b.client.PutObject(ctx, b.bucket, b.objectName(scope, key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *Backend) objectName(scope, key string) string {
	return path.Join(b.prefix, scope, key)
}

// ensureBucket creates the bucket if needed. Failed checks are retried on
// the next call.
func (b *Backend) ensureBucket(ctx context.Context) error {
	b.bucketMutex.Lock()
	defer b.bucketMutex.Unlock()

	if b.bucketReady {
		return nil
	}

	// The outcome is shared by every later caller
	ctx = context.WithoutCancel(ctx)

	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return errors.WithStack(err)
	}

	if !exists {
		slog.InfoContext(ctx, "creating theme storage bucket", slog.String("bucket", b.bucket), log.ScrubbedURL("endpoint", b.client.EndpointURL().String()))

		if err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region}); err != nil {
			return errors.WithStack(err)
		}
	}

	b.bucketReady = true

	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(errors.Cause(err))
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func NewBackend(client *minio.Client, bucket, prefix, region string) *Backend {
	return &Backend{
		client: client,
		bucket: bucket,
		prefix: prefix,
		region: region,
	}
}

var _ storage.Backend = &Backend{}

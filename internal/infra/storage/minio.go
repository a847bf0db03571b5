package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// PayloadStore guarda o JSON bruto que o workflow enviou, para auditoria e replay.
type PayloadStore struct {
	client     objectPutter
	bucketName string
	now        func() time.Time
}

// New conecta no MinIO e garante que o bucket existe.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*PayloadStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("erro ao criar bucket %s: %w", bucket, err)
		}
	}

	return &PayloadStore{client: cli, bucketName: bucket, now: time.Now}, nil
}

func (s *PayloadStore) Archive(ctx context.Context, domain string, payload []byte) (string, error) {
	key := ObjectKey(domain, s.now())

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("erro ao arquivar payload %s: %w", key, err)
	}
	return key, nil
}

// ObjectKey: analysis/<domain>/<timestamp UTC>.json
func ObjectKey(domain string, at time.Time) string {
	return fmt.Sprintf("analysis/%s/%s.json", domain, at.UTC().Format("20060102T150405.000Z"))
}

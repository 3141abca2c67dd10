package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
)

// DefaultSnapshotKey is where snapshots land when no key is configured.
const DefaultSnapshotKey = "snapshots/clouds.json"

// ObjectSource reads and writes a JSON array of clouds in an S3-compatible
// bucket.
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
}

func NewObjectSource(client *minio.Client, bucket, key string) *ObjectSource {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &ObjectSource{client: client, bucket: bucket, key: key}
}

func (s *ObjectSource) FetchClouds(ctx context.Context) ([]Cloud, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", s.bucket, s.key, err)
	}
	defer obj.Close()

	var clouds []Cloud
	if err := json.NewDecoder(obj).Decode(&clouds); err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", s.bucket, s.key, err)
	}
	return clouds, nil
}

// PutSnapshot overwrites the stored snapshot, creating the bucket if needed.
func (s *ObjectSource) PutSnapshot(ctx context.Context, clouds []Cloud) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
		}
	}

	data, err := json.Marshal(clouds)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("putting %s/%s: %w", s.bucket, s.key, err)
	}
	log.Printf("stored %d clouds in %s/%s", len(clouds), s.bucket, s.key)
	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/yungbote/account-inventory/internal/inventory"
	"github.com/yungbote/account-inventory/internal/platform/gcp"
)

// GCSSource reads the account document from a single object.
type GCSSource struct {
	objects gcp.ObjectReader
	bucket  string
	key     string
}

func NewGCSSource(objects gcp.ObjectReader, uri string) (*GCSSource, error) {
	if objects == nil {
		return nil, fmt.Errorf("gcs source: object reader is required")
	}
	bucket, key, err := gcp.ParseObjectURI(uri)
	if err != nil {
		return nil, fmt.Errorf("gcs source: %w", err)
	}
	return &GCSSource{objects: objects, bucket: bucket, key: key}, nil
}

func (s *GCSSource) Load(ctx context.Context) ([]inventory.RawRecord, error) {
	rc, err := s.objects.Open(ctx, s.bucket, s.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return DecodeRecords(rc)
}

func (s *GCSSource) Describe() string {
	return fmt.Sprintf("%s:gs://%s/%s", KindGCS, s.bucket, s.key)
}

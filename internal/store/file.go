package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/account-inventory/internal/inventory"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, fmt.Errorf("file source: path is required")
	}
	return &FileSource{path: p}, nil
}

func (s *FileSource) Load(ctx context.Context) ([]inventory.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	return DecodeRecords(f)
}

func (s *FileSource) Describe() string { return string(KindFile) + ":" + s.path }

// Package store reads the raw account collection from wherever it lives.
//
// Every source holds the same document, a JSON array of account objects,
// and reads it in full on each Load. No schema is applied here; shaping is
// left to inventory.Normalize.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/yungbote/account-inventory/internal/inventory"
)

type Kind string

const (
	KindFile  Kind = "file"
	KindGCS   Kind = "gcs"
	KindRedis Kind = "redis"
)

// Source supplies the raw account records.
type Source interface {
	Load(ctx context.Context) ([]inventory.RawRecord, error)
	// Describe names the source for logs, e.g. "file:data/accounts.json".
	Describe() string
}

var ErrEmptyDocument = errors.New("account document is empty")

// DecodeRecords parses a JSON array of objects. Numbers are kept as
// json.Number so large account numbers survive intact.
func DecodeRecords(r io.Reader) ([]inventory.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raws []map[string]any
	if err := dec.Decode(&raws); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode account document: %w", err)
	}
	out := make([]inventory.RawRecord, 0, len(raws))
	for i, m := range raws {
		if m == nil {
			return nil, fmt.Errorf("decode account document: record %d is null", i)
		}
		out = append(out, inventory.RawRecord(m))
	}
	return out, nil
}

func decodeBytes(b []byte) ([]inventory.RawRecord, error) {
	return DecodeRecords(bytes.NewReader(b))
}

// Static serves a fixed set of records. Tests use it in place of a real source.
type Static struct {
	Records []inventory.RawRecord
	Err     error
}

func (s *Static) Load(ctx context.Context) ([]inventory.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]inventory.RawRecord, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

func (s *Static) Describe() string { return "static" }

package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by Get when no account has the requested number.
	ErrNotFound = errors.New("account not found")
	// ErrMalformedRecord matches any *MalformedRecordError via errors.Is.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDuplicateAccount matches any *DuplicateAccountError via errors.Is.
	ErrDuplicateAccount = errors.New("duplicate account number")
)

// MalformedRecordError reports a record whose accountNumber is missing or
// cannot be coerced to an integer. Index is the record's position in the
// loaded collection, or -1 when the record was normalized on its own.
type MalformedRecordError struct {
	Index  int
	Value  any
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e == nil {
		return ErrMalformedRecord.Error()
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		reason = "invalid accountNumber"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("malformed record at index %d: %s (value=%v)", e.Index, reason, e.Value)
	}
	return fmt.Sprintf("malformed record: %s (value=%v)", reason, e.Value)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// DuplicateAccountError lists account numbers seen more than once in a load.
type DuplicateAccountError struct {
	Numbers []int64
}

func (e *DuplicateAccountError) Error() string {
	if e == nil || len(e.Numbers) == 0 {
		return ErrDuplicateAccount.Error()
	}
	parts := make([]string, 0, len(e.Numbers))
	for _, n := range e.Numbers {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return fmt.Sprintf("duplicate account numbers: %s", strings.Join(parts, ", "))
}

func (e *DuplicateAccountError) Is(target error) bool { return target == ErrDuplicateAccount }

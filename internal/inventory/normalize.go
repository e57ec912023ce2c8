package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize turns a raw record into a fully populated Account.
//
// Missing or null string fields become "", an empty accountCategory becomes
// DefaultAccountCategory, access is always present and accountLimit stays nil
// when absent. Only a missing or non-integer accountNumber is an error.
func Normalize(raw RawRecord) (Account, error) {
	num, err := coerceAccountNumber(raw["accountNumber"])
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		AccountNumber:    num,
		AccountType:      stringField(raw, "accountType"),
		Tenant:           stringField(raw, "tenant"),
		Team:             stringField(raw, "team"),
		Type:             stringField(raw, "type"),
		Region:           stringField(raw, "region"),
		BarclaysOU:       stringField(raw, "barclaysOu"),
		Environment:      stringField(raw, "environment"),
		ADGroupCoreRoles: stringField(raw, "adGroupCoreRoles"),
		ServiceFirstITBA: stringField(raw, "serviceFirstItba"),
		ServiceFirstITBS: stringField(raw, "serviceFirstItbs"),
		Status:           stringField(raw, "status"),
		AccountCategory:  stringField(raw, "accountCategory"),
		AccountLimit:     optionalInt(raw["accountLimit"]),
		Access:           normalizeAccess(raw["access"]),
	}
	if acct.AccountCategory == "" {
		acct.AccountCategory = DefaultAccountCategory
	}
	return acct, nil
}

// NormalizeAll normalizes records in order. The first malformed record fails
// the whole batch; its position is recorded on the returned error.
func NormalizeAll(raws []RawRecord) ([]Account, error) {
	out := make([]Account, 0, len(raws))
	for i, raw := range raws {
		acct, err := Normalize(raw)
		if err != nil {
			var mre *MalformedRecordError
			if errors.As(err, &mre) {
				mre.Index = i
			}
			return nil, err
		}
		out = append(out, acct)
	}
	return out, nil
}

func normalizeAccess(v any) AccessInfo {
	m, ok := v.(map[string]any)
	if !ok {
		if rr, isRaw := v.(RawRecord); isRaw {
			m = rr
		} else {
			return AccessInfo{}
		}
	}
	return AccessInfo{
		ReadOnlyAD: stringValue(m["readOnlyAD"]),
		WriteAD:    stringValue(m["writeAD"]),
	}
}

func stringField(raw RawRecord, key string) string {
	return stringValue(raw[key])
}

// stringValue maps nil to "" and keeps strings as they are. Other JSON values
// are carried over as their JSON text so no information is dropped.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func coerceAccountNumber(v any) (int64, error) {
	if v == nil {
		return 0, &MalformedRecordError{Index: -1, Value: v, Reason: "accountNumber is required"}
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, &MalformedRecordError{Index: -1, Value: v, Reason: "accountNumber is not an integer"}
	}
	return n, nil
}

func optionalInt(v any) *int64 {
	if v == nil {
		return nil
	}
	n, ok := toInt64(v)
	if !ok {
		return nil
	}
	return &n
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return floatToInt64(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

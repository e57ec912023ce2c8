package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CountMap is a string->count map that remembers the order keys were first
// seen and keeps that order when encoded as a JSON object.
type CountMap struct {
	keys   []string
	counts map[string]int
}

func NewCountMap() *CountMap {
	return &CountMap{counts: map[string]int{}}
}

func (m *CountMap) Inc(key string) {
	m.Add(key, 1)
}

func (m *CountMap) Add(key string, n int) {
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	if _, ok := m.counts[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.counts[key] += n
}

func (m *CountMap) Get(key string) int {
	if m == nil {
		return 0
	}
	return m.counts[key]
}

// Keys returns keys in first-seen order.
func (m *CountMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *CountMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Total is the sum of all counts.
func (m *CountMap) Total() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, k := range m.keys {
		total += m.counts[k]
	}
	return total
}

func (m *CountMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, k := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			fmt.Fprintf(&buf, ":%d", m.counts[k])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *CountMap) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = CountMap{counts: map[string]int{}}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("count map: expected object, got %v", tok)
	}
	out := CountMap{counts: map[string]int{}}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("count map: expected string key, got %v", kt)
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("count map: value for %q: %w", key, err)
		}
		out.Add(key, n)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// Stats aggregates counts over the whole collection.
type Stats struct {
	TotalAccounts int       `json:"total_accounts"`
	ByStatus      *CountMap `json:"by_status"`
	ByTenant      *CountMap `json:"by_tenant"`
	ByRegion      *CountMap `json:"by_region"`
	ByEnvironment *CountMap `json:"by_environment"`
	ByCategory    *CountMap `json:"by_category"`
}

// ComputeStats counts accounts by status, tenant, region, derived
// environment and category. Empty values count under UnknownKey.
func ComputeStats(accounts []Account) Stats {
	st := Stats{
		TotalAccounts: len(accounts),
		ByStatus:      NewCountMap(),
		ByTenant:      NewCountMap(),
		ByRegion:      NewCountMap(),
		ByEnvironment: NewCountMap(),
		ByCategory:    NewCountMap(),
	}
	for _, a := range accounts {
		st.ByStatus.Inc(orUnknown(a.Status))
		st.ByTenant.Inc(orUnknown(a.Tenant))
		st.ByRegion.Inc(orUnknown(a.Region))
		st.ByEnvironment.Inc(EnvironmentKey(a.Environment))
		st.ByCategory.Inc(orUnknown(a.AccountCategory))
	}
	return st
}

// EnvironmentKey groups environments by the text before the first "(",
// so "prod (us-east-1)" and "prod (eu-west-1)" both count as "prod".
func EnvironmentKey(environment string) string {
	if i := strings.Index(environment, "("); i >= 0 {
		environment = environment[:i]
	}
	return orUnknown(strings.TrimSpace(environment))
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownKey
	}
	return s
}

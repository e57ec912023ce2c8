package inventory

import (
	"sort"
	"strings"
)

// Filter narrows List. Empty fields do not restrict. All comparisons are
// case-insensitive; Tenant and Environment match substrings, Status and
// AccountCategory match whole values.
type Filter struct {
	Tenant          string
	Status          string
	Environment     string
	AccountCategory string
}

func (f Filter) IsEmpty() bool {
	return f.Tenant == "" && f.Status == "" && f.Environment == "" && f.AccountCategory == ""
}

// Matches reports whether a satisfies every non-empty predicate in f.
func (f Filter) Matches(a Account) bool {
	if f.Tenant != "" && !containsFold(a.Tenant, f.Tenant) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(a.Status, f.Status) {
		return false
	}
	if f.Environment != "" && !containsFold(a.Environment, f.Environment) {
		return false
	}
	if f.AccountCategory != "" && !strings.EqualFold(a.AccountCategory, f.AccountCategory) {
		return false
	}
	return true
}

// List returns summaries of the accounts matching f, in input order.
func List(accounts []Account, f Filter) []AccountSummary {
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		if f.Matches(a) {
			out = append(out, a.Summary())
		}
	}
	return out
}

// Get returns the first account with the given number.
func Get(accounts []Account, accountNumber int64) (Account, error) {
	for _, a := range accounts {
		if a.AccountNumber == accountNumber {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

// Tenants returns the distinct non-empty tenants in ascending order.
func Tenants(accounts []Account) []string {
	seen := make(map[string]struct{}, len(accounts))
	out := make([]string, 0)
	for _, a := range accounts {
		if a.Tenant == "" {
			continue
		}
		if _, ok := seen[a.Tenant]; ok {
			continue
		}
		seen[a.Tenant] = struct{}{}
		out = append(out, a.Tenant)
	}
	sort.Strings(out)
	return out
}

// DuplicateNumbers returns account numbers that occur more than once, in the
// order their second occurrence is first seen.
func DuplicateNumbers(accounts []Account) []int64 {
	counts := make(map[int64]int, len(accounts))
	var dups []int64
	for _, a := range accounts {
		counts[a.AccountNumber]++
		if counts[a.AccountNumber] == 2 {
			dups = append(dups, a.AccountNumber)
		}
	}
	return dups
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Package inventory normalizes raw cloud account records and answers the
// list, detail, tenant and aggregate queries served by the API.
//
// Every function here is pure: callers pass in the full collection on each
// call and nothing is cached between calls.
package inventory

// DefaultAccountCategory is applied when a record has no accountCategory.
const DefaultAccountCategory = "Execution"

// UnknownKey replaces empty values when counting in Stats.
const UnknownKey = "Unknown"

// RawRecord is one loosely-typed account record as decoded from the
// backing store. Values are whatever the JSON decoder produced.
type RawRecord map[string]any

type AccessInfo struct {
	ReadOnlyAD string `json:"readOnlyAD"`
	WriteAD    string `json:"writeAD"`
}

type Account struct {
	AccountType      string     `json:"accountType"`
	Tenant           string     `json:"tenant"`
	Team             string     `json:"team"`
	AccountNumber    int64      `json:"accountNumber"`
	Type             string     `json:"type"`
	Region           string     `json:"region"`
	BarclaysOU       string     `json:"barclaysOu"`
	AccountLimit     *int64     `json:"accountLimit"`
	Environment      string     `json:"environment"`
	ADGroupCoreRoles string     `json:"adGroupCoreRoles"`
	ServiceFirstITBA string     `json:"serviceFirstItba"`
	ServiceFirstITBS string     `json:"serviceFirstItbs"`
	Status           string     `json:"status"`
	AccountCategory  string     `json:"accountCategory"`
	Access           AccessInfo `json:"access"`
}

// AccountSummary is the reduced projection used by list views.
type AccountSummary struct {
	AccountNumber   int64  `json:"accountNumber"`
	Tenant          string `json:"tenant"`
	Team            string `json:"team"`
	Environment     string `json:"environment"`
	Status          string `json:"status"`
	Region          string `json:"region"`
	AccountCategory string `json:"accountCategory"`
}

func (a Account) Summary() AccountSummary {
	return AccountSummary{
		AccountNumber:   a.AccountNumber,
		Tenant:          a.Tenant,
		Team:            a.Team,
		Environment:     a.Environment,
		Status:          a.Status,
		Region:          a.Region,
		AccountCategory: a.AccountCategory,
	}
}

// Raw converts a normalized account back into the raw record shape, so it
// can be fed through Normalize again.
func (a Account) Raw() RawRecord {
	raw := RawRecord{
		"accountType":      a.AccountType,
		"tenant":           a.Tenant,
		"team":             a.Team,
		"accountNumber":    a.AccountNumber,
		"type":             a.Type,
		"region":           a.Region,
		"barclaysOu":       a.BarclaysOU,
		"environment":      a.Environment,
		"adGroupCoreRoles": a.ADGroupCoreRoles,
		"serviceFirstItba": a.ServiceFirstITBA,
		"serviceFirstItbs": a.ServiceFirstITBS,
		"status":           a.Status,
		"accountCategory":  a.AccountCategory,
		"access": map[string]any{
			"readOnlyAD": a.Access.ReadOnlyAD,
			"writeAD":    a.Access.WriteAD,
		},
	}
	if a.AccountLimit != nil {
		raw["accountLimit"] = *a.AccountLimit
	} else {
		raw["accountLimit"] = nil
	}
	return raw
}

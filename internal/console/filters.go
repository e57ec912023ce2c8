package console

import "github.com/yungbote/account-inventory/internal/inventory"

// AllOption disables a selector.
const AllOption = "All"

var (
	statusOptions      = []string{AllOption, "Active", "Decom"}
	environmentOptions = []string{AllOption, "prod", "UAT", "DEV"}
	categoryOptions    = []string{AllOption, "Execution", "Analytics"}
)

// Selector is a single-choice dropdown rendered as a cycling option list.
type Selector struct {
	Label   string
	Options []string
	index   int
}

func NewSelector(label string, options []string) Selector {
	if len(options) == 0 {
		options = []string{AllOption}
	}
	return Selector{Label: label, Options: options}
}

func (s Selector) Selected() string {
	if s.index < 0 || s.index >= len(s.Options) {
		return AllOption
	}
	return s.Options[s.index]
}

// Value is the query value, empty when the selector is on AllOption.
func (s Selector) Value() string {
	if v := s.Selected(); v != AllOption {
		return v
	}
	return ""
}

func (s Selector) Next() Selector {
	if len(s.Options) > 0 {
		s.index = (s.index + 1) % len(s.Options)
	}
	return s
}

func (s Selector) Prev() Selector {
	if len(s.Options) > 0 {
		s.index = (s.index - 1 + len(s.Options)) % len(s.Options)
	}
	return s
}

// WithOptions swaps the option list and keeps the current choice when it
// is still offered.
func (s Selector) WithOptions(options []string) Selector {
	cur := s.Selected()
	out := NewSelector(s.Label, options)
	for i, o := range out.Options {
		if o == cur {
			out.index = i
			break
		}
	}
	return out
}

const (
	selTenant = iota
	selStatus
	selEnvironment
	selCategory
	selCount
)

func defaultSelectors() []Selector {
	return []Selector{
		selTenant:      NewSelector("Tenant", []string{AllOption}),
		selStatus:      NewSelector("Status", statusOptions),
		selEnvironment: NewSelector("Environment", environmentOptions),
		selCategory:    NewSelector("Account Category", categoryOptions),
	}
}

func tenantOptions(tenants []string) []string {
	out := make([]string, 0, len(tenants)+1)
	out = append(out, AllOption)
	return append(out, tenants...)
}

func filterFrom(sel []Selector) inventory.Filter {
	return inventory.Filter{
		Tenant:          sel[selTenant].Value(),
		Status:          sel[selStatus].Value(),
		Environment:     sel[selEnvironment].Value(),
		AccountCategory: sel[selCategory].Value(),
	}
}

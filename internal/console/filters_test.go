package console

import "testing"

func TestSelectorCycles(t *testing.T) {
	s := NewSelector("Status", statusOptions)
	if s.Value() != "" || s.Selected() != "All" {
		t.Fatalf("default: want All/\"\" got=%q/%q", s.Selected(), s.Value())
	}
	s = s.Next()
	if s.Value() != "Active" {
		t.Fatalf("next: want=Active got=%q", s.Value())
	}
	s = s.Prev().Prev()
	if s.Value() != "Decom" {
		t.Fatalf("prev wraps: want=Decom got=%q", s.Value())
	}
}

func TestSelectorWithOptionsKeepsChoice(t *testing.T) {
	s := NewSelector("Tenant", tenantOptions([]string{"Acme", "Beta"})).Next().Next()
	if s.Value() != "Beta" {
		t.Fatalf("setup: want=Beta got=%q", s.Value())
	}
	s = s.WithOptions(tenantOptions([]string{"Alpha", "Beta"}))
	if s.Value() != "Beta" {
		t.Fatalf("kept choice: want=Beta got=%q", s.Value())
	}
	s = s.WithOptions(tenantOptions([]string{"Alpha"}))
	if s.Value() != "" {
		t.Fatalf("dropped choice falls back to All, got=%q", s.Value())
	}
}

func TestFilterFromSelectors(t *testing.T) {
	sel := defaultSelectors()
	sel[selEnvironment] = sel[selEnvironment].Next()
	sel[selCategory] = sel[selCategory].Next().Next()
	f := filterFrom(sel)
	if f.Tenant != "" || f.Status != "" || f.Environment != "prod" || f.AccountCategory != "Analytics" {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

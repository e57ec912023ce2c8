package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromKeepsWrappedError(t *testing.T) {
	inner := New(http.StatusNotFound, "account_not_found", errors.New("Account not found"))
	got := From(fmt.Errorf("get: %w", inner), "fallback")
	if got.Status != http.StatusNotFound || got.Code != "account_not_found" {
		t.Fatalf("From: want=404/account_not_found got=%d/%s", got.Status, got.Code)
	}
	if got.Error() != "Account not found" {
		t.Fatalf("message: got=%q", got.Error())
	}
}

func TestFromFallsBack(t *testing.T) {
	cause := errors.New("boom")
	got := From(cause, "list_accounts_failed")
	if got.Status != http.StatusInternalServerError || got.Code != "list_accounts_failed" {
		t.Fatalf("From: want=500/list_accounts_failed got=%d/%s", got.Status, got.Code)
	}
	if !errors.Is(got, cause) {
		t.Fatalf("From should wrap the cause")
	}
}

func TestErrorText(t *testing.T) {
	if got := New(http.StatusBadRequest, "bad", nil).Error(); got != "bad" {
		t.Fatalf("code fallback: got=%q", got)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status fallback: got=%q", got)
	}
}

func TestPublicHidesServerErrors(t *testing.T) {
	cause := errors.New("open /srv/data/accounts.json: permission denied")
	if got := New(http.StatusInternalServerError, "load_accounts_failed", cause).Public(); got != "internal server error" {
		t.Fatalf("5xx without message: want=%q got=%q", "internal server error", got)
	}
	e := New(http.StatusInternalServerError, "load_accounts_failed", cause).WithMessage("account data could not be loaded")
	if got := e.Public(); got != "account data could not be loaded" {
		t.Fatalf("5xx with message: got=%q", got)
	}
	if !errors.Is(e, cause) {
		t.Fatalf("WithMessage should keep the cause")
	}
	if got := New(http.StatusNotFound, "account_not_found", errors.New("Account not found")).Public(); got != "Account not found" {
		t.Fatalf("4xx: got=%q", got)
	}
}

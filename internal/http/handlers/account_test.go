package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/account-inventory/internal/http/response"
	"github.com/yungbote/account-inventory/internal/inventory"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/services"
	"github.com/yungbote/account-inventory/internal/store"
)

func newTestEngine(t *testing.T, src store.Source) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	h := NewAccountHandler(log, services.NewAccountService(log, src, services.AccountServiceOptions{}))
	r := gin.New()
	r.GET("/", NewMetaHandler().Root)
	r.GET("/accounts", h.ListAccounts)
	r.GET("/accounts/:accountNumber", h.GetAccount)
	r.GET("/tenants", h.ListTenants)
	r.GET("/stats", h.GetStats)
	return r
}

func fixtureSource() *store.Static {
	return &store.Static{Records: []inventory.RawRecord{
		{
			"accountNumber": 111111111111, "tenant": "Payments", "team": "Core", "status": "Active",
			"environment": "prod (eu-west-1)", "region": "eu-west-1",
			"access": map[string]any{"readOnlyAD": "pay-ro", "writeAD": "pay-rw"},
		},
		{"accountNumber": 222222222222, "tenant": "Payments", "status": "Decom", "environment": "UAT", "accountCategory": "Analytics"},
		{"accountNumber": 333333333333, "tenant": "Risk", "status": "Active", "environment": "DEV"},
	}}
}

func doGet(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestRootReturnsServiceInfo(t *testing.T) {
	rec := doGet(t, newTestEngine(t, fixtureSource()), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	var info ServiceInfo
	decodeBody(t, rec, &info)
	if info.Message != "Account Management API" || info.Version != "1.0.0" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestListAccountsFilters(t *testing.T) {
	r := newTestEngine(t, fixtureSource())

	cases := []struct {
		query string
		want  []int64
	}{
		{"", []int64{111111111111, 222222222222, 333333333333}},
		{"?tenant=pay", []int64{111111111111, 222222222222}},
		{"?status=active&environment=PROD", []int64{111111111111}},
		{"?account_category=analytics", []int64{222222222222}},
		{"?tenant=nobody", []int64{}},
	}
	for _, tc := range cases {
		rec := doGet(t, r, "/accounts"+tc.query)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status: want=200 got=%d", tc.query, rec.Code)
		}
		var got []inventory.AccountSummary
		decodeBody(t, rec, &got)
		nums := []int64{}
		for _, s := range got {
			nums = append(nums, s.AccountNumber)
		}
		if diff := cmp.Diff(tc.want, nums); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tc.query, diff)
		}
	}
}

func TestListAccountsEmptyIsArray(t *testing.T) {
	rec := doGet(t, newTestEngine(t, &store.Static{}), "/accounts")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty list body: want=[] got=%s", got)
	}
	rec = doGet(t, newTestEngine(t, &store.Static{}), "/tenants")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("empty tenants body: want=[] got=%s", got)
	}
}

func TestGetAccount(t *testing.T) {
	r := newTestEngine(t, fixtureSource())

	rec := doGet(t, r, "/accounts/111111111111")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", rec.Code)
	}
	var acct inventory.Account
	decodeBody(t, rec, &acct)
	if acct.Access.WriteAD != "pay-rw" || acct.AccountCategory != "Execution" {
		t.Fatalf("unexpected account: %+v", acct)
	}
}

func TestGetAccountErrors(t *testing.T) {
	r := newTestEngine(t, fixtureSource())

	rec := doGet(t, r, "/accounts/999")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing status: want=404 got=%d", rec.Code)
	}
	var env response.ErrorEnvelope
	decodeBody(t, rec, &env)
	if env.Error.Message != "Account not found" || env.Error.Code != "account_not_found" {
		t.Fatalf("missing envelope: %+v", env)
	}

	rec = doGet(t, r, "/accounts/abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-integer status: want=400 got=%d", rec.Code)
	}
	decodeBody(t, rec, &env)
	if env.Error.Code != "invalid_account_number" || env.Error.Message != `invalid account number "abc"` {
		t.Fatalf("non-integer envelope: %+v", env)
	}
	if strings.Contains(env.Error.Message, "strconv") {
		t.Fatalf("parse internals leaked: %q", env.Error.Message)
	}
}

func TestTenantsAndStats(t *testing.T) {
	r := newTestEngine(t, fixtureSource())

	var tenants []string
	decodeBody(t, doGet(t, r, "/tenants"), &tenants)
	if diff := cmp.Diff([]string{"Payments", "Risk"}, tenants); diff != "" {
		t.Fatalf("tenants (-want +got):\n%s", diff)
	}

	rec := doGet(t, r, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status: want=200 got=%d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"by_status":{"Active":2,"Decom":1}`) {
		t.Fatalf("stats by_status order: %s", body)
	}
	if !strings.Contains(body, `"by_environment":{"prod":1,"UAT":1,"DEV":1}`) {
		t.Fatalf("stats by_environment: %s", body)
	}
	if !strings.Contains(body, `"by_region":{"eu-west-1":1,"Unknown":2}`) {
		t.Fatalf("stats by_region: %s", body)
	}
}

func TestLoadFailureIs500(t *testing.T) {
	r := newTestEngine(t, &store.Static{Records: []inventory.RawRecord{{"accountNumber": "x1"}}})
	rec := doGet(t, r, "/stats")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", rec.Code)
	}
	var env response.ErrorEnvelope
	decodeBody(t, rec, &env)
	if env.Error.Code != "malformed_record" {
		t.Fatalf("code: want=malformed_record got=%q", env.Error.Code)
	}
	if env.Error.Message != "account data contains a malformed record" {
		t.Fatalf("message: want=generic got=%q", env.Error.Message)
	}
}

func TestSourceErrorDetailStaysServerSide(t *testing.T) {
	r := newTestEngine(t, &store.Static{Err: errors.New("open /srv/data/accounts.json: permission denied")})
	rec := doGet(t, r, "/accounts")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "/srv/data") || strings.Contains(body, "permission denied") {
		t.Fatalf("source detail leaked: %s", body)
	}
	var env response.ErrorEnvelope
	decodeBody(t, rec, &env)
	if env.Error.Code != "load_accounts_failed" || env.Error.Message != "account data could not be loaded" {
		t.Fatalf("envelope: got=%+v", env.Error)
	}
}

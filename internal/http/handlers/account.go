package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/account-inventory/internal/http/response"
	"github.com/yungbote/account-inventory/internal/inventory"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/services"
)

type AccountHandler struct {
	log      *logger.Logger
	accounts services.AccountService
}

func NewAccountHandler(log *logger.Logger, accounts services.AccountService) *AccountHandler {
	return &AccountHandler{
		log:      log.With("handler", "AccountHandler"),
		accounts: accounts,
	}
}

// GET /accounts?tenant=&status=&environment=&account_category=
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	f := inventory.Filter{
		Tenant:          c.Query("tenant"),
		Status:          c.Query("status"),
		Environment:     c.Query("environment"),
		AccountCategory: c.Query("account_category"),
	}
	accounts, err := h.accounts.List(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, err, "list_accounts_failed")
		return
	}
	if accounts == nil {
		accounts = []inventory.AccountSummary{}
	}
	response.RespondOK(c, accounts)
}

// GET /accounts/:accountNumber
func (h *AccountHandler) GetAccount(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("accountNumber"))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_account_number", fmt.Errorf("invalid account number %q", raw))
		return
	}
	acct, err := h.accounts.Get(c.Request.Context(), n)
	if err != nil {
		response.RespondAPIError(c, err, "get_account_failed")
		return
	}
	response.RespondOK(c, acct)
}

// GET /tenants
func (h *AccountHandler) ListTenants(c *gin.Context) {
	tenants, err := h.accounts.Tenants(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "list_tenants_failed")
		return
	}
	if tenants == nil {
		tenants = []string{}
	}
	response.RespondOK(c, tenants)
}

// GET /stats
func (h *AccountHandler) GetStats(c *gin.Context) {
	stats, err := h.accounts.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err, "compute_stats_failed")
		return
	}
	response.RespondOK(c, stats)
}

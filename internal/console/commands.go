package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yungbote/account-inventory/internal/client"
	"github.com/yungbote/account-inventory/internal/inventory"
)

// API is the slice of the inventory client the console uses.
type API interface {
	ListAccounts(ctx context.Context, f inventory.Filter) ([]inventory.AccountSummary, error)
	GetAccount(ctx context.Context, accountNumber int64) (inventory.Account, error)
	Tenants(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (inventory.Stats, error)
	BaseURL() string
	Invalidate()
}

var _ API = (*client.Client)(nil)

type statsMsg struct {
	stats inventory.Stats
	err   error
}

type tenantsMsg struct {
	tenants []string
	err     error
}

type accountsMsg struct {
	filter   inventory.Filter
	accounts []inventory.AccountSummary
	err      error
}

type accountMsg struct {
	accountNumber int64
	account       inventory.Account
	err           error
}

func fetchStats(api API) tea.Cmd {
	return func() tea.Msg {
		st, err := api.Stats(context.Background())
		return statsMsg{stats: st, err: err}
	}
}

func fetchTenants(api API) tea.Cmd {
	return func() tea.Msg {
		tenants, err := api.Tenants(context.Background())
		return tenantsMsg{tenants: tenants, err: err}
	}
}

func fetchAccounts(api API, f inventory.Filter) tea.Cmd {
	return func() tea.Msg {
		accounts, err := api.ListAccounts(context.Background(), f)
		return accountsMsg{filter: f, accounts: accounts, err: err}
	}
}

func fetchAccount(api API, accountNumber int64) tea.Cmd {
	return func() tea.Msg {
		acct, err := api.GetAccount(context.Background(), accountNumber)
		return accountMsg{accountNumber: accountNumber, account: acct, err: err}
	}
}

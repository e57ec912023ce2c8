// Package console is the terminal front end for the inventory API: a stats
// row, filter selectors and an accounts table, plus a detail screen for a
// single account.
package console

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yungbote/account-inventory/internal/inventory"
	"github.com/yungbote/account-inventory/internal/platform/logger"
)

const (
	srcStats = iota
	srcTenants
	srcAccounts
	srcCount
)

type Model struct {
	api    API
	log    *logger.Logger
	styles Styles

	view   View
	width  int
	height int

	spinner spinner.Model
	pending int

	stats    *inventory.Stats
	tenants  []string
	accounts []inventory.AccountSummary
	loaded   bool

	selectors []Selector
	focus     int
	table     table.Model

	detail    *inventory.Account
	detailErr error

	errs [srcCount]error
}

func New(api API, log *logger.Logger) Model {
	if log == nil {
		log = logger.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	t := table.New(
		table.WithColumns(tableColumns()),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return Model{
		api:       api,
		log:       log.With("component", "console"),
		styles:    DefaultStyles(),
		view:      ListView{},
		spinner:   sp,
		selectors: defaultSelectors(),
		table:     t,
		pending:   3,
	}
}

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Account Number", Width: 15},
		{Title: "Tenant", Width: 18},
		{Title: "Team", Width: 16},
		{Title: "Environment", Width: 18},
		{Title: "Status", Width: 8},
		{Title: "Region", Width: 12},
		{Title: "Account Category", Width: 16},
	}
}

// CurrentView exposes the navigation state.
func (m Model) CurrentView() View { return m.view }

func (m Model) Filter() inventory.Filter { return filterFrom(m.selectors) }

// Init fetches stats, tenants and accounts. New counts them as pending.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchStats(m.api),
		fetchTenants(m.api),
		fetchAccounts(m.api, m.Filter()),
	)
}

func (m *Model) startLoading(n int) tea.Cmd {
	wasIdle := m.pending == 0
	m.pending += n
	if wasIdle {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) doneLoading() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m Model) Loading() bool { return m.pending > 0 }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(max(msg.Width-2, 20))
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statsMsg:
		m.doneLoading()
		m.errs[srcStats] = m.logErr("stats", msg.err)
		if msg.err == nil {
			st := msg.stats
			m.stats = &st
		}
		return m, nil

	case tenantsMsg:
		m.doneLoading()
		m.errs[srcTenants] = m.logErr("tenants", msg.err)
		if msg.err == nil {
			m.tenants = msg.tenants
			prev := m.selectors[selTenant].Value()
			m.selectors[selTenant] = m.selectors[selTenant].WithOptions(tenantOptions(msg.tenants))
			if prev != "" && m.selectors[selTenant].Value() == "" {
				// the selected tenant is gone; the table must follow the reset
				cmd := m.refetchAccounts()
				return m, cmd
			}
		}
		return m, nil

	case accountsMsg:
		m.doneLoading()
		if msg.filter != m.Filter() {
			return m, nil
		}
		m.errs[srcAccounts] = m.logErr("accounts", msg.err)
		if msg.err == nil {
			m.accounts = msg.accounts
			m.loaded = true
			m.table.SetRows(accountRows(msg.accounts))
			if m.table.Cursor() >= len(msg.accounts) {
				m.table.SetCursor(0)
			}
		}
		return m, nil

	case accountMsg:
		m.doneLoading()
		dv, ok := m.view.(DetailView)
		if !ok || dv.AccountNumber != msg.accountNumber {
			return m, nil
		}
		m.detailErr = m.logErr("account", msg.err)
		if msg.err == nil {
			acct := msg.account
			m.detail = &acct
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		if _, ok := m.view.(DetailView); ok {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.focus = (m.focus + 1) % selCount
		return m, nil
	case "shift+tab":
		m.focus = (m.focus - 1 + selCount) % selCount
		return m, nil
	case "right", "l":
		m.selectors[m.focus] = m.selectors[m.focus].Next()
		cmd := m.refetchAccounts()
		return m, cmd
	case "left", "h":
		m.selectors[m.focus] = m.selectors[m.focus].Prev()
		cmd := m.refetchAccounts()
		return m, cmd
	case "r":
		m.api.Invalidate()
		tick := m.startLoading(3)
		return m, tea.Batch(tick, fetchStats(m.api), fetchTenants(m.api), fetchAccounts(m.api, m.Filter()))
	case "enter":
		if len(m.accounts) == 0 {
			return m, nil
		}
		i := m.table.Cursor()
		if i < 0 || i >= len(m.accounts) {
			return m, nil
		}
		return m.open(m.accounts[i].AccountNumber)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "b":
		m.view = Back(m.view)
		m.detail = nil
		m.detailErr = nil
		return m, nil
	case "r":
		dv := m.view.(DetailView)
		m.api.Invalidate()
		return m.open(dv.AccountNumber)
	}
	return m, nil
}

func (m Model) open(accountNumber int64) (tea.Model, tea.Cmd) {
	m.view = Select(m.view, accountNumber)
	m.detail = nil
	m.detailErr = nil
	tick := m.startLoading(1)
	return m, tea.Batch(tick, fetchAccount(m.api, accountNumber))
}

func (m *Model) refetchAccounts() tea.Cmd {
	tick := m.startLoading(1)
	return tea.Batch(tick, fetchAccounts(m.api, m.Filter()))
}

func (m Model) logErr(what string, err error) error {
	if err != nil {
		m.log.Warn("Fetch failed", "what", what, "api", m.api.BaseURL(), "error", err)
	}
	return err
}

func accountRows(accounts []inventory.AccountSummary) []table.Row {
	rows := make([]table.Row, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, table.Row{
			strconv.FormatInt(a.AccountNumber, 10),
			a.Tenant,
			a.Team,
			a.Environment,
			a.Status,
			a.Region,
			a.AccountCategory,
		})
	}
	return rows
}

package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yungbote/account-inventory/internal/client"
	"github.com/yungbote/account-inventory/internal/inventory"
)

const (
	listTitle   = "AWS Account Management"
	detailTitle = "Account Details"
	startHint   = "Start the API server: go run ./cmd/server"
)

type field struct {
	label string
	value string
}

func (m Model) View() string {
	if _, ok := m.view.(DetailView); ok {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(listTitle) + "\n\n")

	if banner := m.banner(m.firstErr()); banner != "" {
		sb.WriteString(banner + "\n\n")
	}

	sb.WriteString(m.renderStats() + "\n\n")

	sb.WriteString(m.styles.Subtitle.Render("Filter Accounts") + "\n")
	sb.WriteString(m.renderSelectors() + "\n\n")

	switch {
	case !m.loaded && m.Loading():
		sb.WriteString(m.spinner.View() + " Loading accounts...\n")
	case !m.loaded:
		sb.WriteString(m.styles.Muted.Render("No account data.") + "\n")
	default:
		sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Accounts (%d found)", len(m.accounts))))
		if m.Loading() {
			sb.WriteString(" " + m.spinner.View())
		}
		sb.WriteString("\n")
		if len(m.accounts) == 0 {
			sb.WriteString(m.styles.Muted.Render("No accounts found matching the filters.") + "\n")
		} else {
			sb.WriteString(m.table.View() + "\n")
		}
	}

	sb.WriteString("\n" + m.styles.Hint.Render("↑/↓ move • enter details • tab/shift+tab filter • ←/→ change • r refresh • q quit"))
	return sb.String()
}

func (m Model) renderStats() string {
	total, active, decom := "-", "-", "-"
	if m.stats != nil {
		total = strconv.Itoa(m.stats.TotalAccounts)
		active = strconv.Itoa(m.stats.ByStatus.Get("Active"))
		decom = strconv.Itoa(m.stats.ByStatus.Get("Decom"))
	}
	tenants := "-"
	if m.tenants != nil {
		tenants = strconv.Itoa(len(m.tenants))
	}
	boxes := []string{
		m.styles.Metric.Render("Total Accounts: " + total),
		m.styles.Metric.Render("Active Accounts: " + active),
		m.styles.Metric.Render("Decommissioned: " + decom),
		m.styles.Metric.Render("Unique Tenants: " + tenants),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) renderSelectors() string {
	parts := make([]string, 0, len(m.selectors))
	for i, s := range m.selectors {
		label := s.Label + ":"
		value := s.Selected()
		if i == m.focus {
			parts = append(parts, m.styles.Focused.Render("> "+label)+" "+m.styles.Active.Render("‹"+value+"›"))
			continue
		}
		parts = append(parts, "  "+m.styles.Label.Render(label)+" "+value)
	}
	return strings.Join(parts, "   ")
}

func (m Model) viewDetail() string {
	dv := m.view.(DetailView)
	var sb strings.Builder
	sb.WriteString(m.styles.Muted.Render("← esc: Back to Accounts") + "\n\n")
	sb.WriteString(m.styles.Title.Render(detailTitle) + "\n")

	switch {
	case m.detailErr != nil:
		if client.IsUnreachable(m.detailErr) {
			sb.WriteString("\n" + m.banner(m.detailErr) + "\n")
		} else {
			sb.WriteString("\n" + m.styles.Warning.Render("Failed to load account details: "+detailErrText(m.detailErr)) + "\n")
		}
		return sb.String()
	case m.detail == nil:
		sb.WriteString("\n" + m.spinner.View() + fmt.Sprintf(" Loading account %d...", dv.AccountNumber) + "\n")
		return sb.String()
	}

	a := m.detail
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%s - %d", a.Tenant, a.AccountNumber)) + "\n\n")

	basic := m.renderSection("Basic Information", []field{
		{"Account Type", a.AccountType},
		{"Account Number", strconv.FormatInt(a.AccountNumber, 10)},
		{"Tenant", a.Tenant},
		{"Team", a.Team},
		{"Type", a.Type},
		{"Region", a.Region},
		{"Status", a.Status},
		{"Account Category", a.AccountCategory},
	})
	config := []field{
		{"Barclays OU", a.BarclaysOU},
		{"Environment", a.Environment},
		{"AD Group Core Roles", a.ADGroupCoreRoles},
		{"Service First ITBA", a.ServiceFirstITBA},
		{"Service First ITBS", a.ServiceFirstITBS},
	}
	if a.AccountLimit != nil && *a.AccountLimit != 0 {
		config = append(config, field{"Account Limit", strconv.FormatInt(*a.AccountLimit, 10)})
	}
	configuration := m.renderSection("Configuration", config)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, basic, "    ", configuration) + "\n\n")

	sb.WriteString(m.renderSection("Access Information", []field{
		{"Read-Only AD", a.Access.ReadOnlyAD},
		{"Write AD", a.Access.WriteAD},
	}))
	sb.WriteString("\n\n" + m.styles.Hint.Render("esc back • r refresh • q quit"))
	return sb.String()
}

func (m Model) renderSection(title string, fields []field) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Section.Render(title) + "\n")
	for _, f := range fields {
		sb.WriteString(m.styles.Label.Render(f.label+":") + " " + m.styles.Value.Render(f.value) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) firstErr() error {
	for _, err := range m.errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m Model) banner(err error) string {
	if err == nil {
		return ""
	}
	if client.IsUnreachable(err) {
		msg := fmt.Sprintf("Cannot connect to the API. Please make sure the API server is running on %s", m.api.BaseURL())
		return m.styles.Banner.Render(msg + "\n" + startHint)
	}
	return m.styles.Banner.Render("Request failed: " + err.Error())
}

func detailErrText(err error) string {
	var herr *client.HTTPError
	if errors.As(err, &herr) && herr.Message != "" {
		return herr.Message
	}
	if errors.Is(err, inventory.ErrNotFound) || errors.Is(err, client.ErrNotFound) {
		return "Account not found"
	}
	return err.Error()
}

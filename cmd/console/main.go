package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/yungbote/account-inventory/internal/client"
	"github.com/yungbote/account-inventory/internal/console"
	"github.com/yungbote/account-inventory/internal/platform/envutil"
	"github.com/yungbote/account-inventory/internal/platform/logger"
)

var (
	apiURL     string
	cacheTTL   time.Duration
	timeout    time.Duration
	maxRetries int
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Browse the account inventory from the terminal",
	Long: `Interactive terminal view over the account inventory API.

The list screen shows summary counts, filter selectors and the matching
accounts. Press enter on a row for the account detail screen.

Environment:
  INVENTORY_API_URL      default for --api-url
  INVENTORY_CACHE_TTL    default for --cache-ttl`,
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api-url", envutil.String("INVENTORY_API_URL", client.DefaultBaseURL), "Base URL of the inventory API")
	rootCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", envutil.Duration("INVENTORY_CACHE_TTL", client.DefaultCacheTTL), "How long API responses are reused (negative disables caching)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", envutil.Duration("INVENTORY_API_TIMEOUT", client.DefaultTimeout), "Per-request timeout")
	rootCmd.Flags().IntVar(&maxRetries, "retries", envutil.Int("INVENTORY_API_MAX_RETRIES", 1), "Retries for unreachable or failing API calls")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (the terminal is owned by the UI)")
}

func runConsole(cmd *cobra.Command, args []string) error {
	log := logger.NewNop()
	if logFile != "" {
		l, err := logger.NewFile(logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		log = l
	}
	defer log.Sync()

	c, err := client.New(client.Options{
		BaseURL:    apiURL,
		CacheTTL:   cacheTTL,
		Timeout:    timeout,
		MaxRetries: maxRetries,
	})
	if err != nil {
		return err
	}
	log.Info("Console starting", "api", c.BaseURL(), "cache_ttl", cacheTTL.String())

	if _, err := tea.NewProgram(console.New(c, log), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"
)

// options are the global flags. Defaults come from the environment.
type options struct {
	URL     string        `env:"VCLEDGER_URL"     envDefault:"http://localhost:8080"`
	Tenant  string        `env:"VCLEDGER_TENANT"`
	Token   string        `env:"VCLEDGER_TOKEN"`
	Timeout time.Duration `env:"VCLEDGER_TIMEOUT" envDefault:"10s"`
	JSON    bool

	IdempotencyKey string
}

func main() {
	opts := &options{}
	if err := env.Parse(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(opts).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vcledger",
		Short:         "Virtual currency ledger CLI",
		Long:          `A command line interface for the per-guild virtual currency ledger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.URL, "url", opts.URL, "Base URL of the ledger API")
	flags.StringVar(&opts.Tenant, "tenant", opts.Tenant, "Guild id the command runs against")
	flags.StringVar(&opts.Token, "token", opts.Token, "Bearer token for an auth-enabled server")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Request timeout")
	flags.BoolVar(&opts.JSON, "json", false, "Print raw JSON responses")
	flags.StringVar(&opts.IdempotencyKey, "idempotency-key", "", "Key for a write; reuse it to retry safely (default: a fresh key per run)")

	rootCmd.AddCommand(
		createCmd(opts),
		deleteCmd(opts),
		listCmd(opts),
		giveCmd(opts),
		payCmd(opts),
		burnCmd(opts),
		balCmd(opts),
		treasuryCmd(opts),
		historyCmd(opts),
		reverseCmd(opts),
		auditCmd(opts),
		tokenCmd(opts),
	)

	return rootCmd
}

// printJSON writes v indented.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}

package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/auth"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// render prints v as JSON when --json is set, otherwise calls human.
func render(cmd *cobra.Command, opts *options, v any, human func()) error {
	if opts.JSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	human()
	return nil
}

func postedAmount(txn *dto.TransactionResponse) string {
	if len(txn.Entries) == 0 {
		return "0"
	}
	return txn.Entries[0].Amount
}

func createCmd(opts *options) *cobra.Command {
	var (
		decimals int32
		supply   string
	)

	cmd := &cobra.Command{
		Use:   "create SYMBOL NAME",
		Short: "Create an asset and issue its initial supply to the treasury",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := parseAmount(supply)
			if err != nil {
				return err
			}

			var asset dto.AssetResponse
			req := dto.CreateAssetRequest{Symbol: args[0], Name: args[1], Decimals: decimals, InitialSupply: initial}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/assets", nil, req, &asset); err != nil {
				return err
			}

			return render(cmd, opts, asset, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) with %d decimals and %s in the treasury\n",
					asset.Symbol, asset.Name, asset.Decimals, initial.StringFixed(asset.Decimals))
			})
		},
	}

	cmd.Flags().Int32Var(&decimals, "decimals", domain.DefaultDecimals, "Fractional digits of the asset (0-18)")
	cmd.Flags().StringVar(&supply, "supply", "0", "Initial supply issued to the treasury")
	return cmd
}

func deleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SYMBOL",
		Short: "Delete an asset whose holders all have zero balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodDelete, "/assets/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the guild's assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var assets []dto.AssetResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/assets", nil, nil, &assets); err != nil {
				return err
			}

			return render(cmd, opts, assets, func() {
				if len(assets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No assets")
					return
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SYMBOL\tNAME\tDECIMALS")
				for _, a := range assets {
					fmt.Fprintf(tw, "%s\t%s\t%d\n", a.Symbol, a.Name, a.Decimals)
				}
				_ = tw.Flush()
			})
		},
	}
}

func giveCmd(opts *options) *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   "give SYMBOL HOLDER AMOUNT",
		Short: "Issue coins from the treasury to a holder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			var txn dto.TransactionResponse
			req := dto.GiveRequest{To: args[1], Amount: amount, Memo: memo}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/assets/"+url.PathEscape(args[0])+"/give", nil, req, &txn); err != nil {
				return err
			}

			return render(cmd, opts, txn, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Gave %s %s to %s (%s)\n", postedAmount(&txn), txn.Symbol, args[1], txn.ID)
			})
		},
	}

	cmd.Flags().StringVar(&memo, "memo", "", "Note stored with the transaction")
	return cmd
}

func payCmd(opts *options) *cobra.Command {
	var from, memo string

	cmd := &cobra.Command{
		Use:   "pay SYMBOL TO AMOUNT",
		Short: "Pay coins from one holder to another",
		Long:  "Pay coins from one holder to another. With an auth-enabled server the token's user pays and --from is ignored.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			var txn dto.TransactionResponse
			req := dto.PayRequest{From: from, To: args[1], Amount: amount, Memo: memo}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/assets/"+url.PathEscape(args[0])+"/pay", nil, req, &txn); err != nil {
				return err
			}

			return render(cmd, opts, txn, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Paid %s %s to %s (%s)\n", postedAmount(&txn), txn.Symbol, args[1], txn.ID)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Paying holder")
	cmd.Flags().StringVar(&memo, "memo", "", "Note stored with the transaction")
	return cmd
}

func burnCmd(opts *options) *cobra.Command {
	var from, memo string

	cmd := &cobra.Command{
		Use:   "burn SYMBOL AMOUNT",
		Short: "Destroy coins held by a holder, or by the treasury when --from is empty",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			var txn dto.TransactionResponse
			req := dto.BurnRequest{From: from, Amount: amount, Memo: memo}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/assets/"+url.PathEscape(args[0])+"/burn", nil, req, &txn); err != nil {
				return err
			}

			source := from
			if source == "" {
				source = "the treasury"
			}
			return render(cmd, opts, txn, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Burned %s %s from %s (%s)\n", postedAmount(&txn), txn.Symbol, source, txn.ID)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Holder to burn from")
	cmd.Flags().StringVar(&memo, "memo", "", "Note stored with the transaction")
	return cmd
}

func balCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bal HOLDER [SYMBOL]",
		Short: "Show a holder's balances",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(opts)
			path := "/holders/" + url.PathEscape(args[0]) + "/balances"

			if len(args) == 2 {
				var holding dto.HoldingResponse
				if err := client.do(cmd.Context(), http.MethodGet, path+"/"+url.PathEscape(args[1]), nil, nil, &holding); err != nil {
					return err
				}
				return render(cmd, opts, holding, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has %s %s\n", args[0], holding.Balance, holding.Symbol)
				})
			}

			var holdings []dto.HoldingResponse
			if err := client.do(cmd.Context(), http.MethodGet, path, nil, nil, &holdings); err != nil {
				return err
			}
			return render(cmd, opts, holdings, func() {
				if len(holdings) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s holds nothing\n", args[0])
					return
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SYMBOL\tBALANCE")
				for _, h := range holdings {
					fmt.Fprintf(tw, "%s\t%s\n", h.Symbol, h.Balance)
				}
				_ = tw.Flush()
			})
		},
	}
}

func treasuryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "treasury",
		Short: "Show the treasury and burned totals of every asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var positions []dto.TreasuryResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/treasury", nil, nil, &positions); err != nil {
				return err
			}

			return render(cmd, opts, positions, func() {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SYMBOL\tTREASURY\tBURNED")
				for _, p := range positions {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Symbol, p.Treasury, p.Burned)
				}
				_ = tw.Flush()
			})
		},
	}
}

func historyCmd(opts *options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history HOLDER",
		Short: "List a holder's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if limit > 0 {
				query.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				query.Set("offset", strconv.Itoa(offset))
			}

			var entries []dto.HistoryEntryResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/holders/"+url.PathEscape(args[0])+"/transactions", query, nil, &entries); err != nil {
				return err
			}

			return render(cmd, opts, entries, func() {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "TIME\tKIND\tAMOUNT\tBALANCE\tMEMO\tTRANSACTION")
				for _, e := range entries {
					sign := "+"
					if e.Direction == string(domain.Debit) {
						sign = "-"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s%s %s\t%s\t%s\t%s\n",
						e.CreatedAt.Format("2006-01-02 15:04"), e.Kind, sign, e.Amount, e.Symbol,
						e.BalanceAfter, truncate(e.Memo, 30), e.TransactionID)
				}
				_ = tw.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show (server default when 0)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	return cmd
}

func reverseCmd(opts *options) *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   "reverse TRANSACTION_ID",
		Short: "Post a correction that undoes a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var txn dto.TransactionResponse
			req := dto.ReverseRequest{Memo: memo}
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/transactions/"+url.PathEscape(args[0])+"/reverse", nil, req, &txn); err != nil {
				return err
			}

			return render(cmd, opts, txn, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Reversed %s with %s (%s %s)\n", args[0], txn.ID, postedAmount(&txn), txn.Symbol)
			})
		},
	}

	cmd.Flags().StringVar(&memo, "memo", "", "Note stored with the correction")
	return cmd
}

func auditCmd(opts *options) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Recompute balances from entries; --confirm repairs drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if confirm {
				query.Set("confirm", "true")
			}

			var report dto.AuditResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/audit", query, nil, &report); err != nil {
				return err
			}

			return render(cmd, opts, report, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Checked %d accounts and %d transactions\n", report.AccountsChecked, report.TransactionsChecked)
				if report.Clean {
					fmt.Fprintln(out, "Ledger is consistent")
					return
				}
				fmt.Fprintf(out, "Drifted accounts: %d\n", len(report.Drifts))
				fmt.Fprintf(out, "Unbalanced transactions: %d\n", len(report.UnbalancedTransactions))
				fmt.Fprintf(out, "Non-conserved assets: %d\n", len(report.NonConservedAssets))
				if report.Repaired {
					fmt.Fprintln(out, "Balances repaired")
				} else if len(report.Drifts) > 0 {
					fmt.Fprintln(out, "Run again with --confirm to repair balances")
				}
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Rewrite drifted balances")
	return cmd
}

func tokenCmd(opts *options) *cobra.Command {
	var (
		secret string
		user   string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a guild member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("secret is required: pass --secret or set JWT_SECRET")
			}
			if user == "" {
				return fmt.Errorf("--user is required")
			}
			if !domain.Role(role).IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := auth.NewJWTManager(secret, ttl).Generate(&domain.Caller{
				Tenant: opts.Tenant,
				UserID: user,
				Role:   domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret shared with the server")
	cmd.Flags().StringVar(&user, "user", "", "Discord user id")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleMember), "admin or member")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/example/ledgerview/internal/input"
	"github.com/example/ledgerview/internal/server"
	"github.com/example/ledgerview/pkg/account"
	"github.com/example/ledgerview/pkg/chart"
	"github.com/example/ledgerview/pkg/transaction"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		txPath, accountID string
		typ, from, to, q  string
		sortBy, dir       string
		ascending         bool
		page, size        int
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize the transactions of one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			raws, err := input.LoadTransactions(txPath)
			if err != nil {
				return err
			}

			filter := transaction.Filter{Type: typ, Query: q}
			if filter.From, err = parseDay(from); err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			if filter.To, err = parseDay(to); err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			n := transaction.NewNormalizer(a.cfg.MaskToken, a.cfg.Placeholder)
			list := filter.Apply(n.NormalizeAll(transaction.Relevant(raws, accountID), accountID))
			transaction.Sort(list, sortBy, !ascending)

			out := &transaction.List{Account: accountID, Transactions: []transaction.Normalized{}}
			for _, tx := range list {
				out.Add(tx)
			}
			if dir != "" {
				d, err := transaction.ParseDirection(dir)
				if err != nil {
					return fmt.Errorf("invalid --direction: %w", err)
				}
				out = out.ByDirection(d)
			}

			a.log.Debug().Str("account_id", accountID).Int("received", len(raws)).Int("kept", out.Total).Msg("Normalized transactions")

			if page > 0 {
				return writeJSON(cmd.OutOrStdout(), transaction.Paginate(out.Transactions, page, size))
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&txPath, "transactions", "", "JSON file with the raw transactions")
	cmd.Flags().StringVar(&accountID, "account", "", "id of the account the transactions are viewed from")
	cmd.Flags().StringVar(&typ, "type", "", "type filter (deposit, withdrawal, transfer, payment, refund or their French names)")
	cmd.Flags().StringVar(&from, "from", "", "first day to keep (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day to keep (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q, "q", "", "search in names, label and account type")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort column: id, date, label or amount")
	cmd.Flags().BoolVar(&ascending, "asc", false, "sort ascending")
	cmd.Flags().StringVar(&dir, "direction", "", "keep only credit or debit transactions")
	cmd.Flags().IntVar(&page, "page", 0, "page to print (0 prints everything)")
	cmd.Flags().IntVar(&size, "size", transaction.DefaultPageSize, "rows per page")
	_ = cmd.MarkFlagRequired("transactions")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newSeriesCmd(a *app) *cobra.Command {
	var accountsPath, txPath, accountID string
	var points int

	cmd := &cobra.Command{
		Use:   "series",
		Short: "Reconstruct the balance history of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := a.loadAccount(accountsPath, accountID)
			if err != nil {
				return err
			}
			raws, err := input.LoadTransactions(txPath)
			if err != nil {
				return err
			}
			if points <= 0 {
				points = a.cfg.SeriesPoints
			}

			entries := chart.EntriesFromRaw(raws, acc.ID, time.Now())
			series := chart.BalanceSeries(acc, entries, points)
			a.log.Debug().Str("account_id", acc.ID).Int("entries", len(entries)).Int("points", points).Msg("Built balance series")
			return writeJSON(cmd.OutOrStdout(), series)
		},
	}

	cmd.Flags().StringVar(&accountsPath, "accounts", "", "JSON file with the account snapshots")
	cmd.Flags().StringVar(&txPath, "transactions", "", "JSON file with the raw transactions")
	cmd.Flags().StringVar(&accountID, "account", "", "id of the charted account")
	cmd.Flags().IntVar(&points, "points", 0, "number of balance points (defaults to series_points)")
	_ = cmd.MarkFlagRequired("accounts")
	_ = cmd.MarkFlagRequired("transactions")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newDonutCmd(a *app) *cobra.Command {
	opts := &aggregateOptions{}
	cmd := &cobra.Command{
		Use:   "donut",
		Short: "Split transactions into revenue and expense totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, acc, err := opts.load(a)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chart.Donut(entries, acc))
		},
	}
	opts.bind(cmd)
	return cmd
}

func newMonthlyCmd(a *app) *cobra.Command {
	opts := &aggregateOptions{}
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Group income and expenses by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, acc, err := opts.load(a)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), chart.Monthly(entries, acc))
		},
	}
	opts.bind(cmd)
	return cmd
}

func newAccountsCmd(a *app) *cobra.Command {
	var accountsPath string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Map account snapshots and total their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			comptes, err := input.LoadAccounts(accountsPath)
			if err != nil {
				return err
			}
			accounts := a.mapper().MapAll(comptes)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"accounts":     accounts,
				"totalBalance": account.TotalBalance(accounts),
			})
		},
	}

	cmd.Flags().StringVar(&accountsPath, "accounts", "", "JSON file with the account snapshots")
	_ = cmd.MarkFlagRequired("accounts")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart and transaction endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	return cmd
}

// aggregateOptions are the flags shared by the donut and monthly commands
type aggregateOptions struct {
	txPath       string
	accountsPath string
	accountID    string
}

func (o *aggregateOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.txPath, "transactions", "", "JSON file with the raw transactions")
	cmd.Flags().StringVar(&o.accountsPath, "accounts", "", "JSON file with the account snapshots")
	cmd.Flags().StringVar(&o.accountID, "account", "", "restrict to this account (requires --accounts)")
	_ = cmd.MarkFlagRequired("transactions")
	cmd.MarkFlagsRequiredTogether("accounts", "account")
}

func (o *aggregateOptions) load(a *app) ([]chart.Entry, *account.Account, error) {
	raws, err := input.LoadTransactions(o.txPath)
	if err != nil {
		return nil, nil, err
	}
	if o.accountID == "" {
		return chart.EntriesFromRaw(raws, "", time.Now()), nil, nil
	}
	acc, err := a.loadAccount(o.accountsPath, o.accountID)
	if err != nil {
		return nil, nil, err
	}
	return chart.EntriesFromRaw(raws, acc.ID, time.Now()), &acc, nil
}

func (a *app) mapper() account.Mapper {
	return account.Mapper{TypeLabels: a.cfg.TypeLabels(), Currency: a.cfg.Currency}
}

func (a *app) loadAccount(path, id string) (account.Account, error) {
	comptes, err := input.LoadAccounts(path)
	if err != nil {
		return account.Account{}, err
	}
	acc, ok := account.Find(a.mapper().MapAll(comptes), id)
	if !ok {
		return account.Account{}, fmt.Errorf("account %q not found in %s", id, path)
	}
	return acc, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

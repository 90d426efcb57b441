package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amirasaad/corebank/infra/initializer"
	"github.com/amirasaad/corebank/pkg/app"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  register <name> <email>
  open <customer_id> [currency]
  deposit <account_id> <amount>
  withdraw <account_id> <amount>
  transfer <from_account_id> <to_account_id> <amount>
  status <account_id> <ACTIVE|FROZEN|CLOSED>
  balance <account_id>
  history <account_id> [limit] [offset]`

var errUsage = errors.New(usage)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fail("Failed to load configuration:", err)
	}
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fail("Failed to initialize dependencies:", err)
	}
	defer cleanup()
	a, err := app.New(deps)
	if err != nil {
		cleanup()
		fail("Failed to build application:", err)
	}

	if err := run(context.Background(), a, os.Stdout, os.Args[1], os.Args[2:]); err != nil {
		cleanup()
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
			os.Exit(2)
		}
		fail("Error:", err)
	}
}

func fail(msg string, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg, err)
	os.Exit(1)
}

func run(ctx context.Context, a *app.App, out io.Writer, cmd string, args []string) error {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	switch cmd {
	case "register":
		if len(args) < 2 {
			return errUsage
		}
		c, err := a.CustomerService.Register(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s customer %s (%s)\n", ok("Registered"), bold(c.ID), c.Email)
	case "open":
		if len(args) < 1 {
			return errUsage
		}
		customerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid customer id: %w", err)
		}
		currency := ""
		if len(args) > 1 {
			currency = args[1]
		}
		acc, err := a.AccountService.Open(ctx, customerID, currency)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s account %s in %s\n", ok("Opened"), bold(acc.ID), acc.Currency)
	case "deposit", "withdraw":
		if len(args) < 2 {
			return errUsage
		}
		id, amount, err := parseAccountAmount(args[0], args[1])
		if err != nil {
			return err
		}
		var tx *account.Transaction
		if cmd == "deposit" {
			tx, err = a.TransactionService.Deposit(ctx, id, amount)
		} else {
			tx, err = a.TransactionService.Withdraw(ctx, id, amount)
		}
		if err != nil {
			return err
		}
		printTransaction(out, tx, ok, bad)
		return printBalance(ctx, a, out, id, bold)
	case "transfer":
		if len(args) < 3 {
			return errUsage
		}
		from, amount, err := parseAccountAmount(args[0], args[2])
		if err != nil {
			return err
		}
		to, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid target account id: %w", err)
		}
		tx, err := a.TransactionService.Transfer(ctx, from, to, amount)
		if err != nil {
			return err
		}
		printTransaction(out, tx, ok, bad)
		return printBalance(ctx, a, out, from, bold)
	case "status":
		if len(args) < 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		acc, err := a.AccountService.ChangeStatus(ctx, id, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Account %s is now %s\n", bold(acc.ID), bold(acc.Status))
	case "balance":
		if len(args) < 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		return printBalance(ctx, a, out, id, bold)
	case "history":
		if len(args) < 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		limit, offset := 0, 0
		if len(args) > 1 {
			if limit, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid limit: %w", err)
			}
		}
		if len(args) > 2 {
			if offset, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid offset: %w", err)
			}
		}
		txs, err := a.TransactionService.ListTransactions(ctx, id, limit, offset)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Fprintln(out, "No transactions")
		}
		for _, tx := range txs {
			printTransaction(out, tx, ok, bad)
		}
	default:
		return errUsage
	}
	return nil
}

func parseAccountAmount(rawID, rawAmount string) (uuid.UUID, decimal.Decimal, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid account id: %w", err)
	}
	amount, err := money.ParseAmount(rawAmount)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	return id, amount, nil
}

func printTransaction(out io.Writer, tx *account.Transaction, ok, bad func(...any) string) {
	status := ok(tx.Status)
	if tx.Status == account.TransactionRejected {
		status = bad(tx.Status)
	}
	fmt.Fprintf(out, "%s  %-8s %10s %s  fee %s  %s  %s",
		tx.CreatedAt.Format("2006-01-02 15:04:05"),
		tx.Type,
		tx.Amount.StringFixed(tx.Currency.Decimals()),
		tx.Currency,
		tx.Fee().StringFixed(tx.Currency.Decimals()),
		status,
		tx.ID,
	)
	if tx.Metadata.Reason != "" {
		fmt.Fprintf(out, "  (%s)", tx.Metadata.Reason)
	}
	fmt.Fprintln(out)
}

func printBalance(ctx context.Context, a *app.App, out io.Writer, id uuid.UUID, bold func(...any) string) error {
	acc, err := a.AccountService.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Balance of %s: %s %s (%s)\n",
		acc.ID,
		bold(acc.Balance().StringFixed(acc.Currency.Decimals())),
		acc.Currency,
		acc.Status,
	)
	return nil
}

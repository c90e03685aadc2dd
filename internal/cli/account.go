package cli

import (
	"context"
	"flag"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kucli/internal/notify"
)

// Deposit shows wallet address, memo and chain for a currency.
func (a *App) Deposit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ContinueOnError)
	currency := fs.String("currency", "", "currency for which to get deposit addresses")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *currency == "" {
		return errors.New("need --currency")
	}

	addresses, err := a.exchange.GetDepositAddresses(ctx, *currency)
	if err != nil {
		return err
	}
	if len(addresses) == 0 {
		a.warn("no deposit addresses for %s", *currency)
		return nil
	}

	a.header("%-45s %-20s %-10s", "ADDRESS", "MEMO", "CHAIN")
	for _, addr := range addresses {
		a.line("%-45s %-20s %-10s", addr.Address, addr.Memo, addr.Chain)
	}
	return nil
}

// Transfer moves funds between sub-accounts.
func (a *App) Transfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ContinueOnError)
	currency := fs.String("currency", "", "currency to move")
	from := fs.String("from", "main", "source account type")
	to := fs.String("to", "trade", "destination account type")
	amountStr := fs.String("amount", "", "amount to move")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *currency == "" {
		return errors.New("need --currency")
	}
	if *from == *to {
		return errors.Errorf("source and destination are both %q", *from)
	}

	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		return errors.Wrap(err, "invalid --amount")
	}
	if !amount.IsPositive() {
		return errors.Errorf("amount must be positive, got %s", amount.String())
	}

	id, err := a.exchange.InnerTransfer(ctx, *currency, *from, *to, amount)
	if err != nil {
		return err
	}
	a.accent("> moved %s %s from %s to %s (%s)", amount.String(), *currency, *from, *to, id)
	a.logger.Info("transfer done",
		zap.String("transfer_id", id),
		zap.String("currency", *currency),
		zap.String("from", *from),
		zap.String("to", *to))

	if a.notifier != nil {
		a.notifier.TransferDone(ctx, notify.TransferEvent{
			TransferID: id,
			Currency:   *currency,
			From:       *from,
			To:         *to,
			Amount:     amount.String(),
		})
	}
	return nil
}

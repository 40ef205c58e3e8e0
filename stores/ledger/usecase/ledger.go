package usecase

import (
	"math/big"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/ledger"
	"github.com/plaza-xyz/marketapi/domain/payment"
	"github.com/plaza-xyz/marketapi/service/query"
)

type LedgerUseCaseCfg struct {
	LedgerRepo ledger.Repo
	Transfer   payment.Transfer
	Q          query.Mongo
}

type impl struct {
	ledgerRepo ledger.Repo
	transfer   payment.Transfer
	q          query.Mongo
}

func New(cfg *LedgerUseCaseCfg) ledger.UseCase {
	return &impl{
		ledgerRepo: cfg.LedgerRepo,
		transfer:   cfg.Transfer,
		q:          cfg.Q,
	}
}

func (im *impl) BalanceOf(ctx bCtx.Ctx, account domain.Address) (*ledger.Balance, error) {
	res, err := im.ledgerRepo.FindOne(ctx, account)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("ledgerRepo.FindOne failed")
		return nil, err
	}
	return res, nil
}

// Credit adds to an account's pending balance. It is always invoked inside
// the transaction of the crediting operation.
func (im *impl) Credit(ctx bCtx.Ctx, account domain.Address, amount *big.Int) error {
	if err := im.ledgerRepo.Add(ctx, account, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  amount.String(),
		}).Error("ledgerRepo.Add failed")
		return err
	}
	return nil
}

// Claim zeroes the balance first and only then pushes the value out, so a
// re-entrant claim during the transfer observes an empty balance. A transfer
// failure aborts the transaction and the debit is rolled back in full.
func (im *impl) Claim(ctx bCtx.Ctx, account domain.Address) (*big.Int, error) {
	var claimed *big.Int
	err := im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		balance, err := im.ledgerRepo.FindOne(ctx, account)
		if err != nil {
			return err
		}
		amount, err := balance.AmountBig()
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"balance": balance.Amount,
			}).Error("corrupt balance amount")
			return err
		}
		if amount.Sign() == 0 {
			return domain.ErrInsufficientFunds
		}

		if err := im.ledgerRepo.Set(ctx, account, new(big.Int)); err != nil {
			return err
		}
		if err := im.transfer.Send(ctx, account, amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"account": account,
				"amount":  amount.String(),
			}).Error("transfer.Send failed")
			return err
		}
		claimed = amount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

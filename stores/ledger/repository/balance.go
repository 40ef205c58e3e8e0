package repository

import (
	"math/big"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/ledger"
	"github.com/plaza-xyz/marketapi/service/query"
)

type balanceRepoImpl struct {
	q query.Mongo
}

func NewBalanceRepo(q query.Mongo) ledger.Repo {
	return &balanceRepoImpl{q}
}

func (im *balanceRepoImpl) FindOne(ctx ctx.Ctx, account domain.Address) (*ledger.Balance, error) {
	res := ledger.Balance{}
	err := im.q.FindOne(ctx, domain.TableBalances, bson.M{"account": account}, &res)
	if err == query.ErrNotFound {
		return &ledger.Balance{Account: account, Amount: "0"}, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

// Add performs read-modify-write; callers run inside the operation
// transaction, which serializes all balance mutations.
func (im *balanceRepoImpl) Add(ctx ctx.Ctx, account domain.Address, amount *big.Int) error {
	current, err := im.FindOne(ctx, account)
	if err != nil {
		return err
	}
	balance, err := current.AmountBig()
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"balance": current.Amount,
		}).Error("corrupt balance amount")
		return err
	}
	return im.Set(ctx, account, new(big.Int).Add(balance, amount))
}

func (im *balanceRepoImpl) Set(ctx ctx.Ctx, account domain.Address, amount *big.Int) error {
	selector := bson.M{"account": account}
	update := ledger.Balance{Account: account, Amount: domain.FromBig(amount)}
	if err := im.q.Upsert(ctx, domain.TableBalances, selector, &update); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"account": account,
			"amount":  update.Amount,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

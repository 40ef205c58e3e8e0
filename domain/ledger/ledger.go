package ledger

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// Balance is the pending amount owed to an account, credited by settlement
// and escrow-refund paths and pulled by the account holder via Claim.
type Balance struct {
	Account domain.Address `json:"account" bson:"account"`
	Amount  string         `json:"amount" bson:"amount"`
}

func (b *Balance) AmountBig() (*big.Int, error) {
	return domain.ToBig(b.Amount)
}

type Repo interface {
	// FindOne returns a zero balance when the account has no entry yet
	FindOne(ctx ctx.Ctx, account domain.Address) (*Balance, error)
	// Add credits `amount` on top of the existing balance, creating the entry
	// when missing
	Add(ctx ctx.Ctx, account domain.Address, amount *big.Int) error
	// Set overwrites the balance
	Set(ctx ctx.Ctx, account domain.Address, amount *big.Int) error
}

type UseCase interface {
	BalanceOf(ctx ctx.Ctx, account domain.Address) (*Balance, error)
	Credit(ctx ctx.Ctx, account domain.Address, amount *big.Int) error
	// Claim zeroes the balance and pushes the full amount through the value
	// transfer primitive. A transfer failure restores the balance in full.
	Claim(ctx ctx.Ctx, account domain.Address) (*big.Int, error)
}

package payment

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// Transfer is the external value-transfer primitive. Send moves `amount` of
// the smallest currency unit to `account` and either fully succeeds or
// returns domain.ErrTransferFailed without partial effect.
type Transfer interface {
	Send(ctx ctx.Ctx, account domain.Address, amount *big.Int) error
}

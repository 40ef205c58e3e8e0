package settlement

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// Donation tracks, per asset, how much royalty has been front-loaded to the
// operator as a loan against future donation credit. The amount never exceeds
// the configured donation limit.
type Donation struct {
	AssetId domain.AssetId `json:"assetId" bson:"assetId"`
	Amount  string         `json:"amount" bson:"amount"`
}

func (d *Donation) AmountBig() (*big.Int, error) {
	return domain.ToBig(d.Amount)
}

type DonationRepo interface {
	// FindOne returns a zero donation counter when the asset has no entry yet
	FindOne(ctx ctx.Ctx, assetId domain.AssetId) (*Donation, error)
	Set(ctx ctx.Ctx, assetId domain.AssetId, amount *big.Int) error
}

// Distribution is the outcome of splitting one sale price. The four amounts
// sum exactly to the price.
type Distribution struct {
	OperatorFee     *big.Int
	OperatorLoan    *big.Int
	CreatorResidual *big.Int
	ReceiverAmount  *big.Int
	Creator         domain.Address
	Receiver        domain.Address
}

// UseCase splits a sale price among operator, creator and receiver and
// credits the funds ledger. Distribute opens no transaction of its own; it is
// always invoked inside the transaction of the finalizing sale operation.
type UseCase interface {
	Distribute(ctx ctx.Ctx, price *big.Int, assetId domain.AssetId, receiver domain.Address) (*Distribution, error)
}

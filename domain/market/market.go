package market

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// MaxFeeRateBps caps the market fee at 10%
const MaxFeeRateBps = 1000

// Config holds the scalar marketplace parameters. A single document per
// deployment.
type Config struct {
	FeeRateBps      int64          `json:"feeRateBps" bson:"feeRateBps"`
	DonationLimit   string         `json:"donationLimit" bson:"donationLimit"`
	Operator        domain.Address `json:"operator" bson:"operator"`
	MinBidIncrement string         `json:"minBidIncrement" bson:"minBidIncrement"`
}

func (c *Config) DonationLimitBig() (*big.Int, error) {
	return domain.ToBig(c.DonationLimit)
}

func (c *Config) MinBidIncrementBig() (*big.Int, error) {
	return domain.ToBig(c.MinBidIncrement)
}

type ConfigRepo interface {
	FindOne(ctx ctx.Ctx) (*Config, error)
	Upsert(ctx ctx.Ctx, cfg *Config) error
}

// AdminUseCase exposes the operator-gated parameter setters
type AdminUseCase interface {
	GetConfig(ctx ctx.Ctx) (*Config, error)
	UpdateMarketFee(ctx ctx.Ctx, caller domain.Address, rateBps int64) error
	UpdateDonationLimit(ctx ctx.Ctx, caller domain.Address, limit *big.Int) error
}

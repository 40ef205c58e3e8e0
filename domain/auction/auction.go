package auction

import (
	"math/big"
	"time"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// Auction is a timed ascending-bid sale of one escrowed asset. An empty
// Seller means no active auction for the asset. While active, HighestBid is
// monotonically non-decreasing and EndTime only extends forward.
type Auction struct {
	AssetId       domain.AssetId `json:"assetId" bson:"assetId"`
	BuyNowPrice   string         `json:"buyNowPrice" bson:"buyNowPrice"`
	HighestBid    string         `json:"highestBid" bson:"highestBid"`
	HighestBidder domain.Address `json:"highestBidder" bson:"highestBidder"`
	Seller        domain.Address `json:"seller" bson:"seller"`
	EndTime       *time.Time     `json:"endTime" bson:"endTime"`
}

func (a *Auction) IsActive() bool {
	return a != nil && !a.Seller.IsEmpty()
}

func (a *Auction) HasBid() bool {
	return !a.HighestBidder.IsEmpty()
}

func (a *Auction) BuyNowPriceBig() (*big.Int, error) {
	return domain.ToBig(a.BuyNowPrice)
}

func (a *Auction) HighestBidBig() (*big.Int, error) {
	return domain.ToBig(a.HighestBid)
}

type Repo interface {
	// FindOne returns domain.ErrNotFound when no auction record exists for
	// the asset
	FindOne(ctx ctx.Ctx, assetId domain.AssetId) (*Auction, error)
	Upsert(ctx ctx.Ctx, auction *Auction) error
	Remove(ctx ctx.Ctx, assetId domain.AssetId) error
}

type UseCase interface {
	Get(ctx ctx.Ctx, assetId domain.AssetId) (*Auction, error)
	// GetAuctions enumerates every asset known to the registry and returns
	// its (possibly empty) auction record in registry enumeration order.
	GetAuctions(ctx ctx.Ctx) ([]*Auction, error)
	Make(ctx ctx.Ctx, caller domain.Address, assetId domain.AssetId, buyNowPrice *big.Int, periodHours int) (*Auction, error)
	Bid(ctx ctx.Ctx, caller domain.Address, assetId domain.AssetId, attachedValue *big.Int) error
	CancelBid(ctx ctx.Ctx, caller domain.Address, assetId domain.AssetId) error
	Cancel(ctx ctx.Ctx, caller domain.Address, assetId domain.AssetId) error
	Settle(ctx ctx.Ctx, assetId domain.AssetId) error
}

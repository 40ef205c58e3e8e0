package registry

import (
	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// RoyaltyRecord is fixed at asset creation time and read-only to the marketplace.
// RateBps is bounded to [0, 1000]; a zero rate marks a royalty-free asset.
type RoyaltyRecord struct {
	RateBps int64          `json:"rateBps"`
	Creator domain.Address `json:"creator"`
}

// Registry is the external asset registry owning identity, custody and
// royalty metadata of individual assets.
type Registry interface {
	OwnerOf(ctx ctx.Ctx, assetId domain.AssetId) (domain.Address, error)
	IsApprovedBy(ctx ctx.Ctx, assetId domain.AssetId, account domain.Address) (bool, error)
	// Transfer moves custody. It fails when `from` does not hold the asset or
	// the transfer is unauthorized.
	Transfer(ctx ctx.Ctx, assetId domain.AssetId, from, to domain.Address) error
	TotalCount(ctx ctx.Ctx) (int, error)
	AssetAtIndex(ctx ctx.Ctx, index int) (domain.AssetId, error)
	Exists(ctx ctx.Ctx, assetId domain.AssetId) (bool, error)
	RoyaltyRecord(ctx ctx.Ctx, assetId domain.AssetId) (*RoyaltyRecord, error)
}

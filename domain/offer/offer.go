package offer

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
)

// Offer is a standing proposal to sell one escrowed asset at a fixed price.
// Fulfilled and Cancelled are never both true; once either is set the offer
// is terminal.
type Offer struct {
	OfferId   int64          `json:"offerId" bson:"offerId"`
	AssetId   domain.AssetId `json:"assetId" bson:"assetId"`
	Price     string         `json:"price" bson:"price"`
	Owner     domain.Address `json:"owner" bson:"owner"`
	Fulfilled bool           `json:"fulfilled" bson:"fulfilled"`
	Cancelled bool           `json:"cancelled" bson:"cancelled"`
}

func (o *Offer) PriceBig() (*big.Int, error) {
	return domain.ToBig(o.Price)
}

// IsOpen reports whether the offer can still be filled, cancelled or updated
func (o *Offer) IsOpen() bool {
	return !o.Fulfilled && !o.Cancelled
}

type Patchable struct {
	Price     *string `json:"price" bson:"price,omitempty"`
	Fulfilled *bool   `json:"fulfilled" bson:"fulfilled,omitempty"`
	Cancelled *bool   `json:"cancelled" bson:"cancelled,omitempty"`
}

type FindAllOptions struct {
	Owner   *domain.Address
	AssetId *domain.AssetId
	Open    *bool
	Offset  *int32
	Limit   *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = &owner
		return nil
	}
}

func WithAssetId(assetId domain.AssetId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.AssetId = &assetId
		return nil
	}
}

func WithOpen(open bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Open = &open
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(ctx ctx.Ctx, offerId int64) (*Offer, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Insert(ctx ctx.Ctx, offer *Offer) error
	Update(ctx ctx.Ctx, offerId int64, patchable Patchable) error
	// NextId assigns a fresh, monotonically increasing offer id
	NextId(ctx ctx.Ctx) (int64, error)
}

type UseCase interface {
	Get(ctx ctx.Ctx, offerId int64) (*Offer, error)
	List(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	Make(ctx ctx.Ctx, caller domain.Address, assetId domain.AssetId, price *big.Int) (*Offer, error)
	Fill(ctx ctx.Ctx, caller domain.Address, offerId int64, attachedValue *big.Int) error
	Cancel(ctx ctx.Ctx, caller domain.Address, offerId int64) error
	Update(ctx ctx.Ctx, caller domain.Address, offerId int64, newPrice *big.Int) error
}

package usecase

import (
	"math/big"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/base/ptr"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/ledger"
	"github.com/plaza-xyz/marketapi/domain/offer"
	"github.com/plaza-xyz/marketapi/domain/registry"
	"github.com/plaza-xyz/marketapi/domain/settlement"
	"github.com/plaza-xyz/marketapi/service/query"
)

type OfferUseCaseCfg struct {
	OfferRepo  offer.Repo
	LedgerRepo ledger.Repo
	Settlement settlement.UseCase
	Registry   registry.Registry
	Q          query.Mongo
	// Custody is the marketplace account holding escrowed assets
	Custody domain.Address
}

type impl struct {
	offerRepo  offer.Repo
	ledgerRepo ledger.Repo
	settlement settlement.UseCase
	registry   registry.Registry
	q          query.Mongo
	custody    domain.Address
}

func New(cfg *OfferUseCaseCfg) offer.UseCase {
	return &impl{
		offerRepo:  cfg.OfferRepo,
		ledgerRepo: cfg.LedgerRepo,
		settlement: cfg.Settlement,
		registry:   cfg.Registry,
		q:          cfg.Q,
		custody:    cfg.Custody,
	}
}

func (im *impl) Get(ctx bCtx.Ctx, offerId int64) (*offer.Offer, error) {
	res, err := im.offerRepo.FindOne(ctx, offerId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("offerRepo.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) List(ctx bCtx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	res, err := im.offerRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("offerRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

// Make escrows the asset and opens a fixed-price offer. The offer row is
// written before the registry transfer so a failed escrow aborts the whole
// operation.
func (im *impl) Make(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, price *big.Int) (*offer.Offer, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if assetId.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}

	var res *offer.Offer
	err := im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		owner, err := im.registry.OwnerOf(ctx, assetId)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("registry.OwnerOf failed")
			return err
		}
		if !owner.Equals(caller) {
			return domain.ErrUnauthorized
		}
		approved, err := im.registry.IsApprovedBy(ctx, assetId, caller)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("registry.IsApprovedBy failed")
			return err
		}
		if !approved {
			return domain.ErrUnauthorized
		}

		offerId, err := im.offerRepo.NextId(ctx)
		if err != nil {
			ctx.WithField("err", err).Error("offerRepo.NextId failed")
			return err
		}
		o := &offer.Offer{
			OfferId: offerId,
			AssetId: assetId,
			Price:   domain.FromBig(price),
			Owner:   caller.ToLower(),
		}
		if err := im.offerRepo.Insert(ctx, o); err != nil {
			ctx.WithField("err", err).Error("offerRepo.Insert failed")
			return err
		}

		if err := im.registry.Transfer(ctx, assetId, caller, im.custody); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("escrow transfer failed")
			return err
		}
		res = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Fill finalizes an offer. The fulfilled flag is written before the asset
// leaves escrow so a re-entrant fill observes a terminal offer.
func (im *impl) Fill(ctx bCtx.Ctx, caller domain.Address, offerId int64, attachedValue *big.Int) error {
	if attachedValue == nil {
		attachedValue = new(big.Int)
	}
	if attachedValue.Sign() < 0 {
		return domain.ErrInvalidInput
	}

	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		o, err := im.offerRepo.FindOne(ctx, offerId)
		if err != nil {
			return err
		}
		if o.Owner.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if !o.IsOpen() {
			return domain.ErrAlreadyFinalized
		}

		price, err := o.PriceBig()
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"price": o.Price,
			}).Error("corrupt offer price")
			return err
		}

		balance, err := im.ledgerRepo.FindOne(ctx, caller)
		if err != nil {
			return err
		}
		pending, err := balance.AmountBig()
		if err != nil {
			return err
		}
		if new(big.Int).Add(attachedValue, pending).Cmp(price) < 0 {
			return domain.ErrInsufficientFunds
		}

		patch := offer.Patchable{
			Fulfilled: ptr.Bool(true),
			Price:     ptr.String("0"),
		}
		if err := im.offerRepo.Update(ctx, offerId, patch); err != nil {
			ctx.WithField("err", err).Error("offerRepo.Update failed")
			return err
		}

		// shortfall comes out of the caller's ledger balance; excess
		// attached value is credited back to it
		diff := new(big.Int).Sub(price, attachedValue)
		if diff.Sign() != 0 {
			if err := im.ledgerRepo.Add(ctx, caller, new(big.Int).Neg(diff)); err != nil {
				ctx.WithField("err", err).Error("ledger debit failed")
				return err
			}
		}

		if err := im.registry.Transfer(ctx, o.AssetId, im.custody, caller); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": o.AssetId,
			}).Error("escrow release failed")
			return err
		}

		if _, err := im.settlement.Distribute(ctx, price, o.AssetId, o.Owner); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"offerId": offerId,
			}).Error("settlement.Distribute failed")
			return err
		}
		return nil
	})
}

func (im *impl) Cancel(ctx bCtx.Ctx, caller domain.Address, offerId int64) error {
	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		o, err := im.offerRepo.FindOne(ctx, offerId)
		if err != nil {
			return err
		}
		if !o.Owner.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if !o.IsOpen() {
			return domain.ErrAlreadyFinalized
		}

		patch := offer.Patchable{
			Cancelled: ptr.Bool(true),
			Price:     ptr.String("0"),
		}
		if err := im.offerRepo.Update(ctx, offerId, patch); err != nil {
			ctx.WithField("err", err).Error("offerRepo.Update failed")
			return err
		}

		if err := im.registry.Transfer(ctx, o.AssetId, im.custody, o.Owner); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": o.AssetId,
			}).Error("escrow release failed")
			return err
		}
		return nil
	})
}

func (im *impl) Update(ctx bCtx.Ctx, caller domain.Address, offerId int64, newPrice *big.Int) error {
	if newPrice == nil || newPrice.Sign() <= 0 {
		return domain.ErrInvalidInput
	}

	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		o, err := im.offerRepo.FindOne(ctx, offerId)
		if err != nil {
			return err
		}
		if !o.Owner.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if !o.IsOpen() {
			return domain.ErrAlreadyFinalized
		}

		patch := offer.Patchable{Price: ptr.String(domain.FromBig(newPrice))}
		if err := im.offerRepo.Update(ctx, offerId, patch); err != nil {
			ctx.WithField("err", err).Error("offerRepo.Update failed")
			return err
		}
		return nil
	})
}

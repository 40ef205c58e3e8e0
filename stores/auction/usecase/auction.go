package usecase

import (
	"math/big"
	"time"

	"github.com/viney-shih/goroutines"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/auction"
	"github.com/plaza-xyz/marketapi/domain/ledger"
	"github.com/plaza-xyz/marketapi/domain/market"
	"github.com/plaza-xyz/marketapi/domain/registry"
	"github.com/plaza-xyz/marketapi/domain/settlement"
	"github.com/plaza-xyz/marketapi/service/query"
)

const (
	// AntiSnipeWindow is how close to the deadline a bid must land to push
	// the deadline out, and how far it gets pushed
	AntiSnipeWindow = 10 * time.Minute

	// bid accounting in basis points: the platform retains 10% of every bid
	// until settlement, so an outbid bidder is refunded 90% of their own bid
	// plus 10% of the bid that displaced them
	retainedBps = 1000
	refundedBps = 9000
)

type AuctionUseCaseCfg struct {
	AuctionRepo auction.Repo
	ConfigRepo  market.ConfigRepo
	LedgerRepo  ledger.Repo
	Settlement  settlement.UseCase
	Registry    registry.Registry
	Q           query.Mongo
	Custody     domain.Address
}

type impl struct {
	auctionRepo auction.Repo
	configRepo  market.ConfigRepo
	ledgerRepo  ledger.Repo
	settlement  settlement.UseCase
	registry    registry.Registry
	q           query.Mongo
	custody     domain.Address
	workerPool  *goroutines.Pool
}

func New(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &impl{
		auctionRepo: cfg.AuctionRepo,
		configRepo:  cfg.ConfigRepo,
		ledgerRepo:  cfg.LedgerRepo,
		settlement:  cfg.Settlement,
		registry:    cfg.Registry,
		q:           cfg.Q,
		custody:     cfg.Custody,
		workerPool:  goroutines.NewPool(16),
	}
}

func (im *impl) Get(ctx bCtx.Ctx, assetId domain.AssetId) (*auction.Auction, error) {
	res, err := im.auctionRepo.FindOne(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("auctionRepo.FindOne failed")
		return nil, err
	}
	return res, nil
}

// GetAuctions walks the registry enumeration and pairs every known asset with
// its auction record, empty when the asset is not listed. Lookups run on the
// worker pool; results keep registry index order.
func (im *impl) GetAuctions(ctx bCtx.Ctx) ([]*auction.Auction, error) {
	total, err := im.registry.TotalCount(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("registry.TotalCount failed")
		return nil, err
	}

	res := make([]*auction.Auction, total)
	errChan := make(chan error, total)
	for i := 0; i < total; i++ {
		i := i
		im.workerPool.Schedule(func() {
			assetId, err := im.registry.AssetAtIndex(ctx, i)
			if err != nil {
				ctx.WithFields(log.Fields{
					"err":   err,
					"index": i,
				}).Error("registry.AssetAtIndex failed")
				errChan <- err
				return
			}
			a, err := im.auctionRepo.FindOne(ctx, assetId)
			if err == domain.ErrNotFound {
				a = &auction.Auction{AssetId: assetId}
			} else if err != nil {
				errChan <- err
				return
			}
			res[i] = a
			errChan <- nil
		})
	}
	for i := 0; i < total; i++ {
		if err := <-errChan; err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (im *impl) Make(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, buyNowPrice *big.Int, periodHours int) (*auction.Auction, error) {
	if buyNowPrice == nil || buyNowPrice.Sign() <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if periodHours <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var res *auction.Auction
	err := im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		existing, err := im.auctionRepo.FindOne(ctx, assetId)
		if err != nil && err != domain.ErrNotFound {
			return err
		}
		if existing.IsActive() {
			return domain.ErrConflict
		}

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

		endTime := time.Now().Add(time.Duration(periodHours) * time.Hour)
		a := &auction.Auction{
			AssetId:     assetId,
			BuyNowPrice: domain.FromBig(buyNowPrice),
			HighestBid:  "0",
			Seller:      caller.ToLower(),
			EndTime:     &endTime,
		}
		if err := im.auctionRepo.Upsert(ctx, a); err != nil {
			ctx.WithField("err", err).Error("auctionRepo.Upsert failed")
			return err
		}

		if err := im.registry.Transfer(ctx, assetId, caller, im.custody); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("escrow transfer failed")
			return err
		}
		res = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// requiredBid computes the minimum acceptable bid. The first bid must meet
// the buy-now price; after that each bid must top the highest bid by 10% or
// by the configured minimum increment, whichever is larger.
func requiredBid(a *auction.Auction, minIncrement *big.Int) (*big.Int, error) {
	buyNow, err := a.BuyNowPriceBig()
	if err != nil {
		return nil, err
	}
	if !a.HasBid() {
		return buyNow, nil
	}
	highest, err := a.HighestBidBig()
	if err != nil {
		return nil, err
	}
	tenth := domain.MulBps(highest, retainedBps)
	if tenth.Cmp(minIncrement) > 0 {
		return new(big.Int).Add(highest, tenth), nil
	}
	return new(big.Int).Add(highest, minIncrement), nil
}

func (im *impl) Bid(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, attachedValue *big.Int) error {
	if attachedValue == nil || attachedValue.Sign() <= 0 {
		return domain.ErrInvalidInput
	}

	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(ctx, assetId)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return domain.ErrNotFound
		}
		now := time.Now()
		if !now.Before(*a.EndTime) {
			return domain.ErrAlreadyFinalized
		}
		if a.Seller.Equals(caller) {
			return domain.ErrUnauthorized
		}

		cfg, err := im.configRepo.FindOne(ctx)
		if err != nil {
			ctx.WithField("err", err).Error("configRepo.FindOne failed")
			return err
		}
		minIncrement, err := cfg.MinBidIncrementBig()
		if err != nil {
			return err
		}
		required, err := requiredBid(a, minIncrement)
		if err != nil {
			return err
		}
		if attachedValue.Cmp(required) < 0 {
			return domain.ErrInsufficientFunds
		}

		if a.HasBid() {
			prev, err := a.HighestBidBig()
			if err != nil {
				return err
			}
			refund := new(big.Int).Add(
				domain.MulBps(prev, refundedBps),
				domain.MulBps(attachedValue, retainedBps),
			)
			if err := im.ledgerRepo.Add(ctx, a.HighestBidder, refund); err != nil {
				ctx.WithFields(log.Fields{
					"err":    err,
					"bidder": a.HighestBidder,
				}).Error("outbid refund failed")
				return err
			}
		}

		a.HighestBid = domain.FromBig(attachedValue)
		a.HighestBidder = caller.ToLower()
		if a.EndTime.Sub(now) < AntiSnipeWindow {
			extended := now.Add(AntiSnipeWindow)
			a.EndTime = &extended
		}
		if err := im.auctionRepo.Upsert(ctx, a); err != nil {
			ctx.WithField("err", err).Error("auctionRepo.Upsert failed")
			return err
		}
		return nil
	})
}

func (im *impl) CancelBid(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId) error {
	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(ctx, assetId)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return domain.ErrNotFound
		}
		if !a.HasBid() || !a.HighestBidder.Equals(caller) {
			return domain.ErrUnauthorized
		}

		bid, err := a.HighestBidBig()
		if err != nil {
			return err
		}
		if err := im.ledgerRepo.Add(ctx, caller, domain.MulBps(bid, refundedBps)); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"bidder": caller,
			}).Error("bid refund failed")
			return err
		}

		a.HighestBid = "0"
		a.HighestBidder = domain.EmptyAddress
		if err := im.auctionRepo.Upsert(ctx, a); err != nil {
			ctx.WithField("err", err).Error("auctionRepo.Upsert failed")
			return err
		}
		return nil
	})
}

func (im *impl) Cancel(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId) error {
	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(ctx, assetId)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return domain.ErrNotFound
		}
		if !a.Seller.Equals(caller) {
			return domain.ErrUnauthorized
		}
		if a.HasBid() {
			return domain.ErrConflict
		}

		if err := im.auctionRepo.Remove(ctx, assetId); err != nil {
			ctx.WithField("err", err).Error("auctionRepo.Remove failed")
			return err
		}

		if err := im.registry.Transfer(ctx, assetId, im.custody, a.Seller); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("escrow release failed")
			return err
		}
		return nil
	})
}

// Settle closes an ended auction. With a winning bidder the platform's
// retained tenth of the bid is run through settlement with the seller as
// receiver and the asset goes to the bidder. Without one the asset goes back
// to the seller. The auction record is removed before any registry transfer.
func (im *impl) Settle(ctx bCtx.Ctx, assetId domain.AssetId) error {
	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		a, err := im.auctionRepo.FindOne(ctx, assetId)
		if err != nil {
			return err
		}
		if !a.IsActive() {
			return domain.ErrNotFound
		}
		if time.Now().Before(*a.EndTime) {
			return domain.ErrConflict
		}

		if err := im.auctionRepo.Remove(ctx, assetId); err != nil {
			ctx.WithField("err", err).Error("auctionRepo.Remove failed")
			return err
		}

		if !a.HasBid() {
			if err := im.registry.Transfer(ctx, assetId, im.custody, a.Seller); err != nil {
				ctx.WithFields(log.Fields{
					"err":     err,
					"assetId": assetId,
				}).Error("escrow release failed")
				return err
			}
			return nil
		}

		bid, err := a.HighestBidBig()
		if err != nil {
			return err
		}
		cut := domain.MulBps(bid, retainedBps)
		if _, err := im.settlement.Distribute(ctx, cut, assetId, a.Seller); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("settlement.Distribute failed")
			return err
		}

		if err := im.registry.Transfer(ctx, assetId, im.custody, a.HighestBidder); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"assetId": assetId,
			}).Error("asset transfer to winner failed")
			return err
		}
		return nil
	})
}

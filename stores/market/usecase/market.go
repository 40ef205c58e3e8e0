package usecase

import (
	"math/big"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/market"
	"github.com/plaza-xyz/marketapi/service/query"
)

type MarketUseCaseCfg struct {
	ConfigRepo market.ConfigRepo
	Q          query.Mongo
}

type impl struct {
	configRepo market.ConfigRepo
	q          query.Mongo
}

func New(cfg *MarketUseCaseCfg) market.AdminUseCase {
	return &impl{
		configRepo: cfg.ConfigRepo,
		q:          cfg.Q,
	}
}

func (im *impl) GetConfig(ctx bCtx.Ctx) (*market.Config, error) {
	cfg, err := im.configRepo.FindOne(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("configRepo.FindOne failed")
		return nil, err
	}
	return cfg, nil
}

func (im *impl) UpdateMarketFee(ctx bCtx.Ctx, caller domain.Address, rateBps int64) error {
	if rateBps < 0 || rateBps > market.MaxFeeRateBps {
		return domain.ErrInvalidInput
	}

	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		cfg, err := im.configRepo.FindOne(ctx)
		if err != nil {
			return err
		}
		if !cfg.Operator.Equals(caller) {
			return domain.ErrUnauthorized
		}

		cfg.FeeRateBps = rateBps
		if err := im.configRepo.Upsert(ctx, cfg); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"rateBps": rateBps,
			}).Error("configRepo.Upsert failed")
			return err
		}
		return nil
	})
}

func (im *impl) UpdateDonationLimit(ctx bCtx.Ctx, caller domain.Address, limit *big.Int) error {
	if limit == nil || limit.Sign() < 0 {
		return domain.ErrInvalidInput
	}

	return im.q.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		cfg, err := im.configRepo.FindOne(ctx)
		if err != nil {
			return err
		}
		if !cfg.Operator.Equals(caller) {
			return domain.ErrUnauthorized
		}

		cfg.DonationLimit = domain.FromBig(limit)
		if err := im.configRepo.Upsert(ctx, cfg); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"limit": limit.String(),
			}).Error("configRepo.Upsert failed")
			return err
		}
		return nil
	})
}

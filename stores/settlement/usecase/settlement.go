package usecase

import (
	"math/big"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/base/metrics"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/ledger"
	"github.com/plaza-xyz/marketapi/domain/market"
	"github.com/plaza-xyz/marketapi/domain/registry"
	"github.com/plaza-xyz/marketapi/domain/settlement"
)

// MaxRoyaltyRateBps caps registry royalty rates at 10%
const MaxRoyaltyRateBps = 1000

type SettlementUseCaseCfg struct {
	DonationRepo settlement.DonationRepo
	LedgerRepo   ledger.Repo
	ConfigRepo   market.ConfigRepo
	Registry     registry.Registry
}

type impl struct {
	donationRepo settlement.DonationRepo
	ledgerRepo   ledger.Repo
	configRepo   market.ConfigRepo
	registry     registry.Registry
	met          metrics.Service
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		donationRepo: cfg.DonationRepo,
		ledgerRepo:   cfg.LedgerRepo,
		configRepo:   cfg.ConfigRepo,
		registry:     cfg.Registry,
		met:          metrics.New("settlement"),
	}
}

// Distribute splits `price` among operator fee, donation-loan repayment,
// creator royalty and the receiver, then credits the funds ledger. The four
// parts always sum exactly to `price`: fee rounds up (toward the operator),
// the royalty fund rounds down, and the receiver takes the remainder by
// subtraction.
func (im *impl) Distribute(ctx ctx.Ctx, price *big.Int, assetId domain.AssetId, receiver domain.Address) (*settlement.Distribution, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if receiver.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}

	exists, err := im.registry.Exists(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("registry.Exists failed")
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	record, err := im.registry.RoyaltyRecord(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("registry.RoyaltyRecord failed")
		return nil, err
	}
	if record.Creator.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	if record.RateBps < 0 || record.RateBps > MaxRoyaltyRateBps {
		return nil, domain.ErrInvalidInput
	}

	cfg, err := im.configRepo.FindOne(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("configRepo.FindOne failed")
		return nil, err
	}

	fee := domain.MulBpsCeil(price, cfg.FeeRateBps)
	royaltyFund := domain.MulBps(price, record.RateBps)
	loan := new(big.Int)
	residual := new(big.Int)

	if record.RateBps > 0 && royaltyFund.Sign() > 0 {
		loan, residual, err = im.amortizeLoan(ctx, assetId, royaltyFund, record.RateBps, cfg)
		if err != nil {
			return nil, err
		}
	}

	receiverAmount := new(big.Int).Sub(price, fee)
	receiverAmount.Sub(receiverAmount, royaltyFund)

	operatorTotal := new(big.Int).Add(fee, loan)
	if err := im.ledgerRepo.Add(ctx, cfg.Operator, operatorTotal); err != nil {
		ctx.WithField("err", err).Error("credit operator failed")
		return nil, err
	}
	if residual.Sign() > 0 {
		if err := im.ledgerRepo.Add(ctx, record.Creator, residual); err != nil {
			ctx.WithField("err", err).Error("credit creator failed")
			return nil, err
		}
	}
	if err := im.ledgerRepo.Add(ctx, receiver, receiverAmount); err != nil {
		ctx.WithField("err", err).Error("credit receiver failed")
		return nil, err
	}

	im.met.BumpSum("sale.count", 1)
	dist := &settlement.Distribution{
		OperatorFee:     fee,
		OperatorLoan:    loan,
		CreatorResidual: residual,
		ReceiverAmount:  receiverAmount,
		Creator:         record.Creator,
		Receiver:        receiver,
	}
	ctx.WithFields(log.Fields{
		"assetId":  assetId,
		"price":    price.String(),
		"fee":      fee.String(),
		"loan":     loan.String(),
		"residual": residual.String(),
		"receiver": receiverAmount.String(),
	}).Info("sale distributed")
	return dist, nil
}

// amortizeLoan applies the donation-loan rule: royalty is paid to the
// operator as a loan until the per-asset donation counter reaches the global
// limit, after which royalty flows to the creator in full.
func (im *impl) amortizeLoan(ctx ctx.Ctx, assetId domain.AssetId, royaltyFund *big.Int, rateBps int64, cfg *market.Config) (*big.Int, *big.Int, error) {
	donation, err := im.donationRepo.FindOne(ctx, assetId)
	if err != nil {
		ctx.WithField("err", err).Error("donationRepo.FindOne failed")
		return nil, nil, err
	}
	donated, err := donation.AmountBig()
	if err != nil {
		return nil, nil, err
	}
	limit, err := cfg.DonationLimitBig()
	if err != nil {
		return nil, nil, err
	}

	headroom := new(big.Int).Sub(limit, donated)
	if headroom.Sign() <= 0 {
		// pool exhausted, full royalty to the creator
		return new(big.Int), new(big.Int).Set(royaltyFund), nil
	}

	loan := domain.MulBps(headroom, rateBps)
	if loan.Cmp(royaltyFund) >= 0 {
		// whole royalty fund goes to the operator; advance the counter by
		// the fund expressed in donation units, rounding toward exhaustion
		delta := new(big.Int).Mul(royaltyFund, big.NewInt(domain.BpsDenominator))
		delta.Add(delta, big.NewInt(rateBps-1))
		delta.Div(delta, big.NewInt(rateBps))

		next := new(big.Int).Add(donated, delta)
		if next.Cmp(limit) > 0 {
			next.Set(limit)
		}
		if err := im.donationRepo.Set(ctx, assetId, next); err != nil {
			ctx.WithField("err", err).Error("donationRepo.Set failed")
			return nil, nil, err
		}
		return new(big.Int).Set(royaltyFund), new(big.Int), nil
	}

	// partial loan: the pool is filled to its limit and the creator takes
	// the rest of this sale's royalty
	if err := im.donationRepo.Set(ctx, assetId, limit); err != nil {
		ctx.WithField("err", err).Error("donationRepo.Set failed")
		return nil, nil, err
	}
	residual := new(big.Int).Sub(royaltyFund, loan)
	return loan, residual, nil
}

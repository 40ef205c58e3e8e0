package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gocache "github.com/patrickmn/go-cache"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	dRegistry "github.com/plaza-xyz/marketapi/domain/registry"
	"github.com/plaza-xyz/marketapi/service/chain"
)

type Cfg struct {
	ChainService chain.Client
	Contract     domain.Address
}

type impl struct {
	chainService chain.Client
	contract     common.Address
	// royalty records are fixed at asset creation, so cache them forever
	royalties *gocache.Cache
}

func New(cfg *Cfg) dRegistry.Registry {
	return &impl{
		chainService: cfg.ChainService,
		contract:     common.HexToAddress(string(cfg.Contract)),
		royalties:    gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

func assetIdToBig(assetId domain.AssetId) (*big.Int, error) {
	id, ok := new(big.Int).SetString(assetId.String(), 10)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return id, nil
}

func (im *impl) OwnerOf(ctx bCtx.Ctx, assetId domain.AssetId) (domain.Address, error) {
	id, err := assetIdToBig(assetId)
	if err != nil {
		return domain.EmptyAddress, err
	}
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "ownerOf", id)
	if err != nil {
		ctx.WithFields(log.Fields{"assetId": assetId, "err": err}).Error("registry.ownerOf failed")
		return domain.EmptyAddress, err
	}
	return domain.Address(unpacked[0].(common.Address).Hex()).ToLower(), nil
}

func (im *impl) IsApprovedBy(ctx bCtx.Ctx, assetId domain.AssetId, account domain.Address) (bool, error) {
	id, err := assetIdToBig(assetId)
	if err != nil {
		return false, err
	}
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "isApprovedBy", id, common.HexToAddress(string(account)))
	if err != nil {
		ctx.WithFields(log.Fields{"assetId": assetId, "account": account, "err": err}).Error("registry.isApprovedBy failed")
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (im *impl) Transfer(ctx bCtx.Ctx, assetId domain.AssetId, from, to domain.Address) error {
	id, err := assetIdToBig(assetId)
	if err != nil {
		return err
	}
	err = im.chainService.Send(ctx, im.contract, AssetRegistryABI, "transferFrom",
		common.HexToAddress(string(from)), common.HexToAddress(string(to)), id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"assetId": assetId,
			"from":    from,
			"to":      to,
			"err":     err,
		}).Error("registry.transferFrom failed")
		return err
	}
	return nil
}

func (im *impl) TotalCount(ctx bCtx.Ctx) (int, error) {
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "totalSupply")
	if err != nil {
		ctx.WithField("err", err).Error("registry.totalSupply failed")
		return 0, err
	}
	return int(unpacked[0].(*big.Int).Int64()), nil
}

func (im *impl) AssetAtIndex(ctx bCtx.Ctx, index int) (domain.AssetId, error) {
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "tokenByIndex", big.NewInt(int64(index)))
	if err != nil {
		ctx.WithFields(log.Fields{"index": index, "err": err}).Error("registry.tokenByIndex failed")
		return "", err
	}
	return domain.AssetId(unpacked[0].(*big.Int).String()), nil
}

func (im *impl) Exists(ctx bCtx.Ctx, assetId domain.AssetId) (bool, error) {
	id, err := assetIdToBig(assetId)
	if err != nil {
		return false, err
	}
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "exists", id)
	if err != nil {
		ctx.WithFields(log.Fields{"assetId": assetId, "err": err}).Error("registry.exists failed")
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (im *impl) RoyaltyRecord(ctx bCtx.Ctx, assetId domain.AssetId) (*dRegistry.RoyaltyRecord, error) {
	if cached, ok := im.royalties.Get(assetId.String()); ok {
		record := cached.(dRegistry.RoyaltyRecord)
		return &record, nil
	}

	exists, err := im.Exists(ctx, assetId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	id, err := assetIdToBig(assetId)
	if err != nil {
		return nil, err
	}
	unpacked, err := im.chainService.Call(ctx, im.contract, AssetRegistryABI, "royaltyRecord", id)
	if err != nil {
		ctx.WithFields(log.Fields{"assetId": assetId, "err": err}).Error("registry.royaltyRecord failed")
		return nil, err
	}
	record := dRegistry.RoyaltyRecord{
		RateBps: int64(unpacked[0].(uint16)),
		Creator: domain.Address(unpacked[1].(common.Address).Hex()).ToLower(),
	}
	im.royalties.Set(assetId.String(), record, gocache.NoExpiration)
	return &record, nil
}

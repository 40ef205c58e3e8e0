package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/auction"
	"github.com/plaza-xyz/marketapi/service/query"
)

type auctionRepoImpl struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepoImpl{q}
}

func (im *auctionRepoImpl) FindOne(ctx ctx.Ctx, assetId domain.AssetId) (*auction.Auction, error) {
	res := auction.Auction{}
	err := im.q.FindOne(ctx, domain.TableAuctions, bson.M{"assetId": assetId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *auctionRepoImpl) Upsert(ctx ctx.Ctx, _auction *auction.Auction) error {
	selector := bson.M{"assetId": _auction.AssetId}
	if err := im.q.Upsert(ctx, domain.TableAuctions, selector, _auction); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"auction": *_auction,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *auctionRepoImpl) Remove(ctx ctx.Ctx, assetId domain.AssetId) error {
	err := im.q.Remove(ctx, domain.TableAuctions, bson.M{"assetId": assetId})
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}

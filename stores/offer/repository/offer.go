package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/database/mongoclient"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/offer"
	"github.com/plaza-xyz/marketapi/service/query"
)

const offerIdCounter = "offerId"

type counter struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

type offerRepoImpl struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) offer.Repo {
	return &offerRepoImpl{q}
}

func (im *offerRepoImpl) makeQuery(opts ...offer.FindAllOptionsFunc) (bson.M, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	qry := bson.M{}

	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}

	if options.AssetId != nil {
		qry["assetId"] = *options.AssetId
	}

	if options.Open != nil {
		if *options.Open {
			qry["fulfilled"] = false
			qry["cancelled"] = false
		} else {
			qry["$or"] = []bson.M{{"fulfilled": true}, {"cancelled": true}}
		}
	}

	return qry, nil
}

func (im *offerRepoImpl) FindOne(ctx ctx.Ctx, offerId int64) (*offer.Offer, error) {
	res := offer.Offer{}
	err := im.q.FindOne(ctx, domain.TableOffers, bson.M{"offerId": offerId}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *offerRepoImpl) FindAll(ctx ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := offer.GetFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*offer.Offer{}
	err = im.q.Search(ctx, domain.TableOffers, offset, limit, "offerId", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *offerRepoImpl) Insert(ctx ctx.Ctx, _offer *offer.Offer) error {
	if err := im.q.Insert(ctx, domain.TableOffers, _offer); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"offer": *_offer,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *offerRepoImpl) Update(ctx ctx.Ctx, offerId int64, patchable offer.Patchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableOffers, bson.M{"offerId": offerId}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"offerId": offerId,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}

func (im *offerRepoImpl) NextId(ctx ctx.Ctx) (int64, error) {
	res := counter{}
	err := im.q.Increment(ctx, domain.TableCounters, bson.M{"name": offerIdCounter}, &res, "seq", int64(1))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	return res.Seq, nil
}

package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/market"
	"github.com/plaza-xyz/marketapi/service/query"
)

// one config document per deployment
const configKey = "market"

type configDoc struct {
	Key           string `bson:"key"`
	market.Config `bson:"inline"`
}

type configRepoImpl struct {
	q query.Mongo
}

func NewConfigRepo(q query.Mongo) market.ConfigRepo {
	return &configRepoImpl{q}
}

func (im *configRepoImpl) FindOne(ctx ctx.Ctx) (*market.Config, error) {
	res := configDoc{}
	err := im.q.FindOne(ctx, domain.TableMarketConfigs, bson.M{"key": configKey}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res.Config, nil
}

func (im *configRepoImpl) Upsert(ctx ctx.Ctx, cfg *market.Config) error {
	selector := bson.M{"key": configKey}
	update := configDoc{Key: configKey, Config: *cfg}
	if err := im.q.Upsert(ctx, domain.TableMarketConfigs, selector, &update); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"config": *cfg,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

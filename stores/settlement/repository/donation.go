package repository

import (
	"math/big"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/settlement"
	"github.com/plaza-xyz/marketapi/service/query"
)

type donationRepoImpl struct {
	q query.Mongo
}

func NewDonationRepo(q query.Mongo) settlement.DonationRepo {
	return &donationRepoImpl{q}
}

func (im *donationRepoImpl) FindOne(ctx ctx.Ctx, assetId domain.AssetId) (*settlement.Donation, error) {
	res := settlement.Donation{}
	err := im.q.FindOne(ctx, domain.TableDonations, bson.M{"assetId": assetId}, &res)
	if err == query.ErrNotFound {
		return &settlement.Donation{AssetId: assetId, Amount: "0"}, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *donationRepoImpl) Set(ctx ctx.Ctx, assetId domain.AssetId, amount *big.Int) error {
	selector := bson.M{"assetId": assetId}
	update := settlement.Donation{AssetId: assetId, Amount: domain.FromBig(amount)}
	if err := im.q.Upsert(ctx, domain.TableDonations, selector, &update); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"assetId":  assetId,
			"donation": update.Amount,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

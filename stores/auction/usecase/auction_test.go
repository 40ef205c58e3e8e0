package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/auction"
	mAuction "github.com/plaza-xyz/marketapi/domain/auction/mocks"
	mLedger "github.com/plaza-xyz/marketapi/domain/ledger/mocks"
	"github.com/plaza-xyz/marketapi/domain/market"
	mMarket "github.com/plaza-xyz/marketapi/domain/market/mocks"
	mRegistry "github.com/plaza-xyz/marketapi/domain/registry/mocks"
	"github.com/plaza-xyz/marketapi/domain/settlement"
	mSettlement "github.com/plaza-xyz/marketapi/domain/settlement/mocks"
	mQuery "github.com/plaza-xyz/marketapi/service/query/mocks"
)

const (
	custody = domain.Address("0x00000000000000000000000000000000000000cc")
	seller  = domain.Address("0x0000000000000000000000000000000000000051")
	bidder1 = domain.Address("0x00000000000000000000000000000000000000b1")
	bidder2 = domain.Address("0x00000000000000000000000000000000000000b2")
	assetId = domain.AssetId("7")
)

type auctionSuite struct {
	suite.Suite

	auctionRepo *mAuction.Repo
	configRepo  *mMarket.ConfigRepo
	ledgerRepo  *mLedger.Repo
	settlement  *mSettlement.UseCase
	registry    *mRegistry.Registry
	q           *mQuery.Mongo

	im auction.UseCase
}

func TestAuctionSuite(t *testing.T) {
	suite.Run(t, new(auctionSuite))
}

func (s *auctionSuite) SetupTest() {
	s.auctionRepo = &mAuction.Repo{}
	s.configRepo = &mMarket.ConfigRepo{}
	s.ledgerRepo = &mLedger.Repo{}
	s.settlement = &mSettlement.UseCase{}
	s.registry = &mRegistry.Registry{}
	s.q = &mQuery.Mongo{}
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).Return(
		func(c bCtx.Ctx, run func(bCtx.Ctx) error) error { return run(c) },
	).Maybe()

	s.im = New(&AuctionUseCaseCfg{
		AuctionRepo: s.auctionRepo,
		ConfigRepo:  s.configRepo,
		LedgerRepo:  s.ledgerRepo,
		Settlement:  s.settlement,
		Registry:    s.registry,
		Q:           s.q,
		Custody:     custody,
	})
}

func (s *auctionSuite) TearDownTest() {
	s.auctionRepo.AssertExpectations(s.T())
	s.configRepo.AssertExpectations(s.T())
	s.ledgerRepo.AssertExpectations(s.T())
	s.settlement.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
}

func (s *auctionSuite) stubConfig() {
	s.configRepo.On("FindOne", mock.Anything).Return(&market.Config{
		FeeRateBps:      250,
		DonationLimit:   "0",
		Operator:        "0xfe",
		MinBidIncrement: "100",
	}, nil)
}

func (s *auctionSuite) activeAuction(bid string, bidder domain.Address, endsIn time.Duration) *auction.Auction {
	end := time.Now().Add(endsIn)
	return &auction.Auction{
		AssetId:       assetId,
		BuyNowPrice:   "1000",
		HighestBid:    bid,
		HighestBidder: bidder,
		Seller:        seller,
		EndTime:       &end,
	}
}

func (s *auctionSuite) TestMake() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).Return(nil, domain.ErrNotFound)
	s.registry.On("OwnerOf", mock.Anything, assetId).Return(seller, nil)
	s.registry.On("IsApprovedBy", mock.Anything, assetId, seller).Return(true, nil)
	s.auctionRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	s.registry.On("Transfer", mock.Anything, assetId, seller, custody).Return(nil)

	res, err := s.im.Make(bCtx.Background(), seller, assetId, big.NewInt(1000), 24)
	s.NoError(err)
	s.Equal(seller, res.Seller)
	s.Equal("1000", res.BuyNowPrice)
	s.False(res.HasBid())
	s.WithinDuration(time.Now().Add(24*time.Hour), *res.EndTime, time.Minute)
}

func (s *auctionSuite) TestMakeAlreadyActive() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", time.Hour), nil)

	_, err := s.im.Make(bCtx.Background(), seller, assetId, big.NewInt(1000), 24)
	s.Equal(domain.ErrConflict, err)
}

func (s *auctionSuite) TestFirstBidBelowBuyNow() {
	s.stubConfig()
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", time.Hour), nil)

	err := s.im.Bid(bCtx.Background(), bidder1, assetId, big.NewInt(900))
	s.Equal(domain.ErrInsufficientFunds, err)
}

func (s *auctionSuite) TestFirstBidAtBuyNow() {
	s.stubConfig()
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", time.Hour), nil)
	s.auctionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.HighestBid == "1000" && a.HighestBidder == bidder1
	})).Return(nil)

	s.NoError(s.im.Bid(bCtx.Background(), bidder1, assetId, big.NewInt(1000)))
}

func (s *auctionSuite) TestSecondBidBelowIncrement() {
	// 10% of 1000 equals the minimum increment, so the floor is 1100
	s.stubConfig()
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)

	err := s.im.Bid(bCtx.Background(), bidder2, assetId, big.NewInt(1099))
	s.Equal(domain.ErrInsufficientFunds, err)
}

func (s *auctionSuite) TestSecondBidRefundsFirst() {
	s.stubConfig()
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)
	// 90% of the old bid plus 10% of the new one
	s.ledgerRepo.On("Add", mock.Anything, bidder1, big.NewInt(1010)).Return(nil)
	s.auctionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return a.HighestBid == "1100" && a.HighestBidder == bidder2
	})).Return(nil)

	s.NoError(s.im.Bid(bCtx.Background(), bidder2, assetId, big.NewInt(1100)))
}

func (s *auctionSuite) TestBidBySeller() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", time.Hour), nil)

	err := s.im.Bid(bCtx.Background(), seller, assetId, big.NewInt(1000))
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *auctionSuite) TestBidAfterEnd() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", -time.Minute), nil)

	err := s.im.Bid(bCtx.Background(), bidder1, assetId, big.NewInt(1000))
	s.Equal(domain.ErrAlreadyFinalized, err)
}

func (s *auctionSuite) TestBidAntiSnipeExtension() {
	s.stubConfig()
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", 3*time.Minute), nil)
	s.auctionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return time.Until(*a.EndTime) > 9*time.Minute
	})).Return(nil)

	s.NoError(s.im.Bid(bCtx.Background(), bidder1, assetId, big.NewInt(1000)))
}

func (s *auctionSuite) TestCancelBid() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)
	s.ledgerRepo.On("Add", mock.Anything, bidder1, big.NewInt(900)).Return(nil)
	s.auctionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *auction.Auction) bool {
		return !a.HasBid() && a.HighestBid == "0"
	})).Return(nil)

	s.NoError(s.im.CancelBid(bCtx.Background(), bidder1, assetId))
}

func (s *auctionSuite) TestCancelBidNotHighestBidder() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)

	err := s.im.CancelBid(bCtx.Background(), bidder2, assetId)
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *auctionSuite) TestCancel() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", time.Hour), nil)
	s.auctionRepo.On("Remove", mock.Anything, assetId).Return(nil)
	s.registry.On("Transfer", mock.Anything, assetId, custody, seller).Return(nil)

	s.NoError(s.im.Cancel(bCtx.Background(), seller, assetId))
}

func (s *auctionSuite) TestCancelWithBid() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)

	err := s.im.Cancel(bCtx.Background(), seller, assetId)
	s.Equal(domain.ErrConflict, err)
}

func (s *auctionSuite) TestSettleBeforeEnd() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, time.Hour), nil)

	err := s.im.Settle(bCtx.Background(), assetId)
	s.Equal(domain.ErrConflict, err)
}

func (s *auctionSuite) TestSettleWithBidder() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("1000", bidder1, -time.Minute), nil)
	s.auctionRepo.On("Remove", mock.Anything, assetId).Return(nil)
	// the retained tenth of the winning bid runs through settlement
	s.settlement.On("Distribute", mock.Anything, big.NewInt(100), assetId, seller).
		Return(&settlement.Distribution{}, nil)
	s.registry.On("Transfer", mock.Anything, assetId, custody, bidder1).Return(nil)

	s.NoError(s.im.Settle(bCtx.Background(), assetId))
}

func (s *auctionSuite) TestSettleWithoutBidder() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).
		Return(s.activeAuction("0", "", -time.Minute), nil)
	s.auctionRepo.On("Remove", mock.Anything, assetId).Return(nil)
	s.registry.On("Transfer", mock.Anything, assetId, custody, seller).Return(nil)

	s.NoError(s.im.Settle(bCtx.Background(), assetId))
}

func (s *auctionSuite) TestSettleUnknownAuction() {
	s.auctionRepo.On("FindOne", mock.Anything, assetId).Return(nil, domain.ErrNotFound)

	err := s.im.Settle(bCtx.Background(), assetId)
	s.Equal(domain.ErrNotFound, err)
}

func (s *auctionSuite) TestGetAuctions() {
	listed := s.activeAuction("0", "", time.Hour)
	s.registry.On("TotalCount", mock.Anything).Return(3, nil)
	s.registry.On("AssetAtIndex", mock.Anything, 0).Return(domain.AssetId("5"), nil)
	s.registry.On("AssetAtIndex", mock.Anything, 1).Return(assetId, nil)
	s.registry.On("AssetAtIndex", mock.Anything, 2).Return(domain.AssetId("9"), nil)
	s.auctionRepo.On("FindOne", mock.Anything, domain.AssetId("5")).Return(nil, domain.ErrNotFound)
	s.auctionRepo.On("FindOne", mock.Anything, assetId).Return(listed, nil)
	s.auctionRepo.On("FindOne", mock.Anything, domain.AssetId("9")).Return(nil, domain.ErrNotFound)

	res, err := s.im.GetAuctions(bCtx.Background())
	s.NoError(err)
	s.Len(res, 3)
	s.False(res[0].IsActive())
	s.Equal(domain.AssetId("5"), res[0].AssetId)
	s.True(res[1].IsActive())
	s.Equal(seller, res[1].Seller)
	s.False(res[2].IsActive())
}

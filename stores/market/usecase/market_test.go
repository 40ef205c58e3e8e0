package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/market"
	mMarket "github.com/plaza-xyz/marketapi/domain/market/mocks"
	mQuery "github.com/plaza-xyz/marketapi/service/query/mocks"
)

const (
	operator = domain.Address("0x00000000000000000000000000000000000000fe")
	stranger = domain.Address("0x0000000000000000000000000000000000000099")
)

type marketSuite struct {
	suite.Suite

	configRepo *mMarket.ConfigRepo
	q          *mQuery.Mongo

	im market.AdminUseCase
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(marketSuite))
}

func (s *marketSuite) SetupTest() {
	s.configRepo = &mMarket.ConfigRepo{}
	s.q = &mQuery.Mongo{}
	s.q.On("RunWithTransaction", mock.Anything, mock.Anything).Return(
		func(c bCtx.Ctx, run func(bCtx.Ctx) error) error { return run(c) },
	).Maybe()

	s.im = New(&MarketUseCaseCfg{
		ConfigRepo: s.configRepo,
		Q:          s.q,
	})
}

func (s *marketSuite) TearDownTest() {
	s.configRepo.AssertExpectations(s.T())
}

func (s *marketSuite) stubConfig() {
	s.configRepo.On("FindOne", mock.Anything).Return(&market.Config{
		FeeRateBps:    250,
		DonationLimit: "0",
		Operator:      operator,
	}, nil)
}

func (s *marketSuite) TestUpdateMarketFee() {
	s.stubConfig()
	s.configRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *market.Config) bool {
		return cfg.FeeRateBps == 500
	})).Return(nil)

	s.NoError(s.im.UpdateMarketFee(bCtx.Background(), operator, 500))
}

func (s *marketSuite) TestUpdateMarketFeeByStranger() {
	s.stubConfig()

	err := s.im.UpdateMarketFee(bCtx.Background(), stranger, 500)
	s.Equal(domain.ErrUnauthorized, err)
}

func (s *marketSuite) TestUpdateMarketFeeOutOfRange() {
	err := s.im.UpdateMarketFee(bCtx.Background(), operator, market.MaxFeeRateBps+1)
	s.Equal(domain.ErrInvalidInput, err)

	err = s.im.UpdateMarketFee(bCtx.Background(), operator, -1)
	s.Equal(domain.ErrInvalidInput, err)
}

func (s *marketSuite) TestUpdateDonationLimit() {
	s.stubConfig()
	s.configRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *market.Config) bool {
		return cfg.DonationLimit == "777"
	})).Return(nil)

	s.NoError(s.im.UpdateDonationLimit(bCtx.Background(), operator, big.NewInt(777)))
}

func (s *marketSuite) TestUpdateDonationLimitNegative() {
	err := s.im.UpdateDonationLimit(bCtx.Background(), operator, big.NewInt(-1))
	s.Equal(domain.ErrInvalidInput, err)
}

func (s *marketSuite) TestGetConfig() {
	s.stubConfig()

	cfg, err := s.im.GetConfig(bCtx.Background())
	s.NoError(err)
	s.Equal(int64(250), cfg.FeeRateBps)
	s.Equal(operator, cfg.Operator)
}

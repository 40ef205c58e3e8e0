package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/domain"
	mLedger "github.com/plaza-xyz/marketapi/domain/ledger/mocks"
	"github.com/plaza-xyz/marketapi/domain/market"
	mMarket "github.com/plaza-xyz/marketapi/domain/market/mocks"
	"github.com/plaza-xyz/marketapi/domain/registry"
	mRegistry "github.com/plaza-xyz/marketapi/domain/registry/mocks"
	"github.com/plaza-xyz/marketapi/domain/settlement"
	mSettlement "github.com/plaza-xyz/marketapi/domain/settlement/mocks"
)

const (
	operator = domain.Address("0x00000000000000000000000000000000000000fe")
	creator  = domain.Address("0x00000000000000000000000000000000000000c1")
	seller   = domain.Address("0x0000000000000000000000000000000000000051")
	assetId  = domain.AssetId("7")
)

type settlementSuite struct {
	suite.Suite

	donationRepo *mSettlement.DonationRepo
	ledgerRepo   *mLedger.Repo
	configRepo   *mMarket.ConfigRepo
	registry     *mRegistry.Registry

	im settlement.UseCase
}

func TestSettlementSuite(t *testing.T) {
	suite.Run(t, new(settlementSuite))
}

func (s *settlementSuite) SetupTest() {
	s.donationRepo = &mSettlement.DonationRepo{}
	s.ledgerRepo = &mLedger.Repo{}
	s.configRepo = &mMarket.ConfigRepo{}
	s.registry = &mRegistry.Registry{}

	s.im = New(&SettlementUseCaseCfg{
		DonationRepo: s.donationRepo,
		LedgerRepo:   s.ledgerRepo,
		ConfigRepo:   s.configRepo,
		Registry:     s.registry,
	})
}

func (s *settlementSuite) TearDownTest() {
	s.donationRepo.AssertExpectations(s.T())
	s.ledgerRepo.AssertExpectations(s.T())
	s.configRepo.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
}

func (s *settlementSuite) stubAsset(rateBps int64) {
	s.registry.On("Exists", mock.Anything, assetId).Return(true, nil)
	s.registry.On("RoyaltyRecord", mock.Anything, assetId).Return(&registry.RoyaltyRecord{
		RateBps: rateBps,
		Creator: creator,
	}, nil)
}

func (s *settlementSuite) stubConfig(feeRateBps int64, donationLimit string) {
	s.configRepo.On("FindOne", mock.Anything).Return(&market.Config{
		FeeRateBps:    feeRateBps,
		DonationLimit: donationLimit,
		Operator:      operator,
	}, nil)
}

func (s *settlementSuite) stubDonation(amount string) {
	s.donationRepo.On("FindOne", mock.Anything, assetId).Return(&settlement.Donation{
		AssetId: assetId,
		Amount:  amount,
	}, nil)
}

func (s *settlementSuite) TestExhaustedDonationPool() {
	// price=1000, fee 2.5%, royalty 10%, no donation headroom
	s.stubAsset(1000)
	s.stubConfig(250, "0")
	s.stubDonation("0")
	s.ledgerRepo.On("Add", mock.Anything, operator, big.NewInt(25)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, creator, big.NewInt(100)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, seller, big.NewInt(875)).Return(nil)

	dist, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.NoError(err)
	s.Equal(big.NewInt(25), dist.OperatorFee)
	s.Equal(int64(0), dist.OperatorLoan.Int64())
	s.Equal(big.NewInt(100), dist.CreatorResidual)
	s.Equal(big.NewInt(875), dist.ReceiverAmount)
}

func (s *settlementSuite) TestPartialLoan() {
	// same sale with 200 units of donation headroom: loan=20 caps the pool
	s.stubAsset(1000)
	s.stubConfig(250, "200")
	s.stubDonation("0")
	s.donationRepo.On("Set", mock.Anything, assetId, big.NewInt(200)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, operator, big.NewInt(45)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, creator, big.NewInt(80)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, seller, big.NewInt(875)).Return(nil)

	dist, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.NoError(err)
	s.Equal(big.NewInt(25), dist.OperatorFee)
	s.Equal(big.NewInt(20), dist.OperatorLoan)
	s.Equal(big.NewInt(80), dist.CreatorResidual)
	s.Equal(big.NewInt(875), dist.ReceiverAmount)
}

func (s *settlementSuite) TestFullLoan() {
	// royalty fund below the available loan: everything goes to the operator
	// and the donation counter advances by the fund in donation units
	s.stubAsset(1000)
	s.stubConfig(250, "200")
	s.stubDonation("0")
	s.donationRepo.On("Set", mock.Anything, assetId, big.NewInt(100)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, operator, big.NewInt(13)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, seller, big.NewInt(87)).Return(nil)

	dist, err := s.im.Distribute(ctx.Background(), big.NewInt(100), assetId, seller)
	s.NoError(err)
	s.Equal(big.NewInt(3), dist.OperatorFee)
	s.Equal(big.NewInt(10), dist.OperatorLoan)
	s.Equal(int64(0), dist.CreatorResidual.Int64())
	s.Equal(big.NewInt(87), dist.ReceiverAmount)
}

func (s *settlementSuite) TestConservation() {
	s.stubAsset(700)
	s.stubConfig(250, "333")
	s.stubDonation("41")
	s.donationRepo.On("Set", mock.Anything, assetId, mock.Anything).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	price := big.NewInt(999999999999997)
	dist, err := s.im.Distribute(ctx.Background(), price, assetId, seller)
	s.NoError(err)

	total := new(big.Int).Add(dist.OperatorFee, dist.OperatorLoan)
	total.Add(total, dist.CreatorResidual)
	total.Add(total, dist.ReceiverAmount)
	s.Zero(price.Cmp(total))
}

func (s *settlementSuite) TestZeroRoyaltySkipsLoan() {
	s.stubAsset(0)
	s.stubConfig(250, "200")
	s.ledgerRepo.On("Add", mock.Anything, operator, big.NewInt(25)).Return(nil)
	s.ledgerRepo.On("Add", mock.Anything, seller, big.NewInt(975)).Return(nil)

	dist, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.NoError(err)
	s.Equal(int64(0), dist.OperatorLoan.Int64())
	s.Equal(int64(0), dist.CreatorResidual.Int64())
	s.Equal(big.NewInt(975), dist.ReceiverAmount)
}

func (s *settlementSuite) TestZeroPrice() {
	_, err := s.im.Distribute(ctx.Background(), big.NewInt(0), assetId, seller)
	s.Equal(domain.ErrInvalidInput, err)
}

func (s *settlementSuite) TestEmptyReceiver() {
	_, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, "")
	s.Equal(domain.ErrInvalidInput, err)
}

func (s *settlementSuite) TestUnknownAsset() {
	s.registry.On("Exists", mock.Anything, assetId).Return(false, nil)

	_, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.Equal(domain.ErrNotFound, err)
}

func (s *settlementSuite) TestEmptyCreator() {
	s.registry.On("Exists", mock.Anything, assetId).Return(true, nil)
	s.registry.On("RoyaltyRecord", mock.Anything, assetId).Return(&registry.RoyaltyRecord{
		RateBps: 500,
		Creator: "",
	}, nil)

	_, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.Equal(domain.ErrInvalidInput, err)
}

func (s *settlementSuite) TestRoyaltyRateOutOfRange() {
	s.registry.On("Exists", mock.Anything, assetId).Return(true, nil)
	s.registry.On("RoyaltyRecord", mock.Anything, assetId).Return(&registry.RoyaltyRecord{
		RateBps: 1001,
		Creator: creator,
	}, nil)

	_, err := s.im.Distribute(ctx.Background(), big.NewInt(1000), assetId, seller)
	s.Equal(domain.ErrInvalidInput, err)
}

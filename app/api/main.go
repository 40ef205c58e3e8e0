package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/database/mongoclient"
	"github.com/plaza-xyz/marketapi/base/log"
	bValidator "github.com/plaza-xyz/marketapi/base/validator"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/market"
	mmiddleware "github.com/plaza-xyz/marketapi/middleware"
	"github.com/plaza-xyz/marketapi/service/chain"
	"github.com/plaza-xyz/marketapi/service/query"
	registry_service "github.com/plaza-xyz/marketapi/service/registry"
	treasury_service "github.com/plaza-xyz/marketapi/service/treasury"
	auction_delivery "github.com/plaza-xyz/marketapi/stores/auction/delivery/http"
	auction_repository "github.com/plaza-xyz/marketapi/stores/auction/repository"
	auction_usecase "github.com/plaza-xyz/marketapi/stores/auction/usecase"
	auth_delivery "github.com/plaza-xyz/marketapi/stores/auth/delivery/http"
	auth_middleware "github.com/plaza-xyz/marketapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/plaza-xyz/marketapi/stores/auth/usecase"
	hc_delivery "github.com/plaza-xyz/marketapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/plaza-xyz/marketapi/stores/healthcheck/repository"
	hc_usecase "github.com/plaza-xyz/marketapi/stores/healthcheck/usecase"
	ledger_delivery "github.com/plaza-xyz/marketapi/stores/ledger/delivery/http"
	ledger_repository "github.com/plaza-xyz/marketapi/stores/ledger/repository"
	ledger_usecase "github.com/plaza-xyz/marketapi/stores/ledger/usecase"
	market_delivery "github.com/plaza-xyz/marketapi/stores/market/delivery/http"
	market_repository "github.com/plaza-xyz/marketapi/stores/market/repository"
	market_usecase "github.com/plaza-xyz/marketapi/stores/market/usecase"
	offer_delivery "github.com/plaza-xyz/marketapi/stores/offer/delivery/http"
	offer_repository "github.com/plaza-xyz/marketapi/stores/offer/repository"
	offer_usecase "github.com/plaza-xyz/marketapi/stores/offer/usecase"
	settlement_repository "github.com/plaza-xyz/marketapi/stores/settlement/repository"
	settlement_usecase "github.com/plaza-xyz/marketapi/stores/settlement/usecase"
)

func init() {
	// .env only carries secrets for local runs; absent in deployed pods
	_ = godotenv.Load()

	pflag.String("config", "infra/configs/config.yaml", "config file path")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(viper.GetString("config"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

// seedMarketConfig writes the configured marketplace parameters when no
// config document exists yet. A present document wins over the config file so
// operator updates survive restarts.
func seedMarketConfig(context ctx.Ctx, repo market.ConfigRepo) {
	_, err := repo.FindOne(context)
	if err == nil {
		return
	}
	if err != domain.ErrNotFound {
		panic(err)
	}

	cfg := &market.Config{
		FeeRateBps:      viper.GetInt64("market.feeRateBps"),
		DonationLimit:   viper.GetString("market.donationLimit"),
		Operator:        domain.Address(viper.GetString("market.operator")).ToLower(),
		MinBidIncrement: viper.GetString("market.minBidIncrement"),
	}
	if cfg.FeeRateBps < 0 || cfg.FeeRateBps > market.MaxFeeRateBps {
		panic("market.feeRateBps out of range")
	}
	if cfg.Operator.IsEmpty() {
		panic("market.operator is required")
	}
	if err := repo.Upsert(context, cfg); err != nil {
		panic(err)
	}
	context.WithField("operator", cfg.Operator).Info("seeded market config")
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	// one transaction at a time: public operations never interleave
	q := query.New(mongoClient, 1)

	// init chain-backed asset registry
	context.Info("init registry")
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrl:              viper.GetString("chain.rpcUrl"),
		SignerKey:           viper.GetString("chain.signerKey"),
		ChainId:             viper.GetInt64("chain.chainId"),
		MaxInflightRequests: viper.GetInt("chain.maxInflightRequests"),
	})
	if err != nil {
		context.WithField("err", err).Error("chain client failed to start")
		panic(err)
	}
	registryService := registry_service.New(&registry_service.Cfg{
		ChainService: chainService,
		Contract:     domain.Address(viper.GetString("registry.contract")),
	})
	custody := domain.Address(chainService.Signer().Hex()).ToLower()

	// init treasury payout client
	treasuryClient := treasury_service.NewClient(&treasury_service.ClientCfg{
		BaseUrl: viper.GetString("treasury.baseUrl"),
		ApiKey:  viper.GetString("treasury.apiKey"),
		Timeout: viper.GetDuration("treasury.timeout"),
		Retries: viper.GetInt("treasury.retries"),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	offerRepo := offer_repository.NewOfferRepo(q)
	auctionRepo := auction_repository.NewAuctionRepo(q)
	balanceRepo := ledger_repository.NewBalanceRepo(q)
	donationRepo := settlement_repository.NewDonationRepo(q)
	configRepo := market_repository.NewConfigRepo(q)

	seedMarketConfig(context, configRepo)

	hc := hc_usecase.New(hcRepo)
	settlementUC := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		DonationRepo: donationRepo,
		LedgerRepo:   balanceRepo,
		ConfigRepo:   configRepo,
		Registry:     registryService,
	})
	ledgerUC := ledger_usecase.New(&ledger_usecase.LedgerUseCaseCfg{
		LedgerRepo: balanceRepo,
		Transfer:   treasuryClient,
		Q:          q,
	})
	offerUC := offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
		OfferRepo:  offerRepo,
		LedgerRepo: balanceRepo,
		Settlement: settlementUC,
		Registry:   registryService,
		Q:          q,
		Custody:    custody,
	})
	auctionUC := auction_usecase.New(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo: auctionRepo,
		ConfigRepo:  configRepo,
		LedgerRepo:  balanceRepo,
		Settlement:  settlementUC,
		Registry:    registryService,
		Q:           q,
		Custody:     custody,
	})
	marketUC := market_usecase.New(&market_usecase.MarketUseCaseCfg{
		ConfigRepo: configRepo,
		Q:          q,
	})
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetString("auth.signatureMsg"))

	authMw := auth_middleware.New(auth, marketUC)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	offer_delivery.New(e, authMw, offerUC)
	auction_delivery.New(e, authMw, auctionUC)
	ledger_delivery.New(e, authMw, ledgerUC, viper.GetInt32("ledger.displayDecimals"))
	market_delivery.New(e, authMw, marketUC)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

package main

import (
	"github.com/flexcart/flexcart/internal/api"
	v1 "github.com/flexcart/flexcart/internal/api/v1"
	"github.com/flexcart/flexcart/internal/config"
	"github.com/flexcart/flexcart/internal/idempotency"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	repo "github.com/flexcart/flexcart/internal/repository/postgres"
	"github.com/flexcart/flexcart/internal/service"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.GetLogger().Fatalw("failed to load config", "error", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.GetLogger().Fatalw("failed to initialize logger", "error", err)
	}

	db, err := postgres.NewClient(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	params := service.ServiceParams{
		Logger:          log,
		Config:          cfg,
		DB:              db,
		IdempotencyGen:  idempotency.NewGenerator(),
		TotalCalculator: service.NewFlatTotalCalculator(),
		CustomerRepo:    repo.NewCustomerRepository(db, log),
		OrderRepo:       repo.NewOrderRepository(db, log),
		AdjustmentRepo:  repo.NewAdjustmentRepository(db, log),
		CreditGrantRepo: repo.NewCreditGrantRepository(db, log),
	}

	lifecycle := service.NewOrderLifecycleService(params)
	storeCredit := service.NewStoreCreditService(params)

	router := api.NewRouter(api.Handlers{
		StoreCredit: v1.NewStoreCreditHandler(lifecycle, storeCredit, log),
	}, log)

	log.Infow("starting server", "address", cfg.Server.Address)
	if err := router.Run(cfg.Server.Address); err != nil {
		log.Fatalw("server exited", "error", err)
	}
}

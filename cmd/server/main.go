package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngocxb/caseflow/internal/adapters/http/handler"
	"github.com/ngocxb/caseflow/internal/adapters/repository/postgres"
	"github.com/ngocxb/caseflow/internal/core/cases"
	"github.com/ngocxb/caseflow/internal/core/customer"
	"github.com/ngocxb/caseflow/internal/core/employee"
	"github.com/ngocxb/caseflow/internal/core/evaluation"
	"github.com/ngocxb/caseflow/internal/core/health"
	"github.com/ngocxb/caseflow/internal/core/taxonomy"
	"github.com/ngocxb/caseflow/internal/platform/config"
	pg "github.com/ngocxb/caseflow/internal/platform/db/postgres"
	"github.com/ngocxb/caseflow/internal/platform/server"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database pool")
	}
	defer dbPool.Close()

	tm := pg.NewTransactionManager(dbPool)

	caseTypeRepo := postgres.NewCaseTypeRepository(dbPool)
	typeDirectory := taxonomy.NewDirectory(caseTypeRepo)

	optionRepo := postgres.NewEvaluationOptionRepository(dbPool)
	catalogCache := evaluation.NewCatalogCache(optionRepo)
	catalogCache.SetRetryPolicy(cfg.Catalog.LoadRetries, cfg.Catalog.RetryDelay)

	caseSvc := cases.NewService(postgres.NewCaseRepository(dbPool), typeDirectory, nil, tm)
	taxonomySvc := taxonomy.NewService(caseTypeRepo, nil)
	employeeSvc := employee.NewService(postgres.NewEmployeeRepository(dbPool), nil)
	customerSvc := customer.NewService(postgres.NewCustomerRepository(dbPool), nil)
	healthSvc := health.NewService(dbPool)

	httpServer := server.New(cfg.Server.ListenAddr, cfg.Server.ShutdownTimeout, log,
		handler.NewCaseHandler(caseSvc, log),
		handler.NewEvaluationHandler(catalogCache, log),
		handler.NewTaxonomyHandler(taxonomySvc, typeDirectory, log),
		handler.NewEmployeeHandler(employeeSvc, log),
		handler.NewCustomerHandler(customerSvc, log),
		handler.NewHealthHandler(healthSvc, log),
	)

	log.WithField("addr", cfg.Server.ListenAddr).Info("HTTP server listening")

	if err := httpServer.Run(ctx); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
}

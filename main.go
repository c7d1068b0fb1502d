package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/claritybank/badge-server/api"
	"github.com/claritybank/badge-server/internal/badges"
	"github.com/claritybank/badge-server/internal/config"
	"github.com/claritybank/badge-server/internal/events"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/operator"
	"github.com/claritybank/badge-server/internal/service"
	"github.com/claritybank/badge-server/internal/storage"
	"github.com/claritybank/badge-server/internal/summary"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("badge-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := badges.DefaultCatalog()
	if err != nil {
		logger.WithError(err).Fatal("badges.DefaultCatalog")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	opts := service.Options{
		Evaluator:    badges.NewEvaluator(catalog, badges.WithLegacy(envConfig.BadgeIncludeLegacy)),
		Logger:       logger,
		Location:     envConfig.Location,
		HistoryLimit: envConfig.BadgeHistoryLimit,
	}

	if envConfig.GenAIAPIKey != "" {
		summarizer, err := summary.NewGeminiSummarizer(ctx, envConfig.GenAIAPIKey, envConfig.GenAIModel)
		if err != nil {
			logger.WithError(err).Fatal("summary.NewGeminiSummarizer")
			return
		}
		opts.Summarizer = summarizer
	} else {
		logger.Warn("GENAI_API_KEY not set, account summaries are disabled")
	}

	if envConfig.RabbitMQURL != "" {
		publisher, err := events.NewRabbitMQPublisher(events.RabbitMQConfig{
			URL:        envConfig.RabbitMQURL,
			Exchange:   envConfig.RabbitMQExchange,
			RoutingKey: envConfig.RabbitMQRoutingKey,
		})
		if err != nil {
			logger.WithError(err).Fatal("events.NewRabbitMQPublisher")
			return
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	svc := service.NewService(dbStorage, delegator, opts)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
		Storage: dbStorage,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("badge-server stopped")
}

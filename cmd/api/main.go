package main

import (
	"context"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/api"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/api/validator"
	v1 "github.com/onenetwo/billing-services/callbackprocessor/internal/api/v1"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/config"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/database"
	apperrors "github.com/onenetwo/billing-services/callbackprocessor/internal/errors"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/model"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/repository"
	"github.com/onenetwo/billing-services/callbackprocessor/internal/service"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/httpclient"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/mq"
	"github.com/onenetwo/billing-services/callbackprocessor/pkg/netcontrol"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewConnection,
			newRabbitMQ,
			newPublisher,
			newDeviceClient,
			newValidator,
			newFiberApp,
			metrics.NewMetrics,
			repository.NewTransactionManager,
			repository.NewPaymentRepository,
			repository.NewDebugLogRepository,
			repository.NewSubscriberRepository,
			repository.NewISPRepository,
			repository.NewWalletRepository,
			repository.NewCreditRepository,
			repository.NewUserTransactionRepository,
			service.NewAuditLogger,
			service.NewNotifier,
			service.NewPaymentLogService,
			service.NewCustomerPaymentService,
			service.NewCreditPurchaseService,
			service.NewServicePaymentService,
			service.NewPaymentRouter,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func newRabbitMQ(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func newPublisher(rabbit *mq.RabbitMQ) (mq.Publisher, error) {
	queues := []string{service.QueueAdminNotifications, service.QueueISPNotifications}
	if err := rabbit.DeclareTopology(queues); err != nil {
		return nil, err
	}

	return rabbit.CreatePublisher()
}

func newDeviceClient(cfg *config.Config) netcontrol.Client {
	return netcontrol.NewClient(cfg.DeviceAPI, httpclient.NewHTTPClient(cfg.DeviceAPI.Timeout))
}

func newValidator() validator.IXValidator {
	return validator.NewXValidator(playground.New())
}

func newFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler()})
}

func startServer(lc fx.Lifecycle, app *fiber.App, handler *v1.Handler, cfg *config.Config,
	db *gorm.DB, m *metrics.Metrics, rabbit *mq.RabbitMQ, logger *zap.Logger) {
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	api.SetupRoutes(app, handler)

	collector := metrics.NewSystemCollector(m, logger)
	dbCollector := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.WithContext(ctx).AutoMigrate(&model.DebugLog{}); err != nil {
				return err
			}

			collector.Start(30 * time.Second)
			dbCollector.Start(30 * time.Second)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()

			logger.Info("Payment processor started", zap.String("port", cfg.API.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			dbCollector.Stop()

			if err := rabbit.Close(); err != nil {
				logger.Warn("Failed to close RabbitMQ connection", zap.Error(err))
			}

			return app.ShutdownWithContext(ctx)
		},
	})
}

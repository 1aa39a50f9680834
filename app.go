package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goodlandcafe/pos_backend/api"
	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/receipt"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/goodlandcafe/pos_backend/workflow"
	"github.com/sirupsen/logrus"
)

// App holds the wired services and the background workers started for them.
type App struct {
	Handler   *api.Handler
	StoreKind string

	bus         *events.Bus
	stopWorkers context.CancelFunc
	closers     []func()
}

// StopWorkers cancels the forwarder and closes the bus, which also ends open event streams.
func (a *App) StopWorkers() {
	if a.stopWorkers != nil {
		a.stopWorkers()
	}
	a.bus.Close()
}

func (a *App) Close() {
	a.StopWorkers()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildStore() (models.Store, string, func(), error) {
	if !config.DatabaseConfigured() {
		config.GetLogger().WithFields(logrus.Fields{"field": "database"}).Warn("DB_HOST/DB_NAME not set; using in-memory store")
		return models.NewMemoryStore(), "memory", func() {}, nil
	}
	if err := config.ConnectDatabaseWithRetry(config.IntFromEnv("DB_CONNECT_ATTEMPTS", 0)); err != nil {
		return nil, "", nil, err
	}
	db := config.GetDB()
	// AutoMigrate may lock tables; allow running it as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.MigrateTable(db); err != nil {
			return nil, "", nil, fmt.Errorf("migrate: %w", err)
		}
	} else {
		config.GetLogger().WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return models.NewGormStore(db), "mysql", closeDB, nil
}

func buildReceiptRenderer() (*receipt.Renderer, error) {
	formats, err := receipt.ParseFormats(utils.SplitAndTrim(os.Getenv("RECEIPT_FORMATS")))
	if err != nil {
		return nil, err
	}
	var store receipt.Store
	if bucket := utils.GCSBucket(); bucket != "" {
		store = receipt.GCSStore{Bucket: bucket, Prefix: "receipts/"}
	} else {
		dir := strings.TrimSpace(os.Getenv("RECEIPT_DIR"))
		if dir == "" {
			dir = "receipts"
		}
		store = receipt.DirStore{Dir: dir}
	}
	return receipt.NewRenderer(store, config.BusinessLocation(), formats...), nil
}

func startPubSubForwarder(ctx context.Context, bus *events.Bus) (func(), error) {
	client, err := config.GetPubSubClient(ctx)
	if err != nil {
		return nil, err
	}
	topic, err := config.CreateTopicIfNotExists(ctx, client, config.NotificationTopic())
	if err != nil {
		return nil, err
	}
	sink := events.NewPubSubSink(topic)
	go events.Forward(ctx, bus, sink, events.NotificationCreated, events.OrderPlaced, events.OrderCompleted)
	return func() {
		sink.Stop()
		_ = client.Close()
	}, nil
}

func buildApp(ctx context.Context) (*App, error) {
	logger := config.GetLogger()
	devSecret, err := utils.CheckJwtSecret(config.IsProduction())
	if err != nil {
		return nil, err
	}
	if devSecret {
		logger.WithFields(logrus.Fields{"field": "auth"}).Error("API_SECRET is not set; manager tokens use the development secret")
	}
	app := &App{bus: events.NewBus()}

	store, kind, closeStore, err := buildStore()
	if err != nil {
		return nil, err
	}
	app.StoreKind = kind
	app.closers = append(app.closers, closeStore)

	var (
		sequence models.OrderSequence = models.StoreOrderSequence{Store: store}
		locker   workflow.ItemLocker  = workflow.NewLocalItemLocker()
	)
	if config.RedisConfigured() {
		if err := config.ConnectRedisWithRetry(config.IntFromEnv("REDIS_CONNECT_ATTEMPTS", 5)); err != nil {
			logger.WithFields(logrus.Fields{"field": "redis"}).Warn("redis unavailable; using local locks and store sequence: " + err.Error())
		} else {
			sequence = models.NewRedisOrderSequence(config.GetRedisDB(), store)
			locker = workflow.NewRedisItemLocker(config.GetRedisLock())
			app.closers = append(app.closers, func() { _ = config.GetRedisDB().Close() })
		}
	}

	renderer, err := buildReceiptRenderer()
	if err != nil {
		return nil, err
	}

	workerCtx, cancelWorkers := context.WithCancel(context.WithoutCancel(ctx))
	app.stopWorkers = cancelWorkers
	if config.PubSubConfigured() {
		stop, err := startPubSubForwarder(workerCtx, app.bus)
		if err != nil {
			config.LogError(logger, "main", "buildApp", "start pubsub forwarder", config.NotificationTopic(), err)
		} else {
			app.closers = append(app.closers, stop)
		}
	}

	alerts := workflow.NewStockAlertEvaluator(store, app.bus)
	ledger := workflow.NewLedger(store, locker, app.bus, config.InventoryShortfallPolicy())
	orders := workflow.NewOrderWorkflow(workflow.OrderWorkflowConfig{
		Store:        store,
		Sequence:     sequence,
		Ledger:       ledger,
		Alerts:       alerts,
		Receipts:     renderer,
		Publisher:    app.bus,
		QuoteOptions: models.QuoteOptions{ClampNonNegative: config.PricingClampNonNegative()},
	})

	app.Handler = &api.Handler{
		Store:     store,
		Orders:    orders,
		Ledger:    ledger,
		Inventory: workflow.NewInventoryService(store, locker, alerts, app.bus),
		Bus:       app.bus,
		Manager: api.ManagerCredentials{
			Username:     strings.TrimSpace(os.Getenv("MANAGER_USERNAME")),
			PasswordHash: strings.TrimSpace(os.Getenv("MANAGER_PASSWORD_HASH")),
		},
		Alpha:    config.ForecastAlpha(),
		Location: config.BusinessLocation(),
	}

	logger.WithFields(logrus.Fields{
		"store":            kind,
		"shortfall_policy": ledger.Policy(),
		"receipt_formats":  renderer.Formats,
	}).Info("services wired")
	return app, nil
}

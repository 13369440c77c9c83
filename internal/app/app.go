package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/ecoscan/config"
	"github.com/niksmo/ecoscan/internal/adapter/barcode"
	"github.com/niksmo/ecoscan/internal/adapter/catalog"
	"github.com/niksmo/ecoscan/internal/adapter/httphandler"
	"github.com/niksmo/ecoscan/internal/adapter/kafka"
	"github.com/niksmo/ecoscan/internal/adapter/storage"
	"github.com/niksmo/ecoscan/internal/core/service"
	"github.com/niksmo/ecoscan/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx            context.Context
	cfg            config.Config
	scanEventSerde schema.Serde
	scansProducer  kafka.ScanEventsProducer
	statsProcessor kafka.ScanStatsProcessor
	statsView      *kafka.ScanStatsView
	sqldb          storage.SQLDB
	service        *service.Service
	httpServer     httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerde()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerde() {
	const op = "App.initSerde"
	urls := app.cfg.Broker.SchemaRegistryURLs

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	scanEventSS := app.cfg.Broker.ScanEventsTopic + "-value"
	scanEventSerde, err := schema.NewSerdeScanEventV1(
		app.ctx,
		schema.SubjectOpt(scanEventSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.scanEventSerde = scanEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	scanEventsTopic := app.cfg.Broker.ScanEventsTopic
	statsGroup := app.cfg.Broker.StatsGroup

	scansProducer, err := kafka.NewScanEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, scanEventsTopic),
		kafka.ProducerEncoderOpt(app.scanEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsProcessor, err := kafka.NewScanStatsProcessor(
		seedBrokers, scanEventsTopic, statsGroup, app.scanEventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	statsView, err := kafka.NewScanStatsView(seedBrokers, statsGroup)
	if err != nil {
		app.fallDown(op, err)
	}

	sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	app.scansProducer = scansProducer
	app.statsProcessor = statsProcessor
	app.statsView = statsView
	app.sqldb = sqldb
}

func (app *App) initCoreService() {
	app.service = service.New(service.Config{
		Decoder: barcode.New(),
		Catalog: catalog.New(catalog.Config{
			ProductURL: app.cfg.Catalog.ProductURL,
			SearchURL:  app.cfg.Catalog.SearchURL,
			UserAgent:  app.cfg.Catalog.UserAgent,
			Timeout:    app.cfg.Catalog.Timeout,
		}),
		Events:          app.scansProducer,
		History:         storage.NewScansRepository(app.sqldb),
		CarbonThreshold: app.cfg.Scan.CarbonThreshold,
		MaxAlternatives: app.cfg.Scan.MaxAlternatives,
	})
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterScan(mux, app.service, app.service)
	httphandler.RegisterStats(mux, app.statsView)
	httphandler.RegisterHealth(mux)

	handler := httphandler.LimitBody(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.statsProcessor.Run(app.ctx)
	go app.statsView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.statsProcessor.Close()
	app.scansProducer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

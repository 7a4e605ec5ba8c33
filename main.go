package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"orderbook/collections"
	"orderbook/config"
	"orderbook/handlers"
	"orderbook/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	configureLogging(cfg)

	app := pocketbase.New()
	opts := handlers.Options{
		Company:    cfg.CompanyInfo(),
		PageSize:   cfg.Orders.PageSize,
		GSTPercent: cfg.Orders.DefaultGSTPercent,
		ExportDir:  cfg.Export.Dir,
		Guard:      handlers.NewSubmitGuard(),
	}

	app.RootCmd.AddCommand(newExportCmd(app, cfg))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := collections.Setup(app); err != nil {
			return err
		}
		if cfg.SeedDemo {
			if err := collections.Seed(context.Background(), app, store.NewOrderStore(app), time.Now()); err != nil {
				log.Warn().Err(err).Msg("seed data failed")
			}
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.HeaderMiddleware(app, opts))

		// ── Order list ───────────────────────────────────────────
		se.Router.GET("/orders", handlers.HandleOrderList(app, opts))
		se.Router.POST("/orders/{orderNo}/status", handlers.HandleOrderStatus(app, opts))
		se.Router.DELETE("/orders/{orderNo}", handlers.HandleOrderDelete(app, opts))

		// ── Order form ───────────────────────────────────────────
		se.Router.GET("/orders/new", handlers.HandleOrderNew(app, opts))
		se.Router.GET("/orders/{orderNo}/edit", handlers.HandleOrderEdit(app, opts))
		se.Router.POST("/orders/form/items", handlers.HandleOrderFormItems(app, opts))
		se.Router.POST("/orders", handlers.HandleOrderSave(app, opts))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/orders/export/excel", handlers.HandleOrdersExcel(app, opts))
		se.Router.POST("/orders/export", handlers.HandleOrdersExport(app, opts))
		se.Router.GET("/orders/{orderNo}/pdf", handlers.HandleOrderPDF(app, opts))
		se.Router.GET("/orders/{orderNo}/print", handlers.HandleOrderPrint(app, opts))
		se.Router.POST("/orders/{orderNo}/print", handlers.HandleOrderPrintSave(app, opts))

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/orders")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("orderbook stopped")
	}
}

func configureLogging(cfg config.Config) {
	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())
}

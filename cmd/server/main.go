package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/forsight/infra/config"
	"github.com/drakos74/forsight/internal/algo/forecast"
	"github.com/drakos74/forsight/internal/algo/forecast/panel"
	"github.com/drakos74/forsight/internal/metrics"
	"github.com/drakos74/forsight/internal/server"
	"github.com/drakos74/forsight/internal/storage"
	jsonstore "github.com/drakos74/forsight/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	key := flag.String("config", "forecast", "config key under infra/config")
	flag.Parse()

	cfg := config.MustLoad(*key)
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Logging.Level).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	source := jsonstore.NewRecordStore(cfg.Storage.Dir)
	forecaster := forecast.NewForecaster(cfg.Forecast, source, panel.New(panel.Families(cfg.Panel)...))
	if cfg.Storage.Archive {
		forecaster.WithArchive(jsonstore.NewFileStorage(cfg.Storage.Dir, storage.ForecastsDir))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = server.NewServer("forsight", cfg.Server.Port).
		WithTimeout(cfg.Server.Timeout).
		WithLimit(cfg.Server.Limit).
		Add(server.NewAPI(source, forecaster).Routes()...).
		Mount("/metrics", metrics.Handler()).
		Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

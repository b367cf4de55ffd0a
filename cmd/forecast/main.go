package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/drakos74/forsight/infra/config"
	"github.com/drakos74/forsight/internal/algo/forecast"
	"github.com/drakos74/forsight/internal/algo/forecast/panel"
	"github.com/drakos74/forsight/internal/model"
	"github.com/drakos74/forsight/internal/storage"
	jsonstore "github.com/drakos74/forsight/internal/storage/file/json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	file := flag.String("config", "infra/config/forecast.yaml", "config file")
	symbol := flag.String("symbol", "", "symbol to forecast")
	days := flag.Int("days", 0, "forecast horizon in days, 0 uses the configured one")
	asJSON := flag.Bool("json", false, "print the forecast as json")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Logging.Level).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	source := jsonstore.NewRecordStore(cfg.Storage.Dir)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Forecast.Timeout)
	defer cancel()

	if *symbol == "" {
		symbols, err := source.Symbols(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not list symbols")
		}
		for _, s := range symbols {
			fmt.Println(s)
		}
		return
	}

	forecaster := forecast.NewForecaster(cfg.Forecast, source, panel.New(panel.Families(cfg.Panel)...))
	if cfg.Storage.Archive {
		forecaster.WithArchive(jsonstore.NewFileStorage(cfg.Storage.Dir, storage.ForecastsDir))
	}

	f, err := forecaster.Forecast(ctx, model.Symbol(*symbol), *days)
	if err != nil {
		if forecast.Unavailable(err) {
			fmt.Printf("%s: %s\n", *symbol, forecast.Cause(err))
			os.Exit(2)
		}
		log.Fatal().Err(err).Str("symbol", *symbol).Msg("could not forecast")
	}

	if *asJSON {
		b, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not encode forecast")
		}
		fmt.Println(string(b))
		return
	}
	fmt.Println(forecast.Format(f))
}

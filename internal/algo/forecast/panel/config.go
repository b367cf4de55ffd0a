package panel

import (
	"github.com/creasty/defaults"
	"github.com/drakos74/forsight/internal/math/ml"
	"github.com/drakos74/forsight/internal/model"
)

// Config holds the fixed hyperparameters of every family.
type Config struct {
	Seed      int64     `yaml:"seed" default:"42"`
	Forest    Forest    `yaml:"forest"`
	Boost     Boost     `yaml:"boost"`
	Histogram Histogram `yaml:"histogram"`
}

type Forest struct {
	Trees          int `yaml:"trees" default:"100" validate:"gte=1"`
	MaxDepth       int `yaml:"max_depth" default:"10" validate:"gte=1"`
	MinSamplesLeaf int `yaml:"min_samples_leaf" default:"1" validate:"gte=1"`
	Workers        int `yaml:"workers" validate:"gte=0"`
}

type Boost struct {
	Stages       int     `yaml:"stages" default:"100" validate:"gte=1"`
	MaxDepth     int     `yaml:"max_depth" default:"5" validate:"gte=1"`
	LearningRate float64 `yaml:"learning_rate" default:"0.1" validate:"gt=0,lte=1"`
	Subsample    float64 `yaml:"subsample" default:"1" validate:"gt=0,lte=1"`
}

// Histogram configures the optional histogram boosting family.
type Histogram struct {
	Enabled        bool    `yaml:"enabled" default:"true"`
	Rounds         int     `yaml:"rounds" default:"100" validate:"gte=1"`
	MaxDepth       int     `yaml:"max_depth" default:"6" validate:"gte=1"`
	Bins           int     `yaml:"bins" default:"255" validate:"gte=2"`
	LearningRate   float64 `yaml:"learning_rate" default:"0.1" validate:"gt=0,lte=1"`
	Lambda         float64 `yaml:"lambda" default:"1" validate:"gte=0"`
	MinChildWeight float64 `yaml:"min_child_weight" default:"1" validate:"gte=0"`
}

// DefaultConfig returns the config with all defaults applied.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err.Error())
	}
	return cfg
}

// Construct creates a new unfitted regressor.
type Construct func() ml.Regressor

// Family is a named regressor constructor of the panel.
type Family struct {
	Name model.Family
	New  Construct
}

// Families returns the panel families for the given config in panel order.
func Families(cfg Config) []Family {
	ff := []Family{
		{
			Name: model.RandomForest,
			New: func() ml.Regressor {
				return ml.NewForest(ml.ForestConfig{
					Trees:          cfg.Forest.Trees,
					MaxDepth:       cfg.Forest.MaxDepth,
					MinSamplesLeaf: cfg.Forest.MinSamplesLeaf,
					Seed:           cfg.Seed,
					Workers:        cfg.Forest.Workers,
				})
			},
		},
		{
			Name: model.GradientBoosting,
			New: func() ml.Regressor {
				return ml.NewGradientBoosting(ml.BoostConfig{
					Stages:       cfg.Boost.Stages,
					MaxDepth:     cfg.Boost.MaxDepth,
					LearningRate: cfg.Boost.LearningRate,
					Subsample:    cfg.Boost.Subsample,
					Seed:         cfg.Seed,
				})
			},
		},
		{
			Name: model.LinearRegression,
			New: func() ml.Regressor {
				return ml.NewLinearRegression()
			},
		},
	}
	if cfg.Histogram.Enabled {
		ff = append(ff, Family{
			Name: model.HistGradientBoosting,
			New: func() ml.Regressor {
				return ml.NewHistBoosting(ml.HistConfig{
					Rounds:         cfg.Histogram.Rounds,
					MaxDepth:       cfg.Histogram.MaxDepth,
					Bins:           cfg.Histogram.Bins,
					LearningRate:   cfg.Histogram.LearningRate,
					Lambda:         cfg.Histogram.Lambda,
					MinChildWeight: cfg.Histogram.MinChildWeight,
				})
			},
		})
	}
	return ff
}

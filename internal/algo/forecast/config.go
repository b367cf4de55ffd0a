package forecast

import (
	"time"

	"github.com/creasty/defaults"
)

// Config defines the gates and partitioning of a forecast run.
type Config struct {
	// Horizon is the number of observations ahead the target is taken from.
	Horizon int `yaml:"horizon" default:"30" validate:"gte=1,lte=365"`
	// MinHistory is the minimum number of raw records.
	MinHistory int `yaml:"min_history" default:"200" validate:"gte=1"`
	// MinRows is the minimum number of feature rows with a realized target.
	MinRows int `yaml:"min_rows" default:"100" validate:"gte=2"`
	// MinFeatures is the minimum number of retained feature columns.
	MinFeatures  int     `yaml:"min_features" default:"5" validate:"gte=1"`
	MinCoverage  float64 `yaml:"min_coverage" default:"0.5" validate:"gte=0,lt=1"`
	TestRatio    float64 `yaml:"test_ratio" default:"0.2" validate:"gt=0,lt=1"`
	MaxFolds     int     `yaml:"max_folds" default:"5" validate:"gte=1"`
	RowsPerFold  int     `yaml:"rows_per_fold" default:"20" validate:"gte=1"`
	Top          int     `yaml:"top" default:"10" validate:"gte=1"`
	FeatureNames int     `yaml:"feature_names" default:"20" validate:"gte=1"`
	// Timeout is the wall clock budget the callers enforce on a single run.
	Timeout time.Duration `yaml:"timeout" default:"2m"`
}

// DefaultConfig returns the config with all defaults applied.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(err.Error())
	}
	return cfg
}

// Folds returns the number of cross validation folds for the given training rows.
func (cfg Config) Folds(trainRows int) int {
	k := trainRows / cfg.RowsPerFold
	if k > cfg.MaxFolds {
		k = cfg.MaxFolds
	}
	if k < 1 {
		k = 1
	}
	return k
}

package panel

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/drakos74/forsight/internal/math/ml"
	"github.com/drakos74/forsight/internal/model"
	"gonum.org/v1/gonum/stat"
)

// Data is the scaled training and test data shared by all families.
// It must not be modified while a panel is training.
type Data struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64
	Folds  int
}

// Outcome is the result of a single family, either a fitted model with its metrics or the reason it failed.
type Outcome struct {
	Family   model.Family
	Model    ml.Regressor
	Metrics  model.Metrics
	Duration time.Duration
	Err      error
}

// OK returns true if the family produced a usable model.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Model != nil
}

// Evaluate fits a fresh model of the family on the training data,
// scores it on the test data and cross validates it on the training data.
// It stops with the context error once the context is done.
func Evaluate(ctx context.Context, family Family, data Data) (outcome Outcome) {
	start := time.Now()
	outcome.Family = family.Name
	defer func() {
		if r := recover(); r != nil {
			outcome.Model = nil
			outcome.Err = fmt.Errorf("panic: %v", r)
		}
		outcome.Duration = time.Since(start)
	}()

	m := family.New()
	if err := ml.Fit(ctx, m, data.XTrain, data.YTrain); err != nil {
		outcome.Err = fmt.Errorf("could not train: %w", err)
		return outcome
	}

	pred := ml.PredictAll(m, data.XTest)
	metrics := model.Metrics{
		TestR2: ml.R2(data.YTest, pred),
		RMSE:   ml.RMSE(data.YTest, pred),
		MAE:    ml.MAE(data.YTest, pred),
	}
	if invalid(metrics.TestR2, metrics.RMSE, metrics.MAE) {
		outcome.Err = fmt.Errorf("could not score: non finite test metrics %s", metrics)
		return outcome
	}
	metrics.Accuracy = model.AccuracyOf(metrics.TestR2)

	folds, err := ml.KFold(len(data.XTrain), data.Folds)
	if err != nil {
		outcome.Err = fmt.Errorf("could not score: %w", err)
		return outcome
	}
	scores, err := ml.CrossValidate(ctx, family.New, data.XTrain, data.YTrain, folds)
	if err != nil {
		outcome.Err = fmt.Errorf("could not cross validate: %w", err)
		return outcome
	}
	metrics.CVR2 = stat.Mean(scores, nil)
	if invalid(metrics.CVR2) {
		outcome.Err = fmt.Errorf("could not score: non finite cross validation score")
		return outcome
	}

	outcome.Model = m
	outcome.Metrics = metrics
	return outcome
}

func invalid(vv ...float64) bool {
	for _, v := range vv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

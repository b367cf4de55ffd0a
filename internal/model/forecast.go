package model

import (
	"fmt"

	fmath "github.com/drakos74/forsight/internal/math"
)

// Family defines a regression model family of the panel.
type Family string

const (
	// NoFamily is an undefined family
	NoFamily Family = ""
	// RandomForest is a bagged ensemble of depth bounded regression trees
	RandomForest Family = "Random Forest"
	// GradientBoosting is a sequential additive ensemble of regression trees
	GradientBoosting Family = "Gradient Boosting"
	// LinearRegression is an ordinary least squares model
	LinearRegression Family = "Linear Regression"
	// HistGradientBoosting is a gradient boosted ensemble on binned features
	HistGradientBoosting Family = "Histogram Gradient Boosting"
)

// Confidence is the label derived from the best model score.
type Confidence string

const (
	High   Confidence = "High"
	Medium Confidence = "Medium"
	Low    Confidence = "Low"
)

// ConfidenceOf buckets the coefficient of determination into a confidence label.
func ConfidenceOf(r2 float64) Confidence {
	if r2 > 0.7 {
		return High
	} else if r2 > 0.5 {
		return Medium
	}
	return Low
}

// AccuracyOf maps the coefficient of determination to a [0,100] score.
func AccuracyOf(r2 float64) float64 {
	return fmath.Clamp(r2*100, 0, 100)
}

// Metrics are the scores of a trained model on the held out data.
type Metrics struct {
	TestR2   float64 `json:"test_r2"`
	CVR2     float64 `json:"cv_r2"`
	RMSE     float64 `json:"rmse"`
	MAE      float64 `json:"mae"`
	Accuracy float64 `json:"accuracy"`
}

func (m Metrics) String() string {
	return fmt.Sprintf("r2:%.4f|cv:%.4f|rmse:%.4f|mae:%.4f", m.TestR2, m.CVR2, m.RMSE, m.MAE)
}

// Basis describes the data and diagnostics a forecast was built on.
type Basis struct {
	Model           Family             `json:"model"`
	FeaturesUsed    int                `json:"features_used"`
	FeatureNames    []string           `json:"feature_names"`
	TrainingSamples int                `json:"training_samples"`
	TestSamples     int                `json:"test_samples"`
	Folds           int                `json:"cross_validation_folds"`
	TopFeatures     map[string]float64 `json:"top_features"`
	TopCorrelations map[string]float64 `json:"top_correlations"`
}

// Forecast is the outcome of a single pipeline run for one instrument.
type Forecast struct {
	RunID                  string             `json:"run_id"`
	Symbol                 Symbol             `json:"symbol"`
	CurrentPrice           float64            `json:"current_price"`
	PredictedPrice         float64            `json:"predicted_price"`
	PredictedChangePercent float64            `json:"predicted_change_percent"`
	BestModel              Family             `json:"best_model"`
	ModelMetrics           Metrics            `json:"model_metrics"`
	AllModels              map[Family]Metrics `json:"all_models"`
	Failures               map[Family]string  `json:"failures,omitempty"`
	Accuracy               float64            `json:"accuracy"`
	Confidence             Confidence         `json:"confidence"`
	PredictionBasis        Basis              `json:"prediction_basis"`
	DaysAhead              int                `json:"days_ahead"`
	// AsOf is the date of the row the prediction starts from.
	AsOf string `json:"as_of"`
}

// ChangePercent returns the relative change from current to predicted in percent.
func ChangePercent(current, predicted float64) float64 {
	return (predicted - current) / current * 100
}

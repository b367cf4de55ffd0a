package forecast

import (
	"context"
	"errors"

	"github.com/drakos74/forsight/internal/algo/forecast/panel"
)

var (
	// ErrInsufficientHistory is returned when there are too few raw records.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrInsufficientFeatureRows is returned when too few rows have the full lookback and lookahead.
	ErrInsufficientFeatureRows = errors.New("insufficient feature rows")
	// ErrInsufficientFeatures is returned when too few columns pass the selection.
	ErrInsufficientFeatures = errors.New("insufficient features")
	// ErrNoModel is returned when every family of the panel failed.
	ErrNoModel = panel.ErrNoModel
	// ErrDuplicateDate is returned when two records of an instrument share a date.
	ErrDuplicateDate = errors.New("duplicate date")
)

var unavailable = []error{
	ErrInsufficientHistory,
	ErrInsufficientFeatureRows,
	ErrInsufficientFeatures,
	ErrNoModel,
}

// Unavailable returns true if the error means no forecast can be produced from the given data.
func Unavailable(err error) bool {
	for _, u := range unavailable {
		if errors.Is(err, u) {
			return true
		}
	}
	return false
}

// Cause returns the short name of the reason a forecast is unavailable.
func Cause(err error) string {
	for _, u := range unavailable {
		if errors.Is(err, u) {
			return u.Error()
		}
	}
	switch {
	case errors.Is(err, ErrDuplicateDate):
		return ErrDuplicateDate.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	return "error"
}

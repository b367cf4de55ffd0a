package forecast

import (
	"fmt"
	"math"
)

// Partition is a chronological train and test split.
// The training rows strictly precede the test rows.
type Partition struct {
	XTrain [][]float64
	YTrain []float64
	XTest  [][]float64
	YTest  []float64
}

// Split keeps the first rows for training and the last ceil(n*ratio) rows for testing, without shuffling.
func Split(x [][]float64, y []float64, ratio float64) (Partition, error) {
	n := len(x)
	if n != len(y) {
		return Partition{}, fmt.Errorf("%d rows vs %d targets", n, len(y))
	}
	test := int(math.Ceil(float64(n) * ratio))
	at := n - test
	if test < 1 || at < 1 {
		return Partition{}, fmt.Errorf("cannot split %d rows with ratio %.2f", n, ratio)
	}
	return Partition{
		XTrain: x[:at],
		YTrain: y[:at],
		XTest:  x[at:],
		YTest:  y[at:],
	}, nil
}

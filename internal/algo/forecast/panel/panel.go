package panel

import (
	"context"
	"errors"
	"fmt"

	"github.com/drakos74/forsight/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoModel is returned when no family of the panel produced a model.
var ErrNoModel = errors.New("no model trained")

// Panel is the ordered set of families evaluated for every forecast.
type Panel struct {
	families []Family
}

// New creates a new panel with the given families in order.
func New(families ...Family) *Panel {
	return &Panel{families: families}
}

// Train evaluates all families concurrently and returns their outcomes in panel order.
// A failing family never affects the others, its outcome carries the error instead.
// Train returns as soon as the context is done, families that did not report by then carry the context error.
func (p *Panel) Train(ctx context.Context, data Data) []Outcome {
	outcomes := make([]Outcome, len(p.families))
	reports := make(chan report, len(p.families))
	g := new(errgroup.Group)
	g.SetLimit(max(len(p.families), 1))
	for i, family := range p.families {
		i, family := i, family
		g.Go(func() error {
			reports <- report{index: i, outcome: train(ctx, family, data)}
			return nil
		})
	}
	go func() {
		// families report failures through their outcome
		_ = g.Wait()
		close(reports)
	}()

	reported := make([]bool, len(p.families))
	for {
		select {
		case r, ok := <-reports:
			if !ok {
				return outcomes
			}
			outcomes[r.index] = r.outcome
			reported[r.index] = true
		case <-ctx.Done():
			for i, family := range p.families {
				if !reported[i] {
					outcomes[i] = Outcome{Family: family.Name, Err: ctx.Err()}
				}
			}
			return outcomes
		}
	}
}

type report struct {
	index   int
	outcome Outcome
}

func train(ctx context.Context, family Family, data Data) Outcome {
	outcome := Evaluate(ctx, family, data)
	metrics.Observer.ObserveTraining(string(family.Name), outcome.Duration)
	switch {
	case outcome.Err == nil:
		log.Debug().
			Str("family", string(family.Name)).
			Str("metrics", outcome.Metrics.String()).
			Dur("duration", outcome.Duration).
			Msg("trained")
	case ctx.Err() != nil:
		log.Warn().
			Err(outcome.Err).
			Str("family", string(family.Name)).
			Msg("training stopped")
	default:
		metrics.Observer.IncrementFailures(string(family.Name))
		log.Error().
			Err(outcome.Err).
			Str("family", string(family.Name)).
			Msg("excluded from panel")
	}
	return outcome
}

// Select returns the outcome with the strictly highest test score, the earliest one on ties.
func Select(outcomes []Outcome) (Outcome, error) {
	best := -1
	for i, o := range outcomes {
		if !o.OK() {
			continue
		}
		if best < 0 || o.Metrics.TestR2 > outcomes[best].Metrics.TestR2 {
			best = i
		}
	}
	if best < 0 {
		return Outcome{}, fmt.Errorf("%d families failed: %w", len(outcomes), ErrNoModel)
	}
	return outcomes[best], nil
}

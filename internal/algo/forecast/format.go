package forecast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drakos74/forsight/internal/emoji"
	fmath "github.com/drakos74/forsight/internal/math"
	"github.com/drakos74/forsight/internal/model"
)

// Format renders the forecast as a text report.
func Format(f *model.Forecast) string {
	b := new(strings.Builder)
	b.WriteString(fmt.Sprintf("%s %s | %s + %d days | %s -> %s (%s%%) %s\n",
		emoji.MapToSentiment(f.PredictedChangePercent),
		f.Symbol,
		f.AsOf,
		f.DaysAhead,
		fmath.Format(f.CurrentPrice),
		fmath.Format(f.PredictedPrice),
		fmath.Format(f.PredictedChangePercent),
		emoji.MapDeca(f.PredictedChangePercent),
	))
	b.WriteString(fmt.Sprintf("%s %s confidence | accuracy:%s | model:%s\n",
		emoji.MapConfidence(f.Confidence),
		f.Confidence,
		fmath.Format(f.Accuracy),
		f.BestModel,
	))

	families := make([]string, 0, len(f.AllModels))
	for family := range f.AllModels {
		families = append(families, string(family))
	}
	sort.Strings(families)
	for _, family := range families {
		b.WriteString(fmt.Sprintf("  %s : %s\n", family, f.AllModels[model.Family(family)]))
	}
	failed := make([]string, 0, len(f.Failures))
	for family := range f.Failures {
		failed = append(failed, string(family))
	}
	sort.Strings(failed)
	for _, family := range failed {
		b.WriteString(fmt.Sprintf("  %s %s : %s\n", emoji.Error, family, f.Failures[model.Family(family)]))
	}

	basis := f.PredictionBasis
	b.WriteString(fmt.Sprintf("features:%d train:%d test:%d folds:%d\n",
		basis.FeaturesUsed,
		basis.TrainingSamples,
		basis.TestSamples,
		basis.Folds,
	))
	b.WriteString(fmt.Sprintf("importance: %s\n", formatRanking(basis.TopFeatures)))
	b.WriteString(fmt.Sprintf("correlation: %s", formatRanking(basis.TopCorrelations)))
	return b.String()
}

func formatRanking(m map[string]float64) string {
	rr := make([]ranked, 0, len(m))
	for name, v := range m {
		rr = append(rr, ranked{name: name, value: v})
	}
	sort.Slice(rr, func(i, j int) bool {
		if rr[i].value == rr[j].value {
			return rr[i].name < rr[j].name
		}
		return rr[i].value > rr[j].value
	})
	ss := make([]string, len(rr))
	for i, r := range rr {
		ss[i] = fmt.Sprintf("%s:%.3f", r.name, r.value)
	}
	return strings.Join(ss, " ")
}

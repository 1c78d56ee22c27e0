// Package analytics implements the pure computation behind the batch jobs:
// pairwise Pearson correlations over aligned price series and min-max
// normalized trailing-volatility risk scores.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
)

// ErrInsufficientSeries is returned when fewer than two assets have a
// non-empty price series, making pairwise correlation meaningless.
var ErrInsufficientSeries = errors.New("correlation requires at least two assets with price data")

// Pair is one symmetric correlation edge, emitted once per unordered pair
// with AssetA < AssetB lexically.
type Pair struct {
	AssetA string
	AssetB string
	Value  float64
}

// Correlations computes the Pearson correlation of price levels for every
// unordered pair of assets. Each pair is aligned on the dates both series
// share; pairs with fewer than two overlapping points, or with a constant
// series over the overlap (undefined coefficient), are omitted from the
// output rather than reported as NaN.
func Correlations(series map[string]marketdata.Series) ([]Pair, error) {
	ids := make([]string, 0, len(series))
	for id, s := range series {
		if len(s) > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) < 2 {
		return nil, ErrInsufficientSeries
	}
	sort.Strings(ids)

	pairs := make([]Pair, 0, len(ids)*(len(ids)-1)/2)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			x, y := alignPair(series[ids[i]], series[ids[j]])
			if len(x) < 2 {
				continue
			}
			r := stat.Correlation(x, y, nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			// Guard against floating point drift outside [-1, 1].
			r = math.Max(-1, math.Min(1, r))
			pairs = append(pairs, Pair{AssetA: ids[i], AssetB: ids[j], Value: r})
		}
	}
	return pairs, nil
}

// alignPair inner-joins two series on date, returning equal-length close
// slices ordered by date.
func alignPair(a, b marketdata.Series) ([]float64, []float64) {
	byDate := make(map[time.Time]float64, len(a))
	for _, p := range a {
		byDate[p.Date] = p.Close
	}

	var x, y []float64
	for _, p := range b {
		if close, ok := byDate[p.Date]; ok {
			x = append(x, close)
			y = append(y, p.Close)
		}
	}
	return x, y
}

package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
)

// DefaultRiskWindow is the number of trailing returns used for volatility.
const DefaultRiskWindow = 30

// Returns computes simple period-over-period returns (p[t]-p[t-1])/p[t-1]
// over the full series. Observations following a zero price are skipped.
func Returns(s marketdata.Series) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s)-1)
	for t := 1; t < len(s); t++ {
		prev := s[t-1].Close
		if prev == 0 {
			continue
		}
		out = append(out, (s[t].Close-prev)/prev)
	}
	return out
}

// TrailingVolatility computes the standard deviation of the last window
// returns (fewer if the series is shorter). ok is false when fewer than two
// returns exist, in which case volatility is undefined.
func TrailingVolatility(returns []float64, window int) (float64, bool) {
	if window <= 0 {
		window = DefaultRiskWindow
	}
	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}
	if len(returns) < 2 {
		return 0, false
	}
	return stat.StdDev(returns, nil), true
}

// RiskScores computes a 0-100 risk score per asset: trailing volatility,
// min-max normalized across the batch. Assets with undefined volatility
// (including any asset whose series is too short) score 0 and are excluded
// from the min/max spread. When every computable volatility is equal
// (including the single-asset batch) all scores are 0: relative risk is
// meaningless without spread.
func RiskScores(series map[string]marketdata.Series, window int) map[string]int {
	vols := make(map[string]float64, len(series))
	scores := make(map[string]int, len(series))

	minVol := math.Inf(1)
	maxVol := math.Inf(-1)
	for id, s := range series {
		vol, ok := TrailingVolatility(Returns(s), window)
		if !ok {
			scores[id] = 0
			continue
		}
		vols[id] = vol
		minVol = math.Min(minVol, vol)
		maxVol = math.Max(maxVol, vol)
	}

	spread := maxVol - minVol
	for id, vol := range vols {
		if len(vols) < 2 || spread == 0 {
			scores[id] = 0
			continue
		}
		scores[id] = int(math.Round(100 * (vol - minVol) / spread))
	}
	return scores
}

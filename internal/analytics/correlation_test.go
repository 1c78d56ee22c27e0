package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func seriesOf(closes ...float64) marketdata.Series {
	s := make(marketdata.Series, len(closes))
	for i, c := range closes {
		s[i] = marketdata.Point{Date: day(i), Close: c}
	}
	return s
}

func findPair(t *testing.T, pairs []Pair, a, b string) Pair {
	t.Helper()
	for _, p := range pairs {
		if p.AssetA == a && p.AssetB == b {
			return p
		}
	}
	t.Fatalf("pair (%s, %s) not found in %v", a, b, pairs)
	return Pair{}
}

func TestCorrelations(t *testing.T) {
	t.Run("perfect_inverse", func(t *testing.T) {
		pairs, err := Correlations(map[string]marketdata.Series{
			"UP":   seriesOf(1, 2, 3, 4, 5),
			"DOWN": seriesOf(5, 4, 3, 2, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pairs) != 1 {
			t.Fatalf("expected 1 pair, got %d", len(pairs))
		}
		p := pairs[0]
		if p.AssetA != "DOWN" || p.AssetB != "UP" {
			t.Errorf("expected canonical order (DOWN, UP), got (%s, %s)", p.AssetA, p.AssetB)
		}
		if math.Abs(p.Value-(-1.0)) > 1e-9 {
			t.Errorf("expected correlation -1.0, got %v", p.Value)
		}
	})

	t.Run("identical_series", func(t *testing.T) {
		pairs, err := Correlations(map[string]marketdata.Series{
			"A": seriesOf(3, 1, 4, 1, 5, 9),
			"B": seriesOf(3, 1, 4, 1, 5, 9),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := findPair(t, pairs, "A", "B")
		if math.Abs(p.Value-1.0) > 1e-9 {
			t.Errorf("expected correlation 1.0, got %v", p.Value)
		}
	})

	t.Run("values_inside_range", func(t *testing.T) {
		pairs, err := Correlations(map[string]marketdata.Series{
			"A": seriesOf(10, 12, 11, 15, 13, 14),
			"B": seriesOf(20, 18, 22, 19, 25, 21),
			"C": seriesOf(5, 5.5, 4.8, 6.1, 5.9, 5.2),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pairs) != 3 {
			t.Fatalf("expected 3 pairs from 3 assets, got %d", len(pairs))
		}
		for _, p := range pairs {
			if p.Value < -1 || p.Value > 1 {
				t.Errorf("correlation out of range for (%s, %s): %v", p.AssetA, p.AssetB, p.Value)
			}
			if p.AssetA >= p.AssetB {
				t.Errorf("pair (%s, %s) not in canonical order", p.AssetA, p.AssetB)
			}
		}
	})

	t.Run("extra_asset_does_not_change_existing_pairs", func(t *testing.T) {
		base := map[string]marketdata.Series{
			"A": seriesOf(10, 12, 11, 15, 13),
			"B": seriesOf(20, 18, 22, 19, 25),
		}
		before, err := Correlations(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ab := findPair(t, before, "A", "B")

		// C trades on entirely different dates, so it shares no points
		// with A or B and contributes no pairs.
		c := marketdata.Series{
			{Date: day(100), Close: 7},
			{Date: day(101), Close: 8},
			{Date: day(102), Close: 9},
		}
		base["C"] = c
		after, err := Correlations(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(after) != 1 {
			t.Fatalf("expected only the (A, B) pair, got %d pairs", len(after))
		}
		got := findPair(t, after, "A", "B")
		if got.Value != ab.Value {
			t.Errorf("adding a disjoint asset changed (A, B): %v != %v", got.Value, ab.Value)
		}
	})

	t.Run("partial_overlap_aligned_per_pair", func(t *testing.T) {
		// B misses day 2; the (A, B) pair uses the remaining shared dates.
		a := seriesOf(1, 2, 3, 4, 5)
		b := marketdata.Series{
			{Date: day(0), Close: 10},
			{Date: day(1), Close: 20},
			{Date: day(3), Close: 40},
			{Date: day(4), Close: 50},
		}
		pairs, err := Correlations(map[string]marketdata.Series{"A": a, "B": b})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := findPair(t, pairs, "A", "B")
		if math.Abs(p.Value-1.0) > 1e-9 {
			t.Errorf("expected correlation 1.0 on aligned dates, got %v", p.Value)
		}
	})

	t.Run("constant_series_omitted", func(t *testing.T) {
		pairs, err := Correlations(map[string]marketdata.Series{
			"FLAT": seriesOf(5, 5, 5, 5, 5),
			"A":    seriesOf(1, 2, 3, 4, 5),
			"B":    seriesOf(2, 4, 6, 8, 10),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range pairs {
			if p.AssetA == "FLAT" || p.AssetB == "FLAT" {
				t.Errorf("pair with constant series should be omitted, got (%s, %s)=%v", p.AssetA, p.AssetB, p.Value)
			}
		}
		findPair(t, pairs, "A", "B")
	})

	t.Run("single_asset", func(t *testing.T) {
		_, err := Correlations(map[string]marketdata.Series{
			"A": seriesOf(1, 2, 3),
		})
		if !errors.Is(err, ErrInsufficientSeries) {
			t.Fatalf("expected ErrInsufficientSeries, got %v", err)
		}
	})

	t.Run("empty_series_do_not_count", func(t *testing.T) {
		_, err := Correlations(map[string]marketdata.Series{
			"A": seriesOf(1, 2, 3),
			"B": {},
		})
		if !errors.Is(err, ErrInsufficientSeries) {
			t.Fatalf("expected ErrInsufficientSeries, got %v", err)
		}
	})

	t.Run("insufficient_overlap_skipped", func(t *testing.T) {
		a := marketdata.Series{{Date: day(0), Close: 1}, {Date: day(1), Close: 2}}
		b := marketdata.Series{{Date: day(1), Close: 3}, {Date: day(2), Close: 4}}
		pairs, err := Correlations(map[string]marketdata.Series{"A": a, "B": b})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pairs) != 0 {
			t.Errorf("expected no pairs with a single shared date, got %v", pairs)
		}
	})
}

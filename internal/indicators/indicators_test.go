package indicators

import (
	"math"
	"testing"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMAExactValues(t *testing.T) {
	out, err := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected length 5, got %d", len(out))
	}
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("expected NaN for indices before the first full window, got %v", out[:2])
	}
	expected := []float64{2.0, 3.0, 4.0}
	for i, want := range expected {
		if !almostEqual(out[i+2], want) {
			t.Errorf("sma[%d] = %v, want %v", i+2, out[i+2], want)
		}
	}
}

func TestSMAInvalidPeriod(t *testing.T) {
	if _, err := SMA([]float64{1, 2, 3}, 0); !apperrors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSMAEmptyInput(t *testing.T) {
	out, err := SMA(nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestEMASeedsWithFirstValue(t *testing.T) {
	out, err := EMA([]float64{2, 4}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// k = 2/(3+1) = 0.5, so the second value is (4-2)*0.5 + 2 = 3.
	if !almostEqual(out[0], 2) || !almostEqual(out[1], 3) {
		t.Errorf("ema = %v, want [2 3]", out)
	}
}

func TestEMAEmitsValueAtEveryIndex(t *testing.T) {
	values := []float64{10, 11, 9, 12, 13, 8}
	out, err := EMA(values, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if math.IsNaN(v) {
			t.Errorf("ema[%d] is NaN, every index should hold a value", i)
		}
	}
	if len(out) != len(values) {
		t.Errorf("length %d, want %d", len(out), len(values))
	}
}

func TestRSILengthMatchesInput(t *testing.T) {
	for _, n := range []int{0, 5, 14, 15, 50} {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i%7) + 100
		}
		out, err := RSI(values, 14)
		if err != nil {
			t.Fatalf("unexpected error for n=%d: %v", n, err)
		}
		if len(out) != n {
			t.Errorf("n=%d: output length %d", n, len(out))
		}
	}
}

func TestRSIUndefinedForFirstPeriodIndices(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + float64(i%5)
	}
	out, err := RSI(values, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 14; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("rsi[%d] = %v, want NaN", i, out[i])
		}
	}
	for i := 14; i < len(out); i++ {
		if math.IsNaN(out[i]) {
			t.Errorf("rsi[%d] is NaN, want a value", i)
		}
	}
}

func TestRSISaturatesAtHundredWithoutLosses(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i + 1)
	}
	out, err := RSI(values, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 14; i < len(out); i++ {
		if out[i] != 100.0 {
			t.Errorf("rsi[%d] = %v, want exactly 100", i, out[i])
		}
	}
}

func TestRSISummaryFallsBackToNeutral(t *testing.T) {
	result, err := RSISummary([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Current != 50.0 {
		t.Errorf("current = %v, want neutral 50", result.Current)
	}
}

func TestMACDDegradesToZeroOnShortHistory(t *testing.T) {
	values := make([]float64, 30) // below slow+signal = 35
	for i := range values {
		values[i] = float64(i)
	}
	result, err := MACD(values, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MACD != 0 || result.Signal != 0 || result.Histogram != 0 {
		t.Errorf("expected zeroed result, got %+v", result)
	}
}

func TestMACDHistogramConsistency(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	result, err := MACD(values, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(result.Histogram, result.MACD-result.Signal) {
		t.Errorf("histogram %v != macd-signal %v", result.Histogram, result.MACD-result.Signal)
	}
}

func TestBollingerCollapsesOnShortHistory(t *testing.T) {
	result, err := Bollinger([]float64{10, 11, 12}, DefaultBollingerPeriod, DefaultBollingerK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Upper != 12 || result.Middle != 12 || result.Lower != 12 {
		t.Errorf("expected all bands to collapse to latest close, got %+v", result)
	}
	if result.CurrentPrice != 12 {
		t.Errorf("current price = %v, want 12", result.CurrentPrice)
	}
}

func TestBollingerBandsOrdering(t *testing.T) {
	values := make([]float64, 40)
	for i := range values {
		values[i] = 100 + float64(i%9)
	}
	result, err := Bollinger(values, DefaultBollingerPeriod, DefaultBollingerK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(result.Lower <= result.Middle && result.Middle <= result.Upper) {
		t.Errorf("bands out of order: %+v", result)
	}
}

func TestMovingAveragesFallback(t *testing.T) {
	short := []float64{10, 11, 12}
	ma := MovingAveragesSummary(short)
	if ma.SMA50 != 12 || ma.SMA200 != 12 {
		t.Errorf("expected fallback to latest close, got %+v", ma)
	}

	long := make([]float64, 60)
	for i := range long {
		long[i] = float64(i + 1)
	}
	ma = MovingAveragesSummary(long)
	// Mean of 11..60 is 35.5; 200-day falls back to the latest close.
	if !almostEqual(ma.SMA50, 35.5) {
		t.Errorf("sma50 = %v, want 35.5", ma.SMA50)
	}
	if ma.SMA200 != 60 {
		t.Errorf("sma200 = %v, want fallback 60", ma.SMA200)
	}
}

func TestComputeEmptySeries(t *testing.T) {
	_, err := Compute(models.PriceSeries{})
	if !apperrors.Is(err, apperrors.ErrNoUsableData) {
		t.Errorf("expected ErrNoUsableData, got %v", err)
	}
}

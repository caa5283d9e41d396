// Package indicators computes technical indicators from closing-price
// series. All calculations are pure functions; short histories degrade
// to neutral values instead of failing so downstream signal logic
// stays well-defined.
package indicators

import (
	"math"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/models"
)

// Default indicator parameters.
const (
	DefaultRSIPeriod       = 14
	DefaultMACDFast        = 12
	DefaultMACDSlow        = 26
	DefaultMACDSignal      = 9
	DefaultBollingerPeriod = 20
	DefaultBollingerK      = 2.0
	ShortMAPeriod          = 50
	LongMAPeriod           = 200
)

// SMA calculates the simple moving average. The result is aligned with
// the input; indices below period-1 hold NaN because no full window
// exists yet.
func SMA(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "sma period %d", period)
	}
	n := len(values)
	out := make([]float64, n)
	var windowSum float64
	for i := 0; i < n; i++ {
		windowSum += values[i]
		if i >= period {
			windowSum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = windowSum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// EMA calculates the exponential moving average with smoothing
// multiplier 2/(period+1). The first input value seeds the average, so
// every index holds a value.
func EMA(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "ema period %d", period)
	}
	n := len(values)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	k := 2.0 / float64(period+1)
	prev := values[0]
	out[0] = prev
	for i := 1; i < n; i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = prev
	}
	return out, nil
}

// RSI calculates the Relative Strength Index using Wilder smoothing.
// The result has the same length as the input; the first period
// indices hold NaN. When the average loss is zero the RSI saturates
// at exactly 100.
func RSI(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "rsi period %d", period)
	}
	n := len(values)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n <= period {
		return out, nil
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := mean(gains[1 : period+1])
	avgLoss := mean(losses[1 : period+1])
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < n; i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1 + rs))
}

// RSISummary computes the RSI series together with its latest value.
// With insufficient history the current value falls back to a neutral 50.
func RSISummary(values []float64, period int) (models.RSIResult, error) {
	series, err := RSI(values, period)
	if err != nil {
		return models.RSIResult{}, err
	}
	current := lastValid(series)
	if math.IsNaN(current) {
		current = 50.0
	}
	return models.RSIResult{Current: current, Values: models.FloatSeries(series)}, nil
}

// MACD calculates the Moving Average Convergence Divergence. With fewer
// than slow+signal points the result is zeroed rather than an error,
// which the signal layer reads as neutral.
func MACD(values []float64, fast, slow, signal int) (models.MACDResult, error) {
	if fast < 1 || slow < 1 || signal < 1 {
		return models.MACDResult{}, apperrors.Wrapf(apperrors.ErrInvalidArgument,
			"macd periods %d/%d/%d", fast, slow, signal)
	}
	if len(values) < slow+signal {
		return models.MACDResult{}, nil
	}

	fastEMA, err := EMA(values, fast)
	if err != nil {
		return models.MACDResult{}, err
	}
	slowEMA, err := EMA(values, slow)
	if err != nil {
		return models.MACDResult{}, err
	}

	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine, err := EMA(macdLine, signal)
	if err != nil {
		return models.MACDResult{}, err
	}

	last := len(values) - 1
	return models.MACDResult{
		MACD:      macdLine[last],
		Signal:    signalLine[last],
		Histogram: macdLine[last] - signalLine[last],
	}, nil
}

// Bollinger calculates Bollinger Bands using population standard
// deviation over the last period closes. With fewer than period points
// all three bands collapse to the latest close.
func Bollinger(values []float64, period int, k float64) (models.BollingerResult, error) {
	if period < 1 {
		return models.BollingerResult{}, apperrors.Wrapf(apperrors.ErrInvalidArgument,
			"bollinger period %d", period)
	}
	n := len(values)
	if n == 0 {
		return models.BollingerResult{}, nil
	}
	current := values[n-1]
	if n < period {
		return models.BollingerResult{
			Upper:        current,
			Middle:       current,
			Lower:        current,
			CurrentPrice: current,
		}, nil
	}

	window := values[n-period:]
	middle := mean(window)
	dev := stdDev(window)
	return models.BollingerResult{
		Upper:        middle + k*dev,
		Middle:       middle,
		Lower:        middle - k*dev,
		CurrentPrice: current,
	}, nil
}

// MovingAveragesSummary computes the 50 and 200 day simple moving
// averages, each falling back to the latest close when the history is
// too short.
func MovingAveragesSummary(values []float64) models.MovingAverages {
	n := len(values)
	if n == 0 {
		return models.MovingAverages{}
	}
	latest := values[n-1]

	sma50 := latest
	if n >= ShortMAPeriod {
		sma50 = mean(values[n-ShortMAPeriod:])
	}
	sma200 := latest
	if n >= LongMAPeriod {
		sma200 = mean(values[n-LongMAPeriod:])
	}
	return models.MovingAverages{SMA50: sma50, SMA200: sma200}
}

// Compute derives the full indicator set for a price series using the
// default parameters.
func Compute(series models.PriceSeries) (models.IndicatorSet, error) {
	closes := series.Closes()
	if len(closes) == 0 {
		return models.IndicatorSet{}, apperrors.Wrap(apperrors.ErrNoUsableData, "empty price series")
	}

	rsi, err := RSISummary(closes, DefaultRSIPeriod)
	if err != nil {
		return models.IndicatorSet{}, err
	}
	macd, err := MACD(closes, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	if err != nil {
		return models.IndicatorSet{}, err
	}
	bollinger, err := Bollinger(closes, DefaultBollingerPeriod, DefaultBollingerK)
	if err != nil {
		return models.IndicatorSet{}, err
	}

	return models.IndicatorSet{
		RSI:            rsi,
		MACD:           macd,
		Bollinger:      bollinger,
		MovingAverages: MovingAveragesSummary(closes),
	}, nil
}

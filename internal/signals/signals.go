// Package signals converts computed indicator values into discrete
// trading signals. The mapping is stateless and purely additive: each
// indicator contributes at most one point in either direction and no
// indicator outweighs another.
package signals

import (
	"fmt"

	"stock-researcher/internal/models"
)

// RSI thresholds for oversold/overbought readings.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Generate maps an indicator set to a trading signal. Strength is the
// net count of bullish minus bearish indicators, always in [-4, 4].
func Generate(set models.IndicatorSet) models.TradingSignal {
	sig := models.TradingSignal{
		RSISignal:       models.SignalNeutral,
		MACDSignal:      models.SignalNeutral,
		BollingerSignal: models.SignalNeutral,
		MASignal:        models.SignalNeutral,
	}

	if set.RSI.Current < RSIOversold {
		sig.RSISignal = models.SignalOversoldBuy
		sig.Strength++
	} else if set.RSI.Current > RSIOverbought {
		sig.RSISignal = models.SignalOverboughtSell
		sig.Strength--
	}

	if set.MACD.MACD > set.MACD.Signal {
		sig.MACDSignal = models.SignalBullish
		sig.Strength++
	} else if set.MACD.MACD < set.MACD.Signal {
		sig.MACDSignal = models.SignalBearish
		sig.Strength--
	}

	if set.Bollinger.CurrentPrice < set.Bollinger.Lower {
		sig.BollingerSignal = models.SignalOversoldBuy
		sig.Strength++
	} else if set.Bollinger.CurrentPrice > set.Bollinger.Upper {
		sig.BollingerSignal = models.SignalOverboughtSell
		sig.Strength--
	}

	if set.MovingAverages.SMA50 > set.MovingAverages.SMA200 {
		sig.MASignal = models.SignalGoldenCross
		sig.Strength++
	} else if set.MovingAverages.SMA50 < set.MovingAverages.SMA200 {
		sig.MASignal = models.SignalDeathCross
		sig.Strength--
	}

	sig.Overall = OverallFromStrength(sig.Strength)
	return sig
}

// OverallFromStrength maps a net strength score to the combined signal.
// The mapping is total: every integer maps to exactly one label.
func OverallFromStrength(strength int) models.OverallSignal {
	switch {
	case strength >= 2:
		return models.StrongBuy
	case strength == 1:
		return models.Buy
	case strength == -1:
		return models.Sell
	case strength <= -2:
		return models.StrongSell
	default:
		return models.Hold
	}
}

// Summarize produces a human-readable description of a trading signal.
func Summarize(sig models.TradingSignal) string {
	strength := sig.Strength
	if strength < 0 {
		strength = -strength
	}

	switch sig.Overall {
	case models.StrongBuy:
		return fmt.Sprintf("Strong buy signal with %d bullish indicators", strength)
	case models.Buy:
		return fmt.Sprintf("Buy signal with %d bullish indicator(s)", strength)
	case models.Hold:
		return "Neutral signal, hold position"
	case models.Sell:
		return fmt.Sprintf("Sell signal with %d bearish indicator(s)", strength)
	case models.StrongSell:
		return fmt.Sprintf("Strong sell signal with %d bearish indicators", strength)
	default:
		return "Unable to determine signal"
	}
}

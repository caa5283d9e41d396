package models

// IndicatorSignal is the directional reading of a single indicator.
type IndicatorSignal string

const (
	SignalOversoldBuy    IndicatorSignal = "oversold_buy"
	SignalOverboughtSell IndicatorSignal = "overbought_sell"
	SignalBullish        IndicatorSignal = "bullish"
	SignalBearish        IndicatorSignal = "bearish"
	SignalGoldenCross    IndicatorSignal = "golden_cross_buy"
	SignalDeathCross     IndicatorSignal = "death_cross_sell"
	SignalNeutral        IndicatorSignal = "neutral"
)

// OverallSignal is the combined reading across all indicators.
type OverallSignal string

const (
	StrongBuy  OverallSignal = "strong_buy"
	Buy        OverallSignal = "buy"
	Hold       OverallSignal = "hold"
	Sell       OverallSignal = "sell"
	StrongSell OverallSignal = "strong_sell"
)

// Bearish reports whether the signal leans toward selling.
func (s OverallSignal) Bearish() bool {
	return s == Sell || s == StrongSell
}

// Bullish reports whether the signal leans toward buying.
func (s OverallSignal) Bullish() bool {
	return s == Buy || s == StrongBuy
}

// TradingSignal holds the per-indicator readings, the net strength
// score and the combined signal derived from them.
type TradingSignal struct {
	RSISignal       IndicatorSignal `json:"rsi_signal"`
	MACDSignal      IndicatorSignal `json:"macd_signal"`
	BollingerSignal IndicatorSignal `json:"bollinger_signal"`
	MASignal        IndicatorSignal `json:"ma_signal"`
	Strength        int             `json:"strength"`
	Overall         OverallSignal   `json:"overall"`
}

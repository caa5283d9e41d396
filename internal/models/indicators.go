package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// FloatSeries is an indicator series aligned with its input prices.
// NaN marks indices where no value is defined yet; it serializes as
// null so reports stay valid JSON.
type FloatSeries []float64

// MarshalJSON encodes the series with NaN entries as null.
func (s FloatSeries) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) {
			buf = append(buf, "null"...)
		} else {
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
	}
	return append(buf, ']'), nil
}

// UnmarshalJSON decodes null entries back to NaN.
func (s *FloatSeries) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FloatSeries, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*s = out
	return nil
}

// RSIResult holds the Relative Strength Index series and its latest value.
type RSIResult struct {
	Current float64     `json:"current"`
	Values  FloatSeries `json:"values"`
}

// MACDResult holds the latest MACD line, signal line and histogram values.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// BollingerResult holds the latest Bollinger band levels.
type BollingerResult struct {
	Upper        float64 `json:"upper"`
	Middle       float64 `json:"middle"`
	Lower        float64 `json:"lower"`
	CurrentPrice float64 `json:"current_price"`
}

// MovingAverages holds the latest long-horizon simple moving averages.
type MovingAverages struct {
	SMA50  float64 `json:"sma_50"`
	SMA200 float64 `json:"sma_200"`
}

// IndicatorSet bundles all technical indicators computed for a ticker.
type IndicatorSet struct {
	RSI            RSIResult       `json:"rsi"`
	MACD           MACDResult      `json:"macd"`
	Bollinger      BollingerResult `json:"bollinger_bands"`
	MovingAverages MovingAverages  `json:"moving_averages"`
}

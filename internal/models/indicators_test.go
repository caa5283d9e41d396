package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestFloatSeriesMarshalsNaNAsNull(t *testing.T) {
	series := FloatSeries{math.NaN(), math.NaN(), 2, 3.5}
	data, err := json.Marshal(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := string(data); got != "[null,null,2,3.5]" {
		t.Errorf("marshal = %s, want [null,null,2,3.5]", got)
	}
}

func TestFloatSeriesRoundTrip(t *testing.T) {
	original := FloatSeries{math.NaN(), 51.2, 48.9}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded FloatSeries
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("length = %d, want %d", len(decoded), len(original))
	}
	if !math.IsNaN(decoded[0]) {
		t.Errorf("decoded[0] = %v, want NaN", decoded[0])
	}
	if decoded[1] != 51.2 || decoded[2] != 48.9 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestFloatSeriesEmpty(t *testing.T) {
	data, err := json.Marshal(FloatSeries{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("marshal = %s, want []", data)
	}
}

func TestIndicatorSetSerializesWithUndefinedValues(t *testing.T) {
	set := IndicatorSet{
		RSI: RSIResult{
			Current: 50,
			Values:  FloatSeries{math.NaN(), math.NaN(), 62.1},
		},
	}
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("indicator set is not JSON-serializable: %v", err)
	}
	if !strings.Contains(string(data), `"values":[null,null,62.1]`) {
		t.Errorf("payload = %s, want null-padded rsi values", data)
	}
}

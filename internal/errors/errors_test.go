package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestFetchErrorWrapping(t *testing.T) {
	err := NewFetchError("yahoo", "RELIANCE.NS", ErrRateLimited)
	if !Is(err, ErrRateLimited) {
		t.Error("fetch error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "yahoo") || !strings.Contains(err.Error(), "RELIANCE.NS") {
		t.Errorf("message missing provider or ticker: %s", err.Error())
	}

	var fetchErr *FetchError
	if !As(err, &fetchErr) {
		t.Fatal("As should extract *FetchError")
	}
	if fetchErr.Provider != "yahoo" || fetchErr.Ticker != "RELIANCE.NS" {
		t.Errorf("unexpected fields: %+v", fetchErr)
	}
}

func TestStageErrorWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := NewStageError("research", "fetch", cause)
	if !Is(err, cause) {
		t.Error("stage error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "research") || !strings.Contains(err.Error(), "fetch") {
		t.Errorf("message missing workflow or stage: %s", err.Error())
	}
}

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("tickers", nil, "required")
	if !Is(err, ErrInputValidation) {
		t.Error("validation error should unwrap to ErrInputValidation")
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", Wrap(ErrRateLimited, "429"), true},
		{"timeout", Wrap(ErrTimeout, "deadline"), true},
		{"connection failed", Wrap(ErrConnectionFailed, "reset"), true},
		{"wrapped in fetch error", NewFetchError("yahoo", "X.NS", ErrTimeout), true},
		{"invalid argument", Wrap(ErrInvalidArgument, "bad period"), false},
		{"no usable data", Wrap(ErrNoUsableData, "empty"), false},
		{"plain error", errors.New("whatever"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

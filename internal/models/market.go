// Package models defines the data types shared across the analysis pipeline.
package models

import (
	"strings"
	"time"
)

// PricePoint is a single closing observation in a price series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a chronologically ordered list of price points.
type PriceSeries []PricePoint

// Closes returns just the closing prices, oldest first.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent price point and true, or a zero
// value and false for an empty series.
func (s PriceSeries) Latest() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Quote summarizes the current state of a ticker's price history.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	PeriodReturn  float64 `json:"period_return"`
	DataPoints    int     `json:"data_points"`
}

// Article is a single news item about a ticker.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// Text returns the analyzable text of the article, joining the
// title and description when both are present.
func (a Article) Text() string {
	parts := make([]string, 0, 2)
	if a.Title != "" {
		parts = append(parts, a.Title)
	}
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	return strings.Join(parts, ". ")
}

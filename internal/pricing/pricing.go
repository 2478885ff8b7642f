// Package pricing converts partner cost prices into owner selling prices and
// back. Margin is the fraction of the selling price kept as profit, so a
// partner price p and margin m give a selling price of p / (1 - m).
package pricing

import (
	"fmt"
	"math"
)

// FallbackMargin is used when no valid default margin is configured.
const FallbackMargin = 0.30

// DomainError reports invalid pricing input: a negative partner price or a
// margin outside [0, 1).
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return e.Reason
}

// Engine owns the process-wide default margin. The default is read-only after
// construction and safe for concurrent use.
type Engine struct {
	defaultMargin float64
}

// NewEngine builds an engine with the configured default margin, falling back
// to FallbackMargin when the configured value is outside [0, 1).
func NewEngine(defaultMargin float64) *Engine {
	if !validMargin(defaultMargin) {
		defaultMargin = FallbackMargin
	}
	return &Engine{defaultMargin: defaultMargin}
}

// DefaultMargin returns the effective process-wide margin.
func (e *Engine) DefaultMargin() float64 {
	return e.defaultMargin
}

// SellingPrice computes the owner price for a partner price using the default
// margin.
func (e *Engine) SellingPrice(partnerPrice float64) (float64, error) {
	return e.SellingPriceWithMargin(partnerPrice, e.defaultMargin)
}

// SellingPriceWithMargin computes partnerPrice / (1 - margin), rounded
// half-up at the cent.
func (e *Engine) SellingPriceWithMargin(partnerPrice, margin float64) (float64, error) {
	if partnerPrice < 0 {
		return 0, &DomainError{Reason: fmt.Sprintf("partner price must not be negative, got %v", partnerPrice)}
	}
	if !validMargin(margin) {
		return 0, &DomainError{Reason: fmt.Sprintf("margin must be in [0, 1), got %v", margin)}
	}
	return round2(partnerPrice / (1 - margin)), nil
}

// MarginFromPrices recovers the margin implied by a partner price and a
// selling price, rounded to 4 decimal places. A selling price of zero yields
// exactly zero; it is a defined edge case, not an error.
func MarginFromPrices(partnerPrice, sellingPrice float64) float64 {
	if sellingPrice == 0 {
		return 0
	}
	return round4(1 - partnerPrice/sellingPrice)
}

// FormatPrice renders a price as a fixed two-decimal string for the API
// boundary.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", round2(price))
}

func validMargin(m float64) bool {
	return m >= 0 && m < 1
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func round4(v float64) float64 {
	return math.Floor(v*10000+0.5) / 10000
}

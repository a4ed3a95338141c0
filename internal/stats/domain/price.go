package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceList is the static service price catalog (title -> PKR). It is
// injected per call, never held as package state, so tests can substitute
// fixtures.
type PriceList map[string]int64

// ResolvePrice determines the monetary amount for a normalized engagement.
// The fallback chain, first populated candidate wins:
//
//  1. explicit paymentAmount on the record
//  2. catalog price for the resolved title
//  3. fields.paymentAmount, then fields.amount
//  4. zero
//
// Explicit submitted amounts override the catalog because a record may have
// been hand-priced at booking time; the catalog is authoritative over the
// free-form nested fields. Invalid candidates are skipped, not zeroed, so
// the chain continues.
func ResolvePrice(title string, raw RawEngagement, prices PriceList) int64 {
	if amount, ok := parseAmount(raw.PaymentAmount); ok {
		return amount
	}

	if price, ok := prices[title]; ok && price >= 0 {
		return price
	}

	if raw.Fields != nil {
		if amount, ok := parseAmount(raw.Fields["paymentAmount"]); ok {
			return amount
		}
		if amount, ok := parseAmount(raw.Fields["amount"]); ok {
			return amount
		}
	}

	return 0
}

// parseAmount is the single "non-negative decimal or absent" coercion used
// by every fallback stage. The legacy collections stored amounts as strings,
// JSON numbers, or integers interchangeably.
func parseAmount(value any) (int64, bool) {
	switch typed := value.(type) {
	case nil:
		return 0, false
	case int:
		return nonNegative(float64(typed))
	case int32:
		return nonNegative(float64(typed))
	case int64:
		return nonNegative(float64(typed))
	case float32:
		return nonNegative(float64(typed))
	case float64:
		return nonNegative(typed)
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		return nonNegative(f)
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return nonNegative(f)
	default:
		return 0, false
	}
}

func nonNegative(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int64(math.Round(f)), true
}

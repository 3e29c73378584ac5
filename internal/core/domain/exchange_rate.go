package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents the conversion rate from one currency to another,
// effective from DateEffective until a newer rate for the pair exists.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// Conversion is the outcome of converting an amount between currencies.
// RateID is empty for identity conversions; Inverted is set when the rate
// was derived from the opposite pair.
type Conversion struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Original         decimal.Decimal `json:"original"`
	Amount           decimal.Decimal `json:"amount"`
	Rate             decimal.Decimal `json:"rate"`
	RateID           string          `json:"rateID,omitempty"`
	Inverted         bool            `json:"inverted"`
	AsOf             time.Time       `json:"asOf"`
}

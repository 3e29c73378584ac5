package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines rate lookups and conversion
type ExchangeRateReaderSvc interface {
	// GetExchangeRate resolves the rate applicable to the pair on asOf.
	GetExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// Convert converts amount from one currency to another using the rate applicable on asOf.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.Conversion, error)

	// ListExchangeRates lists stored rates, optionally filtered by currency.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rates
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate stores a new rate for a pair and effective date.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

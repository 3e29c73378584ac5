package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inverseRatePrecision is the number of decimal places kept when a rate is
// derived from the opposite pair.
const inverseRatePrecision int32 = 10

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, actor string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(strings.TrimSpace(req.FromCurrencyCode))
	to := strings.ToUpper(strings.TrimSpace(req.ToCurrencyCode))

	if len(from) != 3 || len(to) != 3 {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "currency codes must be 3 letters")
	}
	if from == to {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "from and to currency codes cannot be the same")
	}
	if !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "exchange rate must be positive")
	}
	if req.DateEffective.IsZero() {
		return nil, apperrors.NewValidationError(apperrors.ReasonInvalidInput, "effective date is required")
	}

	now := s.now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    domain.DateOnly(req.DateEffective.Time),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.Rate.String()))
	return &rate, nil
}

// GetExchangeRate resolves the rate for a pair using the nearest-prior policy:
// the latest rate effective on or before asOf, falling back to the inverse of
// the latest opposite-pair rate.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, _, err := s.resolve(ctx, fromCode, toCode, asOf)
	return rate, err
}

// Convert converts amount using the rate applicable on asOf. Identity
// conversions return the amount unchanged.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, asOf time.Time) (*domain.Conversion, error) {
	rate, inverted, err := s.resolve(ctx, fromCode, toCode, asOf)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversion{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Original:         amount,
		Rate:             rate.Rate,
		RateID:           rate.ExchangeRateID,
		Inverted:         inverted,
		AsOf:             domain.DateOnly(asOf),
	}
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		conv.Amount = amount
	} else {
		conv.Amount = domain.RoundAmount(amount.Mul(rate.Rate))
	}
	return conv, nil
}

// ListExchangeRates lists stored rates, optionally filtered by currency.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode))
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

func (s *exchangeRateService) resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, bool, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))
	asOf = domain.DateOnly(asOf)

	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    asOf,
		}, false, nil
	}

	direct, err := s.rateRepo.FindRateOnOrBefore(ctx, from, to, asOf)
	if err == nil {
		return direct, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, false, fmt.Errorf("failed to look up exchange rate %s/%s: %w", from, to, err)
	}

	inverse, err := s.rateRepo.FindRateOnOrBefore(ctx, to, from, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, apperrors.NewValidationError(apperrors.ReasonRateUnavailable,
				"no exchange rate from %s to %s effective on or before %s", from, to, asOf.Format(domain.DateLayout))
		}
		s.LogError(ctx, err, "Failed to look up inverse exchange rate", slog.String("from", to), slog.String("to", from))
		return nil, false, fmt.Errorf("failed to look up exchange rate %s/%s: %w", to, from, err)
	}

	return &domain.ExchangeRate{
		ExchangeRateID:   inverse.ExchangeRateID,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             decimal.NewFromInt(1).DivRound(inverse.Rate, inverseRatePrecision),
		DateEffective:    inverse.DateEffective,
		AuditFields:      inverse.AuditFields,
	}, true, nil
}

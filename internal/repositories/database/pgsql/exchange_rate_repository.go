package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements ExchangeRateRepositoryFacade using pgx.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(base BaseRepository) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: base}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode, &m.Rate, &m.DateEffective,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a rate. A second rate for the same pair and date is rejected with ErrDuplicate.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	m.FromCurrencyCode = strings.ToUpper(m.FromCurrencyCode)
	m.ToCurrencyCode = strings.ToUpper(m.ToCurrencyCode)

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := r.db(ctx).Exec(ctx, query,
		m.ExchangeRateID, m.FromCurrencyCode, m.ToCurrencyCode, m.Rate, m.DateEffective,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if uniqueViolationOn(err, "exchange_rates_pair_date_key") {
		return fmt.Errorf("rate %s/%s on %s already exists: %w",
			m.FromCurrencyCode, m.ToCurrencyCode, m.DateEffective.Format(domain.DateLayout), apperrors.ErrDuplicate)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// FindRateOnOrBefore retrieves the most recent rate for the pair effective on or before asOf.
func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1;`

	m, err := scanExchangeRate(r.db(ctx).QueryRow(ctx, query,
		strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode), asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s->%s on or before %s",
				fromCurrencyCode, toCurrencyCode, asOf.Format(domain.DateLayout)))
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates lists rates newest first, optionally filtered by either currency.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE ($1 = '' OR from_currency_code = $1) AND ($2 = '' OR to_currency_code = $2)
		ORDER BY date_effective DESC, from_currency_code, to_currency_code;`

	rows, err := r.db(ctx).Query(ctx, query, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	rates := make([]domain.ExchangeRate, 0)
	for rows.Next() {
		m, err := scanExchangeRate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}
	return rates, nil
}

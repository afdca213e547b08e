package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CurrencyRepository reads the closed set of currency codes a document may
// quote.
type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func (r *CurrencyRepository) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `select code from currencies order by code`)
	if err != nil {
		return nil, fmt.Errorf("failed to select currencies: %w", err)
	}
	defer rows.Close()

	codes := make([]string, 0, 64)
	for rows.Next() {
		var c string
		if err = rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan currency code: %w", err)
		}
		codes = append(codes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read currencies: %w", err)
	}
	return codes, nil
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

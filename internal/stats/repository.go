package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catering/internal/catalog"
	"catering/internal/orders"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Samples(ctx context.Context, from, to time.Time) ([]Sample, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SAMPLES
// --------------------------------------------------
func (r *PostgresRepository) Samples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			status,
			total_price::text,
			total_portions,
			lines
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var (
			s     Sample
			total string
			lines []byte
		)
		if err := rows.Scan(&s.Status, &total, &s.Portions, &lines); err != nil {
			return nil, err
		}
		if s.Total, err = catalog.ParseMoney(total); err != nil {
			return nil, fmt.Errorf("order total: %w", err)
		}
		if err := json.Unmarshal(lines, &s.Lines); err != nil {
			return nil, fmt.Errorf("order lines: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// OrderRepository reads samples through an orders.Repository. It backs the
// dashboard when orders are not in Postgres.
type OrderRepository struct {
	orders orders.Repository
}

func NewOrderRepository(repo orders.Repository) *OrderRepository {
	return &OrderRepository{orders: repo}
}

const pageSize = 200

func (r *OrderRepository) Samples(ctx context.Context, from, to time.Time) ([]Sample, error) {
	var out []Sample
	for offset := 0; ; offset += pageSize {
		page, total, err := r.orders.List(ctx, orders.ListFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, o := range page {
			if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
				continue
			}
			out = append(out, Sample{Status: o.Status, Total: o.TotalPrice, Portions: o.TotalPortions, Lines: o.Lines})
		}
		if offset+pageSize >= total {
			return out, nil
		}
	}
}

package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catering/internal/catalog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id::text,
	client_name,
	client_phone,
	client_email,
	address,
	event_date,
	message,
	locale,
	lines,
	total_price::text,
	total_portions,
	status,
	created_at,
	updated_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		lines []byte
		total string
	)
	err := row.Scan(
		&o.ID,
		&o.ClientName,
		&o.ClientPhone,
		&o.ClientEmail,
		&o.Address,
		&o.EventDate,
		&o.Message,
		&o.Locale,
		&lines,
		&total,
		&o.TotalPortions,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("order %s lines: %w", o.ID, err)
	}
	if o.TotalPrice, err = catalog.ParseMoney(total); err != nil {
		return nil, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	return &o, nil
}

// --------------------------------------------------
// CREATE ORDER
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, order *Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = StatusNew
	}

	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode lines: %w", err)
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (
			id, client_name, client_phone, client_email, address,
			event_date, message, locale, lines, total_price, total_portions, status
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12)
		RETURNING created_at, updated_at
	`,
		order.ID,
		order.ClientName,
		order.ClientPhone,
		order.ClientEmail,
		order.Address,
		order.EventDate,
		order.Message,
		order.Locale,
		lines,
		order.TotalPrice.StringFixed(2),
		order.TotalPortions,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1::uuid`, id))
}

// --------------------------------------------------
// LIST ORDERS (admin)
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Order, int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE ($1::text = '' OR status = $1::text)`,
		filter.Status,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, filter.Status, limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanOrder(r.db.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+orderColumns,
		id, status,
	))
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func ConnectPostgres(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres")
	return pool, nil
}

// InitSchema creates or updates the database schema.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("schema %s: %w", stmt.name, err)
		}
	}
	log.Info("schema initialized", zap.Int("statements", len(schema)))
	return nil
}

var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'ADMIN',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},

	// -------------------------------
	// CATALOG
	// -------------------------------
	{"dishes", `
		CREATE TABLE IF NOT EXISTS dishes (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category VARCHAR(50) NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			is_fasting BOOLEAN NOT NULL DEFAULT false,
			is_vegetarian BOOLEAN NOT NULL DEFAULT false,
			is_vegan BOOLEAN NOT NULL DEFAULT false,
			is_gluten_free BOOLEAN NOT NULL DEFAULT false,
			image_url VARCHAR(500) NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menus", `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			dish_count INTEGER NOT NULL CHECK (dish_count >= 1),
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			position INTEGER NOT NULL DEFAULT 0,
			published BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"menu_dishes", `
		CREATE TABLE IF NOT EXISTS menu_dishes (
			menu_id UUID NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			dish_id UUID NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (menu_id, dish_id)
		)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			client_name VARCHAR(255) NOT NULL,
			client_phone VARCHAR(64) NOT NULL,
			client_email VARCHAR(255) NOT NULL,
			address TEXT NOT NULL,
			event_date TIMESTAMPTZ NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			locale VARCHAR(16) NOT NULL,
			lines JSONB NOT NULL,
			total_price NUMERIC(12,2) NOT NULL,
			total_portions INTEGER NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'NEW',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"orders_status_idx", `CREATE INDEX IF NOT EXISTS orders_status_idx ON orders (status, created_at DESC)`},

	// -------------------------------
	// CONTENT
	// -------------------------------
	{"blog_posts", `
		CREATE TABLE IF NOT EXISTS blog_posts (
			id UUID PRIMARY KEY,
			slug VARCHAR(255) NOT NULL,
			locale VARCHAR(16) NOT NULL,
			title VARCHAR(255) NOT NULL,
			excerpt TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			cover_image_url VARCHAR(500) NULL,
			published BOOLEAN NOT NULL DEFAULT false,
			published_at TIMESTAMPTZ NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (slug, locale)
		)
	`},
	{"media_files", `
		CREATE TABLE IF NOT EXISTS media_files (
			id UUID PRIMARY KEY,
			object_key VARCHAR(500) NOT NULL UNIQUE,
			url VARCHAR(1000) NOT NULL,
			filename VARCHAR(255) NOT NULL,
			content_type VARCHAR(100) NOT NULL,
			size_bytes BIGINT NOT NULL,
			alt TEXT NOT NULL DEFAULT '',
			in_gallery BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"site_settings", `
		CREATE TABLE IF NOT EXISTS site_settings (
			key VARCHAR(100) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
}

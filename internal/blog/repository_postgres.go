package blog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `
	id::text, slug, locale, title, excerpt, content, cover_image_url,
	published, published_at, created_at, updated_at
`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Locale,
		&p.Title,
		&p.Excerpt,
		&p.Content,
		&p.CoverImageURL,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrSlugTaken
	}
	return err
}

func (r *PostgresRepository) Create(ctx context.Context, p *Post) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO blog_posts (id, slug, locale, title, excerpt, content, cover_image_url, published, published_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`,
		p.ID, p.Slug, p.Locale, p.Title, p.Excerpt, p.Content, p.CoverImageURL, p.Published, p.PublishedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapWriteErr(err)
}

func (r *PostgresRepository) Update(ctx context.Context, p *Post) error {
	err := r.db.QueryRow(ctx, `
		UPDATE blog_posts
		SET slug = $2, locale = $3, title = $4, excerpt = $5, content = $6,
		    cover_image_url = $7, published = $8, published_at = $9, updated_at = now()
		WHERE id = $1::uuid
		RETURNING created_at, updated_at
	`,
		p.ID, p.Slug, p.Locale, p.Title, p.Excerpt, p.Content, p.CoverImageURL, p.Published, p.PublishedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapWriteErr(err)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1::uuid`, id))
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug, locale string) (*Post, error) {
	return scanPost(r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1 AND locale = $2`,
		slug, locale,
	))
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Post, int, error) {
	const where = `WHERE ($1::text = '' OR locale = $1::text) AND (NOT $2::boolean OR published)`

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM blog_posts `+where, filter.Locale, filter.PublishedOnly).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+`
		FROM blog_posts `+where+`
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT $3 OFFSET $4
	`, filter.Locale, filter.PublishedOnly, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package media

import (
	"context"
	"errors"

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

const fileColumns = `id::text, object_key, url, filename, content_type, size_bytes, alt, in_gallery, created_at`

func scanFile(row pgx.Row, f *File) error {
	return row.Scan(
		&f.ID,
		&f.ObjectKey,
		&f.URL,
		&f.Filename,
		&f.ContentType,
		&f.SizeBytes,
		&f.Alt,
		&f.InGallery,
		&f.CreatedAt,
	)
}

func (r *PostgresRepository) Create(ctx context.Context, f *File) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO media_files (id, object_key, url, filename, content_type, size_bytes, alt, in_gallery)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`,
		f.ID, f.ObjectKey, f.URL, f.Filename, f.ContentType, f.SizeBytes, f.Alt, f.InGallery,
	).Scan(&f.CreatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var f File
	err := scanFile(r.db.QueryRow(ctx, `SELECT `+fileColumns+` FROM media_files WHERE id = $1::uuid`, id), &f)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRepository) List(ctx context.Context, galleryOnly bool) ([]File, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+fileColumns+`
		FROM media_files
		WHERE NOT $1::boolean OR in_gallery
		ORDER BY created_at DESC
	`, galleryOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []File{}
	for rows.Next() {
		var f File
		if err := scanFile(rows, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, f *File) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE media_files SET alt = $2, in_gallery = $3 WHERE id = $1::uuid`,
		f.ID, f.Alt, f.InGallery,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM media_files WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

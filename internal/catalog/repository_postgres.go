package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const dishColumns = `
	d.id::text,
	d.name,
	d.description,
	d.category,
	d.tags,
	d.is_fasting,
	d.is_vegetarian,
	d.is_vegan,
	d.is_gluten_free,
	d.image_url,
	d.created_at,
	d.updated_at
`

func scanDish(row scanner, d *Dish, extra ...any) error {
	dest := append(extra,
		&d.ID,
		&d.Name,
		&d.Description,
		&d.Category,
		&d.Tags,
		&d.IsFasting,
		&d.IsVegetarian,
		&d.IsVegan,
		&d.IsGlutenFree,
		&d.ImageURL,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return row.Scan(dest...)
}

// --------------------------------------------------
// DISHES
// --------------------------------------------------

func (r *PostgresRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dishColumns+` FROM dishes d ORDER BY d.category, d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []Dish{}
	for rows.Next() {
		var d Dish
		if err := scanDish(rows, &d); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

func (r *PostgresRepository) GetDish(ctx context.Context, id string) (*Dish, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var d Dish
	err := scanDish(r.db.QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes d WHERE d.id = $1::uuid`, id), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) CreateDish(ctx context.Context, dish *Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO dishes (
			id, name, description, category, tags,
			is_fasting, is_vegetarian, is_vegan, is_gluten_free, image_url
		)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`,
		dish.ID, dish.Name, dish.Description, dish.Category, dish.Tags,
		dish.IsFasting, dish.IsVegetarian, dish.IsVegan, dish.IsGlutenFree, dish.ImageURL,
	).Scan(&dish.CreatedAt, &dish.UpdatedAt)
}

func (r *PostgresRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	err := r.db.QueryRow(ctx, `
		UPDATE dishes
		SET name = $2,
		    description = $3,
		    category = $4,
		    tags = $5,
		    is_fasting = $6,
		    is_vegetarian = $7,
		    is_vegan = $8,
		    is_gluten_free = $9,
		    image_url = $10,
		    updated_at = now()
		WHERE id = $1::uuid
		RETURNING created_at, updated_at
	`,
		dish.ID, dish.Name, dish.Description, dish.Category, dish.Tags,
		dish.IsFasting, dish.IsVegetarian, dish.IsVegan, dish.IsGlutenFree, dish.ImageURL,
	).Scan(&dish.CreatedAt, &dish.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteDish(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DishNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id::text, name
		FROM dishes
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// --------------------------------------------------
// MENUS
// --------------------------------------------------

const menuColumns = `
	m.id::text,
	m.name,
	m.description,
	m.dish_count,
	m.price::text,
	m.position,
	m.published,
	m.created_at,
	m.updated_at
`

func scanMenu(row scanner, m *Menu) error {
	var price string
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.DishCount,
		&price,
		&m.Position,
		&m.Published,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return err
	}

	parsed, err := ParseMoney(price)
	if err != nil {
		return err
	}
	m.Price = parsed
	return nil
}

func (r *PostgresRepository) ListMenus(ctx context.Context, publishedOnly bool) ([]Menu, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+menuColumns+`
		FROM menus m
		WHERE ($1 = false OR m.published)
		ORDER BY m.position, m.name
	`, publishedOnly)
	if err != nil {
		return nil, err
	}

	menus := []Menu{}
	for rows.Next() {
		var m Menu
		if err := scanMenu(rows, &m); err != nil {
			rows.Close()
			return nil, err
		}
		menus = append(menus, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachDishes(ctx, menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, id string) (*Menu, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var m Menu
	err := scanMenu(r.db.QueryRow(ctx, `SELECT `+menuColumns+` FROM menus m WHERE m.id = $1::uuid`, id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	menus := []Menu{m}
	if err := r.attachDishes(ctx, menus); err != nil {
		return nil, err
	}
	return &menus[0], nil
}

// attachDishes loads every menu's dishes in one query.
func (r *PostgresRepository) attachDishes(ctx context.Context, menus []Menu) error {
	if len(menus) == 0 {
		return nil
	}

	index := make(map[string]int, len(menus))
	ids := make([]string, len(menus))
	for i := range menus {
		menus[i].Dishes = []Dish{}
		index[menus[i].ID] = i
		ids[i] = menus[i].ID
	}

	rows, err := r.db.Query(ctx, `
		SELECT md.menu_id::text, `+dishColumns+`
		FROM menu_dishes md
		JOIN dishes d
		  ON d.id = md.dish_id
		WHERE md.menu_id = ANY($1::uuid[])
		ORDER BY md.menu_id, md.position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var menuID string
		var d Dish
		if err := scanDish(rows, &d, &menuID); err != nil {
			return err
		}
		i := index[menuID]
		menus[i].Dishes = append(menus[i].Dishes, d)
	}
	return rows.Err()
}

func (r *PostgresRepository) CreateMenu(ctx context.Context, menu *Menu, dishIDs []string) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO menus (id, name, description, dish_count, price, position, published)
		VALUES ($1::uuid, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING created_at, updated_at
	`,
		menu.ID, menu.Name, menu.Description, menu.DishCount,
		menu.Price.StringFixed(2), menu.Position, menu.Published,
	).Scan(&menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		return err
	}

	if dishIDs != nil {
		if err := replaceMenuDishes(ctx, tx, menu.ID, dishIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) UpdateMenu(ctx context.Context, menu *Menu, dishIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE menus
		SET name = $2,
		    description = $3,
		    dish_count = $4,
		    price = $5::numeric,
		    position = $6,
		    published = $7,
		    updated_at = now()
		WHERE id = $1::uuid
		RETURNING created_at, updated_at
	`,
		menu.ID, menu.Name, menu.Description, menu.DishCount,
		menu.Price.StringFixed(2), menu.Position, menu.Published,
	).Scan(&menu.CreatedAt, &menu.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if dishIDs != nil {
		if err := replaceMenuDishes(ctx, tx, menu.ID, dishIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) DeleteMenu(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// SET MENU DISHES (ATOMIC REPLACE)
// --------------------------------------------------
func (r *PostgresRepository) SetMenuDishes(ctx context.Context, menuID string, dishIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM menus WHERE id = $1::uuid)`, menuID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	if err := replaceMenuDishes(ctx, tx, menuID, dishIDs); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE menus SET updated_at = now() WHERE id = $1::uuid`, menuID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// replaceMenuDishes rewrites a menu's ordered dish list inside tx. Unknown
// dish ids surface as ErrNotFound.
func replaceMenuDishes(ctx context.Context, tx pgx.Tx, menuID string, dishIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM menu_dishes WHERE menu_id = $1::uuid`, menuID); err != nil {
		return err
	}

	for pos, dishID := range dishIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_dishes (menu_id, dish_id, position)
			VALUES ($1::uuid, $2::uuid, $3)
		`, menuID, dishID, pos)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

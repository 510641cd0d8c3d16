package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresRepo keeps menu items in a single relational table.
// Items are enumerated in creation order.
type PostgresRepo struct {
	db    *sqlx.DB
	table string
}

// NewPostgresRepo returns a repo over table. Table names that are not plain
// identifiers are rejected to keep them safe for interpolation.
func NewPostgresRepo(db *sqlx.DB, table string) (*PostgresRepo, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresRepo{db: db, table: table}, nil
}

// EnsureTable creates the menu table when it does not exist yet.
func (r *PostgresRepo) EnsureTable(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	menu_name TEXT NOT NULL,
	menu_price DOUBLE PRECISION NOT NULL,
	menu_category TEXT NOT NULL,
	menu_available BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, r.table)
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

func (r *PostgresRepo) Add(ctx context.Context, item menu.MenuItem) (string, error) {
	id := uuid.NewString()
	q := fmt.Sprintf(`INSERT INTO %s (id, menu_name, menu_price, menu_category, menu_available) VALUES ($1, $2, $3, $4, $5)`, r.table)
	if _, err := r.db.ExecContext(ctx, q, id, item.Name, item.Price, item.Category, item.Available); err != nil {
		return "", fmt.Errorf("insert menu item: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]menu.MenuItem, error) {
	q := fmt.Sprintf(`SELECT id, menu_name, menu_price, menu_category, menu_available FROM %s ORDER BY created_at, id`, r.table)
	out := []menu.MenuItem{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, p menu.Patch) error {
	var (
		sets []string
		args []interface{}
	)
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("menu_name", *p.Name)
	}
	if p.Price != nil {
		add("menu_price", *p.Price)
	}
	if p.Category != nil {
		add("menu_category", *p.Category)
	}
	if p.Available != nil {
		add("menu_available", *p.Available)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`, r.table, strings.Join(sets, ", "), len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if n == 0 {
		return menu.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

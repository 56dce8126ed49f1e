package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"goflare.io/kalori/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS foods (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	external_id   TEXT UNIQUE,
	slug          TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	name_en       TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL DEFAULT '',
	subcategory   TEXT NOT NULL DEFAULT '',
	serving_size  TEXT NOT NULL DEFAULT '',
	serving_label TEXT NOT NULL DEFAULT '',
	calories      TEXT NOT NULL DEFAULT '',
	protein       TEXT NOT NULL DEFAULT '',
	carbs         TEXT NOT NULL DEFAULT '',
	fat           TEXT NOT NULL DEFAULT '',
	fiber         TEXT NOT NULL DEFAULT '',
	sugar         TEXT NOT NULL DEFAULT '',
	sodium        TEXT NOT NULL DEFAULT '',
	cholesterol   TEXT NOT NULL DEFAULT '',
	potassium     TEXT NOT NULL DEFAULT '',
	calcium       TEXT NOT NULL DEFAULT '',
	iron          TEXT NOT NULL DEFAULT '',
	vitamin_c     TEXT NOT NULL DEFAULT '',
	image_url     TEXT NOT NULL DEFAULT '',
	cached_at     INTEGER NOT NULL DEFAULT 0,
	updated_at    INTEGER NOT NULL DEFAULT 0,
	search_text   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_foods_category ON foods(category, subcategory);
CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name);
`

const foodColumns = `id, COALESCE(external_id, ''), slug, name, name_en, category, subcategory,
	serving_size, serving_label, calories, protein, carbs, fat, fiber, sugar,
	sodium, cholesterol, potassium, calcium, iron, vitamin_c, image_url, cached_at, updated_at`

// SQLite is a Provider backed by a SQLite database file.
type SQLite struct {
	conn   *sql.DB
	logger *zap.Logger
	path   string
}

var _ Provider = (*SQLite)(nil)

// OpenSQLite opens or creates the catalog database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := migrateSearchText(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate search column: %w", err)
	}

	logger.Info("Opened catalog database", zap.String("path", path))
	return &SQLite{conn: conn, logger: logger, path: path}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Upsert inserts foods, replacing existing rows with the same slug.
func (s *SQLite) Upsert(ctx context.Context, foods ...models.Food) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO foods (external_id, slug, name, name_en, category, subcategory,
	serving_size, serving_label, calories, protein, carbs, fat, fiber, sugar,
	sodium, cholesterol, potassium, calcium, iron, vitamin_c, image_url, cached_at, updated_at, search_text)
VALUES (NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
	external_id = excluded.external_id, name = excluded.name, name_en = excluded.name_en,
	category = excluded.category, subcategory = excluded.subcategory,
	serving_size = excluded.serving_size, serving_label = excluded.serving_label,
	calories = excluded.calories, protein = excluded.protein, carbs = excluded.carbs,
	fat = excluded.fat, fiber = excluded.fiber, sugar = excluded.sugar,
	sodium = excluded.sodium, cholesterol = excluded.cholesterol,
	potassium = excluded.potassium, calcium = excluded.calcium, iron = excluded.iron,
	vitamin_c = excluded.vitamin_c, image_url = excluded.image_url,
	cached_at = excluded.cached_at, updated_at = excluded.updated_at,
	search_text = excluded.search_text`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range foods {
		if f.Slug == "" {
			return fmt.Errorf("food %q has no slug", f.Name)
		}
		if _, err := stmt.ExecContext(ctx,
			f.ExternalID, f.Slug, f.Name, f.NameEn, f.Category, f.Subcategory,
			f.ServingSize, f.ServingLabel, f.Calories, f.Protein, f.Carbs, f.Fat, f.Fiber, f.Sugar,
			f.Sodium, f.Cholesterol, f.Potassium, f.Calcium, f.Iron, f.VitaminC, f.ImageURL,
			unixOrZero(f.CachedAt), unixOrZero(f.UpdatedAt), searchText(f.Name, f.NameEn),
		); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", f.Slug, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) FoodBySlug(ctx context.Context, slug string) (*models.Food, error) {
	return s.one(ctx, "slug = ?", slug)
}

func (s *SQLite) FoodByExternalID(ctx context.Context, externalID string) (*models.Food, error) {
	return s.one(ctx, "external_id = ?", externalID)
}

func (s *SQLite) one(ctx context.Context, where string, arg string) (*models.Food, error) {
	row := s.conn.QueryRowContext(ctx, "SELECT "+foodColumns+" FROM foods WHERE "+where+" LIMIT 1", arg)
	f, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query food %s: %w", arg, err)
	}
	return &f, nil
}

func (s *SQLite) ListFoods(ctx context.Context, offset, limit int) ([]models.Food, int, error) {
	var total int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM foods").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count foods: %w", err)
	}
	if limit <= 0 {
		return []models.Food{}, total, nil
	}
	foods, err := s.many(ctx, "SELECT "+foodColumns+" FROM foods ORDER BY name, slug LIMIT ? OFFSET ?", limit, max(offset, 0))
	return foods, total, err
}

func (s *SQLite) RandomFoods(ctx context.Context, n int) ([]models.Food, error) {
	return s.many(ctx, "SELECT "+foodColumns+" FROM foods ORDER BY RANDOM() LIMIT ?", max(n, 0))
}

func (s *SQLite) SearchFoods(ctx context.Context, query string, limit int) ([]models.Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Food{}, nil
	}
	if limit <= 0 {
		limit = -1
	}
	// LIKE only folds ASCII case, so both sides are folded in Go.
	pattern := "%" + escapeLike(models.Fold(query)) + "%"
	return s.many(ctx, `SELECT `+foodColumns+` FROM foods
WHERE search_text LIKE ? ESCAPE '\'
ORDER BY name LIMIT ?`, pattern, limit)
}

func (s *SQLite) FoodsByCategory(ctx context.Context, main, sub string) ([]models.Food, error) {
	if sub == "" {
		return s.many(ctx, "SELECT "+foodColumns+" FROM foods WHERE category = ? ORDER BY name", main)
	}
	return s.many(ctx, "SELECT "+foodColumns+" FROM foods WHERE category = ? AND subcategory = ? ORDER BY name", main, sub)
}

func (s *SQLite) CategoryGroups(ctx context.Context) ([]models.CategoryGroup, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT DISTINCT category, subcategory FROM foods WHERE category != '' ORDER BY category, subcategory")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var pairs [][2]string
	for rows.Next() {
		var p [2]string
		if err := rows.Scan(&p[0], &p[1]); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return groupCategories(pairs), nil
}

func (s *SQLite) AllFoods(ctx context.Context) ([]models.Food, error) {
	return s.many(ctx, "SELECT "+foodColumns+" FROM foods ORDER BY slug")
}

func (s *SQLite) many(ctx context.Context, query string, args ...any) ([]models.Food, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	foods := []models.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate foods: %w", err)
	}
	return foods, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFood(row scanner) (models.Food, error) {
	var (
		f                   models.Food
		cachedAt, updatedAt int64
	)
	err := row.Scan(
		&f.ID, &f.ExternalID, &f.Slug, &f.Name, &f.NameEn, &f.Category, &f.Subcategory,
		&f.ServingSize, &f.ServingLabel, &f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber, &f.Sugar,
		&f.Sodium, &f.Cholesterol, &f.Potassium, &f.Calcium, &f.Iron, &f.VitaminC, &f.ImageURL,
		&cachedAt, &updatedAt,
	)
	if err != nil {
		return models.Food{}, err
	}
	f.CachedAt = timeOrZero(cachedAt)
	f.UpdatedAt = timeOrZero(updatedAt)
	return f, nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// searchText is the folded form of a food's names that SearchFoods matches against.
func searchText(name, nameEn string) string {
	return models.Fold(name) + "\n" + models.Fold(nameEn)
}

// migrateSearchText adds and fills search_text on databases created before the column existed.
func migrateSearchText(ctx context.Context, conn *sql.DB) error {
	var n int
	if err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info('foods') WHERE name = 'search_text'").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := conn.ExecContext(ctx, "ALTER TABLE foods ADD COLUMN search_text TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}

	type row struct {
		id           int64
		name, nameEn string
	}
	rows, err := conn.QueryContext(ctx, "SELECT id, name, name_en FROM foods")
	if err != nil {
		return err
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.name, &r.nameEn); err != nil {
			rows.Close()
			return err
		}
		pending = append(pending, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, r := range pending {
		if _, err := tx.ExecContext(ctx, "UPDATE foods SET search_text = ? WHERE id = ?", searchText(r.name, r.nameEn), r.id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

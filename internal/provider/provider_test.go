package provider_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goflare.io/kalori/internal/models"
	"goflare.io/kalori/internal/provider"
)

func fixtureFoods() []models.Food {
	updated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return []models.Food{
		{ExternalID: "usda-1", Slug: "domates", Name: "Domates", NameEn: "Tomato", Category: "Sebzeler", Subcategory: "Yeşil", ServingLabel: "1 orta domates (123g)", Calories: "22", Protein: "1.1", UpdatedAt: updated},
		{ExternalID: "usda-2", Slug: "ispanak", Name: "Ispanak", NameEn: "Spinach", Category: "Sebzeler", Subcategory: "Yapraklı", Calories: "23", UpdatedAt: updated},
		{ExternalID: "usda-3", Slug: "elma", Name: "Elma", NameEn: "Apple", Category: "Meyveler", Subcategory: "", Calories: "52", UpdatedAt: updated},
		{ExternalID: "", Slug: "ayran", Name: "Ayran", Category: "İçecekler", Subcategory: "Süt Ürünleri", Calories: "36"},
	}
}

func providers(t *testing.T) map[string]provider.Provider {
	t.Helper()
	ctx := context.Background()

	db, err := provider.OpenSQLite(ctx, filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Upsert(ctx, fixtureFoods()...))

	return map[string]provider.Provider{
		"memory": provider.NewMemory(fixtureFoods()...),
		"sqlite": db,
	}
}

func TestProvider_FoodBySlug(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			f, err := p.FoodBySlug(ctx, "domates")
			require.NoError(t, err)
			assert.Equal(t, "Domates", f.Name)
			assert.Equal(t, "1 orta domates (123g)", f.ServingLabel)
			assert.Equal(t, "22", f.Calories)
			assert.Empty(t, f.Fat)

			_, err = p.FoodBySlug(ctx, "yok")
			assert.ErrorIs(t, err, provider.ErrNotFound)
		})
	}
}

func TestProvider_FoodByExternalID(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			f, err := p.FoodByExternalID(context.Background(), "usda-3")
			require.NoError(t, err)
			assert.Equal(t, "elma", f.Slug)

			_, err = p.FoodByExternalID(context.Background(), "usda-404")
			assert.ErrorIs(t, err, provider.ErrNotFound)
		})
	}
}

func TestProvider_ListFoods(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			foods, total, err := p.ListFoods(context.Background(), 0, 2)
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			require.Len(t, foods, 2)
			assert.Equal(t, "Ayran", foods[0].Name)
			assert.Equal(t, "Domates", foods[1].Name)

			foods, total, err = p.ListFoods(context.Background(), 10, 2)
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			assert.Empty(t, foods)
		})
	}
}

func TestProvider_RandomFoods(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			foods, err := p.RandomFoods(context.Background(), 3)
			require.NoError(t, err)
			assert.Len(t, foods, 3)

			foods, err = p.RandomFoods(context.Background(), 10)
			require.NoError(t, err)
			assert.Len(t, foods, 4)
		})
	}
}

func TestProvider_SearchFoods(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			foods, err := p.SearchFoods(context.Background(), "tomat", 10)
			require.NoError(t, err)
			require.Len(t, foods, 1)
			assert.Equal(t, "domates", foods[0].Slug)

			foods, err = p.SearchFoods(context.Background(), "  ", 10)
			require.NoError(t, err)
			assert.Empty(t, foods)
		})
	}
}

func TestProvider_SearchFoldsTurkishLetters(t *testing.T) {
	ctx := context.Background()
	foods := append(fixtureFoods(), models.Food{Slug: "seftali", Name: "Şeftali", NameEn: "Peach", Category: "Meyveler"})

	db, err := provider.OpenSQLite(ctx, filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Upsert(ctx, foods...))

	for name, p := range map[string]provider.Provider{"memory": provider.NewMemory(foods...), "sqlite": db} {
		t.Run(name, func(t *testing.T) {
			for _, q := range []string{"şeftali", "ŞEFTALİ", "seftali", "Şeft"} {
				got, err := p.SearchFoods(ctx, q, 10)
				require.NoError(t, err)
				require.Len(t, got, 1, q)
				assert.Equal(t, "seftali", got[0].Slug, q)
			}

			got, err := p.SearchFoods(ctx, "ıspanak", 10)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "ispanak", got[0].Slug)

			got, err = p.SearchFoods(ctx, "50%", 10)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestOpenSQLite_BackfillsSearchColumn(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := provider.OpenSQLite(ctx, path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.ExecContext(ctx, "ALTER TABLE foods DROP COLUMN search_text")
	require.NoError(t, err)
	_, err = raw.ExecContext(ctx, "INSERT INTO foods (slug, name, name_en) VALUES ('seftali', 'Şeftali', 'Peach')")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err = provider.OpenSQLite(ctx, path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := db.SearchFoods(ctx, "SEFTALI", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Şeftali", got[0].Name)
}

func TestProvider_FoodsByCategory(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			foods, err := p.FoodsByCategory(context.Background(), "Sebzeler", "")
			require.NoError(t, err)
			assert.Len(t, foods, 2)

			foods, err = p.FoodsByCategory(context.Background(), "Sebzeler", "Yeşil")
			require.NoError(t, err)
			require.Len(t, foods, 1)
			assert.Equal(t, "domates", foods[0].Slug)
		})
	}
}

func TestProvider_CategoryGroups(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			groups, err := p.CategoryGroups(context.Background())
			require.NoError(t, err)

			assert.Equal(t, []models.CategoryGroup{
				{MainCategory: "Meyveler", Subcategories: []string{}},
				{MainCategory: "Sebzeler", Subcategories: []string{"Yapraklı", "Yeşil"}},
				{MainCategory: "İçecekler", Subcategories: []string{"Süt Ürünleri"}},
			}, groups)
		})
	}
}

func TestProvider_AllFoods(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			foods, err := p.AllFoods(context.Background())
			require.NoError(t, err)
			require.Len(t, foods, 4)
			assert.Equal(t, "ayran", foods[0].Slug)
		})
	}
}

func TestSQLite_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	db, err := provider.OpenSQLite(ctx, filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Upsert(ctx, models.Food{Slug: "elma", Name: "Elma", Calories: "52"}))
	require.NoError(t, db.Upsert(ctx, models.Food{Slug: "elma", Name: "Elma", Calories: "57"}))

	f, err := db.FoodBySlug(ctx, "elma")
	require.NoError(t, err)
	assert.Equal(t, "57", f.Calories)
	assert.True(t, f.UpdatedAt.IsZero())

	assert.Error(t, db.Upsert(ctx, models.Food{Name: "no slug"}))
}

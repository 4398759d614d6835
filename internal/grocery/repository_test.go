package grocery

import (
	"context"
	"path/filepath"
	"testing"

	"ai-grocery-list/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSQLRepository(t *testing.T) *SQLRepository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "grocery.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLRepository(db.SQL)
}

func TestRepositories(t *testing.T) {
	repos := map[string]func(t *testing.T) Repository{
		"Memory": func(*testing.T) Repository { return NewMemoryRepository() },
		"SQLite": func(t *testing.T) Repository { return newSQLRepository(t) },
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			list, err := ParseCompletion(validCompletion)
			require.NoError(t, err)

			t.Run("SaveAndGet", func(t *testing.T) {
				id, err := repo.Save(ctx, samplePlan(), list)
				require.NoError(t, err)
				assert.Equal(t, int64(1), id)

				rec, err := repo.Get(ctx, id)
				require.NoError(t, err)
				require.NotNil(t, rec)

				assert.Equal(t, id, rec.ID)
				assert.Equal(t, "Caesar salad", rec.MondayLunch)
				assert.Equal(t, "Spaghetti bolognese", rec.MondayDinner)
				assert.Equal(t, "", rec.TuesdayLunch)
				assert.Equal(t, "  Chicken curry  ", rec.WednesdayDinner)
				assert.Equal(t, "Roast beef", rec.SundayLunch)
				assert.Equal(t, "", rec.SundayDinner)
				require.NotNil(t, rec.NumberOfPeople)
				assert.Equal(t, 4, *rec.NumberOfPeople)
				assert.Equal(t, list, rec.GroceryList)
				assert.False(t, rec.CreatedAt.IsZero())

				expected := NewRecord(samplePlan(), list)
				expected.ID = rec.ID
				expected.CreatedAt = rec.CreatedAt
				assert.Equal(t, expected, *rec)
				assert.Equal(t, samplePlan().Meals(), rec.MealPlan().Meals())
			})

			t.Run("IDsIncrement", func(t *testing.T) {
				plan := samplePlan()
				plan.NumberOfPeople = nil
				id, err := repo.Save(ctx, plan, GroceryList{Categories: []Category{}})
				require.NoError(t, err)
				assert.Equal(t, int64(2), id)

				rec, err := repo.Get(ctx, id)
				require.NoError(t, err)
				require.NotNil(t, rec)
				assert.Nil(t, rec.NumberOfPeople)
			})

			t.Run("GetMissing", func(t *testing.T) {
				rec, err := repo.Get(ctx, 999)
				require.NoError(t, err)
				assert.Nil(t, rec)
			})

			t.Run("ListNewestFirst", func(t *testing.T) {
				records, err := repo.List(ctx, 10)
				require.NoError(t, err)
				require.Len(t, records, 2)
				assert.Equal(t, int64(2), records[0].ID)
				assert.Equal(t, int64(1), records[1].ID)

				records, err = repo.List(ctx, 1)
				require.NoError(t, err)
				assert.Len(t, records, 1)
			})
		})
	}
}

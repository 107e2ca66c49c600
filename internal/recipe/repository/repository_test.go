package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/common/fixtures"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

var quantityComparer = cmp.Comparer(func(a, b domain.Quantity) bool {
	return a.String() == b.String() && a.Kind() == b.Kind()
})

func sampleRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:       1,
			Name:     "pancakes",
			PrepTime: domain.Time{Hours: 0, Minutes: 10},
			CookTime: domain.Time{Hours: 0, Minutes: 20},
			Ingredients: []domain.RecipeIngredient{
				{Ingredient: domain.Ingredient{ID: 1, Name: "flour"}, Quantity: domain.Weight(200)},
				{Ingredient: domain.Ingredient{ID: 2, Name: "egg"}, Quantity: domain.Amount(2)},
				{Ingredient: domain.Ingredient{ID: 3, Name: "milk"}, Quantity: domain.Portion(1.5)},
			},
			Method: "Mix and fry.",
		},
		{
			ID:       2,
			Name:     "toast",
			PrepTime: domain.Time{Hours: 0, Minutes: 1},
			CookTime: domain.Time{Hours: 0, Minutes: 3},
			Ingredients: []domain.RecipeIngredient{
				{Ingredient: domain.Ingredient{ID: 4, Name: "bread"}, Quantity: domain.Amount(2)},
			},
			Method: "Toast the bread.",
		},
	}
}

func TestFakeRepository(t *testing.T) {
	failing := NewFakeRepository(fakedata.NewGenerator(3), 1)
	_, err := failing.List(context.Background(), []int32{1, 2, 3})
	require.EqualError(t, err, "oh recipe")

	ok := NewFakeRepository(fakedata.NewGenerator(3), 0)
	for i := 0; i < 20; i++ {
		recipes, err := ok.List(context.Background(), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(recipes), constants.FakeRecipesMin)
		assert.Less(t, len(recipes), constants.FakeRecipesMax)
	}
}

func TestMemoryRepository_FollowsRequestedOrder(t *testing.T) {
	snap := &fixtures.Snapshot{Recipes: map[domain.ID]domain.Recipe{}}
	for _, r := range sampleRecipes() {
		snap.Recipes[r.ID] = r
	}
	repo := NewMemoryRepository(fixtures.NewStoreFromSnapshot(snap))

	got, err := repo.List(context.Background(), []int32{2, 99, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "toast", got[0].Name)
	assert.Equal(t, "pancakes", got[1].Name)

	got[1].Ingredients[0].Ingredient.Name = "sand"
	again, _ := repo.List(context.Background(), []int32{1})
	assert.Equal(t, "flour", again[0].Ingredients[0].Ingredient.Name)

	empty, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func setupSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, logger.Discard(), filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateSQLite(ctx, logger.Discard(), conn))
	return NewSQLiteRepository(conn, logger.Discard())
}

func TestSQLiteRepository_SaveAndList(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	for _, r := range sampleRecipes() {
		require.NoError(t, repo.Save(ctx, r))
	}

	got, err := repo.List(ctx, []int32{2, 1, 42})
	require.NoError(t, err)

	want := []domain.Recipe{sampleRecipes()[1], sampleRecipes()[0]}
	if diff := cmp.Diff(want, got, quantityComparer); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteRepository_ResaveReplacesIngredients(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	r := sampleRecipes()[0]
	require.NoError(t, repo.Save(ctx, r))

	r.Ingredients = r.Ingredients[:1]
	r.Name = "flatbread"
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.List(ctx, []int32{1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "flatbread", got[0].Name)
	assert.Len(t, got[0].Ingredients, 1)
}

func TestSQLiteRepository_SaveKeepsExistingIngredientName(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	first := sampleRecipes()[0]
	require.NoError(t, repo.Save(ctx, first))

	second := domain.Recipe{
		ID:       7,
		Name:     "shortbread",
		PrepTime: domain.Time{Minutes: 15},
		CookTime: domain.Time{Minutes: 25},
		Ingredients: []domain.RecipeIngredient{
			{Ingredient: domain.Ingredient{ID: 1, Name: "sugar"}, Quantity: domain.Weight(100)},
		},
		Method: "Rub and bake.",
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.List(ctx, []int32{1, 7})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "flour", got[0].Ingredients[0].Ingredient.Name)
	assert.Equal(t, "flour", got[1].Ingredients[0].Ingredient.Name)
}

func TestSQLiteRepository_EmptyIDs(t *testing.T) {
	repo := setupSQLite(t)

	got, err := repo.List(context.Background(), []int32{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIngredientRow_Quantity(t *testing.T) {
	tests := []struct {
		name    string
		row     ingredientRow
		want    domain.Quantity
		wantErr bool
	}{
		{"weight", ingredientRow{kind: "weight", grams: sql.NullInt32{Int32: 5, Valid: true}}, domain.Weight(5), false},
		{"portion", ingredientRow{kind: "portion", portion: sql.NullFloat64{Float64: 0.5, Valid: true}}, domain.Portion(0.5), false},
		{"amount", ingredientRow{kind: "amount", amount: sql.NullInt16{Int16: 3, Valid: true}}, domain.Amount(3), false},
		{"unknown kind", ingredientRow{kind: "cup"}, domain.Quantity{}, true},
		{"missing value", ingredientRow{kind: "weight"}, domain.Quantity{}, true},
		{"amount out of range", ingredientRow{kind: "amount", amount: sql.NullInt16{Int16: 300, Valid: true}}, domain.Quantity{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.row.quantity()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, got, quantityComparer, cmpopts.EquateEmpty()))
		})
	}
}

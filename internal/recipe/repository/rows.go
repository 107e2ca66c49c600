package repository

import (
	"database/sql"
	"fmt"

	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

// ingredientRow is one recipe_ingredients row; exactly one of grams,
// portion and amount is set, chosen by kind.
type ingredientRow struct {
	recipeID     int32
	ingredientID int32
	name         string
	kind         string
	grams        sql.NullInt32
	portion      sql.NullFloat64
	amount       sql.NullInt16
}

func newIngredientRow(recipeID domain.ID, ri domain.RecipeIngredient) ingredientRow {
	row := ingredientRow{
		recipeID:     int32(recipeID),
		ingredientID: ri.Ingredient.ID,
		name:         ri.Ingredient.Name,
		kind:         string(ri.Quantity.Kind()),
	}
	if g, ok := ri.Quantity.Grams(); ok {
		row.grams = sql.NullInt32{Int32: g, Valid: true}
	}
	if p, ok := ri.Quantity.Portion(); ok {
		row.portion = sql.NullFloat64{Float64: p, Valid: true}
	}
	if a, ok := ri.Quantity.Amount(); ok {
		row.amount = sql.NullInt16{Int16: int16(a), Valid: true}
	}
	return row
}

func (row ingredientRow) quantity() (domain.Quantity, error) {
	kind, ok := domain.ParseQuantityKind(row.kind)
	if !ok {
		return domain.Quantity{}, fmt.Errorf("recipe %d: unknown quantity kind %q", row.recipeID, row.kind)
	}
	switch kind {
	case domain.KindWeight:
		if row.grams.Valid {
			return domain.Weight(row.grams.Int32), nil
		}
	case domain.KindPortion:
		if row.portion.Valid {
			return domain.Portion(row.portion.Float64), nil
		}
	case domain.KindAmount:
		if row.amount.Valid && row.amount.Int16 >= 0 && row.amount.Int16 <= 255 {
			return domain.Amount(uint8(row.amount.Int16)), nil
		}
	}
	return domain.Quantity{}, fmt.Errorf("recipe %d: %s quantity has no value", row.recipeID, kind)
}

func (row ingredientRow) appendTo(byID map[domain.ID]*domain.Recipe) error {
	rec, ok := byID[domain.ID(row.recipeID)]
	if !ok {
		return nil
	}
	q, err := row.quantity()
	if err != nil {
		return err
	}
	rec.Ingredients = append(rec.Ingredients, domain.RecipeIngredient{
		Ingredient: domain.Ingredient{ID: row.ingredientID, Name: row.name},
		Quantity:   q,
	})
	return nil
}

func orderByIDs(ids []int32, byID map[domain.ID]*domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[domain.ID(id)]; ok {
			out = append(out, cloneRecipe(*rec))
		}
	}
	return out
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Ingredients = append([]domain.RecipeIngredient{}, r.Ingredients...)
	return r
}

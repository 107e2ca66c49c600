package mapper

import (
	"math"

	fooddto "github.com/AlibekovAA/onion-recipes/internal/food/service/dto"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

func TimeToDTO(t recipedomain.Time) fooddto.Time {
	return fooddto.Time{Hours: t.Hours, Minutes: t.Minutes}
}

func QuantityToDTO(q recipedomain.Quantity) fooddto.Quantity {
	out := fooddto.Quantity{
		Kind:    string(q.Kind()),
		Display: q.String(),
	}
	if g, ok := q.Grams(); ok {
		out.Grams = &g
	}
	if p, ok := q.Portion(); ok && !math.IsInf(p, 0) && !math.IsNaN(p) {
		out.Portion = &p
	}
	if a, ok := q.Amount(); ok {
		out.Amount = &a
	}
	return out
}

func RecipeToDTO(r recipedomain.Recipe) fooddto.Recipe {
	ingredients := make([]fooddto.Ingredient, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		ingredients[i] = fooddto.Ingredient{
			ID:       ri.Ingredient.ID,
			Name:     ri.Ingredient.Name,
			Quantity: QuantityToDTO(ri.Quantity),
		}
	}
	return fooddto.Recipe{
		ID:          int32(r.ID),
		Name:        r.Name,
		PrepTime:    TimeToDTO(r.PrepTime),
		CookTime:    TimeToDTO(r.CookTime),
		Ingredients: ingredients,
		Method:      r.Method,
	}
}

func RecipesToDTO(recipes recipedomain.Recipes) fooddto.Recipes {
	result := make([]fooddto.Recipe, len(recipes))
	for i, r := range recipes {
		result[i] = RecipeToDTO(r)
	}
	return fooddto.Recipes{Recipes: result, Count: len(result)}
}

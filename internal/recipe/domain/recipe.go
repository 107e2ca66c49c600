package domain

import (
	"fmt"
	"strings"
)

type ID int32

type Time struct {
	Hours   int32
	Minutes int32
}

func (t Time) String() string {
	return fmt.Sprintf("%d:%d", t.Hours, t.Minutes)
}

type Ingredient struct {
	ID   int32
	Name string
}

type RecipeIngredient struct {
	Ingredient Ingredient
	Quantity   Quantity
}

func (ri RecipeIngredient) String() string {
	return ri.Quantity.String() + " x " + ri.Ingredient.Name
}

type Recipe struct {
	ID          ID
	Name        string
	PrepTime    Time
	CookTime    Time
	Ingredients []RecipeIngredient
	Method      string
}

// String renders the recipe card. An empty ingredient list renders an empty
// ingredients block.
func (r Recipe) String() string {
	var b strings.Builder
	b.WriteString("Recipe: ")
	b.WriteString(r.Name)
	b.WriteString("\n\n    prep time - ")
	b.WriteString(r.PrepTime.String())
	b.WriteString("\n    cook time - ")
	b.WriteString(r.CookTime.String())
	b.WriteString("\n\ningredients:\n")
	for _, ing := range r.Ingredients {
		b.WriteString("- ")
		b.WriteString(ing.String())
		b.WriteString("\n")
	}
	b.WriteString("\n\nmethod:\n    ")
	b.WriteString(r.Method)
	return b.String()
}

type Recipes []Recipe

func NewRecipes(recipes []Recipe) Recipes {
	if recipes == nil {
		return Recipes{}
	}
	return Recipes(recipes)
}

func (rs Recipes) Len() int {
	return len(rs)
}

func (rs Recipes) String() string {
	var b strings.Builder
	for _, r := range rs {
		b.WriteString(r.String())
		b.WriteString("\n\n")
	}
	return b.String()
}

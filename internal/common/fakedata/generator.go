package fakedata

import (
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

// Generator fabricates domain values. It is safe for concurrent use; a
// non-zero seed makes the sequence reproducible.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.Float64() < p
}

func (g *Generator) UserID() userdomain.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return userdomain.ID(strings.ToLower(g.faker.LetterN(12)))
}

// JWT returns an opaque three-segment string shaped like a token.
func (g *Generator) JWT() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.faker.LetterN(20) + "." + g.faker.LetterN(40) + "." + g.faker.LetterN(32)
}

func (g *Generator) User(id userdomain.ID) userdomain.User {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.faker.IntRange(0, constants.FakeUserMaxRecipes-1)
	recipes := make([]int32, n)
	for i := range recipes {
		recipes[i] = int32(g.faker.IntRange(1, math.MaxInt16))
	}

	return userdomain.User{
		ID:      id,
		Name:    g.faker.FirstName(),
		Recipes: recipes,
	}
}

func (g *Generator) Recipes() []recipedomain.Recipe {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.faker.IntRange(constants.FakeRecipesMin, constants.FakeRecipesMax-1)
	recipes := make([]recipedomain.Recipe, n)
	for i := range recipes {
		recipes[i] = g.recipe(recipedomain.ID(g.faker.IntRange(1, math.MaxInt16)))
	}
	return recipes
}

func (g *Generator) Recipe(id recipedomain.ID) recipedomain.Recipe {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recipe(id)
}

func (g *Generator) recipe(id recipedomain.ID) recipedomain.Recipe {
	n := g.faker.IntRange(constants.FakeIngredientsMin, constants.FakeIngredientsMax-1)
	ingredients := make([]recipedomain.RecipeIngredient, n)
	for i := range ingredients {
		name := g.faker.Noun()
		ingredients[i] = recipedomain.RecipeIngredient{
			Ingredient: recipedomain.Ingredient{ID: ingredientID(name), Name: name},
			Quantity:   g.quantity(),
		}
	}

	return recipedomain.Recipe{
		ID:          id,
		Name:        g.faker.Word(),
		PrepTime:    g.time(),
		CookTime:    g.time(),
		Ingredients: ingredients,
		Method:      g.method(),
	}
}

// ingredientID keeps one id per ingredient name across generated recipes.
func ingredientID(name string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int32(h.Sum32()%math.MaxInt16) + 1
}

func (g *Generator) time() recipedomain.Time {
	return recipedomain.Time{
		Hours:   int32(g.faker.IntRange(0, 3)),
		Minutes: int32(g.faker.IntRange(0, 59)),
	}
}

func (g *Generator) quantity() recipedomain.Quantity {
	switch g.faker.IntRange(0, 2) {
	case 0:
		return recipedomain.Weight(int32(g.faker.IntRange(1, 1000)))
	case 1:
		return recipedomain.Portion(math.Round(g.faker.Float64Range(0.25, 4)*4) / 4)
	default:
		return recipedomain.Amount(uint8(g.faker.IntRange(1, math.MaxUint8)))
	}
}

func (g *Generator) method() string {
	sentences := make([]string, g.faker.IntRange(1, 3))
	for i := range sentences {
		s := g.faker.Verb() + " the " + g.faker.Adjective() + " " + g.faker.Noun() + " until " + g.faker.Adjective() + "."
		sentences[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(sentences, " ")
}

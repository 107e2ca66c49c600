package fixtures

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type File struct {
	Users   []UserFixture   `yaml:"users" validate:"dive"`
	Recipes []RecipeFixture `yaml:"recipes" validate:"dive"`
}

type UserFixture struct {
	ID      string  `yaml:"id" validate:"required"`
	Name    string  `yaml:"name" validate:"required"`
	Recipes []int32 `yaml:"recipes" validate:"dive,gt=0"`
}

type TimeFixture struct {
	Hours   int32 `yaml:"hours" validate:"gte=0"`
	Minutes int32 `yaml:"minutes" validate:"gte=0,lt=60"`
}

type IngredientFixture struct {
	ID   int32  `yaml:"id" validate:"gt=0"`
	Name string `yaml:"name" validate:"required"`
}

// RecipeIngredientFixture carries exactly one of Weight, Portion or Amount.
type RecipeIngredientFixture struct {
	Ingredient IngredientFixture `yaml:"ingredient"`
	Weight     *int32            `yaml:"weight,omitempty"`
	Portion    *float64          `yaml:"portion,omitempty"`
	Amount     *uint8            `yaml:"amount,omitempty"`
}

type RecipeFixture struct {
	ID          int32                     `yaml:"id" validate:"gt=0"`
	Name        string                    `yaml:"name" validate:"required"`
	PrepTime    TimeFixture               `yaml:"prep_time"`
	CookTime    TimeFixture               `yaml:"cook_time"`
	Method      string                    `yaml:"method" validate:"required"`
	Ingredients []RecipeIngredientFixture `yaml:"ingredients" validate:"min=1,dive"`
}

// Snapshot is an immutable, indexed view of one fixture file.
type Snapshot struct {
	Users   map[userdomain.ID]userdomain.User
	Recipes map[recipedomain.ID]recipedomain.Recipe
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		ri := sl.Current().Interface().(RecipeIngredientFixture)
		set := 0
		if ri.Weight != nil {
			set++
		}
		if ri.Portion != nil {
			set++
		}
		if ri.Amount != nil {
			set++
		}
		if set != 1 {
			sl.ReportError(ri.Weight, "Quantity", "quantity", "one_quantity", "")
		}
	}, RecipeIngredientFixture{})
	return v
}

func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, commonerrors.ErrInvalidFixtures.WithCause(fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

func Parse(data []byte) (*Snapshot, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, commonerrors.ErrInvalidFixtures.WithCause(err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, commonerrors.ErrInvalidFixtures.WithCause(err)
	}
	return f.snapshot()
}

func (f File) snapshot() (*Snapshot, error) {
	s := &Snapshot{
		Users:   make(map[userdomain.ID]userdomain.User, len(f.Users)),
		Recipes: make(map[recipedomain.ID]recipedomain.Recipe, len(f.Recipes)),
	}

	for _, u := range f.Users {
		id := userdomain.ID(u.ID)
		if _, dup := s.Users[id]; dup {
			return nil, commonerrors.ErrInvalidFixtures.WithCause(fmt.Errorf("duplicate user id %q", u.ID))
		}
		s.Users[id] = userdomain.User{
			ID:      id,
			Name:    u.Name,
			Recipes: append([]int32(nil), u.Recipes...),
		}
	}

	for _, r := range f.Recipes {
		id := recipedomain.ID(r.ID)
		if _, dup := s.Recipes[id]; dup {
			return nil, commonerrors.ErrInvalidFixtures.WithCause(fmt.Errorf("duplicate recipe id %d", r.ID))
		}
		s.Recipes[id] = r.toDomain()
	}

	return s, nil
}

func (r RecipeFixture) toDomain() recipedomain.Recipe {
	ingredients := make([]recipedomain.RecipeIngredient, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		ingredients[i] = recipedomain.RecipeIngredient{
			Ingredient: recipedomain.Ingredient{ID: ri.Ingredient.ID, Name: ri.Ingredient.Name},
			Quantity:   ri.quantity(),
		}
	}
	return recipedomain.Recipe{
		ID:          recipedomain.ID(r.ID),
		Name:        r.Name,
		PrepTime:    recipedomain.Time{Hours: r.PrepTime.Hours, Minutes: r.PrepTime.Minutes},
		CookTime:    recipedomain.Time{Hours: r.CookTime.Hours, Minutes: r.CookTime.Minutes},
		Ingredients: ingredients,
		Method:      r.Method,
	}
}

func (ri RecipeIngredientFixture) quantity() recipedomain.Quantity {
	switch {
	case ri.Weight != nil:
		return recipedomain.Weight(*ri.Weight)
	case ri.Portion != nil:
		return recipedomain.Portion(*ri.Portion)
	default:
		return recipedomain.Amount(*ri.Amount)
	}
}

package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pancakes() Recipe {
	return Recipe{
		ID:       1,
		Name:     "pancakes",
		PrepTime: Time{Hours: 0, Minutes: 10},
		CookTime: Time{Hours: 1, Minutes: 5},
		Ingredients: []RecipeIngredient{
			{Ingredient: Ingredient{ID: 1, Name: "flour"}, Quantity: Weight(200)},
			{Ingredient: Ingredient{ID: 2, Name: "egg"}, Quantity: Amount(2)},
			{Ingredient: Ingredient{ID: 3, Name: "milk"}, Quantity: Portion(1.5)},
		},
		Method: "Mix and fry.",
	}
}

func TestTime_String(t *testing.T) {
	tests := map[Time]string{
		{Hours: 0, Minutes: 0}:  "0:0",
		{Hours: 1, Minutes: 5}:  "1:5",
		{Hours: 3, Minutes: 59}: "3:59",
	}
	for in, want := range tests {
		if got := in.String(); got != want {
			t.Errorf("Time%+v.String() = %q, want %q", in, got, want)
		}
	}
}

func TestQuantity_String(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		want string
	}{
		{"weight", Weight(250), "250g"},
		{"negative weight", Weight(-3), "-3g"},
		{"fractional portion", Portion(1.5), "1.5"},
		{"whole portion", Portion(2), "2"},
		{"tiny portion", Portion(0.1), "0.1"},
		{"infinite portion", Portion(math.Inf(1)), "inf"},
		{"amount", Amount(255), "255"},
		{"zero value", Quantity{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuantity_Accessors(t *testing.T) {
	q := Portion(0.5)
	if q.Kind() != KindPortion {
		t.Fatalf("expected portion kind, got %q", q.Kind())
	}
	if v, ok := q.Portion(); !ok || v != 0.5 {
		t.Errorf("Portion() = (%v, %v)", v, ok)
	}
	if _, ok := q.Grams(); ok {
		t.Error("portion must not report grams")
	}
	if _, ok := q.Amount(); ok {
		t.Error("portion must not report an amount")
	}
}

func TestRecipe_String(t *testing.T) {
	want := "Recipe: pancakes\n\n" +
		"    prep time - 0:10\n" +
		"    cook time - 1:5\n\n" +
		"ingredients:\n" +
		"- 200g x flour\n" +
		"- 2 x egg\n" +
		"- 1.5 x milk\n" +
		"\n\n" +
		"method:\n" +
		"    Mix and fry."

	if diff := cmp.Diff(want, pancakes().String()); diff != "" {
		t.Errorf("rendering mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipe_StringWithoutIngredients(t *testing.T) {
	r := pancakes()
	r.Ingredients = nil

	got := r.String()
	if !strings.Contains(got, "ingredients:\n\n\nmethod:") {
		t.Errorf("expected empty ingredients block, got %q", got)
	}
}

func TestRecipe_StringZeroValue(t *testing.T) {
	want := "Recipe: \n\n    prep time - 0:0\n    cook time - 0:0\n\ningredients:\n\n\nmethod:\n    "
	if got := (Recipe{}).String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecipes_String(t *testing.T) {
	one := pancakes()
	rs := NewRecipes([]Recipe{one, one})

	want := one.String() + "\n\n" + one.String() + "\n\n"
	if got := rs.String(); got != want {
		t.Errorf("unexpected rendering:\n%s", got)
	}
	if rs.Len() != 2 {
		t.Errorf("expected 2 recipes, got %d", rs.Len())
	}
}

func TestNewRecipes_Nil(t *testing.T) {
	rs := NewRecipes(nil)
	if rs == nil || rs.Len() != 0 || rs.String() != "" {
		t.Errorf("expected empty non-nil aggregate, got %#v", rs)
	}
}

func TestParseQuantityKind(t *testing.T) {
	if k, ok := ParseQuantityKind("amount"); !ok || k != KindAmount {
		t.Errorf("expected amount kind, got (%q, %v)", k, ok)
	}
	if _, ok := ParseQuantityKind("litre"); ok {
		t.Error("unknown kind must not parse")
	}
}

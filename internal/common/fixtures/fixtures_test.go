package fixtures

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

func TestLoad_Testdata(t *testing.T) {
	snap, err := Load(filepath.Join("testdata", "recipes.yaml"))
	require.NoError(t, err)

	require.Len(t, snap.Users, 2)
	require.Len(t, snap.Recipes, 2)

	alice := snap.Users["alice"]
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, []int32{2, 1, 99}, alice.Recipes)

	pancakes := snap.Recipes[1]
	require.Len(t, pancakes.Ingredients, 3)
	assert.Equal(t, recipedomain.Weight(200), pancakes.Ingredients[0].Quantity)
	assert.Equal(t, recipedomain.Amount(2), pancakes.Ingredients[1].Quantity)
	assert.Equal(t, recipedomain.Portion(1.5), pancakes.Ingredients[2].Quantity)
	assert.Equal(t, recipedomain.Time{Hours: 0, Minutes: 20}, pancakes.CookTime)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "empty ingredients",
			yaml: `
recipes:
  - {id: 1, name: air, method: Breathe., ingredients: []}
`,
		},
		{
			name: "two quantities",
			yaml: `
recipes:
  - id: 1
    name: soup
    method: Boil.
    ingredients:
      - {ingredient: {id: 1, name: water}, weight: 10, amount: 1}
`,
		},
		{
			name: "no quantity",
			yaml: `
recipes:
  - id: 1
    name: soup
    method: Boil.
    ingredients:
      - {ingredient: {id: 1, name: water}}
`,
		},
		{
			name: "minutes out of range",
			yaml: `
recipes:
  - id: 1
    name: soup
    method: Boil.
    prep_time: {hours: 0, minutes: 75}
    ingredients:
      - {ingredient: {id: 1, name: water}, weight: 10}
`,
		},
		{
			name: "amount overflow",
			yaml: `
recipes:
  - id: 1
    name: soup
    method: Boil.
    ingredients:
      - {ingredient: {id: 1, name: water}, amount: 300}
`,
		},
		{
			name: "duplicate user",
			yaml: `
users:
  - {id: a, name: A}
  - {id: a, name: B}
`,
		},
		{
			name: "user without name",
			yaml: `
users:
  - {id: a}
`,
		},
		{
			name: "not yaml",
			yaml: "users: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, commonerrors.ErrInvalidFixtures), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, commonerrors.ErrInvalidFixtures)
}

func writeFixture(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const oneUser = `
users:
  - {id: a, name: A, recipes: [1]}
`

const twoUsers = `
users:
  - {id: a, name: A, recipes: [1]}
  - {id: b, name: B}
`

func TestStore_ReloadKeepsPreviousOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	writeFixture(t, path, oneUser)

	store, err := NewStore(path, logger.Discard())
	require.NoError(t, err)
	require.Len(t, store.Snapshot().Users, 1)

	writeFixture(t, path, "users: [")
	assert.Error(t, store.Reload())
	assert.Len(t, store.Snapshot().Users, 1)

	writeFixture(t, path, twoUsers)
	require.NoError(t, store.Reload())
	assert.Len(t, store.Snapshot().Users, 2)
}

func TestStore_WatchPicksUpChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	writeFixture(t, path, oneUser)

	store, err := NewStore(path, logger.Discard())
	require.NoError(t, err)
	store.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	reloaded := false
	for !reloaded {
		select {
		case <-store.Reloaded():
			reloaded = true
		case <-ticker.C:
			writeFixture(t, path, twoUsers)
		case <-deadline:
			t.Fatal("fixture change was not picked up")
		}
	}

	assert.Len(t, store.Snapshot().Users, 2)

	cancel()
	require.NoError(t, <-done)
}

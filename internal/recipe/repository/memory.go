package repository

import (
	"context"

	"github.com/AlibekovAA/onion-recipes/internal/common/fixtures"
	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

type MemoryRepository struct {
	store *fixtures.Store
}

func NewMemoryRepository(store *fixtures.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) List(ctx context.Context, ids []int32) ([]domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recipes := r.store.Snapshot().Recipes
	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, ok := recipes[domain.ID(id)]; ok {
			out = append(out, cloneRecipe(rec))
		}
	}
	return out, nil
}

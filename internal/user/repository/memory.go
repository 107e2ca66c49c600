package repository

import (
	"context"

	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/fixtures"
	"github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type MemoryRepository struct {
	store *fixtures.Store
}

func NewMemoryRepository(store *fixtures.Store) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	user, ok := r.store.Snapshot().Users[id]
	if !ok {
		return domain.User{}, commonerrors.ErrUserNotFound
	}
	user.Recipes = append([]int32{}, user.Recipes...)
	return user, nil
}

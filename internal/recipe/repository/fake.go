package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

var errFakeRecipe = errors.New("oh recipe")

// FakeRepository fabricates a short recipe list regardless of the ids
// asked for, failing with an opaque error at the configured rate.
type FakeRepository struct {
	gen         *fakedata.Generator
	failureRate float64
}

func NewFakeRepository(gen *fakedata.Generator, failureRate float64) *FakeRepository {
	return &FakeRepository{gen: gen, failureRate: failureRate}
}

func (r *FakeRepository) List(ctx context.Context, ids []int32) ([]domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.gen.Chance(r.failureRate) {
		metrics.FakeFailuresTotal.WithLabelValues("recipe").Inc()
		return nil, errFakeRecipe
	}
	return r.gen.Recipes(), nil
}

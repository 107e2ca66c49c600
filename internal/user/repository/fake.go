package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
	"github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

var errFakeUser = errors.New("oh user")

// FakeRepository fabricates a user for any id and fails with an opaque
// error at the configured rate.
type FakeRepository struct {
	gen         *fakedata.Generator
	failureRate float64
}

func NewFakeRepository(gen *fakedata.Generator, failureRate float64) *FakeRepository {
	return &FakeRepository{gen: gen, failureRate: failureRate}
}

func (r *FakeRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	if r.gen.Chance(r.failureRate) {
		metrics.FakeFailuresTotal.WithLabelValues("user").Inc()
		return domain.User{}, errFakeUser
	}
	return r.gen.User(id), nil
}

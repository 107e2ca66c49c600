package service

import (
	"context"

	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	calls        int
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	m.calls++
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{ID: id}, nil
}

type mockRecipeRepo struct {
	listFunc func(ctx context.Context, ids []int32) ([]recipedomain.Recipe, error)
	calls    int
}

func (m *mockRecipeRepo) List(ctx context.Context, ids []int32) ([]recipedomain.Recipe, error) {
	m.calls++
	if m.listFunc != nil {
		return m.listFunc(ctx, ids)
	}
	return []recipedomain.Recipe{}, nil
}

type mockAuth struct {
	valid bool
	id    string
}

func (a mockAuth) IsValid() bool { return a.valid }
func (a mockAuth) ID() string    { return a.id }

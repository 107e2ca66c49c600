package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	authdomain "github.com/AlibekovAA/onion-recipes/internal/auth/domain"
	"github.com/AlibekovAA/onion-recipes/internal/common/config"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

func setupFoodService(t *testing.T, threshold int32) (*FoodService, *mockUserRepo, *mockRecipeRepo) {
	t.Helper()
	users := &mockUserRepo{}
	recipes := &mockRecipeRepo{}
	services := NewServices(users, recipes, Options{
		CircuitBreaker: config.CircuitBreakerConfig{
			Threshold:  threshold,
			Timeout:    time.Second,
			ResetAfter: time.Minute,
		},
		Log: logger.Discard(),
	})
	return services.Food, users, recipes
}

func recipesWithIDs(ids ...int32) []recipedomain.Recipe {
	out := make([]recipedomain.Recipe, len(ids))
	for i, id := range ids {
		out[i] = recipedomain.Recipe{ID: recipedomain.ID(id), Name: "recipe"}
	}
	return out
}

func TestFoodService_GetRecipes_InvalidSession(t *testing.T) {
	svc, users, recipes := setupFoodService(t, 0)

	_, err := svc.GetRecipes(context.Background(), mockAuth{valid: false, id: "123"})
	if !errors.Is(err, commonerrors.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
	if err.Error() != "session is not valid" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if users.calls != 0 || recipes.calls != 0 {
		t.Errorf("repositories must not be called for an invalid session, got %d/%d", users.calls, recipes.calls)
	}
}

func TestFoodService_GetRecipes_NilAuth(t *testing.T) {
	svc, _, _ := setupFoodService(t, 0)

	_, err := svc.GetRecipes(context.Background(), nil)
	if !errors.Is(err, commonerrors.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestFoodService_GetRecipes_PassesUserRecipeIDs(t *testing.T) {
	svc, users, recipes := setupFoodService(t, 0)

	users.findByIDFunc = func(_ context.Context, id userdomain.ID) (userdomain.User, error) {
		if id != "123" {
			t.Errorf("expected id 123, got %s", id)
		}
		return userdomain.User{ID: id, Name: "tester", Recipes: []int32{1, 2, 3}}, nil
	}
	recipes.listFunc = func(_ context.Context, ids []int32) ([]recipedomain.Recipe, error) {
		if !slices.Equal(ids, []int32{1, 2, 3}) {
			t.Errorf("expected ids [1 2 3], got %v", ids)
		}
		return recipesWithIDs(1, 2, 3), nil
	}

	got, err := svc.GetRecipes(context.Background(), authdomain.Session{UserID: "123", Valid: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Len() != 3 {
		t.Errorf("expected 3 recipes, got %d", got.Len())
	}
	if users.calls != 1 || recipes.calls != 1 {
		t.Errorf("expected one call per repository, got %d/%d", users.calls, recipes.calls)
	}
}

func TestFoodService_GetRecipes_LengthMatchesRepository(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		svc, users, recipes := setupFoodService(t, 0)
		users.findByIDFunc = func(_ context.Context, id userdomain.ID) (userdomain.User, error) {
			return userdomain.User{ID: id, Recipes: []int32{9}}, nil
		}
		ids := make([]int32, n)
		for i := range ids {
			ids[i] = int32(i + 1)
		}
		recipes.listFunc = func(context.Context, []int32) ([]recipedomain.Recipe, error) {
			return recipesWithIDs(ids...), nil
		}

		got, err := svc.GetRecipes(context.Background(), mockAuth{valid: true, id: "u"})
		if err != nil {
			t.Fatalf("n=%d: expected no error, got %v", n, err)
		}
		if got.Len() != n {
			t.Errorf("n=%d: expected %d recipes, got %d", n, n, got.Len())
		}
		if got == nil {
			t.Errorf("n=%d: recipes must not be nil", n)
		}
	}
}

func TestFoodService_GetRecipes_UserNotFound(t *testing.T) {
	svc, users, recipes := setupFoodService(t, 0)
	users.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrUserNotFound
	}

	_, err := svc.GetRecipes(context.Background(), mockAuth{valid: true, id: "ghost"})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "USER_NOT_FOUND" {
		t.Errorf("expected USER_NOT_FOUND, got %v", err)
	}
	if recipes.calls != 0 {
		t.Error("recipes must not be listed when the user is missing")
	}
}

func TestFoodService_GetRecipes_UserRepoError(t *testing.T) {
	svc, users, recipes := setupFoodService(t, 0)
	repoErr := errors.New("oh user")
	users.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, repoErr
	}

	_, err := svc.GetRecipes(context.Background(), mockAuth{valid: true, id: "u"})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "USER_GET_FAILED" {
		t.Fatalf("expected USER_GET_FAILED, got %v", err)
	}
	if !errors.Is(err, repoErr) {
		t.Error("expected the repository error to be kept as cause")
	}
	if recipes.calls != 0 {
		t.Error("recipes must not be listed after a user failure")
	}
}

func TestFoodService_GetRecipes_RecipeRepoError(t *testing.T) {
	svc, _, recipes := setupFoodService(t, 0)
	repoErr := errors.New("oh recipe")
	recipes.listFunc = func(context.Context, []int32) ([]recipedomain.Recipe, error) {
		return nil, repoErr
	}

	_, err := svc.GetRecipes(context.Background(), mockAuth{valid: true, id: "u"})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "RECIPE_LIST_FAILED" {
		t.Fatalf("expected RECIPE_LIST_FAILED, got %v", err)
	}
	if !errors.Is(err, repoErr) {
		t.Error("expected the repository error to be kept as cause")
	}
}

func TestFoodService_GetRecipes_OpenCircuitIsUnavailable(t *testing.T) {
	svc, users, _ := setupFoodService(t, 2)
	users.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, errors.New("oh user")
	}
	auth := mockAuth{valid: true, id: "u"}

	for i := 0; i < 2; i++ {
		if _, err := svc.GetRecipes(context.Background(), auth); !errors.Is(err, commonerrors.ErrUserGetFailed) {
			t.Fatalf("call %d: expected ErrUserGetFailed, got %v", i, err)
		}
	}

	_, err := svc.GetRecipes(context.Background(), auth)
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.HTTPStatus() != 503 {
		t.Fatalf("expected 503 domain error, got %v", err)
	}
	if users.calls != 2 {
		t.Errorf("open circuit must short-circuit the repository, got %d calls", users.calls)
	}
}

func TestFoodService_GetRecipes_NotFoundDoesNotOpenCircuit(t *testing.T) {
	svc, users, _ := setupFoodService(t, 1)
	users.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, commonerrors.ErrUserNotFound
	}

	for i := 0; i < 3; i++ {
		_, err := svc.GetRecipes(context.Background(), mockAuth{valid: true, id: "ghost"})
		if !errors.Is(err, commonerrors.ErrUserNotFound) {
			t.Fatalf("call %d: expected ErrUserNotFound, got %v", i, err)
		}
	}
}

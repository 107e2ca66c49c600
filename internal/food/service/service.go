package service

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/AlibekovAA/onion-recipes/internal/auth/domain"
	"github.com/AlibekovAA/onion-recipes/internal/common/config"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/common/resilience"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	reciperepo "github.com/AlibekovAA/onion-recipes/internal/recipe/repository"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
	userrepo "github.com/AlibekovAA/onion-recipes/internal/user/repository"
)

const (
	outcomeOK             = "ok"
	outcomeInvalidSession = "invalid_session"
	outcomeUserNotFound   = "user_not_found"
	outcomeUserError      = "user_error"
	outcomeRecipeError    = "recipe_error"
	outcomeUnavailable    = "unavailable"
)

type Options struct {
	CircuitBreaker config.CircuitBreakerConfig
	Log            *logger.Logger
}

// Services groups the use cases exposed to the outer layers.
type Services struct {
	Food *FoodService
}

func NewServices(users userrepo.Repository, recipes reciperepo.Repository, opts Options) Services {
	return Services{
		Food: NewFoodService(users, recipes, opts),
	}
}

type FoodService struct {
	users     userrepo.Repository
	recipes   reciperepo.Repository
	usersCB   *resilience.CircuitBreaker
	recipesCB *resilience.CircuitBreaker
	log       *logger.Logger
}

func NewFoodService(users userrepo.Repository, recipes reciperepo.Repository, opts Options) *FoodService {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	breaker := func(name string) *resilience.CircuitBreaker {
		return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  opts.CircuitBreaker.Threshold,
			Timeout:    opts.CircuitBreaker.Timeout,
			ResetAfter: opts.CircuitBreaker.ResetAfter,
			Name:       name,
			Logger:     log,
		})
	}
	return &FoodService{
		users:     users,
		recipes:   recipes,
		usersCB:   breaker("user_repository"),
		recipesCB: breaker("recipe_repository"),
		log:       log,
	}
}

// GetRecipes returns the recipes saved by the caller, in the order the
// user lists them.
func (s *FoodService) GetRecipes(ctx context.Context, auth authdomain.Authed) (recipedomain.Recipes, error) {
	start := time.Now()
	defer func() {
		metrics.GetRecipesDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	if auth == nil || !auth.IsValid() {
		metrics.GetRecipesTotal.WithLabelValues(outcomeInvalidSession).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"action": "get_recipes_invalid_session",
		}).Warn("rejected invalid session")
		return nil, commonerrors.ErrSessionInvalid
	}

	userID := userdomain.ID(auth.ID())

	var user userdomain.User
	err := s.usersCB.Call(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.FindByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, s.userError(ctx, userID, err)
	}

	var list []recipedomain.Recipe
	err = s.recipesCB.Call(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.recipes.List(ctx, user.Recipes)
		return err
	})
	if err != nil {
		return nil, s.recipeError(ctx, userID, err)
	}

	recipes := recipedomain.NewRecipes(list)
	metrics.GetRecipesTotal.WithLabelValues(outcomeOK).Inc()
	metrics.RecipesReturned.Observe(float64(recipes.Len()))
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"count":   recipes.Len(),
		"action":  "get_recipes_success",
	}).Debug("recipes listed")
	return recipes, nil
}

func (s *FoodService) userError(ctx context.Context, userID userdomain.ID, err error) error {
	fields := logger.Fields{
		"user_id": string(userID),
		"action":  "get_recipes_user_failed",
	}
	switch {
	case errors.Is(err, commonerrors.ErrCircuitOpen):
		metrics.GetRecipesTotal.WithLabelValues(outcomeUnavailable).Inc()
		s.log.WithFields(ctx, fields).Warn("user repository unavailable")
		return commonerrors.ErrServiceUnavailable.WithCause(err)
	case errors.Is(err, commonerrors.ErrUserNotFound):
		metrics.GetRecipesTotal.WithLabelValues(outcomeUserNotFound).Inc()
		s.log.WithFields(ctx, fields).Info("user not found")
		return err
	default:
		metrics.GetRecipesTotal.WithLabelValues(outcomeUserError).Inc()
		s.log.WithFields(ctx, fields).Errorf("failed to get user: %v", err)
		return commonerrors.ErrUserGetFailed.WithCause(err)
	}
}

func (s *FoodService) recipeError(ctx context.Context, userID userdomain.ID, err error) error {
	fields := logger.Fields{
		"user_id": string(userID),
		"action":  "get_recipes_list_failed",
	}
	if errors.Is(err, commonerrors.ErrCircuitOpen) {
		metrics.GetRecipesTotal.WithLabelValues(outcomeUnavailable).Inc()
		s.log.WithFields(ctx, fields).Warn("recipe repository unavailable")
		return commonerrors.ErrServiceUnavailable.WithCause(err)
	}
	metrics.GetRecipesTotal.WithLabelValues(outcomeRecipeError).Inc()
	s.log.WithFields(ctx, fields).Errorf("failed to list recipes: %v", err)
	return commonerrors.ErrRecipeListFailed.WithCause(err)
}

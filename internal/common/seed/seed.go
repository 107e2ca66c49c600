package seed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
	"github.com/AlibekovAA/onion-recipes/internal/common/crypto"
	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/observability/metrics"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	reciperepo "github.com/AlibekovAA/onion-recipes/internal/recipe/repository"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
	userrepo "github.com/AlibekovAA/onion-recipes/internal/user/repository"
)

type Result struct {
	Users   int
	Recipes int
}

// Seeder fabricates users together with the recipes they reference and
// writes them through the repository writers.
type Seeder struct {
	users       userrepo.Writer
	recipes     reciperepo.Writer
	gen         *fakedata.Generator
	ids         crypto.IDGenerator
	log         *logger.Logger
	concurrency int

	mu      sync.Mutex
	claimed map[int32]struct{}
}

func NewSeeder(
	users userrepo.Writer,
	recipes reciperepo.Writer,
	gen *fakedata.Generator,
	ids crypto.IDGenerator,
	concurrency int,
	log *logger.Logger,
) *Seeder {
	if concurrency <= 0 {
		concurrency = constants.DefaultSeedConcurrency
	}
	return &Seeder{
		users:       users,
		recipes:     recipes,
		gen:         gen,
		ids:         ids,
		log:         log,
		concurrency: concurrency,
		claimed:     make(map[int32]struct{}),
	}
}

// Seed inserts n users. Each recipe id is written once per run even when
// several users reference it. The first failure cancels the remaining work.
func (s *Seeder) Seed(ctx context.Context, n int) (Result, error) {
	start := time.Now()
	var users, recipes atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			saved, err := s.seedUser(ctx)
			if err != nil {
				return err
			}
			users.Add(1)
			recipes.Add(int64(saved))
			return nil
		})
	}

	err := g.Wait()
	result := Result{Users: int(users.Load()), Recipes: int(recipes.Load())}
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"users":   result.Users,
			"recipes": result.Recipes,
			"action":  "seed_failed",
		}).Errorf("seeding failed: %v", err)
		return result, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"users":    result.Users,
		"recipes":  result.Recipes,
		"duration": time.Since(start).String(),
		"action":   "seed_done",
	}).Info("seeding complete")
	return result, nil
}

func (s *Seeder) seedUser(ctx context.Context) (int, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return 0, fmt.Errorf("failed to generate user id: %w", err)
	}
	user := s.gen.User(userdomain.ID(id))

	saved := 0
	for _, recipeID := range user.Recipes {
		if !s.claim(recipeID) {
			continue
		}
		recipe := s.gen.Recipe(recipedomain.ID(recipeID))
		if err := s.recipes.Save(ctx, recipe); err != nil {
			return saved, fmt.Errorf("failed to save recipe %d: %w", recipeID, err)
		}
		metrics.SeededRowsTotal.WithLabelValues("recipes").Inc()
		saved++
	}

	if err := s.users.Save(ctx, user); err != nil {
		return saved, fmt.Errorf("failed to save user %s: %w", user.ID, err)
	}
	metrics.SeededRowsTotal.WithLabelValues("users").Inc()
	return saved, nil
}

func (s *Seeder) claim(id int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claimed[id]; ok {
		return false
	}
	s.claimed[id] = struct{}{}
	return true
}

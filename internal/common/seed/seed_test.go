package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AlibekovAA/onion-recipes/internal/common/fakedata"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	recipedomain "github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
	userdomain "github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type recordingUsers struct {
	mu    sync.Mutex
	saved map[userdomain.ID]userdomain.User
	err   error
}

func (r *recordingUsers) Save(_ context.Context, u userdomain.User) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved[u.ID] = u
	return nil
}

type recordingRecipes struct {
	mu    sync.Mutex
	saved map[recipedomain.ID]int
}

func (r *recordingRecipes) Save(_ context.Context, rec recipedomain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved[rec.ID]++
	return nil
}

type sequenceIDs struct {
	n atomic.Int64
}

func (s *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("user-%d", s.n.Add(1)), nil
}

func TestSeeder_Seed(t *testing.T) {
	defer goleak.VerifyNone(t)

	users := &recordingUsers{saved: map[userdomain.ID]userdomain.User{}}
	recipes := &recordingRecipes{saved: map[recipedomain.ID]int{}}
	s := NewSeeder(users, recipes, fakedata.NewGenerator(7), &sequenceIDs{}, 3, logger.Discard())

	res, err := s.Seed(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Users)
	assert.Len(t, users.saved, 25)
	assert.Equal(t, len(recipes.saved), res.Recipes)

	for id, count := range recipes.saved {
		assert.Equalf(t, 1, count, "recipe %d saved more than once", id)
	}
	for _, u := range users.saved {
		for _, rid := range u.Recipes {
			assert.Containsf(t, recipes.saved, recipedomain.ID(rid), "user %s references unsaved recipe %d", u.ID, rid)
		}
	}
}

func TestSeeder_StopsOnError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("insert failed")
	users := &recordingUsers{saved: map[userdomain.ID]userdomain.User{}, err: boom}
	recipes := &recordingRecipes{saved: map[recipedomain.ID]int{}}
	s := NewSeeder(users, recipes, fakedata.NewGenerator(7), &sequenceIDs{}, 2, logger.Discard())

	res, err := s.Seed(context.Background(), 10)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, res.Users)
}

func TestSeeder_ZeroUsers(t *testing.T) {
	users := &recordingUsers{saved: map[userdomain.ID]userdomain.User{}}
	recipes := &recordingRecipes{saved: map[recipedomain.ID]int{}}
	s := NewSeeder(users, recipes, fakedata.NewGenerator(1), &sequenceIDs{}, 0, logger.Discard())

	res, err := s.Seed(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

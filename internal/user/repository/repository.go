package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type Repository interface {
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type Writer interface {
	Save(ctx context.Context, user domain.User) error
}

type PgRepository struct {
	pool *pgxpool.Pool
	tx   *db.PgTxManager
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, tx: db.NewPgTxManager(pool), log: log}
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		start := time.Now()
		row := r.pool.QueryRow(
			ctx,
			`SELECT u.id, u.name,
			        COALESCE(array_agg(ur.recipe_id ORDER BY ur.position) FILTER (WHERE ur.recipe_id IS NOT NULL), '{}')
			 FROM users u
			 LEFT JOIN user_recipes ur ON ur.user_id = u.id
			 WHERE u.id = $1
			 GROUP BY u.id, u.name`,
			string(id),
		)
		var userID string
		var recipes []int32
		err := row.Scan(&userID, &user.Name, &recipes)
		user.ID = domain.ID(userID)
		user.Recipes = recipes
		return db.HandleQueryError(db.DriverPostgres, err, commonerrors.ErrUserNotFound, "find user by id", start)
	})
	if err != nil {
		return domain.User{}, err
	}
	if user.Recipes == nil {
		user.Recipes = []int32{}
	}
	return user, nil
}

func (r *PgRepository) Save(ctx context.Context, user domain.User) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		start := time.Now()
		_, err := tx.Exec(
			ctx,
			`INSERT INTO users (id, name) VALUES ($1, $2)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
			string(user.ID),
			user.Name,
		)
		if err := db.HandleExecError(db.DriverPostgres, err, "save user", start); err != nil {
			return err
		}

		start = time.Now()
		_, err = tx.Exec(ctx, `DELETE FROM user_recipes WHERE user_id = $1`, string(user.ID))
		if err := db.HandleExecError(db.DriverPostgres, err, "clear user recipes", start); err != nil {
			return err
		}

		for pos, recipeID := range user.Recipes {
			start = time.Now()
			_, err = tx.Exec(
				ctx,
				`INSERT INTO user_recipes (user_id, recipe_id, position) VALUES ($1, $2, $3)`,
				string(user.ID),
				recipeID,
				pos,
			)
			if err := db.HandleExecError(db.DriverPostgres, err, "save user recipes", start); err != nil {
				return err
			}
		}
		return nil
	})
}

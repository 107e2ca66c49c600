package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	commonerrors "github.com/AlibekovAA/onion-recipes/internal/common/errors"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/user/domain"
)

type SQLiteRepository struct {
	db  *sql.DB
	tx  *db.SQLTxManager
	log *logger.Logger
}

func NewSQLiteRepository(conn *sql.DB, log *logger.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: conn, tx: db.NewSQLTxManager(conn), log: log}
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	var user domain.User
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		start := time.Now()
		row := r.db.QueryRowContext(ctx, `SELECT id, name FROM users WHERE id = ?`, string(id))
		var userID string
		err := row.Scan(&userID, &user.Name)
		user.ID = domain.ID(userID)
		return db.HandleQueryError(db.DriverSQLite, err, commonerrors.ErrUserNotFound, "find user by id", start)
	})
	if err != nil {
		return domain.User{}, err
	}

	recipes, err := r.recipeIDs(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Recipes = recipes
	return user, nil
}

func (r *SQLiteRepository) recipeIDs(ctx context.Context, id domain.ID) ([]int32, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT recipe_id FROM user_recipes WHERE user_id = ? ORDER BY position`,
		string(id),
	)
	if err := db.HandleQueryError(db.DriverSQLite, err, nil, "list user recipes", start); err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int32{}
	for rows.Next() {
		var recipeID int32
		if err := rows.Scan(&recipeID); err != nil {
			return nil, db.HandleQueryError(db.DriverSQLite, err, nil, "scan user recipes", start)
		}
		ids = append(ids, recipeID)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(db.DriverSQLite, err, nil, "iterate user recipes", start)
	}
	return ids, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, user domain.User) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		start := time.Now()
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO users (id, name) VALUES (?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
			string(user.ID),
			user.Name,
		)
		if err := db.HandleExecError(db.DriverSQLite, err, "save user", start); err != nil {
			return err
		}

		start = time.Now()
		_, err = tx.ExecContext(ctx, `DELETE FROM user_recipes WHERE user_id = ?`, string(user.ID))
		if err := db.HandleExecError(db.DriverSQLite, err, "clear user recipes", start); err != nil {
			return err
		}

		for pos, recipeID := range user.Recipes {
			start = time.Now()
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO user_recipes (user_id, recipe_id, position) VALUES (?, ?, ?)`,
				string(user.ID),
				recipeID,
				pos,
			)
			if err := db.HandleExecError(db.DriverSQLite, err, "save user recipes", start); err != nil {
				return err
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

type SQLiteRepository struct {
	db  *sql.DB
	tx  *db.SQLTxManager
	log *logger.Logger
}

func NewSQLiteRepository(conn *sql.DB, log *logger.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: conn, tx: db.NewSQLTxManager(conn), log: log}
}

func inClause(ids []int32) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return placeholders, args
}

func (r *SQLiteRepository) List(ctx context.Context, ids []int32) ([]domain.Recipe, error) {
	if len(ids) == 0 {
		return []domain.Recipe{}, nil
	}

	var byID map[domain.ID]*domain.Recipe
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		var err error
		byID, err = r.loadRecipes(ctx, ids)
		if err != nil {
			return err
		}
		return r.loadIngredients(ctx, ids, byID)
	})
	if err != nil {
		return nil, err
	}

	return orderByIDs(ids, byID), nil
}

func (r *SQLiteRepository) loadRecipes(ctx context.Context, ids []int32) (map[domain.ID]*domain.Recipe, error) {
	placeholders, args := inClause(ids)
	start := time.Now()
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, prep_hours, prep_minutes, cook_hours, cook_minutes, method
		 FROM recipes
		 WHERE id IN (`+placeholders+`)`,
		args...,
	)
	if err := db.HandleQueryError(db.DriverSQLite, err, nil, "list recipes", start); err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[domain.ID]*domain.Recipe, len(ids))
	for rows.Next() {
		var rec domain.Recipe
		var id int32
		if err := rows.Scan(
			&id,
			&rec.Name,
			&rec.PrepTime.Hours,
			&rec.PrepTime.Minutes,
			&rec.CookTime.Hours,
			&rec.CookTime.Minutes,
			&rec.Method,
		); err != nil {
			return nil, db.HandleQueryError(db.DriverSQLite, err, nil, "scan recipes", start)
		}
		rec.ID = domain.ID(id)
		rec.Ingredients = []domain.RecipeIngredient{}
		byID[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(db.DriverSQLite, err, nil, "iterate recipes", start)
	}
	return byID, nil
}

func (r *SQLiteRepository) loadIngredients(ctx context.Context, ids []int32, byID map[domain.ID]*domain.Recipe) error {
	placeholders, args := inClause(ids)
	start := time.Now()
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT ri.recipe_id, i.id, i.name, ri.kind, ri.grams, ri.portion, ri.amount
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id IN (`+placeholders+`)
		 ORDER BY ri.recipe_id, ri.position`,
		args...,
	)
	if err := db.HandleQueryError(db.DriverSQLite, err, nil, "list recipe ingredients", start); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row ingredientRow
		if err := rows.Scan(&row.recipeID, &row.ingredientID, &row.name, &row.kind, &row.grams, &row.portion, &row.amount); err != nil {
			return db.HandleQueryError(db.DriverSQLite, err, nil, "scan recipe ingredients", start)
		}
		if err := row.appendTo(byID); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return db.HandleQueryError(db.DriverSQLite, err, nil, "iterate recipe ingredients", start)
	}
	return nil
}

func (r *SQLiteRepository) Save(ctx context.Context, recipe domain.Recipe) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		start := time.Now()
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO recipes (id, name, prep_hours, prep_minutes, cook_hours, cook_minutes, method)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET
			   name = excluded.name,
			   prep_hours = excluded.prep_hours,
			   prep_minutes = excluded.prep_minutes,
			   cook_hours = excluded.cook_hours,
			   cook_minutes = excluded.cook_minutes,
			   method = excluded.method`,
			int32(recipe.ID),
			recipe.Name,
			recipe.PrepTime.Hours,
			recipe.PrepTime.Minutes,
			recipe.CookTime.Hours,
			recipe.CookTime.Minutes,
			recipe.Method,
		)
		if err := db.HandleExecError(db.DriverSQLite, err, "save recipe", start); err != nil {
			return err
		}

		start = time.Now()
		_, err = tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, int32(recipe.ID))
		if err := db.HandleExecError(db.DriverSQLite, err, "clear recipe ingredients", start); err != nil {
			return err
		}

		for pos, ri := range recipe.Ingredients {
			start = time.Now()
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO ingredients (id, name) VALUES (?, ?)
				 ON CONFLICT (id) DO NOTHING`,
				ri.Ingredient.ID,
				ri.Ingredient.Name,
			)
			if err := db.HandleExecError(db.DriverSQLite, err, "save ingredient", start); err != nil {
				return err
			}

			row := newIngredientRow(recipe.ID, ri)
			start = time.Now()
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, kind, grams, portion, amount)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				row.recipeID,
				pos,
				row.ingredientID,
				row.kind,
				row.grams,
				row.portion,
				row.amount,
			)
			if err := db.HandleExecError(db.DriverSQLite, err, "save recipe ingredient", start); err != nil {
				return err
			}
		}
		return nil
	})
}

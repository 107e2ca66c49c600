package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/onion-recipes/internal/common/db"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/recipe/domain"
)

// Repository resolves recipe ids. Results follow the order of ids; ids
// with no stored recipe are skipped.
type Repository interface {
	List(ctx context.Context, ids []int32) ([]domain.Recipe, error)
}

type Writer interface {
	Save(ctx context.Context, recipe domain.Recipe) error
}

type PgRepository struct {
	pool *pgxpool.Pool
	tx   *db.PgTxManager
	log  *logger.Logger
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{pool: pool, tx: db.NewPgTxManager(pool), log: log}
}

func (r *PgRepository) List(ctx context.Context, ids []int32) ([]domain.Recipe, error) {
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

func (r *PgRepository) loadRecipes(ctx context.Context, ids []int32) (map[domain.ID]*domain.Recipe, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, name, prep_hours, prep_minutes, cook_hours, cook_minutes, method
		 FROM recipes
		 WHERE id = ANY($1)`,
		ids,
	)
	if err := db.HandleQueryError(db.DriverPostgres, err, nil, "list recipes", start); err != nil {
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
			return nil, db.HandleQueryError(db.DriverPostgres, err, nil, "scan recipes", start)
		}
		rec.ID = domain.ID(id)
		rec.Ingredients = []domain.RecipeIngredient{}
		byID[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(db.DriverPostgres, err, nil, "iterate recipes", start)
	}
	return byID, nil
}

func (r *PgRepository) loadIngredients(ctx context.Context, ids []int32, byID map[domain.ID]*domain.Recipe) error {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT ri.recipe_id, i.id, i.name, ri.kind, ri.grams, ri.portion, ri.amount
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ANY($1)
		 ORDER BY ri.recipe_id, ri.position`,
		ids,
	)
	if err := db.HandleQueryError(db.DriverPostgres, err, nil, "list recipe ingredients", start); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row ingredientRow
		if err := rows.Scan(&row.recipeID, &row.ingredientID, &row.name, &row.kind, &row.grams, &row.portion, &row.amount); err != nil {
			return db.HandleQueryError(db.DriverPostgres, err, nil, "scan recipe ingredients", start)
		}
		if err := row.appendTo(byID); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return db.HandleQueryError(db.DriverPostgres, err, nil, "iterate recipe ingredients", start)
	}
	return nil
}

func (r *PgRepository) Save(ctx context.Context, recipe domain.Recipe) error {
	return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		start := time.Now()
		_, err := tx.Exec(
			ctx,
			`INSERT INTO recipes (id, name, prep_hours, prep_minutes, cook_hours, cook_minutes, method)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   prep_hours = EXCLUDED.prep_hours,
			   prep_minutes = EXCLUDED.prep_minutes,
			   cook_hours = EXCLUDED.cook_hours,
			   cook_minutes = EXCLUDED.cook_minutes,
			   method = EXCLUDED.method`,
			int32(recipe.ID),
			recipe.Name,
			recipe.PrepTime.Hours,
			recipe.PrepTime.Minutes,
			recipe.CookTime.Hours,
			recipe.CookTime.Minutes,
			recipe.Method,
		)
		if err := db.HandleExecError(db.DriverPostgres, err, "save recipe", start); err != nil {
			return err
		}

		start = time.Now()
		_, err = tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, int32(recipe.ID))
		if err := db.HandleExecError(db.DriverPostgres, err, "clear recipe ingredients", start); err != nil {
			return err
		}

		for pos, ri := range recipe.Ingredients {
			start = time.Now()
			_, err = tx.Exec(
				ctx,
				`INSERT INTO ingredients (id, name) VALUES ($1, $2)
				 ON CONFLICT (id) DO NOTHING`,
				ri.Ingredient.ID,
				ri.Ingredient.Name,
			)
			if err := db.HandleExecError(db.DriverPostgres, err, "save ingredient", start); err != nil {
				return err
			}

			row := newIngredientRow(recipe.ID, ri)
			start = time.Now()
			_, err = tx.Exec(
				ctx,
				`INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, kind, grams, portion, amount)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				row.recipeID,
				pos,
				row.ingredientID,
				row.kind,
				row.grams,
				row.portion,
				row.amount,
			)
			if err := db.HandleExecError(db.DriverPostgres, err, "save recipe ingredient", start); err != nil {
				return err
			}
		}
		return nil
	})
}

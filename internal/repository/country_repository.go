package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// CountryRepository handles risk-listed country data access.
type CountryRepository struct {
	pool *pgxpool.Pool
}

// NewCountryRepository creates a new CountryRepository.
func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}

// List retrieves every listed country ordered by name.
func (r *CountryRepository) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, list_type, created_at, updated_at
		 FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.ListType, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	if countries == nil {
		countries = []model.Country{}
	}
	return countries, rows.Err()
}

// GetByID retrieves a single listed country.
func (r *CountryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Country, error) {
	var c model.Country
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, list_type, created_at, updated_at
		 FROM countries WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Code, &c.ListType, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create adds a country to one of the risk lists. The code is unique; a
// country can sit on a single list at a time.
func (r *CountryRepository) Create(ctx context.Context, c *model.Country) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO countries (name, code, list_type)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Code, c.ListType,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update moves a country between lists.
func (r *CountryRepository) Update(ctx context.Context, c *model.Country) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE countries SET list_type = $2, updated_at = NOW() WHERE id = $1`,
		c.ID, c.ListType)
	return err
}

// Delete removes a country from the risk lists.
func (r *CountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	return err
}

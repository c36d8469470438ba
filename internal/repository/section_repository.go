package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mioraralevason/suivi-backend/internal/model"
)

// SectionRepository handles section and sub-section data access.
type SectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

// ListWithSubSections retrieves all sections with their sub-sections nested,
// both ordered by position.
func (r *SectionRepository) ListWithSubSections(ctx context.Context) ([]model.SectionWithSubSections, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, label, coefficient, position, created_at, updated_at
		 FROM sections ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.SectionWithSubSections
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.Label, &s.Coefficient, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		index[s.ID] = len(sections)
		sections = append(sections, model.SectionWithSubSections{Section: s, SubSections: []model.SubSection{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.pool.Query(ctx,
		`SELECT id, section_id, label, position, created_at, updated_at
		 FROM sub_sections ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var ss model.SubSection
		if err := subRows.Scan(&ss.ID, &ss.SectionID, &ss.Label, &ss.Position, &ss.CreatedAt, &ss.UpdatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[ss.SectionID]; ok {
			sections[i].SubSections = append(sections[i].SubSections, ss)
		}
	}
	if sections == nil {
		sections = []model.SectionWithSubSections{}
	}
	return sections, subRows.Err()
}

// GetByID retrieves a section.
func (r *SectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	s := &model.Section{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, label, coefficient, position, created_at, updated_at
		 FROM sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.Label, &s.Coefficient, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new section.
func (r *SectionRepository) Create(ctx context.Context, s *model.Section) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sections (label, coefficient, position)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Label, s.Coefficient, s.Position,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies a section.
func (r *SectionRepository) Update(ctx context.Context, s *model.Section) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sections SET label = $1, coefficient = $2, position = $3, updated_at = NOW()
		 WHERE id = $4`,
		s.Label, s.Coefficient, s.Position, s.ID)
	return err
}

// Delete removes a section. Fails while sub-sections still reference it.
func (r *SectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sections WHERE id = $1`, id)
	return err
}

// GetSubSection retrieves a sub-section.
func (r *SectionRepository) GetSubSection(ctx context.Context, id uuid.UUID) (*model.SubSection, error) {
	ss := &model.SubSection{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, section_id, label, position, created_at, updated_at
		 FROM sub_sections WHERE id = $1`, id,
	).Scan(&ss.ID, &ss.SectionID, &ss.Label, &ss.Position, &ss.CreatedAt, &ss.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

// CreateSubSection inserts a new sub-section.
func (r *SectionRepository) CreateSubSection(ctx context.Context, ss *model.SubSection) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sub_sections (section_id, label, position)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		ss.SectionID, ss.Label, ss.Position,
	).Scan(&ss.ID, &ss.CreatedAt, &ss.UpdatedAt)
}

// UpdateSubSection modifies a sub-section.
func (r *SectionRepository) UpdateSubSection(ctx context.Context, ss *model.SubSection) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sub_sections SET label = $1, position = $2, updated_at = NOW()
		 WHERE id = $3`,
		ss.Label, ss.Position, ss.ID)
	return err
}

// DeleteSubSection removes a sub-section. Fails while questions reference it.
func (r *SectionRepository) DeleteSubSection(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sub_sections WHERE id = $1`, id)
	return err
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

// QuestionService handles questionnaire structure business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	sectionRepo  *repository.SectionRepository
	rdb          *redis.Client
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, sectionRepo *repository.SectionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, sectionRepo: sectionRepo, rdb: rdb}
}

// ListSections retrieves the full questionnaire structure.
func (s *QuestionService) ListSections(ctx context.Context) ([]model.SectionWithSubSections, error) {
	return s.sectionRepo.ListWithSubSections(ctx)
}

// CreateSection creates a new section.
func (s *QuestionService) CreateSection(ctx context.Context, section *model.Section) error {
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// UpdateSection updates a section.
func (s *QuestionService) UpdateSection(ctx context.Context, section *model.Section) error {
	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// DeleteSection deletes a section.
func (s *QuestionService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// GetSection retrieves a single section.
func (s *QuestionService) GetSection(ctx context.Context, id uuid.UUID) (*model.Section, error) {
	return s.sectionRepo.GetByID(ctx, id)
}

// CreateSubSection creates a sub-section inside a section.
func (s *QuestionService) CreateSubSection(ctx context.Context, ss *model.SubSection) error {
	if _, err := s.sectionRepo.GetByID(ctx, ss.SectionID); err != nil {
		return err
	}
	if err := s.sectionRepo.CreateSubSection(ctx, ss); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// GetSubSection retrieves a single sub-section.
func (s *QuestionService) GetSubSection(ctx context.Context, id uuid.UUID) (*model.SubSection, error) {
	return s.sectionRepo.GetSubSection(ctx, id)
}

// UpdateSubSection updates a sub-section.
func (s *QuestionService) UpdateSubSection(ctx context.Context, ss *model.SubSection) error {
	if err := s.sectionRepo.UpdateSubSection(ctx, ss); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// DeleteSubSection deletes a sub-section.
func (s *QuestionService) DeleteSubSection(ctx context.Context, id uuid.UUID) error {
	if err := s.sectionRepo.DeleteSubSection(ctx, id); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// Get retrieves a single question.
func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// ListBySubSection retrieves a sub-section's questions in display order.
func (s *QuestionService) ListBySubSection(ctx context.Context, subSectionID uuid.UUID) ([]model.Question, error) {
	questions, err := s.questionRepo.ListBySubSection(ctx, subSectionID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Create adds a question to a sub-section.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if _, err := s.sectionRepo.GetSubSection(ctx, q.SubSectionID); err != nil {
		return err
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// Update modifies a question. The type stays immutable.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// Delete removes a question with its rules and answers.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateQuestionnaire(ctx)
	return nil
}

// invalidateQuestionnaire drops the cached form payload after any
// structural change. Best-effort; the cache self-heals on next read.
func (s *QuestionService) invalidateQuestionnaire(ctx context.Context) {
	_ = s.rdb.Del(ctx, config.CacheKey.QuestionnaireKey()).Err()
}

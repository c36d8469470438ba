package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
)

// Rule validation errors surfaced to handlers.
var (
	ErrInvalidRuleModel  = errors.New("rule must define either points or note_ri")
	ErrRuleOrderMismatch = errors.New("reorder list must contain every rule of the question exactly once")
)

// RuleService handles scoring rule business logic. Every write revalidates
// the textual condition through the codec and checks the operator against
// the question type, so no undecodable or inapplicable rule ever reaches
// storage.
type RuleService struct {
	ruleRepo     *repository.RuleRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
}

// NewRuleService creates a new RuleService.
func NewRuleService(ruleRepo *repository.RuleRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *RuleService {
	return &RuleService{ruleRepo: ruleRepo, questionRepo: questionRepo, rdb: rdb}
}

// ListByQuestion retrieves a question's rules in evaluation order.
func (s *RuleService) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.ScoringRule, error) {
	return s.ruleRepo.ListByQuestion(ctx, questionID)
}

// Create validates and stores a rule at the end of its question's order.
func (s *RuleService) Create(ctx context.Context, rule *model.ScoringRule) error {
	question, err := s.questionRepo.GetByID(ctx, rule.QuestionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}
	if err := s.check(question.Type, rule); err != nil {
		return err
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return err
	}
	s.invalidate(ctx, rule.QuestionID)
	return nil
}

// Update validates and modifies a rule's condition and outcome.
func (s *RuleService) Update(ctx context.Context, rule *model.ScoringRule) error {
	existing, err := s.ruleRepo.GetByID(ctx, rule.ID)
	if err != nil {
		return fmt.Errorf("get rule: %w", err)
	}
	rule.QuestionID = existing.QuestionID

	question, err := s.questionRepo.GetByID(ctx, rule.QuestionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}
	if err := s.check(question.Type, rule); err != nil {
		return err
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return err
	}
	s.invalidate(ctx, rule.QuestionID)
	return nil
}

// Delete removes a rule.
func (s *RuleService) Delete(ctx context.Context, id uuid.UUID) error {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, rule.QuestionID)
	return nil
}

// Reorder replaces the evaluation order of a question's rules. The new
// order must be a permutation of the existing rules; a partial list would
// silently change which rule wins.
func (s *RuleService) Reorder(ctx context.Context, questionID uuid.UUID, ruleIDs []uuid.UUID) ([]model.ScoringRule, error) {
	existing, err := s.ruleRepo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if len(existing) != len(ruleIDs) {
		return nil, ErrRuleOrderMismatch
	}
	known := make(map[uuid.UUID]bool, len(existing))
	for _, r := range existing {
		known[r.ID] = true
	}
	for _, id := range ruleIDs {
		if !known[id] {
			return nil, ErrRuleOrderMismatch
		}
		delete(known, id)
	}

	if err := s.ruleRepo.Reorder(ctx, questionID, ruleIDs); err != nil {
		return nil, err
	}
	s.invalidate(ctx, questionID)
	return s.ruleRepo.ListByQuestion(ctx, questionID)
}

// check verifies that the rule decodes, that its operator applies to the
// question type, and that exactly one scoring model is present.
func (s *RuleService) check(qt scoring.QuestionType, rule *model.ScoringRule) error {
	cond, err := scoring.DecodeCondition(rule.Condition)
	if err != nil {
		return err
	}
	if err := scoring.CheckRule(qt, cond); err != nil {
		return err
	}
	if rule.NoteRI == nil && rule.Points == nil {
		return ErrInvalidRuleModel
	}
	if rule.NoteRI != nil && rule.Points != nil {
		return ErrInvalidRuleModel
	}
	if rule.NoteRI == nil && rule.NoteSC != nil {
		return ErrInvalidRuleModel
	}
	return nil
}

func (s *RuleService) invalidate(ctx context.Context, questionID uuid.UUID) {
	_ = s.rdb.Del(ctx, config.CacheKey.QuestionRulesKey(questionID)).Err()
}

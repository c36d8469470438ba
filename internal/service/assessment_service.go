package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Assessment flow errors.
var (
	ErrAssessmentIncomplete = errors.New("assessment cannot be submitted while an axis is incomplete")
	ErrNoThresholds         = errors.New("no risk thresholds are configured")
)

// AnswerPayload is the queue message flushed by the answer worker.
type AnswerPayload struct {
	InstitutionID uuid.UUID       `json:"institution_id"`
	QuestionID    uuid.UUID       `json:"question_id"`
	Value         json.RawMessage `json:"value"`
	Justification string          `json:"justification,omitempty"`
	Comment       string          `json:"comment,omitempty"`
}

// RecalcPayload is the queue message consumed by the recalculation worker.
type RecalcPayload struct {
	InstitutionID uuid.UUID `json:"institution_id"`
}

// RiskUpdateEvent is published on the risk-updates channel whenever an
// institution's score or classification changes.
type RiskUpdateEvent struct {
	InstitutionID uuid.UUID         `json:"institution_id"`
	Score         float64           `json:"score"`
	RiskLevel     scoring.RiskLevel `json:"risk_level"`
	RiskLabel     string            `json:"risk_label"`
	Submitted     bool              `json:"submitted"`
	At            time.Time         `json:"at"`
}

// FormPayload is the assessment form served to an institution: the
// questionnaire structure plus the answers recorded so far. Rules and
// thresholds never appear here.
type FormPayload struct {
	Sections  []model.SectionWithSubSections `json:"sections"`
	Questions map[uuid.UUID][]model.Question `json:"questions"`
	Answers   map[uuid.UUID]model.Answer     `json:"answers"`
}

// AssessmentService drives the assessment lifecycle: answer capture,
// live axis scores, submission and recalculation.
type AssessmentService struct {
	answerRepo      *repository.AnswerRepository
	questionRepo    *repository.QuestionRepository
	sectionRepo     *repository.SectionRepository
	ruleRepo        *repository.RuleRepository
	institutionRepo *repository.InstitutionRepository
	assessmentRepo  *repository.AssessmentRepository
	thresholdSvc    *ThresholdService
	rdb             *redis.Client
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	sectionRepo *repository.SectionRepository,
	ruleRepo *repository.RuleRepository,
	institutionRepo *repository.InstitutionRepository,
	assessmentRepo *repository.AssessmentRepository,
	thresholdSvc *ThresholdService,
	rdb *redis.Client,
) *AssessmentService {
	return &AssessmentService{
		answerRepo:      answerRepo,
		questionRepo:    questionRepo,
		sectionRepo:     sectionRepo,
		ruleRepo:        ruleRepo,
		institutionRepo: institutionRepo,
		assessmentRepo:  assessmentRepo,
		thresholdSvc:    thresholdSvc,
		rdb:             rdb,
	}
}

// GetForm builds the form payload for an institution.
func (s *AssessmentService) GetForm(ctx context.Context, institutionID uuid.UUID) (*FormPayload, error) {
	sections, err := s.sectionRepo.ListWithSubSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	answers, err := s.answerRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	byAxis := make(map[uuid.UUID][]model.Question)
	for _, q := range questions {
		byAxis[q.SubSectionID] = append(byAxis[q.SubSectionID], q)
	}
	answerMap := make(map[uuid.UUID]model.Answer, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a
	}

	return &FormPayload{Sections: sections, Questions: byAxis, Answers: answerMap}, nil
}

// SaveAnswer validates and persists one answer, then queues a
// recalculation. The raw value is parsed and checked against the question
// before anything is written.
func (s *AssessmentService) SaveAnswer(ctx context.Context, institutionID uuid.UUID, req *model.UpsertAnswerRequest) (*model.Answer, error) {
	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	spec := question.Spec()
	value, verr := scoring.ParseValue(spec, req.Value)
	if verr != nil {
		return nil, verr
	}
	if verr := scoring.ValidateAnswer(spec, value); verr != nil {
		return nil, verr
	}

	answer := &model.Answer{
		InstitutionID: institutionID,
		QuestionID:    req.QuestionID,
		Value:         req.Value,
		Justification: req.Justification,
		Comment:       req.Comment,
	}
	if err := s.answerRepo.Upsert(ctx, answer); err != nil {
		return nil, fmt.Errorf("upsert answer: %w", err)
	}

	s.queueRecalc(ctx, institutionID)
	return answer, nil
}

// Autosave validates an answer and buffers it in Redis for the answer
// worker to flush. Used by the WebSocket stream where write volume is
// high and durability can lag a few seconds.
func (s *AssessmentService) Autosave(ctx context.Context, institutionID uuid.UUID, req *model.UpsertAnswerRequest) error {
	question, err := s.questionRepo.GetByID(ctx, req.QuestionID)
	if err != nil {
		return fmt.Errorf("get question: %w", err)
	}

	spec := question.Spec()
	value, verr := scoring.ParseValue(spec, req.Value)
	if verr != nil {
		return verr
	}
	if verr := scoring.ValidateAnswer(spec, value); verr != nil {
		return verr
	}

	payload := AnswerPayload{
		InstitutionID: institutionID,
		QuestionID:    req.QuestionID,
		Value:         req.Value,
		Justification: req.Justification,
		Comment:       req.Comment,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	answersKey := config.CacheKey.InstitutionAnswersKey(institutionID)
	if err := s.rdb.HSet(ctx, answersKey, req.QuestionID.String(), raw).Err(); err != nil {
		return fmt.Errorf("autosave answer: %w", err)
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, raw).Err(); err != nil {
		return fmt.Errorf("queue answer: %w", err)
	}
	return nil
}

// AxisScores computes the live per-axis aggregates for an institution.
func (s *AssessmentService) AxisScores(ctx context.Context, institutionID uuid.UUID) ([]model.AxisScore, error) {
	eng, err := s.loadEngine(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	var scores []model.AxisScore
	for _, section := range eng.sections {
		for _, axis := range section.SubSections {
			questions := eng.axisQuestions[axis.ID]
			result := scoring.AggregateAxis(questions, eng.answers)
			scores = append(scores, model.AxisScore{
				SubSectionID: axis.ID,
				Label:        axis.Label,
				Subtotal:     result.Subtotal,
				Answered:     result.Answered,
				Scored:       result.Scored,
				Questions:    len(questions),
				IsComplete:   result.IsComplete,
				Residuals:    result.Residuals,
				Unscored:     result.Unscored,
			})
		}
	}
	if scores == nil {
		scores = []model.AxisScore{}
	}
	return scores, nil
}

// QuestionScores computes the per-question scoring detail for the form UI.
func (s *AssessmentService) QuestionScores(ctx context.Context, institutionID uuid.UUID) ([]model.QuestionScore, error) {
	eng, err := s.loadEngine(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	var details []model.QuestionScore
	for _, questions := range eng.axisQuestions {
		for _, q := range questions {
			answer, ok := eng.answers[q.ID]
			if !ok {
				continue
			}
			outcome := scoring.ScoreQuestion(q.Question, answer.Value, q.Rules)
			detail := model.QuestionScore{QuestionID: q.ID, Scored: outcome.Scored}
			if outcome.Scored {
				detail.Model = outcome.Model
				switch outcome.Model {
				case scoring.ModelPoints:
					points := outcome.Points
					detail.Points = &points
				case scoring.ModelRiskControl:
					ri := outcome.NoteRI
					detail.NoteRI = &ri
					detail.NoteSC = outcome.NoteSC
					residual := outcome.ResidualRisk()
					detail.ResidualRisk = &residual
				}
			}
			details = append(details, detail)
		}
	}
	if details == nil {
		details = []model.QuestionScore{}
	}
	return details, nil
}

// Submit freezes an institution's assessment. Every axis must be complete;
// the weighted total is classified against the active thresholds, a
// snapshot is recorded and the supervision schedule is updated.
func (s *AssessmentService) Submit(ctx context.Context, institutionID uuid.UUID) (*model.Assessment, error) {
	eng, err := s.loadEngine(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	axisScores := make(map[string]float64)
	for _, section := range eng.sections {
		for _, axis := range section.SubSections {
			questions := eng.axisQuestions[axis.ID]
			result := scoring.AggregateAxis(questions, eng.answers)
			if !result.IsComplete {
				return nil, ErrAssessmentIncomplete
			}
			axisScores[axis.Label] = result.Subtotal
		}
	}

	total := s.weightedTotal(eng)

	bands, err := s.thresholdSvc.Bands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	if len(bands) == 0 {
		return nil, ErrNoThresholds
	}
	band := scoring.Classify(total, bands)

	now := time.Now()
	assessment := &model.Assessment{
		InstitutionID: institutionID,
		TotalScore:    total,
		AxisScores:    axisScores,
		RiskLevel:     band.Level,
		RiskLabel:     band.Label,
	}
	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	if err := s.answerRepo.MarkSubmitted(ctx, institutionID, now); err != nil {
		return nil, fmt.Errorf("mark answers submitted: %w", err)
	}

	next := now.AddDate(supervisionYears(band.SupervisionPeriod), 0, 0)
	if err := s.institutionRepo.UpdateScore(ctx, institutionID, total, band.Level, now, next); err != nil {
		return nil, fmt.Errorf("update institution: %w", err)
	}

	s.publishRiskUpdate(ctx, RiskUpdateEvent{
		InstitutionID: institutionID,
		Score:         total,
		RiskLevel:     band.Level,
		RiskLabel:     band.Label,
		Submitted:     true,
		At:            now,
	})
	return assessment, nil
}

// History retrieves an institution's past assessment snapshots.
func (s *AssessmentService) History(ctx context.Context, institutionID uuid.UUID) ([]model.Assessment, error) {
	return s.assessmentRepo.ListByInstitution(ctx, institutionID)
}

// Recalculate recomputes an institution's running score after answers
// changed. Supervision dates only move on submission.
func (s *AssessmentService) Recalculate(ctx context.Context, institutionID uuid.UUID) (*RiskUpdateEvent, error) {
	eng, err := s.loadEngine(ctx, institutionID)
	if err != nil {
		return nil, err
	}

	total := s.weightedTotal(eng)

	bands, err := s.thresholdSvc.Bands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	if len(bands) == 0 {
		return nil, ErrNoThresholds
	}
	band := scoring.Classify(total, bands)

	if err := s.institutionRepo.UpdateLiveScore(ctx, institutionID, total, band.Level); err != nil {
		return nil, fmt.Errorf("update live score: %w", err)
	}

	event := RiskUpdateEvent{
		InstitutionID: institutionID,
		Score:         total,
		RiskLevel:     band.Level,
		RiskLabel:     band.Label,
		At:            time.Now(),
	}
	s.publishRiskUpdate(ctx, event)
	return &event, nil
}

// ─── Engine loading and aggregation helpers ─────────────────────────────

type engineState struct {
	sections      []model.SectionWithSubSections
	axisQuestions map[uuid.UUID][]scoring.AxisQuestion
	maxPoints     map[uuid.UUID]float64 // per axis, from points-model rules
	answers       map[uuid.UUID]scoring.AxisAnswer
}

// loadEngine materializes the questionnaire, the decoded rule base and an
// institution's answers into the engine's input shapes. A rule that fails
// to decode is skipped and logged; one corrupt row must not take scoring
// down.
func (s *AssessmentService) loadEngine(ctx context.Context, institutionID uuid.UUID) (*engineState, error) {
	sections, err := s.sectionRepo.ListWithSubSections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	rules, err := s.ruleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	answers, err := s.answerRepo.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	eng := &engineState{
		sections:      sections,
		axisQuestions: make(map[uuid.UUID][]scoring.AxisQuestion),
		maxPoints:     make(map[uuid.UUID]float64),
		answers:       make(map[uuid.UUID]scoring.AxisAnswer),
	}

	for _, q := range questions {
		aq := scoring.AxisQuestion{ID: q.ID, Question: q.Spec()}
		axisMax := 0.0
		for _, sr := range rules[q.ID] {
			rule, err := sr.Decode()
			if err != nil {
				log.Warn().Err(err).
					Str("component", "assessment_service").
					Str("rule_id", sr.ID.String()).
					Msg("Skipping undecodable scoring rule")
				continue
			}
			if rule.Model == scoring.ModelPoints && rule.Points > axisMax {
				axisMax = rule.Points
			}
			aq.Rules = append(aq.Rules, rule)
		}
		eng.axisQuestions[q.SubSectionID] = append(eng.axisQuestions[q.SubSectionID], aq)
		eng.maxPoints[q.SubSectionID] += axisMax
	}

	for _, a := range answers {
		question := findQuestion(questions, a.QuestionID)
		if question == nil {
			continue
		}
		value, verr := scoring.ParseValue(question.Spec(), a.Value)
		if verr != nil {
			log.Warn().
				Str("component", "assessment_service").
				Str("question_id", a.QuestionID.String()).
				Str("reason", verr.Error()).
				Msg("Skipping unparseable stored answer")
			continue
		}
		eng.answers[a.QuestionID] = scoring.AxisAnswer{
			Value:         value,
			Justification: a.Justification,
		}
	}
	return eng, nil
}

// weightedTotal folds axis subtotals into the institution total on the
// 0-100 scale: each section's score is its achieved share of the maximum
// achievable points, weighted by the section coefficient.
func (s *AssessmentService) weightedTotal(eng *engineState) float64 {
	var weighted, coeffSum float64
	for _, section := range eng.sections {
		var achieved, achievable float64
		for _, axis := range section.SubSections {
			result := scoring.AggregateAxis(eng.axisQuestions[axis.ID], eng.answers)
			achieved += result.Subtotal
			achievable += eng.maxPoints[axis.ID]
		}
		if achievable == 0 {
			continue
		}
		weighted += section.Coefficient * (achieved / achievable * 100)
		coeffSum += section.Coefficient
	}
	if coeffSum == 0 {
		return 0
	}
	return weighted / coeffSum
}

func (s *AssessmentService) queueRecalc(ctx context.Context, institutionID uuid.UUID) {
	raw, _ := json.Marshal(RecalcPayload{InstitutionID: institutionID})
	if err := s.rdb.RPush(ctx, config.WorkerKey.RecalcScoresQueue, raw).Err(); err != nil {
		log.Warn().Err(err).
			Str("component", "assessment_service").
			Str("institution_id", institutionID.String()).
			Msg("Failed to queue recalculation")
	}
}

func (s *AssessmentService) publishRiskUpdate(ctx context.Context, event RiskUpdateEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.RiskUpdatesChannel(), raw).Err(); err != nil {
		log.Warn().Err(err).
			Str("component", "assessment_service").
			Msg("Failed to publish risk update")
	}
}

func findQuestion(questions []model.Question, id uuid.UUID) *model.Question {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}

// supervisionYears extracts the year count from a supervision period label
// such as "5 ans" or "1 an". Unparseable labels default to one year, the
// tightest schedule.
func supervisionYears(period string) int {
	fields := strings.Fields(period)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

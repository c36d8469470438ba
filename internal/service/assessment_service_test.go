package service

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

func TestSupervisionYears(t *testing.T) {
	tests := []struct {
		period string
		want   int
	}{
		{"5 ans", 5},
		{"3 ans", 3},
		{"1 an", 1},
		{"10 ans", 10},
		{"", 1},
		{"annuel", 1},
		{"0 an", 1},
		{"-2 ans", 1},
	}

	for _, tt := range tests {
		if got := supervisionYears(tt.period); got != tt.want {
			t.Errorf("supervisionYears(%q) = %d, want %d", tt.period, got, tt.want)
		}
	}
}

// pointsQuestion builds a boolean question whose 'oui' answer earns the
// given points and whose 'non' answer earns zero.
func pointsQuestion(points float64) scoring.AxisQuestion {
	return scoring.AxisQuestion{
		ID:       uuid.New(),
		Question: scoring.Question{Type: scoring.TypeBoolean, Required: true},
		Rules: []scoring.Rule{
			{
				Condition: scoring.Condition{Operator: scoring.OpEqual, Kind: scoring.OperandText, Text: "oui"},
				Model:     scoring.ModelPoints,
				Points:    points,
			},
			{
				Condition: scoring.Condition{Operator: scoring.OpEqual, Kind: scoring.OperandText, Text: "non"},
				Model:     scoring.ModelPoints,
				Points:    0,
			},
		},
	}
}

func TestWeightedTotal(t *testing.T) {
	axisA := uuid.New()
	axisB := uuid.New()

	qa := pointsQuestion(10)
	qb := pointsQuestion(20)

	eng := &engineState{
		sections: []model.SectionWithSubSections{
			{
				Section:     model.Section{Coefficient: 3},
				SubSections: []model.SubSection{{ID: axisA}},
			},
			{
				Section:     model.Section{Coefficient: 1},
				SubSections: []model.SubSection{{ID: axisB}},
			},
		},
		axisQuestions: map[uuid.UUID][]scoring.AxisQuestion{
			axisA: {qa},
			axisB: {qb},
		},
		maxPoints: map[uuid.UUID]float64{
			axisA: 10,
			axisB: 20,
		},
		answers: map[uuid.UUID]scoring.AxisAnswer{
			qa.ID: {Value: scoring.BoolValue(true)},  // 10/10 -> 100
			qb.ID: {Value: scoring.BoolValue(false)}, // 0/20  -> 0
		},
	}

	svc := &AssessmentService{}
	got := svc.weightedTotal(eng)

	// (3*100 + 1*0) / 4 = 75
	if math.Abs(got-75) > 1e-9 {
		t.Errorf("weightedTotal = %v, want 75", got)
	}
}

func TestWeightedTotalSkipsEmptySections(t *testing.T) {
	axisA := uuid.New()
	emptyAxis := uuid.New()
	qa := pointsQuestion(10)

	eng := &engineState{
		sections: []model.SectionWithSubSections{
			{
				Section:     model.Section{Coefficient: 2},
				SubSections: []model.SubSection{{ID: axisA}},
			},
			// No questions, no achievable points: must not drag the
			// total down or divide by zero.
			{
				Section:     model.Section{Coefficient: 5},
				SubSections: []model.SubSection{{ID: emptyAxis}},
			},
		},
		axisQuestions: map[uuid.UUID][]scoring.AxisQuestion{
			axisA: {qa},
		},
		maxPoints: map[uuid.UUID]float64{axisA: 10},
		answers: map[uuid.UUID]scoring.AxisAnswer{
			qa.ID: {Value: scoring.BoolValue(true)},
		},
	}

	svc := &AssessmentService{}
	if got := svc.weightedTotal(eng); math.Abs(got-100) > 1e-9 {
		t.Errorf("weightedTotal = %v, want 100", got)
	}
}

func TestWeightedTotalNoSections(t *testing.T) {
	svc := &AssessmentService{}
	eng := &engineState{
		axisQuestions: map[uuid.UUID][]scoring.AxisQuestion{},
		maxPoints:     map[uuid.UUID]float64{},
		answers:       map[uuid.UUID]scoring.AxisAnswer{},
	}
	if got := svc.weightedTotal(eng); got != 0 {
		t.Errorf("weightedTotal = %v, want 0", got)
	}
}

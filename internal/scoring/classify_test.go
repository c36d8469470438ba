package scoring

import (
	"math"
	"testing"
)

func defaultThresholds() []Threshold {
	return []Threshold{
		{Level: RiskLow, Label: "Faible", MinScore: 0, MaxScore: 50, SupervisionPeriod: "5 ans"},
		{Level: RiskMedium, Label: "Modéré", MinScore: 50, MaxScore: 80, SupervisionPeriod: "3 ans"},
		{Level: RiskHigh, Label: "Élevé", MinScore: 80, MaxScore: 100, SupervisionPeriod: "1 an"},
	}
}

func TestClassify(t *testing.T) {
	ths := defaultThresholds()

	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{25, RiskLow},
		{50, RiskLow}, // boundary resolves to the lower band
		{51, RiskMedium},
		{80, RiskMedium},
		{99, RiskHigh},
		{100, RiskHigh},
	}
	for _, c := range cases {
		got := Classify(c.score, ths)
		if got.Level != c.want {
			t.Errorf("Classify(%v) = %s, want %s", c.score, got.Level, c.want)
		}
	}
}

func TestClassifyTotality(t *testing.T) {
	ths := defaultThresholds()

	// A score always resolves to a band, clamped at the extremes.
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{-1, RiskLow},
		{-1e9, RiskLow},
		{math.Inf(-1), RiskLow},
		{101, RiskHigh},
		{1e9, RiskHigh},
		{math.Inf(1), RiskHigh},
	}
	for _, c := range cases {
		got := Classify(c.score, ths)
		if got.Level != c.want {
			t.Errorf("Classify(%v) = %s, want clamp to %s", c.score, got.Level, c.want)
		}
	}
}

func TestClassifyUnsortedInput(t *testing.T) {
	ths := defaultThresholds()
	shuffled := []Threshold{ths[2], ths[0], ths[1]}

	if got := Classify(60, shuffled); got.Level != RiskMedium {
		t.Fatalf("Classify(60) over unsorted thresholds = %s, want medium", got.Level)
	}
}

func TestValidateThresholds(t *testing.T) {
	cases := []struct {
		name   string
		ths    []Threshold
		wantOK bool
	}{
		{
			"contiguous bands accepted",
			defaultThresholds(),
			true,
		},
		{
			"overlap rejected",
			[]Threshold{
				{Level: RiskLow, Label: "low", MinScore: 0, MaxScore: 50},
				{Level: RiskMedium, Label: "medium", MinScore: 40, MaxScore: 80},
				{Level: RiskHigh, Label: "high", MinScore: 80, MaxScore: 100},
			},
			false,
		},
		{
			"gap rejected",
			[]Threshold{
				{Level: RiskLow, Label: "low", MinScore: 0, MaxScore: 40},
				{Level: RiskMedium, Label: "medium", MinScore: 50, MaxScore: 80},
				{Level: RiskHigh, Label: "high", MinScore: 80, MaxScore: 100},
			},
			false,
		},
		{
			"floor not at global minimum",
			[]Threshold{
				{Level: RiskLow, Label: "low", MinScore: 10, MaxScore: 50},
				{Level: RiskHigh, Label: "high", MinScore: 50, MaxScore: 100},
			},
			false,
		},
		{
			"ceiling not at global maximum",
			[]Threshold{
				{Level: RiskLow, Label: "low", MinScore: 0, MaxScore: 50},
				{Level: RiskHigh, Label: "high", MinScore: 50, MaxScore: 90},
			},
			false,
		},
		{
			"inverted band rejected",
			[]Threshold{
				{Level: RiskLow, Label: "low", MinScore: 0, MaxScore: 100},
				{Level: RiskHigh, Label: "high", MinScore: 60, MaxScore: 40},
			},
			false,
		},
		{
			"levels out of order rejected",
			[]Threshold{
				{Level: RiskMedium, Label: "medium", MinScore: 0, MaxScore: 50},
				{Level: RiskLow, Label: "low", MinScore: 50, MaxScore: 100},
			},
			false,
		},
		{
			"empty set rejected",
			nil,
			false,
		},
	}
	for _, c := range cases {
		err := ValidateThresholds(c.ths)
		if c.wantOK && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("%s: expected a configuration error", c.name)
		}
		if !c.wantOK && err != nil {
			if _, ok := err.(*ConfigurationError); !ok {
				t.Errorf("%s: error is %T, want *ConfigurationError", c.name, err)
			}
		}
	}
}

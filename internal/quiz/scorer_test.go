package quiz

import (
	"reflect"
	"testing"

	"vistonomade/pkg/types"
)

func answersTotaling(points ...int) []types.Answer {
	answers := make([]types.Answer, len(points))
	for i, p := range points {
		answers[i] = types.Answer{QuestionID: i + 1, Value: "ok", Points: p}
	}
	return answers
}

func TestScore_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		answers []types.Answer
		want    types.Tier
	}{
		{"exactly 70 is A", answersTotaling(70), types.TierA},
		{"69 is B", answersTotaling(69), types.TierB},
		{"exactly 40 is B", answersTotaling(40), types.TierB},
		{"39 is C", answersTotaling(39), types.TierC},
		{"85 with no deal-breaker is A", answersTotaling(10, 15, 10, 12, 10, 10, 8, 10), types.TierA},
		{"zero answers is C", nil, types.TierC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.answers)
			if got.Tier != tt.want {
				t.Errorf("Score() tier = %s, want %s (total %d)", got.Tier, tt.want, got.TotalScore)
			}
		})
	}
}

func TestScore_DealBreakersForceC(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"income below minimum", ValueIncomeLow},
		{"tenure under 3 months", ValueTenureUnder3},
		{"criminal record", ValueCriminalRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// High enough total that only the override can explain a C.
			answers := answersTotaling(30, 30, 30)
			answers = append(answers, types.Answer{QuestionID: 4, Value: tt.value, Points: 0})

			got := Score(answers)
			if got.Tier != types.TierC {
				t.Fatalf("Score() tier = %s, want C", got.Tier)
			}
			if len(got.TriggeredDisqualifiers) != 1 || got.TriggeredDisqualifiers[0] != tt.value {
				t.Errorf("TriggeredDisqualifiers = %v, want [%s]", got.TriggeredDisqualifiers, tt.value)
			}
			if len(got.Reasons) == 0 {
				t.Error("tier C result must carry at least one reason")
			}
		})
	}
}

func TestScore_CriminalRecordOverridesArithmetic(t *testing.T) {
	// Seven answers at 10 points plus the criminal-record answer at -50:
	// total is 20, but the override decides, not the arithmetic.
	answers := answersTotaling(10, 10, 10, 10, 10, 10, 10)
	answers = append(answers, types.Answer{QuestionID: QuestionCriminal, Value: ValueCriminalRecord, Points: -50})

	got := Score(answers)
	if got.TotalScore != 20 {
		t.Fatalf("TotalScore = %d, want 20", got.TotalScore)
	}
	if got.Tier != types.TierC {
		t.Errorf("Score() tier = %s, want C", got.Tier)
	}
}

func TestScore_MultipleDealBreakers(t *testing.T) {
	answers := []types.Answer{
		{QuestionID: QuestionIncome, Value: ValueIncomeLow, Points: 0},
		{QuestionID: QuestionCriminal, Value: ValueCriminalRecord, Points: -50},
	}

	got := Score(answers)
	if got.Tier != types.TierC {
		t.Fatalf("Score() tier = %s, want C", got.Tier)
	}
	if len(got.TriggeredDisqualifiers) != 2 {
		t.Errorf("TriggeredDisqualifiers = %v, want both codes", got.TriggeredDisqualifiers)
	}
	if len(got.Reasons) != len(got.TriggeredDisqualifiers) {
		t.Errorf("got %d reasons for %d disqualifiers", len(got.Reasons), len(got.TriggeredDisqualifiers))
	}
}

func TestScore_ShortfallCarriesReason(t *testing.T) {
	got := Score(answersTotaling(10))
	if got.Tier != types.TierC {
		t.Fatalf("Score() tier = %s, want C", got.Tier)
	}
	if len(got.TriggeredDisqualifiers) != 0 {
		t.Errorf("TriggeredDisqualifiers = %v, want none", got.TriggeredDisqualifiers)
	}
	if len(got.Reasons) == 0 {
		t.Error("score-shortfall C must carry a reason")
	}
}

func TestScore_Idempotent(t *testing.T) {
	answers := answersTotaling(10, 15, 5)
	answers = append(answers, types.Answer{QuestionID: QuestionTenure, Value: ValueTenureUnder3, Points: 0})

	first := Score(answers)
	second := Score(answers)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Score() not idempotent: %+v vs %+v", first, second)
	}
}

func TestCatalog_EightQuestions(t *testing.T) {
	if len(Questions) != 8 {
		t.Fatalf("catalog has %d questions, want 8", len(Questions))
	}

	for _, q := range Questions {
		if len(q.Options) < 2 {
			t.Errorf("question %d has %d options", q.ID, len(q.Options))
		}
	}
}

package quiz

import (
	"context"
	"errors"
	"testing"

	"vistonomade/pkg/types"
)

// inlineTasker runs tasks synchronously so tests observe side effects
// deterministically.
type inlineTasker struct{}

func (inlineTasker) Go(name string, fn func(ctx context.Context) error) {
	_ = fn(context.Background())
}

type completedCall struct {
	leadID string
	result types.Tier
	score  int
}

type fakeLeadStore struct {
	failCreate bool
	created    []*types.Lead
	completed  []completedCall
}

func (f *fakeLeadStore) CreateLead(_ context.Context, lead *types.Lead) error {
	if f.failCreate {
		return errors.New("storage unavailable")
	}
	lead.ID = "lead-1"
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadStore) CompleteLead(_ context.Context, leadID string, result types.Tier, score int) error {
	f.completed = append(f.completed, completedCall{leadID, result, score})
	return nil
}

func answerAll(t *testing.T, s *Session) {
	t.Helper()
	for i := range Questions {
		if err := s.Answer(Questions[i].Options[0].Value); err != nil {
			t.Fatalf("Answer(question %d): %v", i, err)
		}
	}
}

func TestSession_FullRun(t *testing.T) {
	leads := &fakeLeadStore{}
	s := NewSession(leads, inlineTasker{})

	if s.Step() != StepIntro {
		t.Fatalf("new session step = %s, want intro", s.Step())
	}

	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitLead("Ana", "ana@example.com", "+5511999990000", nil); err != nil {
		t.Fatal(err)
	}

	if len(leads.created) != 1 {
		t.Fatalf("created %d leads, want 1", len(leads.created))
	}
	if leads.created[0].Status != types.LeadStatusStarted {
		t.Errorf("lead status = %s, want started", leads.created[0].Status)
	}

	answerAll(t, s)

	if s.Step() != StepResult {
		t.Fatalf("step after last answer = %s, want result", s.Step())
	}

	result, err := s.Result()
	if err != nil {
		t.Fatal(err)
	}

	if len(leads.completed) != 1 {
		t.Fatalf("completed %d leads, want 1", len(leads.completed))
	}
	call := leads.completed[0]
	if call.leadID != "lead-1" || call.result != result.Tier || call.score != result.TotalScore {
		t.Errorf("CompleteLead(%q, %s, %d) doesn't match result %s/%d",
			call.leadID, call.result, call.score, result.Tier, result.TotalScore)
	}
}

func TestSession_ResultIsRecomputed(t *testing.T) {
	s := NewSession(&fakeLeadStore{}, inlineTasker{})
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitLead("Ana", "ana@example.com", "+5511999990000", nil); err != nil {
		t.Fatal(err)
	}
	answerAll(t, s)

	first, err := s.Result()
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Result()
	if err != nil {
		t.Fatal(err)
	}
	if first.Tier != second.Tier || first.TotalScore != second.TotalScore {
		t.Errorf("repeated Result() differs: %+v vs %+v", first, second)
	}
}

func TestSession_LeadCreateFailureDoesNotBlock(t *testing.T) {
	leads := &fakeLeadStore{failCreate: true}
	s := NewSession(leads, inlineTasker{})

	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitLead("Ana", "ana@example.com", "+5511999990000", nil); err != nil {
		t.Fatalf("SubmitLead must not surface storage errors, got %v", err)
	}
	if s.Step() != StepQuiz {
		t.Fatalf("step = %s, want quiz despite create failure", s.Step())
	}

	answerAll(t, s)

	if _, err := s.Result(); err != nil {
		t.Fatal(err)
	}
	// No lead id, so the completion update is skipped entirely.
	if len(leads.completed) != 0 {
		t.Errorf("completed calls = %d, want 0 when create failed", len(leads.completed))
	}
}

func TestSession_BackPopsAnswers(t *testing.T) {
	s := NewSession(&fakeLeadStore{}, inlineTasker{})
	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitLead("Ana", "ana@example.com", "+5511999990000", nil); err != nil {
		t.Fatal(err)
	}

	if err := s.Answer(Questions[0].Options[0].Value); err != nil {
		t.Fatal(err)
	}
	if err := s.Answer(Questions[1].Options[0].Value); err != nil {
		t.Fatal(err)
	}
	if got := s.QuestionIndex(); got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if got := s.QuestionIndex(); got != 1 {
		t.Errorf("index after back = %d, want 1", got)
	}
	if got := len(s.Answers()); got != 1 {
		t.Errorf("answers after back = %d, want 1", got)
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	// Back at question 0 returns to the intro and clears the sequence.
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepIntro {
		t.Errorf("step = %s, want intro", s.Step())
	}
	if got := len(s.Answers()); got != 0 {
		t.Errorf("answers after backing out = %d, want 0", got)
	}
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := NewSession(&fakeLeadStore{}, inlineTasker{})

	if err := s.Answer("anything"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Answer from intro: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Result from intro: err = %v, want ErrInvalidTransition", err)
	}
	if err := s.SubmitLead("a", "a@b.c", "+5511999990000", nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("SubmitLead from intro: err = %v, want ErrInvalidTransition", err)
	}

	if err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SubmitLead("a", "a@b.c", "+5511999990000", nil); err != nil {
		t.Fatal(err)
	}

	if err := s.Answer("definitely-not-an-option"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("err = %v, want ErrUnknownOption", err)
	}

	answerAll(t, s)

	// Result is terminal.
	if err := s.Back(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Back from result: err = %v, want ErrInvalidTransition", err)
	}
}

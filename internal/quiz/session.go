package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vistonomade/pkg/types"
)

// Step is the session's position in the quiz flow.
type Step string

const (
	StepIntro       Step = "intro"
	StepLeadCapture Step = "lead_capture"
	StepQuiz        Step = "quiz"
	StepResult      Step = "result"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrUnknownOption     = errors.New("unknown option for question")
)

// LeadStore persists lead records. Both calls are issued fire-and-forget;
// the session never blocks on them.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *types.Lead) error
	CompleteLead(ctx context.Context, leadID string, result types.Tier, score int) error
}

// Tasker runs a named background task without blocking the caller.
type Tasker interface {
	Go(name string, fn func(ctx context.Context) error)
}

// Session is the explicit state object for one quiz run: current step,
// question index, and the ordered answer sequence. Persistence is an injected
// collaborator, not ambient state. A session ends at the result step; a
// restart means a new session.
type Session struct {
	mu      sync.Mutex
	step    Step
	index   int
	answers []types.Answer
	leadID  string

	leads LeadStore
	tasks Tasker
}

func NewSession(leads LeadStore, tasks Tasker) *Session {
	return &Session{
		step:  StepIntro,
		leads: leads,
		tasks: tasks,
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// QuestionIndex returns the zero-based index of the question currently shown.
func (s *Session) QuestionIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Begin moves the session from the intro screen to lead capture.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepIntro {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, s.step)
	}
	s.step = StepLeadCapture
	return nil
}

// SubmitLead records the applicant's contact details and enters the quiz.
// The lead insert runs in the background; if it fails the session keeps a
// null lead reference and the completion update is skipped later. The quiz
// itself always proceeds.
func (s *Session) SubmitLead(name, email, phone string, userID *string) error {
	s.mu.Lock()
	if s.step != StepLeadCapture {
		step := s.step
		s.mu.Unlock()
		return fmt.Errorf("%w: submit lead from %s", ErrInvalidTransition, step)
	}
	s.step = StepQuiz
	s.index = 0
	s.mu.Unlock()

	lead := &types.Lead{
		Name:   name,
		Email:  email,
		Phone:  phone,
		UserID: userID,
		Status: types.LeadStatusStarted,
	}

	s.tasks.Go("lead.create", func(ctx context.Context) error {
		if err := s.leads.CreateLead(ctx, lead); err != nil {
			return err
		}
		s.mu.Lock()
		s.leadID = lead.ID
		s.mu.Unlock()
		return nil
	})

	return nil
}

// Answer records the selected option value for the current question and
// advances. Answering the last question computes the result, fires the lead
// completion update, and moves the session to its terminal step.
func (s *Session) Answer(value string) error {
	s.mu.Lock()

	if s.step != StepQuiz {
		step := s.step
		s.mu.Unlock()
		return fmt.Errorf("%w: answer from %s", ErrInvalidTransition, step)
	}

	question, ok := QuestionByIndex(s.index)
	if !ok {
		index := s.index
		s.mu.Unlock()
		return fmt.Errorf("%w: no question at index %d", ErrInvalidTransition, index)
	}

	var selected *types.Option
	for i := range question.Options {
		if question.Options[i].Value == value {
			selected = &question.Options[i]
			break
		}
	}
	if selected == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: question %d value %q", ErrUnknownOption, question.ID, value)
	}

	s.answers = append(s.answers, types.Answer{
		QuestionID: question.ID,
		Value:      selected.Value,
		Points:     selected.Points,
	})

	if s.index == len(Questions)-1 {
		s.step = StepResult
		result := Score(s.answers)
		s.mu.Unlock()
		s.completeLead(result)
		return nil
	}

	s.index++
	s.mu.Unlock()
	return nil
}

// Back pops the last recorded answer and steps one question back. Backing out
// of the first question returns to the intro screen. The result step is
// terminal and cannot be backed out of.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepLeadCapture:
		s.step = StepIntro
		return nil
	case StepQuiz:
		if s.index == 0 {
			s.answers = s.answers[:0]
			s.step = StepIntro
			return nil
		}
		s.answers = s.answers[:len(s.answers)-1]
		s.index--
		return nil
	default:
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, s.step)
	}
}

// Result scores the answer sequence. Always computed fresh; nothing is
// cached between calls.
func (s *Session) Result() (types.EligibilityResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepResult {
		return types.EligibilityResult{}, fmt.Errorf("%w: result from %s", ErrInvalidTransition, s.step)
	}
	return Score(s.answers), nil
}

// Answers returns a copy of the recorded answer sequence.
func (s *Session) Answers() []types.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// completeLead fires the best-effort lead completion update. No retry: if
// the create never landed there is no id to update and the task is a
// deliberate no-op instead of an orphan write.
func (s *Session) completeLead(result types.EligibilityResult) {
	s.tasks.Go("lead.complete", func(ctx context.Context) error {
		s.mu.Lock()
		leadID := s.leadID
		s.mu.Unlock()

		if leadID == "" {
			return nil
		}
		return s.leads.CompleteLead(ctx, leadID, result.Tier, result.TotalScore)
	})
}

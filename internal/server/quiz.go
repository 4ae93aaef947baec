package server

import (
	"errors"
	"net/http"
	"strings"

	"vistonomade/internal/quiz"
	"vistonomade/internal/utils"
	"vistonomade/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, quiz.Questions)
}

func (s *Service) handleCreateQuizSession(w http.ResponseWriter, r *http.Request) {
	id := utils.NanoIDSize(21)
	session := quiz.NewSession(s.leadRepo, s.tasks)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	s.respondJSON(w, http.StatusCreated, map[string]string{
		"session_id": id,
		"step":       string(session.Step()),
	})
}

func (s *Service) quizSession(w http.ResponseWriter, r *http.Request) (*quiz.Session, bool) {
	id := flow.Param(r.Context(), "id")

	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		s.respondError(w, http.StatusNotFound, "quiz session not found")
		return nil, false
	}
	return session, true
}

func (s *Service) handleGetQuizSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	payload := map[string]any{
		"step": session.Step(),
	}
	if session.Step() == quiz.StepQuiz {
		index := session.QuestionIndex()
		if question, ok := quiz.QuestionByIndex(index); ok {
			payload["question_index"] = index
			payload["question"] = question
		}
	}

	s.respondJSON(w, http.StatusOK, payload)
}

func (s *Service) handleQuizBegin(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	if err := session.Begin(); err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"step": string(session.Step())})
}

type leadCaptureForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	CountryCode string `form:"country_code"`
	Phone       string `form:"phone"`
}

func (s *Service) handleQuizLead(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	var lead = new(leadCaptureForm)
	if err := decoder.Decode(lead, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode lead form")
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)

	fieldErrors := map[string]string{}
	if lead.Name == "" {
		fieldErrors["name"] = "Informe seu nome."
	}
	if lead.Email == "" || !strings.Contains(lead.Email, "@") {
		fieldErrors["email"] = "Informe um e-mail válido."
	}

	phone, err := types.ComposePhone(lead.CountryCode, lead.Phone)
	if err != nil {
		fieldErrors["phone"] = "Informe um telefone válido com DDD."
	}

	if len(fieldErrors) > 0 {
		s.respondJSON(w, http.StatusBadRequest, map[string]any{"field_errors": fieldErrors})
		return
	}

	// An authenticated user taking the quiz gets linked to the lead.
	var userID *string
	if id, err := s.userIDFromContext(r.Context()); err == nil {
		userID = utils.StringPtr(id)
	}

	if err := session.SubmitLead(lead.Name, lead.Email, phone, userID); err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"step": string(session.Step())})
}

func (s *Service) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	value := strings.TrimSpace(r.FormValue("value"))
	if value == "" {
		s.respondError(w, http.StatusBadRequest, "value is required")
		return
	}

	if err := session.Answer(value); err != nil {
		if errors.Is(err, quiz.ErrUnknownOption) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"step":           session.Step(),
		"question_index": session.QuestionIndex(),
	})
}

func (s *Service) handleQuizBack(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	if err := session.Back(); err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"step":           session.Step(),
		"question_index": session.QuestionIndex(),
	})
}

func (s *Service) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	session, ok := s.quizSession(w, r)
	if !ok {
		return
	}

	result, err := session.Result()
	if err != nil {
		s.respondError(w, http.StatusConflict, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

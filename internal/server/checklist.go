package server

import (
	"errors"
	"net/http"
	"strings"

	"vistonomade/internal/checklist"
	"vistonomade/pkg/types"

	"github.com/alexedwards/flow"
)

// boardFor returns the user's checklist board, restoring the persisted copy
// on first access. A failed restore falls back to a fresh system catalog;
// the board re-syncs on the next mutation.
func (s *Service) boardFor(r *http.Request) (*checklist.Board, error) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	email, _ := ctx.Value(contextKeyEmail).(string)

	tier := types.TierFree
	if member, err := s.memberRepo.Member(ctx, userID); err == nil {
		tier = member.Tier
	} else if !errors.Is(err, types.ErrMemberNotFound) {
		s.logger.WithError(err).WithField("user_id", userID).Warn("failed to load member tier, assuming free")
	}

	s.mu.Lock()
	board, ok := s.boards[userID]
	s.mu.Unlock()
	if ok {
		// Tier changes arrive via Stripe webhooks; pick them up on access.
		board.SetTier(tier)
		return board, nil
	}

	board = checklist.NewBoard(tier, nil, s.checklistRepo, s.tasks)
	if email != "" {
		board.SetEmail(email)
		items, err := s.checklistRepo.Checklist(ctx, email)
		if err == nil {
			board.Restore(items)
		} else if !errors.Is(err, types.ErrChecklistNotFound) {
			s.logger.WithError(err).WithField("email", email).Warn("failed to restore checklist, seeding fresh")
		}
	}

	s.mu.Lock()
	if existing, ok := s.boards[userID]; ok {
		board = existing
	} else {
		s.boards[userID] = board
	}
	s.mu.Unlock()

	return board, nil
}

func (s *Service) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	board, err := s.boardFor(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to load checklist board")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"items":    board.Items(),
		"progress": board.OverallProgress(),
	})
}

type personalItemForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
}

func (s *Service) handleAddPersonalItem(w http.ResponseWriter, r *http.Request) {
	board, err := s.boardFor(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to load checklist board")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	var item = new(personalItemForm)
	if err := decoder.Decode(item, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode personal item form")
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	category := types.ChecklistCategory(item.Category)
	if category == "" {
		category = types.CategoryPessoal
	}

	created, err := board.AddPersonalItem(item.Title, strings.TrimSpace(item.Description), category)
	if err != nil {
		if errors.Is(err, checklist.ErrPersonalItemCap) {
			s.respondError(w, http.StatusUnprocessableEntity, "limite de itens pessoais atingido no plano gratuito")
			return
		}
		s.logger.WithError(err).Error("failed to add personal item")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"item":     created,
		"progress": board.OverallProgress(),
	})
}

func (s *Service) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	board, err := s.boardFor(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to load checklist board")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	itemID := flow.Param(r.Context(), "id")
	field := checklist.ToggleField(strings.TrimSpace(r.FormValue("field")))

	if err := board.Toggle(itemID, field); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"items":    board.Items(),
		"progress": board.OverallProgress(),
	})
}

func (s *Service) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	board, err := s.boardFor(r)
	if err != nil {
		s.logger.WithError(err).Error("failed to load checklist board")
		s.internalServerError(w)
		return
	}

	itemID := flow.Param(r.Context(), "id")

	if err := board.DeleteItem(itemID); err != nil {
		if errors.Is(err, checklist.ErrSystemItem) {
			s.respondError(w, http.StatusForbidden, "itens do checklist oficial não podem ser removidos")
			return
		}
		s.logger.WithError(err).Error("failed to delete checklist item")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"items":    board.Items(),
		"progress": board.OverallProgress(),
	})
}

const maxProofSize = 10 << 20 // 10 MiB

func (s *Service) handleUploadProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	itemID := flow.Param(ctx, "id")

	key, err := s.proofs.UploadProof(ctx, userID, itemID, file, header.Header.Get("Content-Type"))
	if err != nil {
		s.logger.WithError(err).WithField("item_id", itemID).Error("failed to upload proof")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]string{"key": key})
}

package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"vistonomade/internal/utils"
	"vistonomade/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) isPremium(r *http.Request) bool {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		return false
	}

	member, err := s.memberRepo.Member(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, types.ErrMemberNotFound) {
			s.logger.WithError(err).WithField("user_id", userID).Warn("failed to load member for premium check")
		}
		return false
	}

	return member.Tier == types.TierPremium
}

func (s *Service) handleListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := s.guideRepo.PublishedGuides(r.Context(), s.isPremium(r))
	if err != nil {
		s.logger.WithError(err).Error("failed to list guides")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, guides)
}

func (s *Service) handleGetGuide(w http.ResponseWriter, r *http.Request) {
	slug := flow.Param(r.Context(), "slug")

	guide, err := s.guideRepo.GuideBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, types.ErrGuideNotFound) {
			s.respondError(w, http.StatusNotFound, "guide not found")
			return
		}
		s.logger.WithError(err).WithField("slug", slug).Error("failed to fetch guide")
		s.internalServerError(w)
		return
	}

	if !guide.Published() {
		s.respondError(w, http.StatusNotFound, "guide not found")
		return
	}

	if guide.IsPremium && !s.isPremium(r) {
		s.respondError(w, http.StatusPaymentRequired, "conteúdo exclusivo para membros da comunidade")
		return
	}

	s.respondJSON(w, http.StatusOK, guide)
}

func (s *Service) handleAdminListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := s.guideRepo.AllGuides(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list guides for admin")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, guides)
}

type guideForm struct {
	Slug         string `form:"slug"`
	Title        string `form:"title"`
	Category     string `form:"category"`
	Summary      string `form:"summary"`
	Body         string `form:"body"`
	IsPremium    bool   `form:"is_premium"`
	DisplayOrder int    `form:"display_order"`
	Published    bool   `form:"published"`
}

func (s *Service) decodeGuideForm(w http.ResponseWriter, r *http.Request) (*types.Guide, bool) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return nil, false
	}

	var f = new(guideForm)
	if err := decoder.Decode(f, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode guide form")
		s.respondError(w, http.StatusBadRequest, "invalid form payload")
		return nil, false
	}

	f.Slug = strings.TrimSpace(f.Slug)
	f.Title = strings.TrimSpace(f.Title)

	if f.Slug == "" || f.Title == "" || strings.TrimSpace(f.Body) == "" {
		s.respondError(w, http.StatusBadRequest, "slug, title and body are required")
		return nil, false
	}

	guide := &types.Guide{
		Slug:         f.Slug,
		Title:        f.Title,
		Category:     types.GuideCategory(f.Category),
		Body:         f.Body,
		IsPremium:    f.IsPremium,
		DisplayOrder: f.DisplayOrder,
	}
	if summary := strings.TrimSpace(f.Summary); summary != "" {
		guide.Summary = utils.StringPtr(summary)
	}
	if f.Published {
		guide.PublishedAt = utils.TimePtr(time.Now())
	}

	return guide, true
}

func (s *Service) handleAdminCreateGuide(w http.ResponseWriter, r *http.Request) {
	guide, ok := s.decodeGuideForm(w, r)
	if !ok {
		return
	}

	if err := s.guideRepo.CreateGuide(r.Context(), guide); err != nil {
		s.logger.WithError(err).Error("failed to create guide")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, guide)
}

func (s *Service) handleAdminUpdateGuide(w http.ResponseWriter, r *http.Request) {
	guideID := flow.Param(r.Context(), "id")

	current, err := s.guideRepo.GuideBySlug(r.Context(), r.FormValue("slug"))
	if err != nil && !errors.Is(err, types.ErrGuideNotFound) {
		s.logger.WithError(err).Error("failed to check guide slug")
		s.internalServerError(w)
		return
	}
	if err == nil && current.ID != guideID {
		s.respondError(w, http.StatusConflict, "slug already in use")
		return
	}

	guide, ok := s.decodeGuideForm(w, r)
	if !ok {
		return
	}

	if err := s.guideRepo.UpdateGuide(r.Context(), guideID, guide); err != nil {
		s.logger.WithError(err).WithField("guide_id", guideID).Error("failed to update guide")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, guide)
}

func (s *Service) handleAdminDeleteGuide(w http.ResponseWriter, r *http.Request) {
	guideID := flow.Param(r.Context(), "id")

	if err := s.guideRepo.DeleteGuide(r.Context(), guideID); err != nil {
		s.logger.WithError(err).WithField("guide_id", guideID).Error("failed to delete guide")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"deleted": guideID})
}

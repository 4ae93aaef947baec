package server

import (
	"io"
	"net/http"
)

func (s *Service) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ctx doesn't contain user")
		s.internalServerError(w)
		return
	}
	email, _ := ctx.Value(contextKeyEmail).(string)

	// The member row must exist before the webhook can upgrade it.
	if err := s.memberRepo.EnsureMember(ctx, userID, email); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to ensure member before checkout")
		s.internalServerError(w)
		return
	}

	url, err := s.payments.CreateCheckoutSession(userID, email)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to create checkout session")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

const maxWebhookBody = 64 << 10

func (s *Service) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	event, err := s.payments.ConstructEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		s.logger.WithError(err).Warn("stripe webhook signature verification failed")
		s.respondError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	if err := s.payments.HandleEvent(r.Context(), event); err != nil {
		s.logger.WithError(err).WithField("type", event.Type).Error("failed to handle stripe event")
		// Non-2xx makes Stripe retry the delivery.
		s.internalServerError(w)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Package payments delegates billing to Stripe Checkout. The server only
// creates checkout sessions and reacts to the two webhook events that change
// a member's tier.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vistonomade/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/webhook"
)

// MemberStore is the membership side the webhook handlers write to.
type MemberStore interface {
	SetTier(ctx context.Context, userID string, tier types.MemberTier, customerID, subscriptionID string) error
	MemberBySubscription(ctx context.Context, subscriptionID string) (*types.Member, error)
}

type Service struct {
	logger        *logrus.Logger
	members       MemberStore
	webhookSecret string
	priceID       string
	successURL    string
	cancelURL     string
}

func New(config *types.Config, members MemberStore, logger *logrus.Logger) *Service {
	stripe.Key = config.StripeSecretKey

	return &Service{
		logger:        logger,
		members:       members,
		webhookSecret: config.StripeWebhookSecret,
		priceID:       config.StripePriceID,
		successURL:    config.CheckoutSuccessURL,
		cancelURL:     config.CheckoutCancelURL,
	}
}

// CreateCheckoutSession starts a subscription checkout for the community
// plan and returns the hosted checkout URL to redirect the user to.
func (s *Service) CreateCheckoutSession(userID, email string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
	}
	params.AddMetadata("user_id", userID)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return sess.URL, nil
}

// ConstructEvent verifies the webhook signature and parses the event.
func (s *Service) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
}

// HandleEvent dispatches the two billing events this app cares about.
// Everything else is acknowledged and ignored.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		s.logger.WithField("type", event.Type).Debug("ignoring stripe event")
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("parse checkout.session.completed: %w", err)
	}

	userID := sess.Metadata["user_id"]
	if userID == "" {
		return errors.New("checkout session missing user_id metadata")
	}

	customerID := ""
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	subscriptionID := ""
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}

	if err := s.members.SetTier(ctx, userID, types.TierPremium, customerID, subscriptionID); err != nil {
		return fmt.Errorf("upgrade member %s: %w", userID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"subscription": subscriptionID,
	}).Info("member upgraded to premium")

	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("parse customer.subscription.deleted: %w", err)
	}

	member, err := s.members.MemberBySubscription(ctx, sub.ID)
	if err != nil {
		if errors.Is(err, types.ErrMemberNotFound) {
			s.logger.WithField("subscription", sub.ID).Warn("subscription deleted for unknown member")
			return nil
		}
		return fmt.Errorf("resolve member for subscription %s: %w", sub.ID, err)
	}

	if err := s.members.SetTier(ctx, member.UserID, types.TierFree, "", ""); err != nil {
		return fmt.Errorf("downgrade member %s: %w", member.UserID, err)
	}

	s.logger.WithField("user_id", member.UserID).Info("member downgraded to free")
	return nil
}

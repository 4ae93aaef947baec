package types

import (
	"errors"
	"time"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberTier string

const (
	TierFree    MemberTier = "free"
	TierPremium MemberTier = "premium"
)

// PersonalItemCap is the number of personal checklist items a member may
// create. Premium members are uncapped.
func (t MemberTier) PersonalItemCap() int {
	if t == TierPremium {
		return -1
	}
	return 10
}

// Member ties an authenticated user to their community membership tier and
// Stripe billing identity.
type Member struct {
	UserID               string     `db:"user_id"`
	Email                string     `db:"email"`
	Tier                 MemberTier `db:"tier"`
	StripeCustomerID     *string    `db:"stripe_customer_id"`
	StripeSubscriptionID *string    `db:"stripe_subscription_id"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

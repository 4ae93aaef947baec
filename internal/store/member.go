package store

import (
	"context"
	"fmt"
	"time"

	"vistonomade/internal/utils"
	"vistonomade/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const memberTableName = "vistonomade.members"

var memberColumns = utils.StructTagValues(types.Member{})

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) Member(ctx context.Context, userID string) (*types.Member, error) {
	query, args, err := psql().Select(memberColumns...).From(memberTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate member query: %w", err)
	}

	var member = new(types.Member)
	err = pgxscan.Get(ctx, r.pool, member, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMemberNotFound
	}

	return member, nil
}

// EnsureMember upserts the free-tier row created on first login. An existing
// row keeps its tier and billing identity.
func (r *MemberRepository) EnsureMember(ctx context.Context, userID, email string) error {
	query := `
		INSERT INTO vistonomade.members (user_id, email, tier, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (user_id)
		DO UPDATE SET email = EXCLUDED.email, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, userID, email, types.TierFree)
	return utils.ErrorWrapOrNil(err, "failed to ensure member")
}

// SetTier changes the membership tier, recording the Stripe identifiers when
// the change came from billing events.
func (r *MemberRepository) SetTier(ctx context.Context, userID string, tier types.MemberTier, customerID, subscriptionID string) error {
	query, args, err := psql().Update(memberTableName).
		Set("tier", tier).
		Set("stripe_customer_id", nullable(customerID)).
		Set("stripe_subscription_id", nullable(subscriptionID)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate set tier query for member %s: %w", userID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to set member tier")
}

// MemberBySubscription resolves the member a Stripe subscription belongs to.
func (r *MemberRepository) MemberBySubscription(ctx context.Context, subscriptionID string) (*types.Member, error) {
	query, args, err := psql().Select(memberColumns...).From(memberTableName).
		Where(sq.Eq{"stripe_subscription_id": subscriptionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate member by subscription query: %w", err)
	}

	var member = new(types.Member)
	err = pgxscan.Get(ctx, r.pool, member, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMemberNotFound
	}

	return member, nil
}

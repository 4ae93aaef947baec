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

const leadTableName = "vistonomade.leads"

var leadColumns = utils.StructTagValues(types.Lead{})

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) Lead(ctx context.Context, leadID string) (*types.Lead, error) {
	query, args, err := psql().Select(leadColumns...).From(leadTableName).
		Where(sq.Eq{"id": leadID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lead query: %w", err)
	}

	var lead = new(types.Lead)
	err = pgxscan.Get(ctx, r.pool, lead, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrLeadNotFound
	}

	return lead, nil
}

func (r *LeadRepository) CreateLead(ctx context.Context, lead *types.Lead) error {
	now := time.Now()
	lead.ID = utils.NanoID()
	lead.Status = types.LeadStatusStarted
	lead.CreatedAt = now
	lead.UpdatedAt = now

	leadMap := utils.StructToMap(lead)

	query, args, err := psql().Insert(leadTableName).SetMap(leadMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert lead query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create lead")
}

// CompleteLead closes out a lead once its quiz run finished.
func (r *LeadRepository) CompleteLead(ctx context.Context, leadID string, result types.Tier, score int) error {
	query, args, err := psql().Update(leadTableName).
		Set("status", types.LeadStatusCompleted).
		Set("result", result).
		Set("score", score).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": leadID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate complete lead query for lead %s: %w", leadID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to complete lead")
}

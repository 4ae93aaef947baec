package store

import (
	"context"
	"encoding/json"
	"fmt"

	"vistonomade/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const checklistTableName = "vistonomade.checklists"

type ChecklistRepository struct {
	pool *pgxpool.Pool
}

func NewChecklistRepository(pool *pgxpool.Pool) *ChecklistRepository {
	return &ChecklistRepository{pool: pool}
}

// UpsertChecklist writes the full serialized item list keyed by the user's
// email. Last write wins; the client-side copy stays authoritative during a
// session.
func (r *ChecklistRepository) UpsertChecklist(ctx context.Context, email string, items []types.ChecklistItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal checklist for %s: %w", email, err)
	}

	query := `
		INSERT INTO vistonomade.checklists (email, items, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (email)
		DO UPDATE SET items = EXCLUDED.items, updated_at = now()`

	_, err = r.pool.Exec(ctx, query, email, payload)
	if err != nil {
		return fmt.Errorf("upsert checklist for %s: %w", email, err)
	}

	return nil
}

func (r *ChecklistRepository) Checklist(ctx context.Context, email string) ([]types.ChecklistItem, error) {
	query, args, err := psql().
		Select("items").
		From(checklistTableName).
		Where("email = ?", email).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate checklist query: %w", err)
	}

	var payload []byte
	err = pgxscan.Get(ctx, r.pool, &payload, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrChecklistNotFound
	}

	var items []types.ChecklistItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("unmarshal checklist for %s: %w", email, err)
	}

	return items, nil
}

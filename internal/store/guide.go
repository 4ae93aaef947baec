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

const guideTableName = "vistonomade.guides"

var guideColumns = utils.StructTagValues(types.Guide{})

type GuideRepository struct {
	pool *pgxpool.Pool
}

func NewGuideRepository(pool *pgxpool.Pool) *GuideRepository {
	return &GuideRepository{pool: pool}
}

// PublishedGuides lists guides visible to members, optionally including the
// premium set.
func (r *GuideRepository) PublishedGuides(ctx context.Context, includePremium bool) ([]*types.Guide, error) {
	builder := psql().Select(guideColumns...).From(guideTableName).
		Where(sq.LtOrEq{"published_at": time.Now()}).
		OrderBy("display_order ASC", "title ASC")

	if !includePremium {
		builder = builder.Where(sq.Eq{"is_premium": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate guides query: %w", err)
	}

	var guides []*types.Guide
	err = pgxscan.Select(ctx, r.pool, &guides, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guides: %w", err)
	}

	return guides, nil
}

// AllGuides lists every guide for the admin panel, drafts included.
func (r *GuideRepository) AllGuides(ctx context.Context) ([]*types.Guide, error) {
	query, args, err := psql().Select(guideColumns...).From(guideTableName).
		OrderBy("display_order ASC", "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all guides query: %w", err)
	}

	var guides []*types.Guide
	err = pgxscan.Select(ctx, r.pool, &guides, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all guides: %w", err)
	}

	return guides, nil
}

func (r *GuideRepository) GuideBySlug(ctx context.Context, slug string) (*types.Guide, error) {
	query, args, err := psql().Select(guideColumns...).From(guideTableName).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate guide query: %w", err)
	}

	var guide = new(types.Guide)
	err = pgxscan.Get(ctx, r.pool, guide, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrGuideNotFound
	}

	return guide, nil
}

func (r *GuideRepository) CreateGuide(ctx context.Context, guide *types.Guide) error {
	now := time.Now()
	if guide.ID == "" {
		guide.ID = utils.NanoID()
	}
	guide.CreatedAt = now
	guide.UpdatedAt = now

	guideMap := utils.StructToMap(guide)

	query, args, err := psql().Insert(guideTableName).SetMap(guideMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert guide query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create guide")
}

func (r *GuideRepository) UpdateGuide(ctx context.Context, guideID string, guide *types.Guide) error {
	guide.ID = guideID
	guide.UpdatedAt = time.Now()

	guideMap := utils.StructToMap(guide)
	delete(guideMap, "created_at")

	query, args, err := psql().Update(guideTableName).SetMap(guideMap).Where(sq.Eq{"id": guideID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update guide query for guide %s: %w", guideID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update guide")
}

func (r *GuideRepository) DeleteGuide(ctx context.Context, guideID string) error {
	query, args, err := psql().Delete(guideTableName).Where(sq.Eq{"id": guideID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete guide query for guide %s: %w", guideID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete guide")
}

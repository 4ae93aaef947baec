package types

import (
	"errors"
	"time"
)

var ErrGuideNotFound = errors.New("guide not found")

type GuideCategory string

const (
	GuideCategoryVisto      GuideCategory = "visto"
	GuideCategoryDocumentos GuideCategory = "documentos"
	GuideCategoryMudanca    GuideCategory = "mudanca"
	GuideCategoryImpostos   GuideCategory = "impostos"
	GuideCategoryVidaLocal  GuideCategory = "vida-local"
)

// Guide is a curated long-form article managed through the admin panel.
// Premium guides are only served to paying members.
type Guide struct {
	ID           string        `db:"id"`
	Slug         string        `db:"slug"`
	Title        string        `db:"title"`
	Category     GuideCategory `db:"category"`
	Summary      *string       `db:"summary"`
	Body         string        `db:"body"`
	IsPremium    bool          `db:"is_premium"`
	DisplayOrder int           `db:"display_order"`
	PublishedAt  *time.Time    `db:"published_at"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (g *Guide) Published() bool {
	return g.PublishedAt != nil && !g.PublishedAt.After(time.Now())
}

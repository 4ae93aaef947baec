package types

import "errors"

var ErrChecklistNotFound = errors.New("checklist not found")

type ChecklistCategory string

const (
	CategoryDocumentos ChecklistCategory = "documentos"
	CategoryFinanceiro ChecklistCategory = "financeiro"
	CategoryTrabalho   ChecklistCategory = "trabalho"
	CategorySaude      ChecklistCategory = "saude"
	CategoryConsulado  ChecklistCategory = "consulado"
	CategoryPessoal    ChecklistCategory = "pessoal"
)

// ChecklistItem is one document or task on the visa checklist. System items
// are seeded from the static catalog and can only be toggled; personal items
// are user-created and may also be deleted. NeedsTranslation and
// NeedsApostille are fixed at creation and never change afterwards.
type ChecklistItem struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Category         ChecklistCategory `json:"category"`
	Description      string            `json:"description"`
	IsCompleted      bool              `json:"is_completed"`
	NeedsTranslation bool              `json:"needs_translation"`
	IsTranslated     bool              `json:"is_translated"`
	NeedsApostille   bool              `json:"needs_apostille"`
	IsApostilled     bool              `json:"is_apostilled"`
	IsPersonal       bool              `json:"is_personal"`
}

// Finalized reports whether the item counts toward overall progress: the
// completion flag is set and every required sub-step (sworn translation,
// apostille) is done.
func (i ChecklistItem) Finalized() bool {
	if !i.IsCompleted {
		return false
	}
	if i.NeedsTranslation && !i.IsTranslated {
		return false
	}
	if i.NeedsApostille && !i.IsApostilled {
		return false
	}
	return true
}

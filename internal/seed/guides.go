package seed

import (
	"context"
	"fmt"
	"time"

	"vistonomade/internal/store"
	"vistonomade/internal/utils"
	"vistonomade/pkg/types"
)

// SeedGuides syncs the database with the guide definitions below.
// This file is the source of truth for the base guide catalog:
// - Inserts new guides that don't exist
// - Updates existing guides that have changed
// - Deletes guides from DB that aren't in this list
//
// To generate new IDs: `go run ./cmd/vistonomade nanoid`
// Guides created later through the admin panel use ids outside this list and
// are left alone only if added here; the base catalog is fully managed.
func SeedGuides(ctx context.Context, repo *store.GuideRepository) error {
	now := time.Now()

	guides := []types.Guide{
		{
			ID:           "gd2nV71xkQe4YbPzJmA8RsTw0CuHfLio",
			Slug:         "visto-nomade-digital-passo-a-passo",
			Title:        "Visto nômade digital: o passo a passo completo",
			Category:     types.GuideCategoryVisto,
			Summary:      utils.StringPtr("Do agendamento no consulado à retirada do visto, em ordem."),
			Body:         "O visto de teletrabalho espanhol permite residir na Espanha trabalhando remotamente para empresas fora do país...",
			IsPremium:    false,
			DisplayOrder: 1,
			PublishedAt:  utils.TimePtr(now),
		},
		{
			ID:           "Kq8LmB34Zx1WvNcYdRt6PaUs9EhJfgo2",
			Slug:         "apostila-de-haia-e-traducao-juramentada",
			Title:        "Apostila de Haia e tradução juramentada sem mistério",
			Category:     types.GuideCategoryDocumentos,
			Summary:      utils.StringPtr("Quais documentos precisam de apostila, onde apostilar e quanto custa."),
			Body:         "Todo documento público brasileiro apresentado ao consulado precisa da Apostila de Haia, emitida em cartório...",
			IsPremium:    false,
			DisplayOrder: 2,
			PublishedAt:  utils.TimePtr(now),
		},
		{
			ID:           "Xw5RaT90QnJ7bVfKcLs2MpYd4ZuGhE1i",
			Slug:         "comprovacao-de-renda-para-o-consulado",
			Title:        "Como comprovar renda para o consulado",
			Category:     types.GuideCategoryDocumentos,
			Summary:      utils.StringPtr("Formas aceitas de comprovar a renda mínima e erros que reprovam o pedido."),
			Body:         "A renda mínima exigida é de 200% do SMI espanhol. Para CLT remoto, apresente holerites e contrato...",
			IsPremium:    true,
			DisplayOrder: 3,
			PublishedAt:  utils.TimePtr(now),
		},
		{
			ID:           "Bv3JcE58HmD1fWqXsNt0KzLr7YuPaIo6",
			Slug:         "impostos-brasil-espanha",
			Title:        "Impostos entre Brasil e Espanha para nômades",
			Category:     types.GuideCategoryImpostos,
			Summary:      utils.StringPtr("Residência fiscal, regime Beckham e o acordo de bitributação."),
			Body:         "Ao passar mais de 183 dias na Espanha você vira residente fiscal espanhol. O regime especial...",
			IsPremium:    true,
			DisplayOrder: 4,
			PublishedAt:  utils.TimePtr(now),
		},
		{
			ID:           "Tn1PfU27GkC9dXbZrQw4JvMy6LsEhAo8",
			Slug:         "primeiros-30-dias-na-espanha",
			Title:        "Os primeiros 30 dias na Espanha",
			Category:     types.GuideCategoryVidaLocal,
			Summary:      utils.StringPtr("TIE, empadronamento, conta bancária e moradia na chegada."),
			Body:         "Com o visto no passaporte, os primeiros compromissos na Espanha são o empadronamento na prefeitura...",
			IsPremium:    false,
			DisplayOrder: 5,
			PublishedAt:  utils.TimePtr(now),
		},
	}

	existing, err := repo.AllGuides(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing guides: %w", err)
	}

	existingByID := make(map[string]*types.Guide, len(existing))
	for _, g := range existing {
		existingByID[g.ID] = g
	}

	wanted := make(map[string]bool, len(guides))
	created, updated, deleted := 0, 0, 0

	for i := range guides {
		g := guides[i]
		wanted[g.ID] = true

		current, ok := existingByID[g.ID]
		if !ok {
			if err := repo.CreateGuide(ctx, &g); err != nil {
				return fmt.Errorf("failed to create guide %s: %w", g.Slug, err)
			}
			created++
			continue
		}

		if guideChanged(current, &g) {
			if err := repo.UpdateGuide(ctx, g.ID, &g); err != nil {
				return fmt.Errorf("failed to update guide %s: %w", g.Slug, err)
			}
			updated++
		}
	}

	for _, g := range existing {
		if wanted[g.ID] {
			continue
		}
		if err := repo.DeleteGuide(ctx, g.ID); err != nil {
			return fmt.Errorf("failed to delete guide %s: %w", g.Slug, err)
		}
		deleted++
	}

	fmt.Printf("Guides seeded: %d created, %d updated, %d deleted\n", created, updated, deleted)
	return nil
}

func guideChanged(current, want *types.Guide) bool {
	return current.Slug != want.Slug ||
		current.Title != want.Title ||
		current.Category != want.Category ||
		utils.PtrString(current.Summary) != utils.PtrString(want.Summary) ||
		current.Body != want.Body ||
		current.IsPremium != want.IsPremium ||
		current.DisplayOrder != want.DisplayOrder
}

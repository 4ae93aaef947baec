package checklist

import "vistonomade/pkg/types"

// SystemCatalog is the fixed set of documents every application starts with.
// Seeded once per user on first load; system items can be toggled but never
// deleted. IDs are stable so remote and local copies line up.
var SystemCatalog = []types.ChecklistItem{
	{
		ID:               "passaporte",
		Title:            "Passaporte válido",
		Category:         types.CategoryDocumentos,
		Description:      "Validade mínima de 1 ano e pelo menos duas páginas em branco.",
		NeedsTranslation: false,
		NeedsApostille:   false,
	},
	{
		ID:               "antecedentes-criminais",
		Title:            "Certidão de antecedentes criminais",
		Category:         types.CategoryDocumentos,
		Description:      "Emitida pela Polícia Federal, dos últimos 5 anos de residência.",
		NeedsTranslation: true,
		NeedsApostille:   true,
	},
	{
		ID:               "certidao-nascimento",
		Title:            "Certidão de nascimento ou casamento",
		Category:         types.CategoryDocumentos,
		Description:      "Segunda via atualizada, exigida para dependentes.",
		NeedsTranslation: true,
		NeedsApostille:   true,
	},
	{
		ID:               "contrato-trabalho",
		Title:            "Contrato de trabalho ou de prestação de serviços",
		Category:         types.CategoryTrabalho,
		Description:      "Comprovando vínculo de pelo menos 3 meses e autorização para trabalho remoto.",
		NeedsTranslation: true,
		NeedsApostille:   false,
	},
	{
		ID:               "carta-empresa",
		Title:            "Carta da empresa autorizando trabalho remoto",
		Category:         types.CategoryTrabalho,
		Description:      "Assinada pelo representante legal, citando o cargo e a data de admissão.",
		NeedsTranslation: true,
		NeedsApostille:   false,
	},
	{
		ID:               "comprovante-renda",
		Title:            "Comprovantes de renda dos últimos 3 meses",
		Category:         types.CategoryFinanceiro,
		Description:      "Holerites, notas fiscais ou extratos que comprovem a renda mínima.",
		NeedsTranslation: true,
		NeedsApostille:   false,
	},
	{
		ID:               "extrato-bancario",
		Title:            "Extratos bancários",
		Category:         types.CategoryFinanceiro,
		Description:      "Extratos dos últimos 6 meses da conta principal.",
		NeedsTranslation: false,
		NeedsApostille:   false,
	},
	{
		ID:               "seguro-saude",
		Title:            "Seguro saúde com cobertura na Espanha",
		Category:         types.CategorySaude,
		Description:      "Cobertura completa, sem copagamento e sem carência.",
		NeedsTranslation: false,
		NeedsApostille:   false,
	},
	{
		ID:               "diploma",
		Title:            "Diploma universitário ou comprovação de experiência",
		Category:         types.CategoryTrabalho,
		Description:      "Diploma de ensino superior ou comprovação de 3 anos de experiência na área.",
		NeedsTranslation: true,
		NeedsApostille:   true,
	},
	{
		ID:               "formulario-consulado",
		Title:            "Formulário nacional de visto preenchido",
		Category:         types.CategoryConsulado,
		Description:      "Formulário oficial do consulado, assinado, com foto recente 3x4.",
		NeedsTranslation: false,
		NeedsApostille:   false,
	},
	{
		ID:               "taxa-consular",
		Title:            "Pagamento da taxa consular",
		Category:         types.CategoryConsulado,
		Description:      "Comprovante do pagamento da taxa de visto nacional.",
		NeedsTranslation: false,
		NeedsApostille:   false,
	},
}

// NewSystemItems returns a fresh copy of the system catalog for seeding one
// user's board.
func NewSystemItems() []types.ChecklistItem {
	items := make([]types.ChecklistItem, len(SystemCatalog))
	copy(items, SystemCatalog)
	return items
}

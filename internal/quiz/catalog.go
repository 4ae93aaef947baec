package quiz

import "vistonomade/pkg/types"

// Answer value codes that hard-block eligibility. Legal requirements: minimum
// monthly income, at least 3 months of professional relationship, and a clean
// criminal record. No score compensates for these.
const (
	ValueIncomeLow      = "low"
	ValueTenureUnder3   = "less_3"
	ValueCriminalRecord = "yes_record"
)

const (
	QuestionIncome   = 2
	QuestionTenure   = 3
	QuestionCriminal = 5
)

// Questions is the fixed quiz catalog. Prompts and option labels are shown to
// the user as-is; value codes and points feed the scorer.
var Questions = []types.Question{
	{
		ID:     1,
		Prompt: "Qual é a sua situação profissional atual?",
		Options: []types.Option{
			{Text: "CLT com trabalho 100% remoto", Value: "clt_remote", Points: 10},
			{Text: "PJ prestando serviço para empresa estrangeira", Value: "pj_foreign", Points: 10},
			{Text: "Autônomo / freelancer com clientes fixos", Value: "freelancer", Points: 5},
			{Text: "Sem vínculo de trabalho no momento", Value: "unemployed", Points: 0},
		},
	},
	{
		ID:     QuestionIncome,
		Prompt: "Qual é a sua renda mensal média (em euros)?",
		Options: []types.Option{
			{Text: "Abaixo de € 2.400", Value: ValueIncomeLow, Points: 0},
			{Text: "Entre € 2.400 e € 3.500", Value: "mid", Points: 8},
			{Text: "Entre € 3.500 e € 5.000", Value: "good", Points: 12},
			{Text: "Acima de € 5.000", Value: "high", Points: 15},
		},
	},
	{
		ID:     QuestionTenure,
		Prompt: "Há quanto tempo você trabalha com seu empregador ou clientes atuais?",
		Options: []types.Option{
			{Text: "Menos de 3 meses", Value: ValueTenureUnder3, Points: 0},
			{Text: "Entre 3 meses e 1 ano", Value: "3_to_12", Points: 5},
			{Text: "Mais de 1 ano", Value: "more_12", Points: 10},
		},
	},
	{
		ID:     4,
		Prompt: "Seu trabalho pode ser feito de qualquer lugar?",
		Options: []types.Option{
			{Text: "Sim, é totalmente remoto", Value: "fully_remote", Points: 12},
			{Text: "Parcialmente, com alguma presença exigida", Value: "partial", Points: 5},
			{Text: "Não, exige presença física", Value: "on_site", Points: 0},
		},
	},
	{
		ID:     QuestionCriminal,
		Prompt: "Você possui antecedentes criminais nos últimos 5 anos?",
		Options: []types.Option{
			{Text: "Não", Value: "no_record", Points: 10},
			{Text: "Sim", Value: ValueCriminalRecord, Points: -50},
		},
	},
	{
		ID:     6,
		Prompt: "Qual é a sua qualificação profissional?",
		Options: []types.Option{
			{Text: "Ensino superior completo", Value: "degree", Points: 10},
			{Text: "Mais de 3 anos de experiência comprovada na área", Value: "experience", Points: 10},
			{Text: "Nenhuma das anteriores", Value: "none", Points: 0},
		},
	},
	{
		ID:     7,
		Prompt: "Você tem reserva financeira para os primeiros meses na Espanha?",
		Options: []types.Option{
			{Text: "Sim, mais de 6 meses de despesas", Value: "full_reserve", Points: 8},
			{Text: "Tenho uma reserva parcial", Value: "partial_reserve", Points: 4},
			{Text: "Ainda não tenho reserva", Value: "no_reserve", Points: 0},
		},
	},
	{
		ID:     8,
		Prompt: "Quem vai se mudar com você?",
		Options: []types.Option{
			{Text: "Vou sozinho(a)", Value: "alone", Points: 5},
			{Text: "Eu e meu cônjuge", Value: "spouse", Points: 3},
			{Text: "Família com filhos", Value: "family", Points: 2},
		},
	},
}

// QuestionByIndex returns the catalog question at the given position.
func QuestionByIndex(i int) (types.Question, bool) {
	if i < 0 || i >= len(Questions) {
		return types.Question{}, false
	}
	return Questions[i], true
}

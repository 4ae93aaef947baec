package quiz

import "vistonomade/pkg/types"

// Tier thresholds applied when no deal-breaker fires.
const (
	scoreTierA = 70
	scoreTierB = 40
)

var disqualifierReasons = map[string]string{
	ValueIncomeLow:      "Renda mensal abaixo do mínimo exigido para o visto (cerca de € 2.400).",
	ValueTenureUnder3:   "Relação profissional com menos de 3 meses — o consulado exige pelo menos 3 meses.",
	ValueCriminalRecord: "Antecedentes criminais nos últimos 5 anos impedem a concessão do visto.",
}

// disqualifierOrder keeps the rationale list stable; the order itself is not
// a contract, only that every listed reason is accurate.
var disqualifierOrder = []string{ValueIncomeLow, ValueTenureUnder3, ValueCriminalRecord}

// Score maps an ordered answer sequence to an eligibility tier. Pure function:
// the same sequence always yields the same result.
//
// Deal-breaker values force tier C regardless of the point total. Otherwise
// the total decides: >= 70 is A, >= 40 is B, anything below is C with a
// score-shortfall reason.
func Score(answers []types.Answer) types.EligibilityResult {
	total := 0
	present := make(map[string]bool, len(answers))
	for _, a := range answers {
		total += a.Points
		present[a.Value] = true
	}

	var triggered []string
	for _, code := range disqualifierOrder {
		if present[code] {
			triggered = append(triggered, code)
		}
	}

	result := types.EligibilityResult{TotalScore: total}

	if len(triggered) > 0 {
		result.Tier = types.TierC
		result.TriggeredDisqualifiers = triggered
		for _, code := range triggered {
			result.Reasons = append(result.Reasons, disqualifierReasons[code])
		}
		return result
	}

	switch {
	case total >= scoreTierA:
		result.Tier = types.TierA
	case total >= scoreTierB:
		result.Tier = types.TierB
	default:
		result.Tier = types.TierC
		result.Reasons = append(result.Reasons,
			"Pontuação abaixo do mínimo para elegibilidade — seu perfil ainda não atende aos critérios do visto.")
	}

	return result
}

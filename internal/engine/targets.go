package engine

import "github.com/remardo/nutrios/internal/models"

// Tolerances describes the accepted corridor around each macro target.
// Percentages are fractions; MinGrams* are absolute floors applied to the
// gram macros (kcal has no floor).
type Tolerances struct {
	KcalPct     float64
	ProteinPct  float64
	FatPct      float64
	CarbsPct    float64
	MinProteinG float64
	MinFatG     float64
	MinCarbsG   float64
}

type Targets struct {
	KcalTarget     float64
	ProteinTargetG float64
	FatTargetG     float64
	CarbsTargetG   float64
	Tolerances     Tolerances
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		KcalPct:     0.10,
		ProteinPct:  0.20,
		FatPct:      0.20,
		CarbsPct:    0.20,
		MinProteinG: 10,
		MinFatG:     10,
		MinCarbsG:   15,
	}
}

func DefaultTargets() Targets {
	return Targets{
		KcalTarget:     2000,
		ProteinTargetG: 100,
		FatTargetG:     70,
		CarbsTargetG:   250,
		Tolerances:     DefaultTolerances(),
	}
}

// TolerancesFromMap overlays a stored tolerance map onto the defaults.
// Unknown or unparsable entries keep their default.
func TolerancesFromMap(raw map[string]any) Tolerances {
	tolerances := DefaultTolerances()
	if raw == nil {
		return tolerances
	}
	if value := floatValue(raw["kcal_pct"]); value != nil {
		tolerances.KcalPct = *value
	}
	if value := floatValue(raw["protein_pct"]); value != nil {
		tolerances.ProteinPct = *value
	}
	if value := floatValue(raw["fat_pct"]); value != nil {
		tolerances.FatPct = *value
	}
	if value := floatValue(raw["carbs_pct"]); value != nil {
		tolerances.CarbsPct = *value
	}
	minGrams, ok := raw["min_g"].(map[string]any)
	if !ok {
		return tolerances
	}
	if value := floatValue(minGrams["p"]); value != nil {
		tolerances.MinProteinG = *value
	}
	if value := floatValue(minGrams["f"]); value != nil {
		tolerances.MinFatG = *value
	}
	if value := floatValue(minGrams["c"]); value != nil {
		tolerances.MinCarbsG = *value
	}
	return tolerances
}

// TargetsFromModel converts a stored row into engine targets with
// tolerance defaults applied.
func TargetsFromModel(row models.ClientTargets) Targets {
	return Targets{
		KcalTarget:     float64(row.KcalTarget),
		ProteinTargetG: float64(row.ProteinTargetG),
		FatTargetG:     float64(row.FatTargetG),
		CarbsTargetG:   float64(row.CarbsTargetG),
		Tolerances:     TolerancesFromMap(row.Tolerances),
	}
}

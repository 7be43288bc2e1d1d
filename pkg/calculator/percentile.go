package calculator

import (
	"fmt"
	"math"
	"sort"

	"customer-insights/pkg/models"
)

// Percentiles calcule les seuils de distribution par interpolation linéaire
// continue (sémantique "percentile_cont") : pour un percentile p sur n valeurs
// triées, rang r = p × (n − 1) ; si r est entier on renvoie la valeur à ce
// rang, sinon on interpole entre les rangs plancher et plafond.
// Cas dégénérés : n = 1 renvoie cette valeur unique pour tous les percentiles ;
// n = 0 échoue avec EmptyPopulationError.
func Percentiles(values []float64, ps []float64, metric string) (map[float64]float64, error) {
	if len(values) == 0 {
		return nil, &models.EmptyPopulationError{Metric: metric}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	out := make(map[float64]float64, len(ps))
	for _, p := range ps {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("percentile hors bornes: %v", p)
		}
		r := p * float64(len(sorted)-1)
		lo := int(math.Floor(r))
		hi := int(math.Ceil(r))
		if lo == hi {
			out[p] = sorted[lo]
			continue
		}
		frac := r - float64(lo)
		out[p] = sorted[lo] + (sorted[hi]-sorted[lo])*frac
	}
	return out, nil
}

// Tier associe une étiquette à son seuil d'entrée.
type Tier struct {
	Label     string
	Threshold float64
}

// AssignTier attribue le niveau le plus élevé dont le seuil est atteint.
// Les niveaux sont ordonnés du plus haut au plus bas ; comparaison par >=,
// donc une valeur exactement au seuil monte dans le niveau supérieur.
func AssignTier(value float64, tiers []Tier, fallback string) string {
	for _, t := range tiers {
		if value >= t.Threshold {
			return t.Label
		}
	}
	return fallback
}

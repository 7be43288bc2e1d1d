package calculator

import (
	"math"
	"time"

	"customer-insights/pkg/models"
)

const dayHours = 24.0

// RecencyDays : nombre de jours entiers écoulés entre le dernier achat et la
// date de référence.
func RecencyDays(agg *models.CustomerAggregate, reference time.Time) int {
	return int(reference.Sub(agg.LastPurchase).Hours() / dayHours)
}

// AvgGapDays calcule l'écart moyen (en jours) entre achats consécutifs d'un
// client, arrondi à 2 décimales. Le premier achat ne produit pas d'écart ;
// un client à moins de 2 achats ne produit aucune statistique (ok=false,
// exclu des classements, pas traité comme zéro).
func AvgGapDays(dates []time.Time) (avg float64, gaps int, ok bool) {
	if len(dates) < 2 {
		return 0, 0, false
	}
	var total float64
	for i := 1; i < len(dates); i++ {
		total += dates[i].Sub(dates[i-1]).Hours() / dayHours
	}
	gaps = len(dates) - 1
	return round2(total / float64(gaps)), gaps, true
}

// ActivityCounts : nombre de transactions d'un client dans chaque fenêtre.
type ActivityCounts struct {
	Past   int
	Recent int
}

// Declining : l'activité récente est inférieure à l'activité passée.
func (c ActivityCounts) Declining() bool { return c.Recent < c.Past }

// ActivityTrend compte les transactions par client dans deux fenêtres
// disjointes : passé = [pastStart, pastEnd), récent = [pastEnd, recentEnd].
// Un client absent de la fenêtre passée est exclu du résultat (aucune base de
// comparaison) ; un client absent de la fenêtre récente garde Recent = 0.
func ActivityTrend(aggs map[string]*models.CustomerAggregate, pastStart, pastEnd, recentEnd time.Time) map[string]ActivityCounts {
	out := make(map[string]ActivityCounts)
	for id, agg := range aggs {
		var c ActivityCounts
		for _, d := range agg.PurchaseDates {
			switch {
			case !d.Before(pastStart) && d.Before(pastEnd):
				c.Past++
			case !d.Before(pastEnd) && !d.After(recentEnd):
				c.Recent++
			}
		}
		if c.Past > 0 {
			out[id] = c
		}
	}
	return out
}

// round2 arrondit à 2 décimales.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package calculator

import (
	"sort"
	"time"

	"customer-insights/pkg/models"
)

/*
COMPOSE → projections pures sur les agrégats ; aucun CustomerAggregate n'est modifié.
*/

// Retention sépare les acheteurs uniques (1 transaction) des clients
// récurrents (>= 2). OneTimeBuyers + RepeatCustomers == TotalCustomers.
func Retention(aggs map[string]*models.CustomerAggregate) models.RetentionSplit {
	var split models.RetentionSplit
	for _, agg := range aggs {
		if agg.TransactionCount == 1 {
			split.OneTimeBuyers++
		} else {
			split.RepeatCustomers++
		}
	}
	split.TotalCustomers = len(aggs)
	return split
}

// SpendTiers classe chaque client dans un niveau Low/Medium/High selon les
// seuils de percentile calculés sur l'ensemble des dépenses totales
// (par défaut p50 et p75). Classement par dépense décroissante.
func SpendTiers(aggs map[string]*models.CustomerAggregate, breakpoints []float64) ([]models.SpendTierRow, error) {
	spends := make([]float64, 0, len(aggs))
	for _, agg := range aggs {
		spends = append(spends, agg.TotalSpending)
	}
	thresholds, err := Percentiles(spends, breakpoints, "total_spending")
	if err != nil {
		return nil, err
	}

	tiers := tiersFromThresholds(breakpoints, thresholds)
	rows := make([]models.SpendTierRow, 0, len(aggs))
	for _, id := range sortedIDs(aggs) {
		agg := aggs[id]
		rows = append(rows, models.SpendTierRow{
			CustomerID:    id,
			TotalSpending: agg.TotalSpending,
			Tier:          AssignTier(agg.TotalSpending, tiers, models.TierLow),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSpending > rows[j].TotalSpending })
	return rows, nil
}

// tiersFromThresholds construit les niveaux Medium/High (ordonnés haut → bas)
// à partir des deux points de coupure configurés ; Low est le niveau plancher.
func tiersFromThresholds(breakpoints []float64, thresholds map[float64]float64) []Tier {
	sorted := make([]float64, len(breakpoints))
	copy(sorted, breakpoints)
	sort.Float64s(sorted)

	labels := []string{models.TierHigh, models.TierMedium}
	tiers := make([]Tier, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0 && len(tiers) < len(labels); i-- {
		tiers = append(tiers, Tier{Label: labels[len(tiers)], Threshold: thresholds[sorted[i]]})
	}
	return tiers
}

// DiscountDependency calcule le taux de remise par client
// (remisées / total × 100, arrondi à 2 décimales), classé par taux décroissant.
func DiscountDependency(aggs map[string]*models.CustomerAggregate) []models.DiscountRow {
	rows := make([]models.DiscountRow, 0, len(aggs))
	for _, id := range sortedIDs(aggs) {
		agg := aggs[id]
		rows = append(rows, models.DiscountRow{
			CustomerID:       id,
			TransactionCount: agg.TransactionCount,
			DiscountedCount:  agg.DiscountedCount,
			DiscountRate:     round2(float64(agg.DiscountedCount) / float64(agg.TransactionCount) * 100),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DiscountRate > rows[j].DiscountRate })
	return rows
}

// AtRisk croise le haut du panier (dépense >= percentile supérieur) avec
// l'inactivité (récence > seuil configuré). Jamais de client sous le seuil de
// dépense, quel que soit son niveau d'inactivité. Classement par inactivité
// décroissante.
func AtRisk(aggs map[string]*models.CustomerAggregate, breakpoints []float64, reference time.Time, inactivityDays int) ([]models.AtRiskRow, error) {
	top := 0.0
	for _, p := range breakpoints {
		if p > top {
			top = p
		}
	}
	spends := make([]float64, 0, len(aggs))
	for _, agg := range aggs {
		spends = append(spends, agg.TotalSpending)
	}
	thresholds, err := Percentiles(spends, []float64{top}, "total_spending")
	if err != nil {
		return nil, err
	}
	cutoff := thresholds[top]

	rows := make([]models.AtRiskRow, 0)
	for _, id := range sortedIDs(aggs) {
		agg := aggs[id]
		if agg.TotalSpending < cutoff {
			continue
		}
		inactive := RecencyDays(agg, reference)
		if inactive <= inactivityDays {
			continue
		}
		rows = append(rows, models.AtRiskRow{
			CustomerID:    id,
			TotalSpending: agg.TotalSpending,
			LastPurchase:  agg.LastPurchase,
			InactiveDays:  inactive,
			Segment:       models.SegmentAtRisk,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].InactiveDays > rows[j].InactiveDays })
	return rows, nil
}

// DecliningActivity liste les clients dont l'activité récente est en baisse
// par rapport à la fenêtre passée, limité aux topN plus gros volumes passés.
func DecliningActivity(aggs map[string]*models.CustomerAggregate, pastStart, pastEnd, recentEnd time.Time, topN int) []models.DecliningRow {
	trend := ActivityTrend(aggs, pastStart, pastEnd, recentEnd)

	ids := make([]string, 0, len(trend))
	for id := range trend {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]models.DecliningRow, 0)
	for _, id := range ids {
		c := trend[id]
		if !c.Declining() {
			continue
		}
		rows = append(rows, models.DecliningRow{CustomerID: id, PastCount: c.Past, RecentCount: c.Recent})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].PastCount > rows[j].PastCount })
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// PurchaseIntervals classe les clients par cadence d'achat moyenne croissante
// (acheteurs les plus fréquents d'abord). Les clients à achat unique sont
// exclus, pas comptés à zéro.
func PurchaseIntervals(aggs map[string]*models.CustomerAggregate) []models.IntervalRow {
	rows := make([]models.IntervalRow, 0)
	for _, id := range sortedIDs(aggs) {
		agg := aggs[id]
		avg, gaps, ok := AvgGapDays(agg.PurchaseDates)
		if !ok {
			continue
		}
		rows = append(rows, models.IntervalRow{CustomerID: id, AvgGapDays: avg, GapCount: gaps})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AvgGapDays < rows[j].AvgGapDays })
	return rows
}

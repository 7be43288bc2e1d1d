package calculator

import (
	"sort"

	"customer-insights/pkg/models"
)

// Aggregate réduit l'ensemble des transactions à un agrégat par client.
// Chaque transaction contribue à exactement un agrégat (regroupement par
// CustomerID). Les dates d'achat sont triées par ordre croissant pour le
// calcul des intervalles en aval. Aucun effet de bord : l'entrée n'est
// jamais modifiée.
func Aggregate(txs []models.Transaction) (map[string]*models.CustomerAggregate, error) {
	aggs := make(map[string]*models.CustomerAggregate)

	for _, tx := range txs {
		if tx.CustomerID == "" {
			return nil, &models.DataIntegrityError{TransactionID: tx.TransactionID, Field: "customer_id"}
		}
		if tx.Date.IsZero() {
			return nil, &models.DataIntegrityError{TransactionID: tx.TransactionID, Field: "date"}
		}

		agg, ok := aggs[tx.CustomerID]
		if !ok {
			agg = &models.CustomerAggregate{CustomerID: tx.CustomerID}
			aggs[tx.CustomerID] = agg
		}
		agg.TotalSpending += tx.TotalSpent
		agg.TransactionCount++
		if tx.Discount {
			agg.DiscountedCount++
		}
		agg.PurchaseDates = append(agg.PurchaseDates, tx.Date)
	}

	for _, agg := range aggs {
		sort.Slice(agg.PurchaseDates, func(i, j int) bool {
			return agg.PurchaseDates[i].Before(agg.PurchaseDates[j])
		})
		agg.FirstPurchase = agg.PurchaseDates[0]
		agg.LastPurchase = agg.PurchaseDates[len(agg.PurchaseDates)-1]
	}

	return aggs, nil
}

// sortedIDs renvoie les identifiants clients par ordre alphabétique, pour des
// parcours déterministes (les égalités de tri se résolvent par CustomerID).
func sortedIDs(aggs map[string]*models.CustomerAggregate) []string {
	ids := make([]string, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package calculator

import (
	"log"
	"time"

	"customer-insights/pkg/models"

	"github.com/schollz/progressbar/v3"
)

// Noms de rapport, utilisés pour les erreurs par rapport et les exports.
const (
	ReportRetention = "retention"
	ReportSpendTier = "spend_tiers"
	ReportDiscounts = "discounts"
	ReportAtRisk    = "at_risk"
	ReportDeclining = "declining"
	ReportIntervals = "intervals"
)

// Run agrège une fois puis calcule chaque rapport. Une condition signalée
// (DataIntegrityError, EmptyPopulationError) abandonne le rapport concerné —
// consignée dans la map renvoyée — sans interrompre le reste de l'exécution.
// Déterministe : même entrée + même config → même sortie.
func Run(cfg models.Config, txs []models.Transaction) (models.Results, map[string]error, error) {
	if cfg.Reference.IsZero() {
		cfg.Reference = time.Now().UTC()
	}
	if len(cfg.TierPercentiles) == 0 {
		cfg.TierPercentiles = []float64{0.50, 0.75}
	}

	var results models.Results
	failed := make(map[string]error)

	aggs, err := Aggregate(txs)
	if err != nil {
		return results, failed, err
	}
	if cfg.Verbose {
		log.Printf("[INFO] %d transactions -> %d clients agrégés", len(txs), len(aggs))
	}

	pastEnd := cfg.Reference.AddDate(0, -cfg.RecentWindowMonths, 0)
	pastStart := cfg.Reference.AddDate(0, -cfg.PastWindowMonths, 0)

	type report struct {
		name string
		run  func() error
	}
	reports := []report{
		{ReportRetention, func() error {
			split := Retention(aggs)
			results.Retention = &split
			return nil
		}},
		{ReportSpendTier, func() error {
			rows, err := SpendTiers(aggs, cfg.TierPercentiles)
			results.SpendTiers = rows
			return err
		}},
		{ReportDiscounts, func() error {
			results.Discounts = DiscountDependency(aggs)
			return nil
		}},
		{ReportAtRisk, func() error {
			rows, err := AtRisk(aggs, cfg.TierPercentiles, cfg.Reference, cfg.InactivityDays)
			results.AtRisk = rows
			return err
		}},
		{ReportDeclining, func() error {
			results.Declining = DecliningActivity(aggs, pastStart, pastEnd, cfg.Reference, cfg.TopNDeclining)
			return nil
		}},
		{ReportIntervals, func() error {
			results.Intervals = PurchaseIntervals(aggs)
			return nil
		}},
	}

	bar := progressbar.Default(int64(len(reports)))
	for _, r := range reports {
		if err := r.run(); err != nil {
			log.Printf("[WARN] rapport %s abandonné: %v", r.name, err)
			failed[r.name] = err
		} else if cfg.Verbose {
			log.Printf("[INFO] rapport %s OK", r.name)
		}
		_ = bar.Add(1)
	}
	return results, failed, nil
}

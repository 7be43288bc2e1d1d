package models

import (
	"time"
)

/*
LOAD → types simples pour charger les données brutes de la source tabulaire.
*/

// Transaction représente une ligne d'achat brute telle qu'elle est lue depuis
// la source (table SQL ou fichier CSV). Lecture seule, jamais modifiée par le moteur.
type Transaction struct {
	TransactionID string
	CustomerID    string
	Category      string
	Item          string
	PricePerUnit  float64
	Quantity      int
	TotalSpent    float64
	PaymentMethod string
	Location      string
	Date          time.Time
	Discount      bool
}

/*
COMPUTE → agrégat par client et lignes de résultat exportées par rapport
*/

// CustomerAggregate contient les métriques dérivées pour un client, recalculées
// entièrement à chaque exécution (pas de mise à jour incrémentale).
type CustomerAggregate struct {
	CustomerID       string
	TotalSpending    float64
	TransactionCount int
	FirstPurchase    time.Time
	LastPurchase     time.Time
	DiscountedCount  int
	PurchaseDates    []time.Time // triées par ordre croissant
}

// Niveaux de dépense attribués par le classificateur de percentiles.
const (
	TierHigh   = "High"
	TierMedium = "Medium"
	TierLow    = "Low"
)

// Étiquettes de segment pour la vue churn.
const (
	SegmentAtRisk = "AtRisk"
	SegmentStable = "Stable"
)

// RetentionSplit compte les acheteurs uniques vs récurrents.
// Invariant : OneTimeBuyers + RepeatCustomers == TotalCustomers.
type RetentionSplit struct {
	OneTimeBuyers   int `json:"one_time_buyers"`
	RepeatCustomers int `json:"repeat_customers"`
	TotalCustomers  int `json:"total_customers"`
}

// SpendTierRow associe un client à son niveau de dépense (Low/Medium/High).
type SpendTierRow struct {
	CustomerID    string  `json:"customer_id"`
	TotalSpending float64 `json:"total_spending"`
	Tier          string  `json:"tier"`
}

// DiscountRow mesure la dépendance d'un client aux remises (en %).
type DiscountRow struct {
	CustomerID       string  `json:"customer_id"`
	TransactionCount int     `json:"transaction_count"`
	DiscountedCount  int     `json:"discounted_count"`
	DiscountRate     float64 `json:"discount_rate_pct"`
}

// AtRiskRow : client du haut du panier (>= p75) devenu inactif.
type AtRiskRow struct {
	CustomerID    string    `json:"customer_id"`
	TotalSpending float64   `json:"total_spending"`
	LastPurchase  time.Time `json:"last_purchase"`
	InactiveDays  int       `json:"inactive_days"`
	Segment       string    `json:"segment"`
}

// DecliningRow : client dont l'activité récente est inférieure à son activité passée.
type DecliningRow struct {
	CustomerID  string `json:"customer_id"`
	PastCount   int    `json:"past_count"`
	RecentCount int    `json:"recent_count"`
}

// IntervalRow : cadence d'achat moyenne d'un client (clients à >= 2 achats uniquement).
type IntervalRow struct {
	CustomerID string  `json:"customer_id"`
	AvgGapDays float64 `json:"avg_gap_days"`
	GapCount   int     `json:"gap_count"`
}

// Results regroupe toutes les vues d'une exécution. Un rapport absent
// (pointeur nil / slice nil) a été abandonné suite à une erreur signalée.
type Results struct {
	Retention  *RetentionSplit `json:"retention,omitempty"`
	SpendTiers []SpendTierRow  `json:"spend_tiers,omitempty"`
	Discounts  []DiscountRow   `json:"discounts,omitempty"`
	AtRisk     []AtRiskRow     `json:"at_risk,omitempty"`
	Declining  []DecliningRow  `json:"declining,omitempty"`
	Intervals  []IntervalRow   `json:"intervals,omitempty"`
}

/*
CONFIG → paramètres globaux
*/

// Config contient les paramètres de configuration passés à la fonction de calcul.
type Config struct {
	Reference          time.Time // date de référence "as of" – en UTC, injectable pour les tests
	InactivityDays     int       // seuil d'inactivité pour la vue churn (défaut 30)
	PastWindowMonths   int       // début de la fenêtre passée, en mois avant Reference (défaut 12)
	RecentWindowMonths int       // frontière passé/récent, en mois avant Reference (défaut 6)
	TopNDeclining      int       // taille de la vue "activité en baisse" (défaut 10)
	TierPercentiles    []float64 // seuils de tiering (défaut 0.50, 0.75)
	Verbose            bool      // Flag pour activer les logs détaillés.
}

// DefaultConfig renvoie la configuration par défaut, datée de maintenant (UTC).
func DefaultConfig() Config {
	return Config{
		Reference:          time.Now().UTC(),
		InactivityDays:     30,
		PastWindowMonths:   12,
		RecentWindowMonths: 6,
		TopNDeclining:      10,
		TierPercentiles:    []float64{0.50, 0.75},
	}
}
